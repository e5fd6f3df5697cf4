// Package format provides file format and protocol detection for the caliper library.
package format

import (
	"archive/zip"
	"bytes"
	"io"
	"path/filepath"
	"strings"

	"github.com/wmarlow/caliper/document"
)

// Format represents a recognized input file format.
type Format int

const (
	// Unknown indicates an unrecognized format.
	Unknown Format = iota
	// STEP indicates an ISO 10303-21 clear-text exchange file.
	STEP
	// CompressedSTEP indicates a ZIP-compressed exchange file (.stpz)
	// wrapping a single Part 21 member.
	CompressedSTEP
	// STEPXML indicates an ISO 10303-28 XML representation.
	STEPXML
)

// String returns the string representation of the format.
func (f Format) String() string {
	switch f {
	case STEP:
		return "STEP"
	case CompressedSTEP:
		return "STEP-ZIP"
	case STEPXML:
		return "STEP-XML"
	default:
		return "Unknown"
	}
}

// Extension returns the typical file extension for the format.
func (f Format) Extension() string {
	switch f {
	case STEP:
		return ".step"
	case CompressedSTEP:
		return ".stpz"
	case STEPXML:
		return ".stpx"
	default:
		return ""
	}
}

// Detect determines file format from filename extension.
func Detect(filename string) Format {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".step", ".stp", ".p21":
		return STEP
	case ".stpz":
		return CompressedSTEP
	case ".stpx", ".stpxz":
		return STEPXML
	default:
		return Unknown
	}
}

// DetectFromMagic checks leading file content to determine format.
// This provides more reliable detection than extension-based detection.
// Returns Unknown if the format cannot be determined from the head of
// the file alone; ZIP containers in particular need DetectFromReader.
func DetectFromMagic(data []byte) Format {
	if detectPart21Magic(data) {
		return STEP
	}

	// ZIP magic: PK\x03\x04. Could be a compressed exchange file or any
	// other archive, so the caller should inspect members via
	// DetectFromReader.
	if len(data) >= 4 && data[0] == 0x50 && data[1] == 0x4B && data[2] == 0x03 && data[3] == 0x04 {
		return Unknown
	}

	if detectPart28Magic(data) {
		return STEPXML
	}

	return Unknown
}

// detectPart21Magic checks if the data starts with the ISO-10303-21
// header keyword. Exporters sometimes emit a UTF-8 byte order mark or
// blank lines first, so both are skipped.
func detectPart21Magic(data []byte) bool {
	data = bytes.TrimPrefix(data, []byte{0xEF, 0xBB, 0xBF})
	start := 0
	for start < len(data) && (data[start] == ' ' || data[start] == '\t' || data[start] == '\n' || data[start] == '\r') {
		start++
	}
	if start >= len(data) {
		return false
	}
	data = data[start:]

	const keyword = "ISO-10303-21"
	if len(data) < len(keyword) {
		return false
	}
	return strings.EqualFold(string(data[:len(keyword)]), keyword)
}

// detectPart28Magic checks if the data looks like a STEP XML document.
func detectPart28Magic(data []byte) bool {
	start := 0
	for start < len(data) && (data[start] == ' ' || data[start] == '\t' || data[start] == '\n' || data[start] == '\r') {
		start++
	}
	if start >= len(data) {
		return false
	}
	data = data[start:]

	upper := strings.ToUpper(string(data[:min(512, len(data))]))
	if !strings.HasPrefix(upper, "<?XML") {
		return false
	}
	return strings.Contains(upper, "ISO_10303_28") || strings.Contains(upper, "ISO-10303-28")
}

// DetectFromReader inspects the content to determine format. This is
// more reliable than extension-based detection and can look inside ZIP
// containers to recognize compressed exchange files.
func DetectFromReader(r io.ReaderAt, size int64) (Format, error) {
	magic := make([]byte, 512)
	n, err := r.ReadAt(magic, 0)
	if err != nil && err != io.EOF {
		return Unknown, err
	}
	magic = magic[:n]

	if detectPart21Magic(magic) {
		return STEP, nil
	}

	if len(magic) >= 4 && magic[0] == 0x50 && magic[1] == 0x4B && magic[2] == 0x03 && magic[3] == 0x04 {
		return detectZIPFormat(r, size)
	}

	if detectPart28Magic(magic) {
		return STEPXML, nil
	}

	return Unknown, nil
}

// detectZIPFormat inspects a ZIP archive for a Part 21 member, the
// layout compressed exchange files use.
func detectZIPFormat(r io.ReaderAt, size int64) (Format, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return Unknown, err
	}

	for _, f := range zr.File {
		switch Detect(f.Name) {
		case STEP:
			return CompressedSTEP, nil
		case STEPXML:
			return STEPXML, nil
		}
	}

	return Unknown, nil
}

// Protocol identifies the STEP application protocol family of a parsed
// document. AP242 files carry semantic PMI entities; AP203 and AP214
// files carry only graphical annotation, so the two families need
// different extraction paths.
type Protocol int

const (
	// AP242 indicates a file with semantic PMI entity types.
	AP242 Protocol = iota
	// Legacy indicates an AP203/AP214 file, where PMI is purely
	// graphical.
	Legacy
)

// String returns the protocol tag reported in extraction results.
func (p Protocol) String() string {
	if p == Legacy {
		return "AP203/AP214"
	}
	return "AP242"
}

// semanticTypes only ever appear in AP242 exports. Finding one settles
// the classification regardless of what draughting entities are also
// present.
var semanticTypes = []string{
	"DIMENSIONAL_SIZE",
	"GEOMETRIC_TOLERANCE",
	"DATUM_SYSTEM",
}

// draughtingTypes are the annotation entities AP203/AP214 exporters use
// for drawing-style PMI.
var draughtingTypes = []string{
	"ANNOTATION_OCCURRENCE",
	"ANNOTATION_CURVE_OCCURRENCE",
	"ANNOTATION_FILL_AREA_OCCURRENCE",
	"ANNOTATION_TEXT_OCCURRENCE",
	"ANNOTATION_SUBFIGURE_OCCURRENCE",
	"DRAUGHTING_ANNOTATION_OCCURRENCE",
	"DRAUGHTING_CALLOUT",
	"DIMENSION_CURVE",
	"DIMENSION_CURVE_TERMINATOR",
	"PROJECTION_CURVE",
	"LEADER_CURVE",
}

// Classify determines the protocol family of a document from the entity
// types it contains. A file with neither semantic nor draughting types
// classifies as AP242: there is no legacy annotation to reconstruct, so
// the semantic path (which tolerates empty results) is the right one.
func Classify(doc *document.Document) Protocol {
	if doc.HasAnyType(semanticTypes...) {
		return AP242
	}
	if doc.HasAnyType(draughtingTypes...) {
		return Legacy
	}
	return AP242
}
