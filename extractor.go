package caliper

import (
	"encoding/json"
	"fmt"

	"github.com/wmarlow/caliper/document"
	"github.com/wmarlow/caliper/format"
	"github.com/wmarlow/caliper/pmi"
)

// Extractor provides a fluent interface for extracting PMI from STEP
// files. Each configuration method returns a new Extractor instance,
// making it safe for concurrent use and allowing method chaining.
type Extractor struct {
	// Source
	filename string

	// Parsed document, loaded lazily by the terminal operations
	doc       *document.Document
	docLoaded bool

	// Configuration
	options ExtractOptions

	// Accumulated error (fail-fast)
	err error
}

// clone creates a copy of the Extractor. This ensures immutability -
// each chain method returns a new instance.
func (e *Extractor) clone() *Extractor {
	return &Extractor{
		filename:  e.filename,
		doc:       e.doc,
		docLoaded: e.docLoaded,
		options:   e.options,
		err:       e.err,
	}
}

// ensureDocument parses the file if no document is loaded yet.
func (e *Extractor) ensureDocument() error {
	if e.err != nil {
		return e.err
	}
	if e.docLoaded {
		return nil
	}
	if e.filename == "" {
		return fmt.Errorf("no filename specified")
	}
	doc, err := document.ParseFile(e.filename)
	if err != nil {
		return fmt.Errorf("failed to open STEP file: %w", err)
	}
	e.doc = doc
	e.docLoaded = true
	return nil
}

// ============================================================================
// Configuration Methods (return new Extractor instance)
// ============================================================================

// MaxDepth bounds how many references the extractor follows when
// resolving a chain of entities. Zero keeps the default bound.
//
// Example:
//
//	result, _, err := caliper.Open("bracket.step").MaxDepth(20).PMI()
func (e *Extractor) MaxDepth(depth int) *Extractor {
	newExt := e.clone()
	newExt.options.maxDepth = depth
	return newExt
}

// ============================================================================
// Terminal Operations
// ============================================================================

// PMI parses the file and extracts every PMI category from it. It
// returns the result, any warnings accumulated along the way, and an
// error if the file could not be read or is not a STEP exchange
// structure. Warnings indicate non-fatal issues such as skipped entity
// statements or fallback position assignment.
//
// Example:
//
//	result, warnings, err := caliper.Open("bracket.step").PMI()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", caliper.FormatWarnings(warnings))
//	}
//	for _, d := range result.Dimensions {
//	    fmt.Println(d.Text)
//	}
func (e *Extractor) PMI() (*pmi.Result, []Warning, error) {
	if err := e.ensureDocument(); err != nil {
		return nil, nil, err
	}
	result := pmi.Extract(e.doc, e.pmiOptions()...)
	return result, result.Warnings, nil
}

// JSON runs PMI extraction and returns the result serialized as
// indented JSON.
//
// Example:
//
//	data, _, err := caliper.Open("bracket.step").JSON()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.Stdout.Write(data)
func (e *Extractor) JSON() ([]byte, []Warning, error) {
	result, warnings, err := e.PMI()
	if err != nil {
		return nil, warnings, err
	}
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return nil, warnings, fmt.Errorf("failed to encode result: %w", err)
	}
	return data, warnings, nil
}

// Format parses the file and reports the detected application protocol,
// "AP242" or "AP203/AP214".
//
// Example:
//
//	proto, err := caliper.Open("bracket.step").Format()
func (e *Extractor) Format() (string, error) {
	if err := e.ensureDocument(); err != nil {
		return "", err
	}
	return format.Classify(e.doc).String(), nil
}

// EntityCount parses the file and returns the number of entity
// instances in its DATA section.
//
// Example:
//
//	count, err := caliper.Open("bracket.step").EntityCount()
func (e *Extractor) EntityCount() (int, error) {
	if err := e.ensureDocument(); err != nil {
		return 0, err
	}
	return e.doc.EntityCount(), nil
}

// Document parses the file and returns the underlying document for
// lower-level inspection alongside, or instead of, PMI extraction.
//
// Example:
//
//	doc, err := caliper.Open("bracket.step").Document()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(doc.Header().Schema())
func (e *Extractor) Document() (*document.Document, error) {
	if err := e.ensureDocument(); err != nil {
		return nil, err
	}
	return e.doc, nil
}

// pmiOptions translates the configured options for the pmi package.
func (e *Extractor) pmiOptions() []pmi.Option {
	var opts []pmi.Option
	if e.options.maxDepth > 0 {
		opts = append(opts, pmi.WithMaxDepth(e.options.maxDepth))
	}
	return opts
}
