package document

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/wmarlow/caliper/core"
)

// ParseFile reads and parses a STEP file from disk.
func ParseFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	doc, err := Parse(data)
	if err != nil {
		return nil, err
	}
	doc.path = path
	return doc, nil
}

// ParseReader parses a STEP exchange structure from a stream.
func ParseReader(r io.Reader) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}
	return Parse(data)
}

// Parse parses a STEP exchange structure from raw bytes. The only fatal
// condition is a missing DATA section; individual malformed statements are
// skipped and reported through Warnings.
func Parse(data []byte) (*Document, error) {
	start := time.Now()
	doc := &Document{entities: make(map[string]*core.Entity)}

	data, recoded := core.RecodeLatin1(data)
	if recoded {
		doc.warn(core.WarnEncoding, "input was not valid UTF-8, re-coded from Latin-1")
	}

	lex := core.NewLexer(data)
	stmts, err := lex.DataStatements()
	if err != nil {
		return nil, err
	}

	for _, stmt := range stmts {
		e, err := core.ParseEntity(stmt)
		if err != nil {
			doc.warn(core.WarnEntitySkipped, err.Error())
			continue
		}
		if _, dup := doc.entities[e.ID]; dup {
			doc.warn(core.WarnEntitySkipped, fmt.Sprintf("duplicate entity id %s: later definition replaces earlier", e.ID))
		}
		doc.index(e)
	}
	doc.buildTypeIndex()

	header, headerWarnings := parseHeader(lex.HeaderStatements())
	doc.header = header
	doc.warnings = append(doc.warnings, headerWarnings...)

	doc.unit = resolveLengthUnit(doc)
	doc.parseTime = time.Since(start)

	return doc, nil
}

func (d *Document) warn(code, message string) {
	d.warnings = append(d.warnings, core.Warning{Code: code, Message: message})
}
