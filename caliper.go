// Package caliper provides a fluent API for extracting PMI (Product and
// Manufacturing Information) from STEP files.
//
// Basic usage:
//
//	result, warnings, err := caliper.Open("bracket.step").PMI()
//	if err != nil {
//	    // handle error
//	}
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", caliper.FormatWarnings(warnings))
//	}
//
// With options:
//
//	result, _, err := caliper.Open("bracket.step").
//	    MaxDepth(20).
//	    PMI()
//
// For advanced use cases, the lower-level document and pmi packages are
// also available.
package caliper

import (
	"github.com/wmarlow/caliper/document"
)

// Open prepares an Extractor for the given STEP file. The file is not
// read until a terminal operation such as PMI() runs.
//
// Example:
//
//	result, warnings, err := caliper.Open("bracket.step").PMI()
func Open(filename string) *Extractor {
	return &Extractor{
		filename: filename,
		options:  defaultOptions(),
	}
}

// FromDocument creates an Extractor over an already-parsed document.
// This is useful when the same document feeds several consumers, or when
// the input came from a reader or byte slice.
//
// Example:
//
//	doc, err := document.ParseFile("bracket.step")
//	if err != nil {
//	    // handle error
//	}
//	result, warnings, err := caliper.FromDocument(doc).PMI()
func FromDocument(doc *document.Document) *Extractor {
	return &Extractor{
		doc:       doc,
		docLoaded: true,
		options:   defaultOptions(),
	}
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
//
// Example:
//
//	count := caliper.Must(caliper.Open("bracket.step").EntityCount())
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

// MustPMI is a helper that wraps a call to PMI() or JSON() and panics if
// the error is non-nil. It discards warnings and returns just the value.
// It is intended for use in scripts or tests where error handling would
// be cumbersome.
//
// Example:
//
//	result := caliper.MustPMI(caliper.Open("bracket.step").PMI())
func MustPMI[T any](val T, _ []Warning, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
