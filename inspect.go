// inspect.go provides document-level summaries without running PMI
// extraction.
package caliper

import (
	"github.com/wmarlow/caliper/document"
	"github.com/wmarlow/caliper/format"
)

// Info summarizes a parsed STEP file: header metadata, the detected
// protocol, and the entity census.
type Info struct {
	File              string               `json:"file,omitempty" yaml:"file,omitempty"`
	Format            string               `json:"format" yaml:"format"`
	Schema            string               `json:"schema,omitempty" yaml:"schema,omitempty"`
	Name              string               `json:"name,omitempty" yaml:"name,omitempty"`
	Timestamp         string               `json:"timestamp,omitempty" yaml:"timestamp,omitempty"`
	Authors           []string             `json:"authors,omitempty" yaml:"authors,omitempty"`
	OriginatingSystem string               `json:"originating_system,omitempty" yaml:"originating_system,omitempty"`
	LengthUnit        string               `json:"length_unit" yaml:"length_unit"`
	Entities          int                  `json:"entities" yaml:"entities"`
	UniqueTypes       int                  `json:"unique_types" yaml:"unique_types"`
	TopTypes          []document.TypeCount `json:"top_types,omitempty" yaml:"top_types,omitempty"`
	ParseTimeMS       float64              `json:"parse_time_ms" yaml:"parse_time_ms"`
	Warnings          []Warning            `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

// Inspect parses a STEP file and summarizes it without extracting PMI.
//
// Example:
//
//	info, err := caliper.Inspect("bracket.step")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("%s: %d entities, %d types\n", info.Schema, info.Entities, info.UniqueTypes)
func Inspect(path string) (*Info, error) {
	doc, err := document.ParseFile(path)
	if err != nil {
		return nil, err
	}
	return InspectDocument(doc), nil
}

// InspectDocument summarizes an already-parsed document.
func InspectDocument(doc *document.Document) *Info {
	h := doc.Header()
	return &Info{
		File:              doc.Path(),
		Format:            format.Classify(doc).String(),
		Schema:            h.Schema(),
		Name:              h.Name,
		Timestamp:         h.Timestamp,
		Authors:           h.Authors,
		OriginatingSystem: h.OriginatingSystem,
		LengthUnit:        doc.LengthUnit(),
		Entities:          doc.EntityCount(),
		UniqueTypes:       doc.TypeCount(),
		TopTypes:          doc.TopTypes(10),
		ParseTimeMS:       float64(doc.ParseTime().Microseconds()) / 1000.0,
		Warnings:          doc.Warnings(),
	}
}
