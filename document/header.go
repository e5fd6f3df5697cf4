package document

import (
	"github.com/wmarlow/caliper/core"
)

// Header holds the metadata records of the HEADER section. Every field is
// best-effort: exporters disagree on how much of it they fill in.
type Header struct {
	// FILE_DESCRIPTION
	Description         []string
	ImplementationLevel string

	// FILE_NAME
	Name                string
	Timestamp           string
	Authors             []string
	Organizations       []string
	PreprocessorVersion string
	OriginatingSystem   string
	Authorization       string

	// FILE_SCHEMA
	Schemas []string
}

// Schema returns the first declared schema name, or an empty string.
func (h *Header) Schema() string {
	if len(h.Schemas) == 0 {
		return ""
	}
	return h.Schemas[0]
}

// parseHeader folds HEADER section statements into a Header. Unparseable
// records degrade to warnings; the result is never nil.
func parseHeader(stmts []string) (*Header, []core.Warning) {
	h := &Header{}
	var warnings []core.Warning

	for _, stmt := range stmts {
		name, attrs, err := core.ParseRecord(stmt)
		if err != nil {
			warnings = append(warnings, core.Warning{Code: core.WarnHeader, Message: err.Error()})
			continue
		}

		switch name {
		case "FILE_DESCRIPTION":
			if l, ok := attrs.GetList(0); ok {
				h.Description = stringList(l)
			}
			if s, ok := attrs.GetString(1); ok {
				h.ImplementationLevel = string(s)
			}

		case "FILE_NAME":
			if s, ok := attrs.GetString(0); ok {
				h.Name = string(s)
			}
			if s, ok := attrs.GetString(1); ok {
				h.Timestamp = string(s)
			}
			if l, ok := attrs.GetList(2); ok {
				h.Authors = stringList(l)
			}
			if l, ok := attrs.GetList(3); ok {
				h.Organizations = stringList(l)
			}
			if s, ok := attrs.GetString(4); ok {
				h.PreprocessorVersion = string(s)
			}
			if s, ok := attrs.GetString(5); ok {
				h.OriginatingSystem = string(s)
			}
			if s, ok := attrs.GetString(6); ok {
				h.Authorization = string(s)
			}

		case "FILE_SCHEMA":
			if l, ok := attrs.GetList(0); ok {
				h.Schemas = stringList(l)
			}
		}
	}

	return h, warnings
}

// stringList collects the string elements of an aggregate, skipping
// anything else.
func stringList(l core.List) []string {
	var out []string
	for i := 0; i < l.Len(); i++ {
		if s, ok := l.GetString(i); ok {
			out = append(out, string(s))
		}
	}
	return out
}
