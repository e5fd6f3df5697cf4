package core

import "fmt"

// FormatError indicates input that is not a readable ISO 10303-21 exchange
// structure. It is the only fatal parse error: anything less severe degrades
// to a skipped entity or a warning.
type FormatError struct {
	Reason string
}

func (e *FormatError) Error() string {
	return "invalid STEP file: " + e.Reason
}

// EntityError records a single malformed entity statement. The statement is
// skipped; the parse continues.
type EntityError struct {
	ID     string // "#N" when the id could be read, empty otherwise
	Stmt   string // offending statement, truncated for reporting
	Reason string
}

func (e *EntityError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("entity %s: %s", e.ID, e.Reason)
	}
	return fmt.Sprintf("entity statement %q: %s", e.Stmt, e.Reason)
}

// Warning reports a non-fatal condition encountered while parsing or
// extracting. Warnings never abort processing.
type Warning struct {
	Code    string `json:"code" yaml:"code"`
	Message string `json:"message" yaml:"message"`
}

// Warning codes.
const (
	WarnEntitySkipped    = "entity_skipped"
	WarnHeader           = "header"
	WarnEncoding         = "encoding"
	WarnPositionFallback = "position_fallback"
)

func (w Warning) String() string {
	if w.Code == "" {
		return w.Message
	}
	return w.Code + ": " + w.Message
}
