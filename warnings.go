package caliper

import (
	"strings"

	"github.com/wmarlow/caliper/core"
)

// Warning reports a non-fatal condition met while parsing or extracting.
// It is an alias for core.Warning, re-exported so callers of the fluent
// API do not need to import the lower layers.
type Warning = core.Warning

// FormatWarnings renders a warning slice as a single line suitable for
// logging. It returns an empty string when there are no warnings.
//
// Example:
//
//	result, warnings, err := caliper.Open("bracket.step").PMI()
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", caliper.FormatWarnings(warnings))
//	}
func FormatWarnings(warnings []Warning) string {
	if len(warnings) == 0 {
		return ""
	}
	parts := make([]string, len(warnings))
	for i, w := range warnings {
		parts[i] = w.String()
	}
	return strings.Join(parts, "; ")
}
