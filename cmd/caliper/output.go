package main

import (
	"encoding/json"
	"fmt"
	"io"

	"go.yaml.in/yaml/v3"

	"github.com/wmarlow/caliper/pmi"
)

// envelope wraps an extraction result for output. Every run gets its own
// extraction id so results can be correlated with log lines.
type envelope struct {
	ExtractionID string      `json:"extraction_id" yaml:"extraction_id"`
	File         string      `json:"file" yaml:"file"`
	Result       *pmi.Result `json:"result" yaml:"result"`
}

// writeEnvelope encodes env to w in the requested format, "json" or "yaml".
func writeEnvelope(w io.Writer, env envelope, format string, pretty bool) error {
	switch format {
	case "yaml":
		data, err := yaml.Marshal(env)
		if err != nil {
			return fmt.Errorf("failed to encode YAML: %w", err)
		}
		_, err = w.Write(data)
		return err
	case "json":
		enc := json.NewEncoder(w)
		if pretty {
			enc.SetIndent("", "  ")
		}
		if err := enc.Encode(env); err != nil {
			return fmt.Errorf("failed to encode JSON: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("unsupported output format %q (want json or yaml)", format)
	}
}
