package main

import (
	"log/slog"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/wmarlow/caliper"
)

var pmiCmd = &cobra.Command{
	Use:   "pmi <file>",
	Short: "Extract PMI from a STEP file",
	Long: `Pmi runs the full extraction pipeline on a single STEP file and prints
the result envelope to stdout. The envelope carries an extraction id,
the source file path, and the categorized PMI: dimensions, geometric
tolerances, datums, surface finishes, weld symbols, notes, graphical
elements, and annotation planes.

Extraction warnings (skipped entities, fallback positioning) go to
stderr as log lines, never into the result stream.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		output, _ := cmd.Flags().GetString("output")
		pretty, _ := cmd.Flags().GetBool("pretty")
		maxDepth, _ := cmd.Flags().GetInt("max-depth")

		extractor := caliper.Open(args[0])
		if maxDepth > 0 {
			extractor = extractor.MaxDepth(maxDepth)
		}

		result, warnings, err := extractor.PMI()
		if err != nil {
			return err
		}
		for _, w := range warnings {
			slog.Warn(w.Message, "code", w.Code, "file", args[0])
		}

		env := envelope{
			ExtractionID: uuid.NewString(),
			File:         args[0],
			Result:       result,
		}
		return writeEnvelope(cmd.OutOrStdout(), env, output, pretty)
	},
}

func init() {
	pmiCmd.Flags().String("output", "json", "output format: json or yaml")
	pmiCmd.Flags().Bool("pretty", false, "indent JSON output")
	pmiCmd.Flags().Int("max-depth", 0, "reference resolution depth limit (0 uses the default)")

	rootCmd.AddCommand(pmiCmd)
}
