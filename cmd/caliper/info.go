package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wmarlow/caliper"
)

var infoCmd = &cobra.Command{
	Use:   "info <file>",
	Short: "Summarize a STEP file without extracting PMI",
	Long: `Info parses a STEP file and prints its header metadata, detected
application protocol, length unit, and entity census. It is the quick
way to check what a file contains before running the full extraction.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		output, _ := cmd.Flags().GetString("output")

		info, err := caliper.Inspect(args[0])
		if err != nil {
			return err
		}

		if output == "json" {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(info)
		}
		printInfo(cmd.OutOrStdout(), info)
		return nil
	},
}

func init() {
	infoCmd.Flags().String("output", "text", "output format: text or json")

	rootCmd.AddCommand(infoCmd)
}

// printInfo writes the human-readable summary.
func printInfo(w io.Writer, info *caliper.Info) {
	fmt.Fprintf(w, "File:     %s\n", info.File)
	fmt.Fprintf(w, "Format:   %s\n", info.Format)
	if info.Schema != "" {
		fmt.Fprintf(w, "Schema:   %s\n", info.Schema)
	}
	if info.Name != "" {
		fmt.Fprintf(w, "Name:     %s\n", info.Name)
	}
	if info.Timestamp != "" {
		fmt.Fprintf(w, "Created:  %s\n", info.Timestamp)
	}
	if len(info.Authors) > 0 {
		fmt.Fprintf(w, "Authors:  %s\n", strings.Join(info.Authors, ", "))
	}
	if info.OriginatingSystem != "" {
		fmt.Fprintf(w, "System:   %s\n", info.OriginatingSystem)
	}
	fmt.Fprintf(w, "Unit:     %s\n", info.LengthUnit)
	fmt.Fprintf(w, "Entities: %d (%d types)\n", info.Entities, info.UniqueTypes)
	fmt.Fprintf(w, "Parsed:   %.2f ms\n", info.ParseTimeMS)

	if len(info.TopTypes) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Top entity types:")
		for _, tc := range info.TopTypes {
			fmt.Fprintf(w, "  %5d  %s\n", tc.Count, tc.Name)
		}
	}
	if len(info.Warnings) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Warnings: %s\n", caliper.FormatWarnings(info.Warnings))
	}
}
