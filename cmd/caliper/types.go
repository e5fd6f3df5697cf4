package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wmarlow/caliper"
)

var typesCmd = &cobra.Command{
	Use:   "types <file>",
	Short: "Print the entity type census of a STEP file",
	Long: `Types parses a STEP file and prints its entity types ordered by count.
Useful for spotting which PMI constructs a file actually carries, and
for comparing exports from different CAD systems.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		top, _ := cmd.Flags().GetInt("top")

		doc, err := caliper.Open(args[0]).Document()
		if err != nil {
			return err
		}

		for _, tc := range doc.TopTypes(top) {
			fmt.Fprintf(cmd.OutOrStdout(), "%6d  %s\n", tc.Count, tc.Name)
		}
		return nil
	},
}

func init() {
	typesCmd.Flags().Int("top", 20, "number of types to print (0 for all)")

	rootCmd.AddCommand(typesCmd)
}
