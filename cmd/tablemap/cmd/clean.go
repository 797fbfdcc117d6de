package cmd

import (
	"github.com/spf13/cobra"

	"github.com/tablemap/tablemap/pkg/catalog"
	"github.com/tablemap/tablemap/pkg/clean"
	"github.com/tablemap/tablemap/pkg/logging"
)

var (
	flagCleanInput  string
	flagCleanOutput string
)

// cleanCmd tidies display fields in an existing catalog file.
var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Clean display fields in a catalog",
	RunE: func(cmd *cobra.Command, _ []string) error {
		records, err := catalog.Load(flagCleanInput)
		if err != nil {
			return err
		}

		cleaned := clean.Records(records)

		if err := catalog.Save(flagCleanOutput, cleaned); err != nil {
			return err
		}

		logging.Info().
			Int("records", len(cleaned)).
			Str("path", flagCleanOutput).
			Msg("Cleaned catalog")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(cleanCmd)

	cleanCmd.Flags().StringVar(&flagCleanInput, "input", "", "catalog to clean (JSON)")
	cleanCmd.Flags().StringVar(&flagCleanOutput, "output", "", "cleaned catalog path")

	_ = cleanCmd.MarkFlagRequired("input")
	_ = cleanCmd.MarkFlagRequired("output")
}
