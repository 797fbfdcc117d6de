package cmd

import (
	"github.com/spf13/cobra"

	"github.com/tablemap/tablemap/pkg/catalog"
	"github.com/tablemap/tablemap/pkg/dedupe"
	"github.com/tablemap/tablemap/pkg/logging"
	"github.com/tablemap/tablemap/pkg/order"
)

var (
	flagDedupeInput  string
	flagDedupeOutput string
)

// dedupeCmd collapses duplicate identities in an existing catalog file.
// Useful after enrichment has filled in place identifiers.
var dedupeCmd = &cobra.Command{
	Use:   "dedupe",
	Short: "Collapse records that share a place identity",
	RunE: func(cmd *cobra.Command, _ []string) error {
		records, err := catalog.Load(flagDedupeInput)
		if err != nil {
			return err
		}

		merged, groups := dedupe.Deduplicate(records)
		merged = order.New(flagPrimary, flagSecondary).Apply(merged)

		if err := catalog.Save(flagDedupeOutput, merged); err != nil {
			return err
		}

		logging.Info().
			Int("input", len(records)).
			Int("output", len(merged)).
			Int("duplicate_groups", len(groups)).
			Str("path", flagDedupeOutput).
			Msg("Deduplicated catalog")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(dedupeCmd)

	dedupeCmd.Flags().StringVar(&flagDedupeInput, "input", "", "catalog to deduplicate (JSON)")
	dedupeCmd.Flags().StringVar(&flagDedupeOutput, "output", "", "deduplicated catalog path")

	_ = dedupeCmd.MarkFlagRequired("input")
	_ = dedupeCmd.MarkFlagRequired("output")
}
