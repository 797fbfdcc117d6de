package cmd

import (
	"github.com/spf13/cobra"

	"github.com/tablemap/tablemap/internal/sources"
	"github.com/tablemap/tablemap/pkg/catalog"
	"github.com/tablemap/tablemap/pkg/logging"
	"github.com/tablemap/tablemap/pkg/merge"
	"github.com/tablemap/tablemap/pkg/normalize"
	"github.com/tablemap/tablemap/pkg/order"
)

var (
	flagMergePrimaryFile   string
	flagMergeSecondaryFile string
	flagMergeOutput        string
)

// mergeCmd merges the two source lists without deduplication or
// enrichment, for inspecting the raw cross-source match.
var mergeCmd = &cobra.Command{
	Use:   "merge",
	Short: "Merge the secondary source list into the primary",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		primary, err := sources.NewFileSource(flagPrimary, flagMergePrimaryFile).Records(ctx)
		if err != nil {
			return err
		}
		secondary, err := sources.NewFileSource(flagSecondary, flagMergeSecondaryFile).Records(ctx)
		if err != nil {
			return err
		}

		merged := merge.NewListMerger(flagPrimary, flagSecondary).
			Merge(normalize.Records(primary), normalize.Records(secondary))
		merged = order.New(flagPrimary, flagSecondary).Apply(merged)

		if err := catalog.Save(flagMergeOutput, merged); err != nil {
			return err
		}

		logging.Info().
			Int("primary", len(primary)).
			Int("secondary", len(secondary)).
			Int("merged", len(merged)).
			Str("path", flagMergeOutput).
			Msg("Merged source lists")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(mergeCmd)

	mergeCmd.Flags().StringVar(&flagMergePrimaryFile, "primary-file", "", "primary source list (JSON)")
	mergeCmd.Flags().StringVar(&flagMergeSecondaryFile, "secondary-file", "", "secondary source list (JSON)")
	mergeCmd.Flags().StringVar(&flagMergeOutput, "output", "", "merged list path")

	_ = mergeCmd.MarkFlagRequired("primary-file")
	_ = mergeCmd.MarkFlagRequired("secondary-file")
	_ = mergeCmd.MarkFlagRequired("output")
}
