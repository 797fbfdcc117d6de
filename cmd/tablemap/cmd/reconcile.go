package cmd

import (
	"github.com/spf13/cobra"

	"github.com/tablemap/tablemap/internal/config"
	"github.com/tablemap/tablemap/internal/places"
	"github.com/tablemap/tablemap/internal/sources"
	"github.com/tablemap/tablemap/pkg/catalog"
	"github.com/tablemap/tablemap/pkg/clean"
	"github.com/tablemap/tablemap/pkg/logging"
	"github.com/tablemap/tablemap/pkg/reconcile"
)

var (
	flagPrimaryFile   string
	flagSecondaryFile string
	flagOutput        string
	flagYAMLOutput    string
	flagEnrich        bool
	flagClean         bool
)

// reconcileCmd runs the full pipeline: merge, optional enrichment,
// dedupe, order, save.
var reconcileCmd = &cobra.Command{
	Use:   "reconcile",
	Short: "Merge source lists into the canonical catalog",
	Example: `  tablemap reconcile --primary-file data/nyt.json --secondary-file data/nym.json \
    --output public/data/restaurants.json
  tablemap reconcile --primary-file data/nyt.json --secondary-file data/nym.json \
    --output restaurants.json --enrich --clean`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		logger := logging.Default()
		ctx = logging.WithLogger(ctx, logger)

		primary, err := sources.NewFileSource(flagPrimary, flagPrimaryFile).Records(ctx)
		if err != nil {
			return err
		}
		secondary, err := sources.NewFileSource(flagSecondary, flagSecondaryFile).Records(ctx)
		if err != nil {
			return err
		}

		opts := []reconcile.Option{
			reconcile.WithSources(flagPrimary, flagSecondary),
		}
		if flagEnrich {
			apiKey, err := config.PlacesAPIKey()
			if err != nil {
				return err
			}
			opts = append(opts, reconcile.WithEnricher(places.NewClient(apiKey)))
		}

		reconciler, err := reconcile.New(opts...)
		if err != nil {
			return err
		}

		result, err := reconciler.Run(ctx, primary, secondary)
		if err != nil {
			return err
		}

		records := result.Records
		if flagClean {
			records = clean.Records(records)
		}

		if err := catalog.Save(flagOutput, records); err != nil {
			return err
		}
		if flagYAMLOutput != "" {
			if err := catalog.SaveYAML(flagYAMLOutput, records); err != nil {
				return err
			}
		}

		logger.Info().
			Str("output", flagOutput).
			Dur("duration", result.Duration).
			Msg(result.Summary())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(reconcileCmd)

	reconcileCmd.Flags().StringVar(&flagPrimaryFile, "primary-file", "", "primary source list (JSON)")
	reconcileCmd.Flags().StringVar(&flagSecondaryFile, "secondary-file", "", "secondary source list (JSON)")
	reconcileCmd.Flags().StringVar(&flagOutput, "output", "restaurants.json", "output catalog path")
	reconcileCmd.Flags().StringVar(&flagYAMLOutput, "yaml-output", "", "optional YAML export path")
	reconcileCmd.Flags().BoolVar(&flagEnrich, "enrich", false, "enrich records through the Places API")
	reconcileCmd.Flags().BoolVar(&flagClean, "clean", false, "clean display fields after reconciliation")

	_ = reconcileCmd.MarkFlagRequired("primary-file")
	_ = reconcileCmd.MarkFlagRequired("secondary-file")
}
