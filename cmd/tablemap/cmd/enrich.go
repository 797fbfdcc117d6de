package cmd

import (
	"github.com/spf13/cobra"

	"github.com/tablemap/tablemap/internal/config"
	"github.com/tablemap/tablemap/internal/places"
	"github.com/tablemap/tablemap/pkg/catalog"
	"github.com/tablemap/tablemap/pkg/logging"
)

var (
	flagEnrichInput  string
	flagEnrichOutput string
	flagEnrichLimit  int
)

// enrichCmd enriches an existing catalog file through the Places API.
// Lookups run sequentially and rate limited; a failed lookup leaves the
// record untouched.
var enrichCmd = &cobra.Command{
	Use:   "enrich",
	Short: "Enrich catalog records through the Places API",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		apiKey, err := config.PlacesAPIKey()
		if err != nil {
			return err
		}
		client := places.NewClient(apiKey)

		records, err := catalog.Load(flagEnrichInput)
		if err != nil {
			return err
		}

		enriched := 0
		for i := range records {
			if flagEnrichLimit > 0 && enriched >= flagEnrichLimit {
				break
			}
			result, err := client.Enrich(ctx, records[i])
			if err != nil {
				logging.Warn().
					Err(err).
					Str("name", records[i].Name).
					Msg("Enrichment unavailable; record passed through")
				continue
			}
			if result.Applied {
				records[i] = result.Record
				enriched++
			}
		}

		if err := catalog.Save(flagEnrichOutput, records); err != nil {
			return err
		}

		logging.Info().
			Int("records", len(records)).
			Int("enriched", enriched).
			Str("path", flagEnrichOutput).
			Msg("Enriched catalog")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(enrichCmd)

	enrichCmd.Flags().StringVar(&flagEnrichInput, "input", "", "catalog to enrich (JSON)")
	enrichCmd.Flags().StringVar(&flagEnrichOutput, "output", "", "enriched catalog path")
	enrichCmd.Flags().IntVar(&flagEnrichLimit, "limit", 0, "max lookups this run (0 = unlimited)")

	_ = enrichCmd.MarkFlagRequired("input")
	_ = enrichCmd.MarkFlagRequired("output")
}
