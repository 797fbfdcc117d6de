// Package cmd provides the main command structure for the tablemap CLI.
package cmd

import (
	"context"
	"fmt"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/tablemap/tablemap/pkg/logging"
)

// Global flags shared across commands.
var (
	flagPrimary   string
	flagSecondary string
	flagLogLevel  string
	flagJSONLogs  bool
)

// rootCmd represents the base command.
var rootCmd = &cobra.Command{
	Use:   "tablemap",
	Short: "Reconcile restaurant lists into one canonical catalog",
	Long: `Tablemap merges independently gathered restaurant lists into a single
canonical, deduplicated, deterministically ordered catalog.

Records from a primary and a secondary editorial source are matched by
normalized name and address, merged with field-level precedence rules,
optionally enriched through the Google Places API, and deduplicated by
place identity.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		// Mirror the scrapers' environment conventions.
		_ = godotenv.Load(".env.local")
		_ = godotenv.Load()
		viper.AutomaticEnv()

		level, err := zerolog.ParseLevel(flagLogLevel)
		if err != nil {
			return fmt.Errorf("invalid log level %q: %w", flagLogLevel, err)
		}
		zerolog.SetGlobalLevel(level)
		if flagJSONLogs {
			logging.SetDefault(logging.NewJSON(cmd.ErrOrStderr()))
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagPrimary, "primary", "NYT", "primary source tag")
	rootCmd.PersistentFlags().StringVar(&flagSecondary, "secondary", "NYM", "secondary source tag")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "log level (trace, debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&flagJSONLogs, "json-logs", false, "emit structured JSON logs")
}

// Execute runs the root command with version info attached.
func Execute(ctx context.Context, version, commit, date string) error {
	rootCmd.Version = fmt.Sprintf("%s (commit %s, built %s)", version, commit, date)
	return rootCmd.ExecuteContext(ctx)
}
