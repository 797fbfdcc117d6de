// Package config provides environment-backed configuration for the
// collaborator adapters. The reconciliation engine itself takes no
// configuration; only the CLI and the place-lookup client read from here.
package config

import (
	"os"

	"github.com/spf13/viper"

	"github.com/tablemap/tablemap/pkg/errors"
)

// Environment variable names used by the collaborator adapters.
const (
	// PlacesAPIKeyVar holds the Google Places API key.
	PlacesAPIKeyVar = "GOOGLE_PLACES_API_KEY"
)

// GetString is a helper to get string values from Viper.
// It checks both OS environment variables and Viper configuration.
func GetString(key string) string {
	osValue := os.Getenv(key)
	viperValue := viper.GetString(key)

	// If Viper doesn't have it but OS does, return OS value.
	if viperValue == "" && osValue != "" {
		return osValue
	}
	return viperValue
}

// PlacesAPIKey returns the configured Places API key, or an error when
// it is required but unset.
func PlacesAPIKey() (string, error) {
	key := GetString(PlacesAPIKeyVar)
	if key == "" {
		return "", &errors.ConfigError{
			Component: "places",
			Message:   "environment variable " + PlacesAPIKeyVar + " not set",
			Err:       errors.ErrAPIKeyRequired,
		}
	}
	return key, nil
}
