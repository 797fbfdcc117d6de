package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tablemap/tablemap/pkg/errors"
)

func TestPlacesAPIKeyFromEnvironment(t *testing.T) {
	t.Setenv(PlacesAPIKeyVar, "env-key")

	key, err := PlacesAPIKey()
	require.NoError(t, err)
	assert.Equal(t, "env-key", key)
}

func TestPlacesAPIKeyMissing(t *testing.T) {
	t.Setenv(PlacesAPIKeyVar, "")

	_, err := PlacesAPIKey()
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrAPIKeyRequired))

	var cfgErr *errors.ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "places", cfgErr.Component)
}
