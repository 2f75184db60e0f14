package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommandRegistersSubcommands(t *testing.T) {
	names := make(map[string]bool)
	for _, cmd := range rootCmd.Commands() {
		names[cmd.Name()] = true
	}

	assert.True(t, names["serve"], "serve command should be registered")
	assert.True(t, names["seed"], "seed command should be registered")
}

func TestSeedFlagDefaults(t *testing.T) {
	countries, err := seedCmd.Flags().GetStringSlice("countries")
	require.NoError(t, err)
	assert.Equal(t, defaultSeedCountries, countries)

	concurrency, err := seedCmd.Flags().GetInt("concurrency")
	require.NoError(t, err)
	assert.Equal(t, 4, concurrency)

	enrich, err := seedCmd.Flags().GetBool("enrich")
	require.NoError(t, err)
	assert.False(t, enrich)

	perCountry, err := seedCmd.Flags().GetInt("per-country")
	require.NoError(t, err)
	assert.Zero(t, perCountry)
}

func TestRunServe_MissingDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")

	err := runServe(serveCmd, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_URL")
}

func TestRunServe_MissingAPIKey(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/counsellor_test")
	t.Setenv("GEMINI_API_KEY", "")

	err := runServe(serveCmd, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GEMINI_API_KEY")
}
