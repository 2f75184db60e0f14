package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadAppConfig(t *testing.T) {
	t.Run("defaults port to 8080", func(t *testing.T) {
		t.Setenv("PORT", "")
		t.Setenv("DATABASE_URL", "postgres://localhost:5432/uni_counsellor")
		t.Setenv("GEMINI_API_KEY", "")

		cfg, err := LoadAppConfig()
		require.NoError(t, err)
		assert.Equal(t, 8080, cfg.Port)
		assert.Equal(t, "postgres://localhost:5432/uni_counsellor", cfg.DatabaseURL)
		assert.Empty(t, cfg.GeminiAPIKey)
	})

	t.Run("reads explicit values", func(t *testing.T) {
		t.Setenv("PORT", "9090")
		t.Setenv("DATABASE_URL", "postgres://localhost:5432/uni_counsellor")
		t.Setenv("GEMINI_API_KEY", "test-key")

		cfg, err := LoadAppConfig()
		require.NoError(t, err)
		assert.Equal(t, 9090, cfg.Port)
		assert.Equal(t, "test-key", cfg.GeminiAPIKey)
	})

	t.Run("invalid port", func(t *testing.T) {
		t.Setenv("PORT", "not-a-number")
		t.Setenv("DATABASE_URL", "postgres://localhost:5432/uni_counsellor")

		_, err := LoadAppConfig()
		assert.Error(t, err)
	})

	t.Run("missing database URL", func(t *testing.T) {
		t.Setenv("PORT", "")
		t.Setenv("DATABASE_URL", "")

		_, err := LoadAppConfig()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "DATABASE_URL")
	})
}
