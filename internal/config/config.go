// Package config provides environment-driven configuration for the
// counselling backend.
package config

import (
	"fmt"
	"os"
	"strconv"
)

// AppConfig holds the settings the serve and seed commands need.
type AppConfig struct {
	Port         int
	DatabaseURL  string
	GeminiAPIKey string
}

// LoadAppConfig reads configuration from environment variables.
// PORT defaults to 8080; DATABASE_URL is required. GEMINI_API_KEY is
// required by serve but not by seed, so it is validated by the caller.
func LoadAppConfig() (*AppConfig, error) {
	port := 8080
	if v := os.Getenv("PORT"); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid PORT: %v", err)
		}
		port = p
	}

	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required but not set")
	}

	return &AppConfig{
		Port:         port,
		DatabaseURL:  databaseURL,
		GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),
	}, nil
}
