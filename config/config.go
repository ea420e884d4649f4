// Package config loads runtime configuration from the environment,
// with an optional .env file for local development.
package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	// HTTP server
	Port string

	// SQLite database path; ":memory:" for ephemeral runs
	DatabasePath string

	// Allowed CORS origins
	CORSOrigins []string
}

// Load reads configuration from the environment. A .env file in the
// working directory is applied first if present; real environment
// variables win over .env entries.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Port:         getEnv("PORT", "8080"),
		DatabasePath: getEnv("DATABASE_PATH", "goals.db"),
		CORSOrigins:  splitList(getEnv("CORS_ORIGINS", "http://localhost:5173,http://localhost:8080")),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
