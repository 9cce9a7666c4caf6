// Package config handles loading and validating runtime configuration for the
// scoring API. Values like the database URL and port are read from environment
// variables rather than hardcoded, so the same binary runs in development and
// production with nothing but different env vars.
package config

import (
	"os"

	// godotenv reads a .env file and loads its key=value pairs into the process
	// environment. Convenient in development; in production real env vars are
	// already set by the deployment platform and the .env file simply isn't there.
	"github.com/joho/godotenv"
)

// Config holds all runtime configuration values for the application.
type Config struct {
	Port           string // TCP port the HTTP server listens on (e.g. "8080")
	DatabaseURL    string // PostgreSQL connection string
	ClerkSecretKey string // Secret key for verifying Clerk authentication tokens
	ScoringPIN     string // Shared PIN authorizing kiosk score submissions without a user account
	Env            string // "development", "staging", or "production"
}

// Load reads configuration from environment variables and returns a populated
// Config. A missing .env file is fine — the error from godotenv.Load is
// intentionally discarded because production supplies real env vars.
func Load() *Config {
	_ = godotenv.Load()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	env := os.Getenv("ENV")
	if env == "" {
		env = "development"
	}

	// The PIN gates the kiosk scoring endpoints; default matches the dev seed.
	pin := os.Getenv("SCORING_PIN")
	if pin == "" {
		pin = "1234"
	}

	return &Config{
		Port:           port,
		DatabaseURL:    os.Getenv("DATABASE_URL"), // Required — the server fails to start without it
		ClerkSecretKey: os.Getenv("CLERK_SECRET_KEY"),
		ScoringPIN:     pin,
		Env:            env,
	}
}
