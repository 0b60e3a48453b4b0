// Package config loads and validates application configuration from environment variables.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds all configuration values for the API server.
// Values are populated by Load from environment variables.
type Config struct {
	// Port is the TCP port the HTTP server listens on. Defaults to "8080".
	Port string

	// DatabaseURL is the Postgres connection string. Required.
	DatabaseURL string

	// LogLevel controls the minimum log level. Defaults to "info".
	// Valid values: debug, info, warn, error.
	LogLevel string

	// CORSOrigins is the list of origins the SPA is served from.
	// Defaults to ["http://localhost:5173"].
	CORSOrigins []string

	// RedisURL enables the activity cache when non-empty.
	RedisURL string

	// CacheTTL bounds how long a cached activity record is served. Defaults to 5m.
	CacheTTL time.Duration

	// RateLimit is the number of requests allowed per RateLimitWindow per client IP.
	// Zero disables rate limiting.
	RateLimit       int
	RateLimitWindow time.Duration

	// MaxBodyBytes caps request body size. Defaults to 1 MiB.
	MaxBodyBytes int64

	// MigrateOnStart applies pending goose migrations before serving. Defaults to true.
	MigrateOnStart bool
}

// environment mirrors Config with the env tags caarlos0/env reads.
type environment struct {
	Port            string        `env:"PORT" envDefault:"8080"`
	DatabaseURL     string        `env:"DATABASE_URL"`
	LogLevel        string        `env:"LOG_LEVEL" envDefault:"info"`
	CORSOrigins     string        `env:"CORS_ORIGINS" envDefault:"http://localhost:5173"`
	RedisURL        string        `env:"REDIS_URL"`
	CacheTTL        time.Duration `env:"CACHE_TTL" envDefault:"5m"`
	RateLimit       int           `env:"RATE_LIMIT" envDefault:"100"`
	RateLimitWindow time.Duration `env:"RATE_LIMIT_WINDOW" envDefault:"1m"`
	MaxBodyBytes    int64         `env:"MAX_BODY_BYTES" envDefault:"1048576"`
	MigrateOnStart  bool          `env:"MIGRATE_ON_START" envDefault:"true"`
}

// Load reads configuration from environment variables and returns a Config.
// Returns an error listing any required variables that are not set.
func Load() (Config, error) {
	var e environment
	if err := env.Parse(&e); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}

	var missing []string
	if e.DatabaseURL == "" {
		missing = append(missing, "DATABASE_URL")
	}
	if len(missing) > 0 {
		return Config{}, fmt.Errorf("required environment variables not set: %s", strings.Join(missing, ", "))
	}

	if e.RateLimit < 0 {
		return Config{}, fmt.Errorf("RATE_LIMIT must be >= 0, got %d", e.RateLimit)
	}
	if e.MaxBodyBytes <= 0 {
		return Config{}, fmt.Errorf("MAX_BODY_BYTES must be > 0, got %d", e.MaxBodyBytes)
	}

	return Config{
		Port:            e.Port,
		DatabaseURL:     e.DatabaseURL,
		LogLevel:        e.LogLevel,
		CORSOrigins:     splitCSV(e.CORSOrigins),
		RedisURL:        e.RedisURL,
		CacheTTL:        e.CacheTTL,
		RateLimit:       e.RateLimit,
		RateLimitWindow: e.RateLimitWindow,
		MaxBodyBytes:    e.MaxBodyBytes,
		MigrateOnStart:  e.MigrateOnStart,
	}, nil
}

// splitCSV splits a comma-separated string into a trimmed slice, ignoring empty entries.
func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}
