// Package config loads service configuration from environment variables.
package config

import (
	"errors"
	"os"
	"strconv"
	"time"
)

// ErrMissingJWTSecret is returned when JWT_SECRET is not set.
// Token verification must never run with an empty secret, so startup fails.
var ErrMissingJWTSecret = errors.New("JWT_SECRET is not set")

// Config holds process-wide configuration.
type Config struct {
	Port          string        // HTTP listen port
	JWTSecret     string        // token signing secret, required
	JWTTTL        time.Duration // token lifetime
	HashPoolSize  int           // concurrent bcrypt operations
	StatsCacheTTL time.Duration // task-stats cache lifetime
}

// Load reads configuration from environment variables, applying defaults.
// It returns ErrMissingJWTSecret when the signing secret is absent.
func Load() (Config, error) {
	cfg := Config{
		Port:          envOr("PORT", "8080"),
		JWTSecret:     os.Getenv("JWT_SECRET"),
		JWTTTL:        envDuration("JWT_TTL", 7*24*time.Hour),
		HashPoolSize:  envInt("HASH_POOL_SIZE", 4),
		StatsCacheTTL: envDuration("STATS_CACHE_TTL", 5*time.Minute),
	}
	if cfg.JWTSecret == "" {
		return Config{}, ErrMissingJWTSecret
	}
	return cfg, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}
