package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds the application configuration.
type Config struct {
	ServerPort    int
	DatabasePath  string
	JWTSecret     string
	TokenTTL      time.Duration
	RetentionDays int    // 0 disables message pruning
	RetentionCron string // standard cron expression for the pruner
	AllowedOrigin string
}

// Load loads configuration from environment variables or sets defaults.
// JWT_SECRET has no default: the signing key must be provided explicitly.
func Load() (*Config, error) {
	portStr := getEnv("PORT", "8080")
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, err
	}

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, fmt.Errorf("JWT_SECRET must be set")
	}

	ttlStr := getEnv("TOKEN_TTL_MINUTES", "60")
	ttlMinutes, err := strconv.Atoi(ttlStr)
	if err != nil || ttlMinutes <= 0 {
		return nil, fmt.Errorf("invalid TOKEN_TTL_MINUTES %q", ttlStr)
	}

	retentionStr := getEnv("RETENTION_DAYS", "0")
	retentionDays, err := strconv.Atoi(retentionStr)
	if err != nil || retentionDays < 0 {
		return nil, fmt.Errorf("invalid RETENTION_DAYS %q", retentionStr)
	}

	return &Config{
		ServerPort:    port,
		DatabasePath:  getEnv("DATABASE_PATH", "./chatrelay.db"),
		JWTSecret:     secret,
		TokenTTL:      time.Duration(ttlMinutes) * time.Minute,
		RetentionDays: retentionDays,
		RetentionCron: getEnv("RETENTION_CRON", "0 3 * * *"),
		AllowedOrigin: getEnv("ALLOWED_ORIGIN", "http://localhost:3000"),
	}, nil
}

// Helper to get an environment variable with a default value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
