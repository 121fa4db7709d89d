// Package config loads the server configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Auth modes for resolving the acting user of a request.
const (
	AuthModeParam = "param" // user_id query/body parameter
	AuthModeJWT   = "jwt"   // bearer token
)

// Config holds all server configuration.
type Config struct {
	Port int

	// DatabaseURL selects PostgreSQL when it has a postgres:// or
	// postgresql:// scheme. Otherwise DBPath is opened with SQLite.
	DatabaseURL string
	DBPath      string

	LogLevel  string
	LogFormat string

	AuthMode      string
	JWTSecret     string
	DefaultUserID int64

	CORSAllowedOrigins []string
	RateLimitRequests  int // 0 disables rate limiting
	RateLimitWindow    time.Duration

	SeedOnStart     bool
	ShutdownTimeout time.Duration
}

// UsePostgres reports whether DatabaseURL points at PostgreSQL.
func (c *Config) UsePostgres() bool {
	return strings.HasPrefix(c.DatabaseURL, "postgres://") ||
		strings.HasPrefix(c.DatabaseURL, "postgresql://")
}

// Load reads an optional .env file (the first envPath, or ./.env) and then
// the environment. A missing .env file is not an error.
func Load(envPath ...string) (*Config, error) {
	var err error
	if len(envPath) > 0 {
		err = godotenv.Load(envPath[0])
	} else {
		err = godotenv.Load()
	}
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("could not load .env file (path: %v): %w", envPath, err)
	}

	cfg := &Config{
		Port:               getEnvAsInt("PORT", 3000),
		DatabaseURL:        getEnv("DATABASE_URL", ""),
		DBPath:             getEnv("DB_PATH", "./data/holocron.db"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		LogFormat:          getEnv("LOG_FORMAT", "text"),
		AuthMode:           strings.ToLower(getEnv("AUTH_MODE", AuthModeParam)),
		JWTSecret:          getEnv("JWT_SECRET", ""),
		DefaultUserID:      int64(getEnvAsInt("DEFAULT_USER_ID", 1)),
		CORSAllowedOrigins: getEnvAsList("CORS_ALLOWED_ORIGINS", []string{"*"}),
		RateLimitRequests:  getEnvAsInt("RATE_LIMIT_REQUESTS", 100),
		RateLimitWindow:    getEnvAsDuration("RATE_LIMIT_WINDOW", time.Minute),
		SeedOnStart:        getEnvAsBool("SEED_ON_START", false),
		ShutdownTimeout:    getEnvAsDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks settings that cannot be defaulted.
func (c *Config) Validate() error {
	switch c.AuthMode {
	case AuthModeParam:
	case AuthModeJWT:
		if c.JWTSecret == "" {
			return fmt.Errorf("JWT_SECRET is required when AUTH_MODE=%s", AuthModeJWT)
		}
	default:
		return fmt.Errorf("unknown AUTH_MODE %q (want %q or %q)", c.AuthMode, AuthModeParam, AuthModeJWT)
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid PORT %d", c.Port)
	}
	if c.DefaultUserID <= 0 {
		return fmt.Errorf("invalid DEFAULT_USER_ID %d", c.DefaultUserID)
	}
	return nil
}

// getEnv reads an environment variable with a fallback.
func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}

	valueInt, err := strconv.Atoi(valueStr)
	if err != nil {
		slog.Warn("Environment variable is not an int, using default", "key", key, "value", valueStr, "default", defaultValue)
		return defaultValue
	}
	return valueInt
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	valBool, err := strconv.ParseBool(valStr)
	if err != nil {
		slog.Warn("Environment variable is not a bool, using default", "key", key, "value", valStr, "default", defaultValue)
		return defaultValue
	}
	return valBool
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	d, err := time.ParseDuration(valStr)
	if err != nil {
		slog.Warn("Environment variable is not a duration, using default", "key", key, "value", valStr, "default", defaultValue)
		return defaultValue
	}
	return d
}

// getEnvAsList splits a comma-separated variable, dropping empty entries.
func getEnvAsList(key string, defaultValue []string) []string {
	valStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(valStr, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
