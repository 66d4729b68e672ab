// Package config provides environment-driven configuration for trv.
package config

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/sirupsen/logrus"
)

// Graph sources.
const (
	SourceFile     = "file"
	SourcePostgres = "postgres"
)

// Secret wraps a sensitive string to prevent accidental logging or marshalling.
type Secret string

// String implements fmt.Stringer, returning a redacted placeholder.
func (s Secret) String() string { return "[REDACTED]" }

// GoString implements fmt.GoStringer, returning a redacted placeholder.
func (s Secret) GoString() string { return "[REDACTED]" }

// MarshalText implements encoding.TextMarshaler, returning a redacted placeholder.
func (s Secret) MarshalText() ([]byte, error) { return []byte("[REDACTED]"), nil }

// Value returns the underlying secret string.
func (s Secret) Value() string { return string(s) }

// Config holds all application configuration values.
type Config struct {
	GraphSource string
	GraphFile   string
	DatabaseURL Secret
	TenantID    string
	MaxDepth    int
	LogLevel    string
	LogFormat   string
}

// Load reads configuration from environment variables with sensible defaults.
func Load() (*Config, error) {
	cfg := &Config{
		GraphSource: envOrDefault("GRAPH_SOURCE", SourceFile),
		GraphFile:   envOrDefault("GRAPH_FILE", ""),
		DatabaseURL: Secret(envOrDefault("DATABASE_URL", "")),
		TenantID:    envOrDefault("TENANT_ID", ""),
		LogLevel:    envOrDefault("LOG_LEVEL", "info"),
		LogFormat:   envOrDefault("LOG_FORMAT", "text"),
	}

	maxDepth, err := strconv.Atoi(envOrDefault("MAX_DEPTH", "8"))
	if err != nil || maxDepth < 1 || maxDepth > 64 {
		return nil, fmt.Errorf("MAX_DEPTH must be an integer between 1 and 64")
	}
	cfg.MaxDepth = maxDepth

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}

// NewLogger builds a logrus logger writing to out at the configured level and format.
func (c *Config) NewLogger(out io.Writer) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(out)

	if level, err := logrus.ParseLevel(c.LogLevel); err == nil {
		log.SetLevel(level)
	}

	if c.LogFormat == "json" {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	}

	return log
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return fallback
}
