package config

import (
	"fmt"
	"net/url"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

func (c *Config) validate() error {
	if err := c.validateSourceName(); err != nil {
		return err
	}

	if err := c.validateDatabase(); err != nil {
		return err
	}

	if err := c.validateTenant(); err != nil {
		return err
	}

	if err := c.validateLogging(); err != nil {
		return err
	}

	return nil
}

// RequireSource checks that the selected graph source has everything it
// needs. Callers run it after applying flag overrides.
func (c *Config) RequireSource() error {
	if err := c.validate(); err != nil {
		return err
	}

	switch c.GraphSource {
	case SourceFile:
		if c.GraphFile == "" {
			return fmt.Errorf("GRAPH_FILE is required when GRAPH_SOURCE is file")
		}
	case SourcePostgres:
		if c.DatabaseURL.Value() == "" {
			return fmt.Errorf("DATABASE_URL is required when GRAPH_SOURCE is postgres")
		}

		if c.TenantID == "" {
			return fmt.Errorf("TENANT_ID is required when GRAPH_SOURCE is postgres")
		}
	}

	return nil
}

func (c *Config) validateSourceName() error {
	if c.GraphSource != SourceFile && c.GraphSource != SourcePostgres {
		return fmt.Errorf("GRAPH_SOURCE must be 'file' or 'postgres', got %q", c.GraphSource)
	}

	return nil
}

func (c *Config) validateDatabase() error {
	if c.DatabaseURL.Value() == "" {
		return nil
	}

	dbURL, err := url.Parse(c.DatabaseURL.Value())
	if err != nil {
		return fmt.Errorf("DATABASE_URL is not a valid URL: %w", err)
	}

	if dbURL.Scheme != "postgres" && dbURL.Scheme != "postgresql" {
		return fmt.Errorf("DATABASE_URL scheme must be postgres:// or postgresql://")
	}

	if dbURL.Hostname() == "" {
		return fmt.Errorf("DATABASE_URL must include a host")
	}

	dbHost := dbURL.Hostname()
	if dbHost != "localhost" && dbHost != "127.0.0.1" && dbHost != "::1" {
		if dbURL.Query().Get("sslmode") == "disable" {
			return fmt.Errorf("DATABASE_URL sslmode=disable is not allowed for non-local host %q", dbHost)
		}
	}

	return nil
}

func (c *Config) validateTenant() error {
	if c.TenantID == "" {
		return nil
	}

	if _, err := uuid.Parse(c.TenantID); err != nil {
		return fmt.Errorf("TENANT_ID must be a UUID: %w", err)
	}

	return nil
}

func (c *Config) validateLogging() error {
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("LOG_LEVEL is invalid: %w", err)
	}

	if c.LogFormat != "text" && c.LogFormat != "json" {
		return fmt.Errorf("LOG_FORMAT must be 'text' or 'json', got %q", c.LogFormat)
	}

	return nil
}
