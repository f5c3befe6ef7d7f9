package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/kelseyhightower/envconfig"
)

// Config holds the configuration for the studylist service.
// Environment variables are parsed from the STUDYLIST_ prefix,
// e.g. STUDYLIST_HTTP_PORT, STUDYLIST_DB_DRIVER.
type Config struct {
	// HTTP Configuration
	HTTPPort int `envconfig:"HTTP_PORT" default:"8080"`

	// Storage: sqlite for local runs, postgres for deployments.
	DBDriver    string `envconfig:"DB_DRIVER" default:"sqlite"`
	PostgresDSN string `envconfig:"POSTGRES_DSN" default:""`
	SQLitePath  string `envconfig:"SQLITE_PATH" default:""`

	// Auth: static accepts only the local dev token; identitytoolkit
	// verifies tokens against the Google identity provider.
	AuthMode       string `envconfig:"AUTH_MODE" default:"static"`
	FirebaseAPIKey string `envconfig:"FIREBASE_API_KEY" default:""`

	BootstrapTimeoutSeconds int `envconfig:"BOOTSTRAP_TIMEOUT_SECONDS" default:"30"`
}

// ResolveDefaults validates driver/auth selection and derives the local
// SQLite path when unset.
func (c *Config) ResolveDefaults() error {
	switch c.DBDriver {
	case "sqlite":
		if c.SQLitePath == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return fmt.Errorf("cannot derive sqlite path: %w", err)
			}
			c.SQLitePath = filepath.Join(home, ".studylist", "studylist.db")
		}
	case "postgres":
		if c.PostgresDSN == "" {
			return fmt.Errorf("STUDYLIST_POSTGRES_DSN is required when DB_DRIVER=postgres")
		}
	default:
		return fmt.Errorf("unsupported DB_DRIVER: %s", c.DBDriver)
	}

	switch c.AuthMode {
	case "static":
	case "identitytoolkit":
		if c.FirebaseAPIKey == "" {
			return fmt.Errorf("STUDYLIST_FIREBASE_API_KEY is required when AUTH_MODE=identitytoolkit")
		}
	default:
		return fmt.Errorf("unsupported AUTH_MODE: %s", c.AuthMode)
	}
	return nil
}

// New creates a Config by parsing STUDYLIST_-prefixed environment variables.
func New() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("STUDYLIST", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment variables: %w", err)
	}
	if err := cfg.ResolveDefaults(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// GetHTTPAddr returns the HTTP server address.
func (c *Config) GetHTTPAddr() string {
	return fmt.Sprintf(":%d", c.HTTPPort)
}
