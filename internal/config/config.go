package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/emiliopalmerini/timedash/internal/adapters/otel"
)

const envPrefix = "TIMEDASH"

// Source kinds accepted in TIMEDASH_SOURCE.
const (
	SourceEmbedded = "embedded"
	SourceFile     = "file"
	SourceHTTP     = "http"
	SourceTurso    = "turso"
)

// Database holds Turso database configuration.
type Database struct {
	URL       string `envconfig:"URL"`
	AuthToken string `envconfig:"AUTH_TOKEN"`
}

// Config is the process configuration, read from TIMEDASH_* variables.
type Config struct {
	Source   string      `envconfig:"SOURCE" default:"embedded"`
	DataFile string      `envconfig:"DATA_FILE" default:"data.json"`
	DataURL  string      `envconfig:"DATA_URL"`
	Port     int         `envconfig:"PORT" default:"8080"`
	LogLevel string      `envconfig:"LOG_LEVEL" default:"info"`
	Database Database    `envconfig:"DATABASE"`
	OTel     otel.Config `envconfig:"OTEL"`
}

// Load reads an optional .env file, then the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	var cfg Config
	if err := envconfig.Process(envPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("process environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks that the selected source has what it needs.
func (c *Config) Validate() error {
	switch c.Source {
	case SourceEmbedded:
	case SourceFile:
		if c.DataFile == "" {
			return fmt.Errorf("%s_DATA_FILE is required for the file source", envPrefix)
		}
	case SourceHTTP:
		if c.DataURL == "" {
			return fmt.Errorf("%s_DATA_URL is required for the http source", envPrefix)
		}
	case SourceTurso:
		if c.Database.URL == "" {
			return fmt.Errorf("%s_DATABASE_URL is required for the turso source", envPrefix)
		}
	default:
		return fmt.Errorf("unknown source %q", c.Source)
	}
	return nil
}
