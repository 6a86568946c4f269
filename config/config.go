// Package config reads settings from the environment, optionally seeded by a .env file.
package config

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

type Config struct {
	// Postgres connection string
	DatabaseConnectionString string
	// Directory holding the <department>.html course description pages
	CatalogBaseUrl string
	// Optional YAML vocabulary; empty means the built-in department list
	VocabularyPath string
	LogLevel       string
	Workers        int
}

const defaultWorkers = 8

// Load reads .env files (missing files are fine) and then the environment.
func Load(envFiles ...string) (*Config, error) {
	_ = godotenv.Load(envFiles...)

	config := &Config{
		DatabaseConnectionString: os.Getenv("DATABASE_CONNECTION_STRING"),
		CatalogBaseUrl:           os.Getenv("CATALOG_BASE_URL"),
		VocabularyPath:           os.Getenv("VOCABULARY_PATH"),
		LogLevel:                 strings.ToLower(strings.TrimSpace(os.Getenv("LOG_LEVEL"))),
		Workers:                  defaultWorkers,
	}
	if config.LogLevel == "" {
		config.LogLevel = zerolog.LevelInfoValue
	}

	if workers := os.Getenv("WORKERS"); workers != "" {
		n, err := strconv.Atoi(workers)
		if err != nil || n < 1 {
			return nil, fmt.Errorf("invalid WORKERS %q", workers)
		}
		config.Workers = n
	}

	if _, err := zerolog.ParseLevel(config.LogLevel); err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}

	return config, nil
}

func (c *Config) RequireDatabase() error {
	if c.DatabaseConnectionString == "" {
		return fmt.Errorf("DATABASE_CONNECTION_STRING is required")
	}
	return nil
}

// NewLogger returns a timestamped logger writing to w at the given level.
func NewLogger(w io.Writer, level string) zerolog.Logger {
	parsed, err := zerolog.ParseLevel(level)
	if err != nil || parsed == zerolog.NoLevel {
		parsed = zerolog.InfoLevel
	}
	return zerolog.New(w).Level(parsed).With().Timestamp().Logger()
}
