// Package config loads engine configuration from LUMEN_* environment
// variables.
package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all engine configuration.
type Config struct {
	Loader  LoaderConfig
	Parser  ParserConfig
	Logging LogConfig
}

// LoaderConfig holds transport configuration.
type LoaderConfig struct {
	Timeout           time.Duration `envconfig:"LOADER_TIMEOUT" default:"30s"`
	RetryMax          int           `envconfig:"LOADER_RETRY_MAX" default:"3"`
	RetryWaitMin      time.Duration `envconfig:"LOADER_RETRY_WAIT_MIN" default:"1s"`
	RetryWaitMax      time.Duration `envconfig:"LOADER_RETRY_WAIT_MAX" default:"30s"`
	RequestsPerSecond float64       `envconfig:"LOADER_RPS" default:"0"`
	UserAgent         string        `envconfig:"LOADER_USER_AGENT" default:"Lumen/1.0 (headless)"`
}

// ParserConfig holds parse-engine configuration.
type ParserConfig struct {
	Sanitize bool `envconfig:"PARSER_SANITIZE" default:"false"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"LOG_LEVEL" default:"info"`
	Development bool   `envconfig:"LOG_DEV" default:"false"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("LUMEN", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return &cfg, nil
}

// LoadOrDefault loads configuration from the environment or returns
// defaults.
func LoadOrDefault() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		Loader: LoaderConfig{
			Timeout:      30 * time.Second,
			RetryMax:     3,
			RetryWaitMin: time.Second,
			RetryWaitMax: 30 * time.Second,
			UserAgent:    "Lumen/1.0 (headless)",
		},
		Logging: LogConfig{
			Level:       "info",
			Development: false,
		},
	}
}
