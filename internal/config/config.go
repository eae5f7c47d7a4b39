// Package config reads horizon's environment configuration and builds the
// process logger from it.
package config

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/caarlos0/env/v11"
)

// Config is the environment-level configuration. CLI flags override it.
type Config struct {
	// DB is the sqlite evaluation log. Empty disables recording.
	DB string `env:"HORIZON_DB"`
	// Constants is a CUE constant set file or directory. Empty selects CODATA.
	Constants string     `env:"HORIZON_CONSTANTS"`
	LogLevel  slog.Level `env:"HORIZON_LOG_LEVEL" envDefault:"info"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load parses Config from the environment.
func Load() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Logger returns a text logger writing to w. verbose forces debug level.
func (c Config) Logger(w io.Writer, verbose bool) *slog.Logger {
	level := c.LogLevel
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
