// Package config loads the server's YAML configuration.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/zeusync/volley/internal/core/controller"
	"github.com/zeusync/volley/internal/core/game"
	"github.com/zeusync/volley/internal/core/observability/log"
	"github.com/zeusync/volley/internal/server"
	"gopkg.in/yaml.v3"
)

var ErrInvalidConfig = errors.New("invalid configuration")

type Config struct {
	Game     game.Config       `yaml:"game"`
	Opponent controller.Config `yaml:"opponent"`
	Server   server.Config     `yaml:"server"`
	Log      LogConfig         `yaml:"log"`
	Sentry   SentryConfig      `yaml:"sentry"`
}

type LogConfig struct {
	Level string `yaml:"level"`
	// Encoding is "json" or "console".
	Encoding    string `yaml:"encoding"`
	Development bool   `yaml:"development"`
}

// SentryConfig enables panic reporting when DSN is set.
type SentryConfig struct {
	DSN         string `yaml:"dsn"`
	Environment string `yaml:"environment"`
}

func Default() Config {
	return Config{
		Game:     game.DefaultConfig(),
		Opponent: controller.DefaultConfig(),
		Server:   server.DefaultConfig(),
		Log: LogConfig{
			Level:    "info",
			Encoding: "json",
		},
	}
}

// Load decodes YAML from r over the defaults and validates the result.
// Unknown keys are rejected. An empty document yields the defaults.
func Load(r io.Reader) (Config, error) {
	cfg := Default()

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadFile reads the configuration at path.
func LoadFile(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, err
	}
	defer func() { _ = f.Close() }()

	return Load(f)
}

func (c Config) Validate() error {
	if err := c.Game.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if err := c.Server.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if c.Opponent.Enabled {
		if err := c.Opponent.Validate(); err != nil {
			return fmt.Errorf("%w: opponent: %w", ErrInvalidConfig, err)
		}
	}
	if _, err := c.Log.Build(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

// Build converts the section into a logger configuration.
func (l LogConfig) Build() (log.Config, error) {
	level, err := log.ParseLevel(l.Level)
	if err != nil {
		return log.Config{}, err
	}
	switch l.Encoding {
	case "", "json", "console":
	default:
		return log.Config{}, fmt.Errorf("unknown log encoding %q", l.Encoding)
	}
	return log.Config{
		Level:       level,
		Encoding:    l.Encoding,
		Development: l.Development,
	}, nil
}
