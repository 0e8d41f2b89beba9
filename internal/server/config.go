package server

import (
	"fmt"
	"time"
)

type Config struct {
	Addr string `yaml:"addr"`
	// Token, when set, must be passed as the token query parameter.
	Token             string        `yaml:"token"`
	BroadcastInterval time.Duration `yaml:"broadcast_interval"`
	WriteTimeout      time.Duration `yaml:"write_timeout"`
	ShutdownTimeout   time.Duration `yaml:"shutdown_timeout"`
	MaxMessageSize    int64         `yaml:"max_message_size"`
	SendBuffer        int           `yaml:"send_buffer"`
	// History is how many score and state events are replayed to new clients.
	History int `yaml:"history"`
	// StatsAddr serves the runtime stats viewer when set.
	StatsAddr string `yaml:"stats_addr"`
}

func DefaultConfig() Config {
	return Config{
		Addr:              "127.0.0.1:8080",
		BroadcastInterval: 16 * time.Millisecond,
		WriteTimeout:      5 * time.Second,
		ShutdownTimeout:   5 * time.Second,
		MaxMessageSize:    4096,
		SendBuffer:        64,
		History:           32,
	}
}

func (c Config) Validate() error {
	switch {
	case c.Addr == "":
		return fmt.Errorf("%w: addr is empty", ErrInvalidConfig)
	case c.BroadcastInterval <= 0:
		return fmt.Errorf("%w: broadcast_interval must be positive", ErrInvalidConfig)
	case c.WriteTimeout <= 0:
		return fmt.Errorf("%w: write_timeout must be positive", ErrInvalidConfig)
	case c.ShutdownTimeout <= 0:
		return fmt.Errorf("%w: shutdown_timeout must be positive", ErrInvalidConfig)
	case c.MaxMessageSize <= 0:
		return fmt.Errorf("%w: max_message_size must be positive", ErrInvalidConfig)
	case c.SendBuffer <= 0:
		return fmt.Errorf("%w: send_buffer must be positive", ErrInvalidConfig)
	case c.History < 0:
		return fmt.Errorf("%w: history must not be negative", ErrInvalidConfig)
	}
	return nil
}
