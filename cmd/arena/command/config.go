package command

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/pixil98/go-arena/internal/driver"
	"github.com/pixil98/go-errors"
)

const maxTickInterval = time.Second

type Config struct {
	TickInterval string          `json:"tick_interval" env:"ARENA_TICK_INTERVAL"`
	LogLevel     string          `json:"log_level" env:"ARENA_LOG_LEVEL"`
	World        WorldConfig     `json:"world"`
	Nats         NatsConfig      `json:"nats"`
	Telemetry    TelemetryConfig `json:"telemetry"`
}

// applyEnv overlays any ARENA_* environment variables onto the loaded config.
func (c *Config) applyEnv() error {
	if err := env.Parse(c); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

func (c *Config) Validate() error {
	el := errors.NewErrorList()

	if c.TickInterval != "" {
		d, err := time.ParseDuration(c.TickInterval)
		if err != nil {
			el.Add(fmt.Errorf("parsing tick_interval: %w", err))
		} else if d <= 0 || d > maxTickInterval {
			el.Add(fmt.Errorf("tick_interval must be positive and at most %s", maxTickInterval))
		}
	}

	if c.LogLevel != "" {
		var lvl slog.Level
		if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
			el.Add(fmt.Errorf("parsing log_level: %w", err))
		}
	}

	el.Add(c.World.validate())
	el.Add(c.Nats.validate())

	return el.Err()
}

func (c *Config) tickInterval() time.Duration {
	d, err := time.ParseDuration(c.TickInterval)
	if err != nil || d <= 0 {
		return driver.DefaultTickLength
	}
	return d
}

func (c *Config) logLevel() slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return lvl
}
