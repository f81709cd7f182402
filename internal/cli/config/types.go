// Package config provides configuration management for the mulslot CLI.
//
// Values are layered from defaults, an optional mulslot.yaml file,
// MULSLOT_ environment variables and explicitly set command-line flags,
// in increasing order of precedence.
package config

import (
	"fmt"
	"log/slog"
	"runtime"
	"strings"

	"github.com/leapstack-labs/mulslot/pkg/core"
)

// Output formats accepted by the output key.
const (
	OutputAuto = "auto"
	OutputText = "text"
	OutputJSON = "json"
	OutputYAML = "yaml"
)

// Config holds all CLI configuration options.
type Config struct {
	Width       core.Width  `koanf:"width"`
	Output      string      `koanf:"output"`
	Verbose     bool        `koanf:"verbose"`
	LogLevel    string      `koanf:"log_level"`
	HistoryFile string      `koanf:"history_file"`
	Check       CheckConfig `koanf:"check"`
}

// CheckConfig configures the property sweep run by the check command.
type CheckConfig struct {
	Workers    int    `koanf:"workers"`
	Iterations int    `koanf:"iterations"`
	Seed       uint64 `koanf:"seed"`
}

// Default returns the configuration used when nothing overrides it.
func Default() *Config {
	return &Config{
		Width:       core.DefaultWidth,
		Output:      DefaultOutput,
		LogLevel:    DefaultLogLevel,
		HistoryFile: DefaultHistoryFile,
		Check: CheckConfig{
			Workers:    runtime.GOMAXPROCS(0),
			Iterations: DefaultCheckIterations,
			Seed:       DefaultCheckSeed,
		},
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if !c.Width.Valid() {
		return fmt.Errorf("width must be 32 or 64, got %d", int(c.Width))
	}
	switch c.Output {
	case OutputAuto, OutputText, OutputJSON, OutputYAML:
	default:
		return fmt.Errorf("unknown output format %q (want auto, text, json or yaml)", c.Output)
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	if c.Check.Workers <= 0 {
		return fmt.Errorf("check.workers must be positive, got %d", c.Check.Workers)
	}
	if c.Check.Iterations < 0 {
		return fmt.Errorf("check.iterations must not be negative, got %d", c.Check.Iterations)
	}
	return nil
}

// ParseLevel parses a log level name such as "debug" or "WARN".
func ParseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log_level %q: %w", s, err)
	}
	return level, nil
}
