// Package config loads settings for the homeworlds binaries from the
// environment. Command-line flags bound with Bind override env values.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds settings shared by the CLI and the MCP server.
type Config struct {
	Openings string `env:"HOMEWORLDS_OPENINGS"  envDefault:"openings.yaml"`
	Color    bool   `env:"HOMEWORLDS_COLOR"     envDefault:"true"`
	LogLevel string `env:"HOMEWORLDS_LOG_LEVEL" envDefault:"info"`
	EventLog bool   `env:"HOMEWORLDS_EVENT_LOG" envDefault:"true"`
}

// ParseEnv loads configuration from environment variables into target.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load returns the Config described by the environment.
func Load() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// FlagSet is the subset of flag.FlagSet and pflag.FlagSet that Bind needs.
type FlagSet interface {
	StringVar(p *string, name string, value string, usage string)
	BoolVar(p *bool, name string, value bool, usage string)
}

// Bind registers flags that default to the current values of c.
func (c *Config) Bind(fs FlagSet) {
	fs.StringVar(&c.Openings, "openings", c.Openings, "path to openings YAML file")
	fs.BoolVar(&c.Color, "color", c.Color, "colorize console output")
	fs.StringVar(&c.LogLevel, "log-level", c.LogLevel, "diagnostic log level (debug, info, warn, error)")
	fs.BoolVar(&c.EventLog, "events", c.EventLog, "print game events as they happen")
}

// Level parses LogLevel.
func (c Config) Level() (zapcore.Level, error) {
	lvl, err := zapcore.ParseLevel(c.LogLevel)
	if err != nil {
		return zapcore.InfoLevel, fmt.Errorf("log level: %w", err)
	}
	return lvl, nil
}

// Logger builds the diagnostic logger. It writes JSON to stderr, leaving
// stdout to the MCP protocol.
func (c Config) Logger() (*zap.Logger, error) {
	lvl, err := c.Level()
	if err != nil {
		return nil, err
	}
	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(lvl)
	zc.Encoding = "json"
	zc.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	zc.OutputPaths = []string{"stderr"}
	zc.ErrorOutputPaths = []string{"stderr"}

	logger, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}
	return logger, nil
}
