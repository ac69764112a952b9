// Package logger builds the zerolog logger used by the command line.
package logger

import (
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const (
	FormatConsole = "console"
	FormatPretty  = "pretty"
	FormatJSON    = "json"
)

// Config contains logging configuration.
type Config struct {
	Level     string `mapstructure:"log_level" validate:"oneof=trace debug info warn error fatal panic disabled"`
	Format    string `mapstructure:"log_format" validate:"oneof=console pretty json"`
	NoColor   bool   `mapstructure:"log_no_color"`
	Timestamp bool   `mapstructure:"log_timestamp"`
}

// ApplyDefaults fills the empty fields of the configuration.
func (c *Config) ApplyDefaults() {
	if c.Level == "" {
		c.Level = "info"
	}
	if c.Format == "" {
		c.Format = FormatConsole
	}
}

// New creates a logger writing to output.
// An unknown level falls back to info.
func New(cfg Config, output io.Writer) zerolog.Logger {
	cfg.ApplyDefaults()

	level, err := zerolog.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil {
		level = zerolog.InfoLevel
	}

	var zl zerolog.Logger
	switch strings.ToLower(cfg.Format) {
	case FormatConsole, FormatPretty:
		zl = zerolog.New(zerolog.ConsoleWriter{
			Out:        output,
			NoColor:    cfg.NoColor,
			TimeFormat: time.TimeOnly,
		})
	default:
		zl = zerolog.New(output)
	}

	if cfg.Timestamp {
		zl = zl.With().Timestamp().Logger()
	}

	return zl.Level(level)
}
