// Package config loads the command line configuration.
//
// Values come, by decreasing priority, from command line flags, RANGLER_ prefixed
// environment variables (a .env file may provide them), an optional YAML config file and
// built-in defaults. Flags are only read before the first pipeline keyword.
package config

import (
	"fmt"
	"io"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/askiada/rangler/internal/logger"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "RANGLER"

const (
	keyConfig           = "config"
	keyEnvFile          = "env_file"
	keyReadBufferSize   = "read_buffer_size"
	keyWriteBufferSize  = "write_buffer_size"
	keyProgressInterval = "progress_interval"
	keyLogLevel         = "log_level"
	keyLogFormat        = "log_format"
	keyLogNoColor       = "log_no_color"
	keyLogTimestamp     = "log_timestamp"
	keyMetricsAddr      = "metrics_addr"
	keyDrawFile         = "draw_file"
	keyMeasure          = "measure"
)

// ErrHelp is returned by Load when the help flag is set.
var ErrHelp = pflag.ErrHelp

// Config is the command line configuration.
type Config struct {
	ReadBufferSize   int    `mapstructure:"read_buffer_size" validate:"gt=0"`
	WriteBufferSize  int    `mapstructure:"write_buffer_size" validate:"gt=0"`
	ProgressInterval int64  `mapstructure:"progress_interval" validate:"gt=0"`
	MetricsAddr      string `mapstructure:"metrics_addr" validate:"omitempty,hostname_port"`
	DrawFile         string `mapstructure:"draw_file"`
	Measure          bool   `mapstructure:"measure"`

	Log logger.Config `mapstructure:",squash"`
}

type flagDef struct {
	key   string
	name  string
	value any
	usage string
}

var flagDefs = []flagDef{
	{keyConfig, "config", "", "YAML config file"},
	{keyEnvFile, "env-file", ".env", "file of environment variables loaded when it exists"},
	{keyReadBufferSize, "read-buffer-size", 1_000_000, "input buffer size in bytes"},
	{keyWriteBufferSize, "write-buffer-size", 1_000_000, "output buffer size in bytes"},
	{keyProgressInterval, "progress-interval", int64(256_000), "bytes read between two progress reports and output flushes"},
	{keyLogLevel, "log-level", "info", "log level (trace, debug, info, warn, error)"},
	{keyLogFormat, "log-format", logger.FormatConsole, "log format (console, pretty, json)"},
	{keyLogNoColor, "log-no-color", false, "disable colors in console logs"},
	{keyLogTimestamp, "log-timestamp", true, "add a timestamp to every log line"},
	{keyMetricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address, for instance :9090"},
	{keyDrawFile, "draw-file", "", "write the pipeline as a Graphviz DOT file"},
	{keyMeasure, "measure", false, "measure every step and log the result"},
}

func newFlagSet() *pflag.FlagSet {
	fs := pflag.NewFlagSet("rangler", pflag.ContinueOnError)
	fs.SetInterspersed(false)
	fs.SetOutput(io.Discard)
	fs.Usage = func() {}

	for _, def := range flagDefs {
		switch value := def.value.(type) {
		case string:
			fs.String(def.name, value, def.usage)
		case int:
			fs.Int(def.name, value, def.usage)
		case int64:
			fs.Int64(def.name, value, def.usage)
		case bool:
			fs.Bool(def.name, value, def.usage)
		default:
			panic(fmt.Sprintf("unsupported flag type %T for %s", value, def.name))
		}
	}

	return fs
}

// FlagUsages describes the command line flags.
func FlagUsages() string {
	return newFlagSet().FlagUsages()
}

// Load parses args and returns the configuration along with the remaining arguments, which
// are the pipeline tokens.
func Load(args []string) (*Config, []string, error) {
	fs := newFlagSet()

	err := fs.Parse(args)
	if err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil, nil, ErrHelp
		}

		return nil, nil, errors.Wrap(err, "unable to parse flags")
	}

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	for _, def := range flagDefs {
		v.SetDefault(def.key, def.value)

		err = v.BindPFlag(def.key, fs.Lookup(def.name))
		if err != nil {
			return nil, nil, errors.Wrapf(err, "unable to bind flag %s", def.name)
		}
	}

	err = loadEnvFile(v.GetString(keyEnvFile))
	if err != nil {
		return nil, nil, err
	}

	if file := v.GetString(keyConfig); file != "" {
		v.SetConfigFile(file)

		err = v.ReadInConfig()
		if err != nil {
			return nil, nil, errors.Wrapf(err, "unable to read config file %s", file)
		}
	}

	cfg := &Config{}

	err = v.Unmarshal(cfg)
	if err != nil {
		return nil, nil, errors.Wrap(err, "unable to decode configuration")
	}

	err = validator.New().Struct(cfg)
	if err != nil {
		return nil, nil, errors.Wrap(err, "invalid configuration")
	}

	return cfg, fs.Args(), nil
}

// loadEnvFile exports the variables of path that are not already set. A missing file is not
// an error.
func loadEnvFile(path string) error {
	if path == "" {
		return nil
	}

	if _, err := os.Stat(path); err != nil {
		return nil //nolint:nilerr
	}

	err := godotenv.Load(path)
	if err != nil {
		return errors.Wrapf(err, "unable to load env file %s", path)
	}

	return nil
}
