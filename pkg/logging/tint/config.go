package tint

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/Vilsol/mlbox/pkg/config"
	"github.com/knadh/koanf/v2"
	"github.com/lmittmann/tint"
	"github.com/samber/oops"
)

// Config represents configuration for Tint [Module]
type Config struct {
	// Instance name (determines config path, cannot come from config file)
	Name string `koanf:"-"`

	// Writer receives formatted log lines.
	Writer io.Writer `code_only:"WithWriter" koanf:"-"`

	// Level is the minimum level written by the handler.
	Level string `enum:"debug,info,warn,error" koanf:"level"`

	// TimeFormat is the layout used for timestamps.
	TimeFormat string `koanf:"time_format"`

	// NoColor disables ANSI colors.
	NoColor bool `koanf:"no_color"`

	// AddSource includes the caller file and line.
	AddSource bool `koanf:"add_source"`
}

// NewDefaultConfig returns default configuration
func NewDefaultConfig() Config {
	return Config{
		Name:       config.DefaultInstanceName,
		Writer:     os.Stderr,
		Level:      "info",
		TimeFormat: time.DateTime,
		NoColor:    false,
		AddSource:  false,
	}
}

// NewConfig returns configuration with provided options based on defaults.
func NewConfig(options ...Option) Config {
	cfg := NewDefaultConfig()
	for _, option := range options {
		option(&cfg)
	}
	return cfg
}

// LoadFromKoanf loads configuration from koanf instance at the given path.
func (c *Config) LoadFromKoanf(k *koanf.Koanf, path string) error {
	return oops.Wrapf(k.Unmarshal(path, c), "failed to load config from koanf at path %s", path)
}

// ParseLevel parses the string level into slog.Level. Unknown values mean info.
func (c *Config) ParseLevel() slog.Level {
	switch strings.ToLower(c.Level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// TintOptions returns tint.Options with config values applied.
func (c *Config) TintOptions() *tint.Options {
	return &tint.Options{
		AddSource:  c.AddSource,
		Level:      c.ParseLevel(),
		TimeFormat: c.TimeFormat,
		NoColor:    c.NoColor,
	}
}

// NewHandler creates a new tint handler with config values applied.
func (c *Config) NewHandler() slog.Handler { //nolint:ireturn
	return tint.NewHandler(c.Writer, c.TintOptions())
}

// Option configures the Module.
type Option func(m *Config)

// WithName sets the instance name for this module.
func WithName(name string) Option {
	return func(m *Config) { m.Name = name }
}

// WithWriter sets the output writer (code-only, cannot be configured via files).
func WithWriter(writer io.Writer) Option {
	return func(m *Config) { m.Writer = writer }
}

// WithLevel sets the minimum level.
func WithLevel(level string) Option {
	return func(m *Config) { m.Level = level }
}

// WithNoColor disables colored output.
func WithNoColor() Option {
	return func(m *Config) { m.NoColor = true }
}
