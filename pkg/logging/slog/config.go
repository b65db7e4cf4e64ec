package slog

import (
	"log/slog"
	"strings"

	"github.com/Vilsol/mlbox/pkg/config"
	"github.com/knadh/koanf/v2"
	"github.com/samber/oops"
)

// Config represents configuration for slog [Module]
type Config struct {
	// Instance name
	Name string `koanf:"-"`

	// Level is the default minimum level for packages without an override.
	Level string `enum:"debug,info,warn,error" koanf:"level"`

	// Levels maps package path prefixes to their minimum level,
	// e.g. {"github.com/Vilsol/mlbox/pkg/scaffold": "warn"}.
	Levels map[string]string `koanf:"levels"`

	// GlobalDefault also installs the logger as slog.Default.
	GlobalDefault bool `koanf:"global_default"`
}

// NewDefaultConfig returns default configuration
func NewDefaultConfig() Config {
	return Config{
		Name:          config.DefaultInstanceName,
		Level:         "debug",
		GlobalDefault: false,
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

// DefaultLevel returns the parsed default level.
func (c *Config) DefaultLevel() slog.Level {
	return parseLevel(c.Level)
}

// PackageLevels returns the parsed per-package overrides.
func (c *Config) PackageLevels() map[string]slog.Level {
	levels := make(map[string]slog.Level, len(c.Levels))
	for pkg, lvl := range c.Levels {
		levels[pkg] = parseLevel(lvl)
	}
	return levels
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelDebug
	}
}

// Option configures the Module.
type Option func(m *Config)

// WithName sets the instance name for this module.
func WithName(name string) Option {
	return func(m *Config) { m.Name = name }
}

// WithLevel sets the default log level.
func WithLevel(level string) Option {
	return func(m *Config) { m.Level = level }
}

// WithLevels sets per-package log level overrides.
func WithLevels(levels map[string]string) Option {
	return func(m *Config) { m.Levels = levels }
}

// WithGlobalDefault installs the logger as slog.Default.
func WithGlobalDefault() Option {
	return func(m *Config) { m.GlobalDefault = true }
}
