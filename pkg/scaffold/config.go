package scaffold

import (
	"io"
	"os"

	"github.com/Vilsol/mlbox/pkg/config"
	"github.com/knadh/koanf/v2"
	"github.com/samber/oops"
)

// Config represents configuration for the scaffold [Module]
type Config struct {
	// Instance name
	Name string `koanf:"-"`

	// Root is the directory the skeleton is created in.
	Root string `koanf:"root"`

	// Files lists the relative paths to create, in order.
	Files []string `code_only:"WithFiles" koanf:"-"`

	// Output receives the completion banner and next steps.
	Output io.Writer `code_only:"WithOutput" koanf:"-"`
}

// NewDefaultConfig returns default configuration
func NewDefaultConfig() Config {
	return Config{
		Name:   config.DefaultInstanceName,
		Root:   ".",
		Files:  DefaultFiles(),
		Output: os.Stdout,
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

// Option configures the Module.
type Option func(m *Config)

// WithName sets the instance name for this module.
func WithName(name string) Option {
	return func(m *Config) { m.Name = name }
}

// WithRoot sets the directory the skeleton is created in.
func WithRoot(root string) Option {
	return func(m *Config) { m.Root = root }
}

// WithFiles replaces the default skeleton (code-only).
func WithFiles(files ...string) Option {
	return func(m *Config) { m.Files = files }
}

// WithOutput sets where guidance is printed (code-only).
func WithOutput(w io.Writer) Option {
	return func(m *Config) { m.Output = w }
}
