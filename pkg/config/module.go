package config

import (
	"context"
	"io"
	"log/slog"
	"strings"

	"github.com/Vilsol/mlbox/pkg/app"
	"github.com/Vilsol/slox"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/samber/do/v2"
	"github.com/samber/oops"
	"github.com/spf13/pflag"
)

var _ app.Module = (*Module)(nil)

// Module is the configuration module that loads and provides configuration.
// It must be the first module passed to the runtime.
type Module struct {
	config  Config
	koanf   *koanf.Koanf
	flagSet *pflag.FlagSet
	loaded  []string
}

// NewModule creates a new config module.
func NewModule(options ...Option) *Module {
	return &Module{
		config: NewConfig(options...),
		koanf:  koanf.New("."),
	}
}

// Init loads configuration from files, env vars and CLI flags and registers
// the resulting *koanf.Koanf in the injector.
func (m *Module) Init(ctx context.Context) error {
	if err := m.loadConfigFiles(); err != nil {
		return oops.Wrapf(err, "failed to load config files")
	}

	if err := m.loadEnvVars(); err != nil {
		return oops.Wrapf(err, "failed to load environment variables")
	}

	if err := m.loadCLIFlags(); err != nil {
		return oops.Wrapf(err, "failed to load CLI flags")
	}

	slox.Debug(ctx, "configuration loaded", slog.Any("files", m.loaded))

	app.Provide(ctx, m.provideKoanf)

	return nil
}

func (m *Module) envKey(s string) string {
	// MLBOX_MODULES_LOGGING_TINT_DEFAULT_LEVEL -> modules.logging.tint.default.level
	return strings.ToLower(strings.ReplaceAll(strings.TrimPrefix(s, m.config.EnvPrefix), "_", "."))
}

func (m *Module) loadEnvVars() error {
	if err := m.koanf.Load(env.Provider(m.config.EnvPrefix, ".", m.envKey), nil); err != nil {
		return oops.Wrapf(err, "failed to load env vars")
	}
	return nil
}

func (m *Module) loadCLIFlags() error {
	if len(m.config.Args) == 0 {
		return nil
	}

	m.flagSet = pflag.NewFlagSet("config", pflag.ContinueOnError)
	m.flagSet.SetOutput(io.Discard)

	// Only keys that already exist can be overridden, so flags keep their types.
	for _, key := range m.koanf.Keys() {
		switch v := m.koanf.Get(key).(type) {
		case string:
			m.flagSet.String(key, v, "")
		case int:
			m.flagSet.Int(key, v, "")
		case int64:
			m.flagSet.Int64(key, v, "")
		case float64:
			m.flagSet.Float64(key, v, "")
		case bool:
			m.flagSet.Bool(key, v, "")
		default:
			m.flagSet.String(key, "", "")
		}
	}

	if err := m.flagSet.Parse(m.config.Args); err != nil {
		return oops.
			Hint("add the key to mlbox.yaml or set it through an " + m.config.EnvPrefix + " variable first").
			Wrapf(err, "failed to parse CLI flags (only keys already set in a config file or the environment can be overridden)")
	}

	if err := m.koanf.Load(posflag.Provider(m.flagSet, ".", m.koanf), nil); err != nil {
		return oops.Wrapf(err, "failed to load CLI flags into koanf")
	}

	return nil
}

// Shutdown is a no-op for the config module.
func (m *Module) Shutdown(_ context.Context) error {
	return nil
}

func (m *Module) provideKoanf(_ do.Injector) (*koanf.Koanf, error) {
	return m.koanf, nil
}

// Koanf returns the loaded koanf instance.
func (m *Module) Koanf() *koanf.Koanf {
	return m.koanf
}

// Files returns the config files that were loaded, in load order.
func (m *Module) Files() []string {
	return m.loaded
}
