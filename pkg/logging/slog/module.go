package slog

import (
	"context"
	"log/slog"

	"github.com/Vilsol/mlbox/pkg/app"
	"github.com/Vilsol/mlbox/pkg/config"
	"github.com/knadh/koanf/v2"
	"github.com/samber/do/v2"
	"github.com/samber/oops"
)

var (
	_ app.Module       = (*Module)(nil)
	_ app.Configurable = (*Module)(nil)
	_ app.NamedModule  = (*Module)(nil)
)

// Module builds the process logger from the slog.Handler registered in DI,
// applying per-package level rules.
type Module struct {
	config Config
	logger *slog.Logger
}

// NewModule creates a new slog module.
func NewModule(options ...Option) *Module {
	return &Module{config: NewConfig(options...)}
}

// Name returns the instance name.
func (m *Module) Name() string {
	return m.config.Name
}

// ConfigPath returns the koanf path for this module's configuration.
func (m *Module) ConfigPath() string {
	return config.ModulePath(config.CategoryLogging, "slog", m.config.Name)
}

// LoadConfig loads configuration from koanf.
func (m *Module) LoadConfig(k *koanf.Koanf) error {
	return m.config.LoadFromKoanf(k, m.ConfigPath())
}

// Init creates the logger and registers it in DI as *slog.Logger.
func (m *Module) Init(ctx context.Context) error {
	if err := app.LoadConfig(ctx, m); err != nil {
		return oops.Wrapf(err, "failed to load config")
	}

	handler, err := do.Invoke[slog.Handler](app.GetInjector(ctx))
	if err != nil {
		return oops.Wrapf(err, "failed to retrieve logger handler")
	}

	m.logger = slog.New(newLevelFilter(handler, m.config.DefaultLevel(), m.config.PackageLevels()))

	if m.config.GlobalDefault {
		slog.SetDefault(m.logger)
	}

	app.Provide(ctx, m.getLogger)

	return nil
}

// Shutdown is a no-op for this module.
func (m *Module) Shutdown(_ context.Context) error {
	return nil
}

// Logger returns the logger created by Init.
func (m *Module) Logger() *slog.Logger {
	return m.logger
}

func (m *Module) getLogger(_ do.Injector) (*slog.Logger, error) {
	return m.logger, nil
}
