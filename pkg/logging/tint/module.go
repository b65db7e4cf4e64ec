package tint

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

// Module provides a tint-based slog.Handler via DI.
type Module struct {
	config  Config
	handler slog.Handler
}

// NewModule creates a new tint logging module with the given options.
func NewModule(options ...Option) *Module {
	return &Module{config: NewConfig(options...)}
}

// Name returns the instance name.
func (m *Module) Name() string {
	return m.config.Name
}

// ConfigPath returns the koanf path for this module's configuration.
func (m *Module) ConfigPath() string {
	return config.ModulePath(config.CategoryLogging, "tint", m.config.Name)
}

// LoadConfig loads configuration from koanf.
func (m *Module) LoadConfig(k *koanf.Koanf) error {
	return m.config.LoadFromKoanf(k, m.ConfigPath())
}

// Init loads configuration, creates the tint handler, and registers it in DI.
func (m *Module) Init(ctx context.Context) error {
	if err := app.LoadConfig(ctx, m); err != nil {
		return oops.Wrapf(err, "failed to load config")
	}

	m.handler = m.config.NewHandler()

	app.Provide(ctx, m.getHandler)

	return nil
}

// Shutdown is a no-op for this module.
func (m *Module) Shutdown(_ context.Context) error {
	return nil
}

func (m *Module) getHandler(_ do.Injector) (slog.Handler, error) {
	return m.handler, nil
}
