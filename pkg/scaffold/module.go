package scaffold

import (
	"context"
	"log/slog"

	"github.com/Vilsol/mlbox/pkg/app"
	"github.com/Vilsol/mlbox/pkg/config"
	"github.com/Vilsol/slox"
	"github.com/knadh/koanf/v2"
)

var (
	_ app.SyncModule   = (*Module)(nil)
	_ app.Configurable = (*Module)(nil)
	_ app.NamedModule  = (*Module)(nil)
)

// Module runs the scaffolder once when the runtime starts.
type Module struct {
	config Config
	report Report
}

// NewModule creates a new scaffold module.
func NewModule(options ...Option) *Module {
	return &Module{config: NewConfig(options...)}
}

// Name returns the instance name.
func (m *Module) Name() string {
	return m.config.Name
}

// ConfigPath returns the koanf path for this module's configuration.
func (m *Module) ConfigPath() string {
	return config.ModulePath(config.CategoryScaffold, "scaffold", m.config.Name)
}

// LoadConfig loads configuration from koanf.
func (m *Module) LoadConfig(k *koanf.Koanf) error {
	return m.config.LoadFromKoanf(k, m.ConfigPath())
}

// Init loads configuration.
func (m *Module) Init(ctx context.Context) error {
	return app.LoadConfig(ctx, m)
}

// Start scaffolds the project and returns.
func (m *Module) Start(ctx context.Context) error {
	slox.Debug(ctx, "scaffolding project", slog.String("root", m.config.Root), slog.Int("files", len(m.config.Files)))

	report, err := NewScaffolder(m.config).Scaffold(ctx)
	m.report = report

	return err
}

// Shutdown is a no-op for this module.
func (m *Module) Shutdown(_ context.Context) error {
	return nil
}

// Report returns the result of the last run.
func (m *Module) Report() Report {
	return m.report
}
