package tint_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/MarvinJWendt/testza"
	"github.com/Vilsol/mlbox/pkg/app"
	"github.com/Vilsol/mlbox/pkg/logging/tint"
	"github.com/knadh/koanf/v2"
	"github.com/samber/do/v2"
)

func TestConfig_ParseLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		level    string
		expected slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"nonsense", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			t.Parallel()
			cfg := tint.NewConfig(tint.WithLevel(tt.level))
			testza.AssertEqual(t, tt.expected, cfg.ParseLevel())
		})
	}
}

func TestModule_ProvidesConfiguredHandler(t *testing.T) {
	t.Parallel()

	injector := do.New()
	ctx := app.WithInjector(context.Background(), injector)

	k := koanf.New(".")
	testza.AssertNil(t, k.Set("modules.logging.tint.default.level", "warn"))
	do.Provide(injector, func(_ do.Injector) (*koanf.Koanf, error) {
		return k, nil
	})

	var buf bytes.Buffer
	module := tint.NewModule(tint.WithWriter(&buf), tint.WithNoColor())
	testza.AssertNil(t, module.Init(ctx))
	testza.AssertEqual(t, "default", module.Name())

	handler, err := do.Invoke[slog.Handler](injector)
	testza.AssertNil(t, err)

	logger := slog.New(handler)
	logger.Info("too quiet")
	logger.Warn("loud enough", slog.String("path", "config/config.yaml"))

	testza.AssertFalse(t, bytes.Contains(buf.Bytes(), []byte("too quiet")))
	testza.AssertContains(t, buf.String(), "loud enough")
	testza.AssertContains(t, buf.String(), "path=config/config.yaml")
}
