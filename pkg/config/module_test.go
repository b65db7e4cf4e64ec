package config_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/MarvinJWendt/testza"
	"github.com/Vilsol/mlbox/pkg/app"
	"github.com/Vilsol/mlbox/pkg/config"
	"github.com/knadh/koanf/v2"
	"github.com/samber/do/v2"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	testza.AssertNil(t, os.WriteFile(path, []byte(content), 0o600))
}

func initModule(t *testing.T, mod *config.Module) *koanf.Koanf {
	t.Helper()

	injector := do.New()
	ctx := app.WithInjector(context.Background(), injector)

	testza.AssertNil(t, mod.Init(ctx))

	k, err := do.Invoke[*koanf.Koanf](injector)
	testza.AssertNil(t, err)

	return k
}

func TestModule_LoadsDiscoveredFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "tool.yaml"), "modules:\n  logging:\n    tint:\n      default:\n        level: warn\n")
	writeFile(t, filepath.Join(dir, "tool.json"), `{"modules": {"scaffold": {"scaffold": {"default": {"root": "out"}}}}}`)

	mod := config.NewModule(
		config.WithConfigDirs(dir),
		config.WithConfigName("tool"),
		config.WithEnvPrefix("MLBOX_TEST_UNUSED_"),
	)
	k := initModule(t, mod)

	testza.AssertEqual(t, "warn", k.String("modules.logging.tint.default.level"))
	testza.AssertEqual(t, "out", k.String("modules.scaffold.scaffold.default.root"))
	testza.AssertEqual(t, 2, len(mod.Files()))
}

func TestModule_MissingFilesAreFine(t *testing.T) {
	t.Parallel()

	mod := config.NewModule(
		config.WithConfigDirs(t.TempDir()),
		config.WithEnvPrefix("MLBOX_TEST_UNUSED_"),
	)
	k := initModule(t, mod)

	testza.AssertEqual(t, 0, len(k.Keys()))
	testza.AssertEqual(t, 0, len(mod.Files()))
}

func TestModule_FlagsOverrideFileValues(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "mlbox.toml"), "[modules.logging.tint.default]\nlevel = \"info\"\n")

	mod := config.NewModule(
		config.WithConfigDirs(dir),
		config.WithEnvPrefix("MLBOX_TEST_UNUSED_"),
		config.WithArgs([]string{"--modules.logging.tint.default.level=error"}),
	)
	k := initModule(t, mod)

	testza.AssertEqual(t, "error", k.String("modules.logging.tint.default.level"))
}

func TestModule_UnknownFlagExplainsOverrideRule(t *testing.T) {
	t.Parallel()

	mod := config.NewModule(
		config.WithConfigDirs(t.TempDir()),
		config.WithEnvPrefix("MLBOX_TEST_UNUSED_"),
		config.WithArgs([]string{"--modules.scaffold.scaffold.default.root=out"}),
	)

	err := mod.Init(app.WithInjector(context.Background(), do.New()))
	testza.AssertNotNil(t, err)
	testza.AssertContains(t, err.Error(), "unknown flag")
	testza.AssertContains(t, err.Error(), "only keys already set in a config file or the environment can be overridden")
}

func TestModule_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "mlbox.yml"), "modules:\n  logging:\n    tint:\n      default:\n        level: info\n")
	t.Setenv("MLBOX_ENVTEST_MODULES_LOGGING_TINT_DEFAULT_LEVEL", "debug")

	mod := config.NewModule(
		config.WithConfigDirs(dir),
		config.WithEnvPrefix("MLBOX_ENVTEST_"),
	)
	k := initModule(t, mod)

	testza.AssertEqual(t, "debug", k.String("modules.logging.tint.default.level"))
}

func TestModulePath(t *testing.T) {
	t.Parallel()

	testza.AssertEqual(t, "modules.logging.tint.default", config.ModulePath(config.CategoryLogging, "tint", ""))
	testza.AssertEqual(t, "modules.scaffold.scaffold.alt", config.ModulePath(config.CategoryScaffold, "scaffold", "alt"))
}

func TestNewDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := config.NewDefaultConfig()
	testza.AssertEqual(t, config.DefaultEnvPrefix, cfg.EnvPrefix)
	testza.AssertEqual(t, []string{".", "config"}, cfg.ConfigDirs)
	testza.AssertEqual(t, "mlbox", cfg.ConfigName)
}
