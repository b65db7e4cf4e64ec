package app_test

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"

	"github.com/MarvinJWendt/testza"
	"github.com/Vilsol/mlbox/pkg/app"
	"github.com/Vilsol/slox"
	"github.com/knadh/koanf/v2"
	"github.com/samber/do/v2"
)

type recorder struct {
	mu     sync.Mutex
	events []string
}

func (r *recorder) add(event string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

func (r *recorder) snapshot() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.events...)
}

type initOnly struct {
	name    string
	rec     *recorder
	initErr error
}

func (m *initOnly) Init(_ context.Context) error {
	m.rec.add("init:" + m.name)
	return m.initErr
}

func (m *initOnly) Shutdown(_ context.Context) error {
	m.rec.add("shutdown:" + m.name)
	return nil
}

type oneShot struct {
	initOnly
	startErr  error
	hasLogger bool
}

func (m *oneShot) Start(ctx context.Context) error {
	m.hasLogger = slox.From(ctx) != nil
	m.rec.add("start:" + m.name)
	return m.startErr
}

func TestRuntime_RunsOneShotModulesAndShutsDown(t *testing.T) {
	t.Parallel()

	rec := &recorder{}
	first := &initOnly{name: "first", rec: rec}
	second := &oneShot{initOnly: initOnly{name: "second", rec: rec}}

	err := app.NewRuntime(first, second).RunContext(context.Background())
	testza.AssertNil(t, err)

	events := rec.snapshot()
	testza.AssertEqual(t, "init:first", events[0])
	testza.AssertEqual(t, "init:second", events[1])
	testza.AssertEqual(t, "start:second", events[2])
	testza.AssertContains(t, events[3:], "shutdown:first")
	testza.AssertContains(t, events[3:], "shutdown:second")
	testza.AssertTrue(t, second.hasLogger)
}

func TestRuntime_InitFailureStopsBeforeStart(t *testing.T) {
	t.Parallel()

	rec := &recorder{}
	broken := &initOnly{name: "broken", rec: rec, initErr: errors.New("boom")}
	later := &oneShot{initOnly: initOnly{name: "later", rec: rec}}

	err := app.NewRuntime(broken, later).RunContext(context.Background())
	testza.AssertNotNil(t, err)
	testza.AssertContains(t, err.Error(), "boom")
	testza.AssertEqual(t, []string{"init:broken"}, rec.snapshot())
}

func TestRuntime_StartFailureIsReturned(t *testing.T) {
	t.Parallel()

	rec := &recorder{}
	failing := &oneShot{initOnly: initOnly{name: "failing", rec: rec}, startErr: errors.New("disk full")}

	err := app.NewRuntime(failing).RunContext(context.Background())
	testza.AssertNotNil(t, err)
	testza.AssertContains(t, err.Error(), "disk full")
	testza.AssertContains(t, rec.snapshot(), "shutdown:failing")
}

type configured struct {
	path   string
	loaded string
}

func (c *configured) ConfigPath() string { return c.path }

func (c *configured) LoadConfig(k *koanf.Koanf) error {
	c.loaded = k.String(c.path + ".value")
	return nil
}

func TestLoadConfig(t *testing.T) {
	t.Parallel()

	injector := do.New()
	ctx := app.WithInjector(context.Background(), injector)

	module := &configured{path: "modules.test.value.default"}

	// No koanf registered yet: defaults are kept.
	testza.AssertNil(t, app.LoadConfig(ctx, module))
	testza.AssertEqual(t, "", module.loaded)

	k := koanf.New(".")
	testza.AssertNil(t, k.Set("modules.test.value.default.value", "hello"))
	do.Provide(injector, func(_ do.Injector) (*koanf.Koanf, error) {
		return k, nil
	})

	testza.AssertNil(t, app.LoadConfig(ctx, module))
	testza.AssertEqual(t, "hello", module.loaded)

	missing := &configured{path: "modules.test.value.other"}
	testza.AssertNil(t, app.LoadConfig(ctx, missing))
	testza.AssertEqual(t, "", missing.loaded)
}

func TestRuntime_FallsBackToDefaultLogger(t *testing.T) {
	t.Parallel()

	rec := &recorder{}
	module := &oneShot{initOnly: initOnly{name: "only", rec: rec}}

	err := app.NewRuntime(module).RunContext(context.Background())
	testza.AssertNil(t, err)
	testza.AssertTrue(t, module.hasLogger)
	testza.AssertNotNil(t, slog.Default())
}
