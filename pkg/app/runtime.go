package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Vilsol/slox"
	"github.com/samber/do/v2"
	"github.com/samber/oops"
	"github.com/sourcegraph/conc/pool"
)

const DefaultShutdownTimeout = 10 * time.Second

// Runtime initializes modules in order, starts them and shuts them down.
type Runtime struct {
	modules         []Module
	shutdownTimeout time.Duration
}

// NewRuntime creates a runtime with the given modules (order matters for init).
func NewRuntime(modules ...Module) *Runtime {
	return &Runtime{
		modules:         modules,
		shutdownTimeout: DefaultShutdownTimeout,
	}
}

// Run starts the runtime with a background context.
func (r *Runtime) Run() error {
	return r.RunContext(context.Background())
}

// RunContext initializes and starts all modules, returning once every module
// finished starting (or a shutdown signal arrived) and all of them were shut down.
func (r *Runtime) RunContext(ctx context.Context) error {
	injector := do.New()
	ctx = WithInjector(ctx, injector)

	signalCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	for _, module := range r.modules {
		if err := module.Init(signalCtx); err != nil {
			slox.Error(ctx, "failed initializing modules", slog.Any("error", err))
			return oops.
				With("name", fmt.Sprintf("%T", module)).
				Wrapf(err, "failed initializing module")
		}
	}

	logger, err := do.Invoke[*slog.Logger](injector)
	if err != nil || logger == nil {
		logger = slog.Default()
		do.Provide(injector, func(_ do.Injector) (*slog.Logger, error) {
			return logger, nil
		})
	}

	ctx = slox.Into(ctx, logger)
	signalCtx = slox.Into(signalCtx, logger)

	startErr := r.start(signalCtx)

	stop()

	shutdownErr := r.shutdown(ctx)

	if startErr != nil {
		return startErr
	}

	return shutdownErr
}

func (r *Runtime) start(ctx context.Context) error {
	startPool := pool.New().
		WithErrors().
		WithContext(ctx).
		WithCancelOnError()

	for _, module := range r.modules {
		syncModule, ok := module.(SyncModule)
		if !ok {
			continue
		}

		startPool.Go(func(ctx context.Context) error {
			name := fmt.Sprintf("%T", module)

			if err := syncModule.Start(ctx); err != nil {
				slox.Error(ctx, "failed starting module", slog.String("name", name), slog.Any("error", err))
				return oops.
					With("name", name).
					Wrapf(err, "failed starting module")
			}

			return nil
		})
	}

	done := make(chan error, 1)
	go func() {
		done <- startPool.Wait()
	}()

	select {
	case <-ctx.Done():
		slox.Info(ctx, "shutdown signal received")
		return nil
	case err := <-done:
		if err != nil {
			slox.Error(ctx, "modules failed", slog.Any("error", err))
		}
		return err
	}
}

func (r *Runtime) shutdown(ctx context.Context) error {
	timeoutCtx, cancel := context.WithTimeout(ctx, r.shutdownTimeout)
	defer cancel()

	shutdownPool := pool.New().
		WithErrors().
		WithContext(timeoutCtx)

	for _, module := range r.modules {
		shutdownPool.Go(func(ctx context.Context) error {
			name := fmt.Sprintf("%T", module)

			if err := module.Shutdown(ctx); err != nil {
				slox.Error(ctx, "failed shutting down module", slog.String("name", name), slog.Any("error", err))
				return oops.
					With("name", name).
					Wrapf(err, "failed shutting down module")
			}

			return nil
		})
	}

	if err := shutdownPool.Wait(); err != nil {
		slox.Error(ctx, "failed shutting down modules", slog.Any("error", err))
		return err //nolint:wrapcheck
	}

	return nil
}
