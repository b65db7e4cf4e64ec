package app

import (
	"context"

	"github.com/knadh/koanf/v2"
	"github.com/samber/do/v2"
	"github.com/samber/oops"
)

type injectorKey struct{}

// GetInjector returns the injector from the context.
func GetInjector(ctx context.Context) do.Injector { //nolint:ireturn
	injector, ok := ctx.Value(injectorKey{}).(do.Injector)
	if !ok {
		panic("injector not found in context")
	}
	return injector
}

// WithInjector returns a new context with the injector set.
func WithInjector(ctx context.Context, injector do.Injector) context.Context {
	return context.WithValue(ctx, injectorKey{}, injector)
}

// Provide registers a provider in the context injector.
func Provide[T any](ctx context.Context, provider do.Provider[T]) {
	do.Provide(GetInjector(ctx), provider)
}

// LoadConfig feeds the shared koanf instance to a Configurable module.
// Modules keep their defaults when no koanf instance is registered
// or when nothing is configured under their path.
func LoadConfig(ctx context.Context, module Configurable) error {
	k, err := do.Invoke[*koanf.Koanf](GetInjector(ctx))
	if err != nil {
		return nil //nolint:nilerr
	}

	if !k.Exists(module.ConfigPath()) {
		return nil
	}

	if err := module.LoadConfig(k); err != nil {
		return oops.
			With("path", module.ConfigPath()).
			Wrapf(err, "failed to load module config")
	}

	return nil
}
