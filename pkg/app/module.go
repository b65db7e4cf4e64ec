// Package app runs mlbox tools as a sequence of modules sharing a DI container.
package app

import (
	"context"

	"github.com/knadh/koanf/v2"
)

// Module is the base interface for all mlbox modules.
type Module interface {
	Init(ctx context.Context) error
	Shutdown(ctx context.Context) error
}

// SyncModule extends Module with a blocking Start method.
// One-shot modules simply return from Start once their work is done.
type SyncModule interface {
	Module
	Start(ctx context.Context) error
}

// Configurable is implemented by modules that can load configuration from koanf.
type Configurable interface {
	// ConfigPath returns the koanf path for this module's configuration.
	// Example: "modules.logging.tint.default"
	ConfigPath() string

	// LoadConfig loads configuration from koanf into the module's config struct.
	LoadConfig(k *koanf.Koanf) error
}

// NamedModule is implemented by modules that support instance naming.
type NamedModule interface {
	Name() string
}
