package config

import "fmt"

// Category constants for module organization.
const (
	CategoryLogging  = "logging"
	CategoryScaffold = "scaffold"
)

// DefaultInstanceName is the default instance name for modules.
const DefaultInstanceName = "default"

// ModulePath generates the config path for a module instance.
// Example: ModulePath("logging", "tint", "") -> "modules.logging.tint.default"
func ModulePath(category, moduleType, instance string) string {
	if instance == "" {
		instance = DefaultInstanceName
	}
	return fmt.Sprintf("modules.%s.%s.%s", category, moduleType, instance)
}
