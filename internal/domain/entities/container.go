package entities

import (
	"go.uber.org/dig"
)

// RegisterProviders registers all entity providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	// Settings are loaded from the config file discovered at startup.
	return container.Provide(func() (*Settings, error) {
		return NewSettings(FindConfigFile())
	})
}
