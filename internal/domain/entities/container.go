package entities

import (
	"go.uber.org/dig"
)

// RegisterProviders registers all entity providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	// Settings are discovered from the working directory; flags are applied by the controllers layer
	if err := container.Provide(NewSettingsFromEnvironment); err != nil {
		return err
	}

	return nil
}
