package observers

import (
	"go.uber.org/dig"

	"github.com/rios0rios0/releaser/internal/domain/entities"
)

// RegisterProviders registers all observer providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	if err := container.Provide(NewLogObserver); err != nil {
		return err
	}
	if err := container.Provide(NewMetricsObserver); err != nil {
		return err
	}

	// Fan step events out to every observer
	if err := container.Provide(func(log *LogObserver, metrics *MetricsObserver) entities.Observer {
		return entities.Observers{log, metrics}
	}); err != nil {
		return err
	}

	return nil
}
