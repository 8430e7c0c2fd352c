package commands

import (
	"go.uber.org/dig"

	"github.com/rios0rios0/releaser/internal/domain/repositories"
)

// RegisterProviders registers all command providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	// Register pipeline stages
	if err := container.Provide(NewDependencyResolver); err != nil {
		return err
	}
	if err := container.Provide(NewBumpCalculator); err != nil {
		return err
	}
	if err := container.Provide(func(git repositories.GitRepository) *ChangelogGenerator {
		return NewChangelogGenerator(git)
	}); err != nil {
		return err
	}
	if err := container.Provide(NewTargetRunner); err != nil {
		return err
	}
	if err := container.Provide(NewVersionApplier); err != nil {
		return err
	}
	if err := container.Provide(NewPusher); err != nil {
		return err
	}

	// Register command constructors
	if err := container.Provide(NewVersionCommand); err != nil {
		return err
	}

	// Bind interfaces to implementations
	if err := container.Provide(func(impl *VersionCommand) Version {
		return impl
	}); err != nil {
		return err
	}

	return nil
}
