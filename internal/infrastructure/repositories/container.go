package repositories

import (
	"go.uber.org/dig"

	"github.com/rios0rios0/releaser/internal/domain/entities"
	domainRepos "github.com/rios0rios0/releaser/internal/domain/repositories"
	execRepo "github.com/rios0rios0/releaser/internal/infrastructure/repositories/executor"
	gitRepo "github.com/rios0rios0/releaser/internal/infrastructure/repositories/git"
	manifestRepo "github.com/rios0rios0/releaser/internal/infrastructure/repositories/manifest"
	wsRepo "github.com/rios0rios0/releaser/internal/infrastructure/repositories/workspace"
)

// RegisterProviders registers all repository providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	// Register the workspace graph and the version control adapters
	if err := container.Provide(func(settings *entities.Settings) domainRepos.WorkspaceRepository {
		return wsRepo.NewYAMLWorkspaceRepository(settings)
	}); err != nil {
		return err
	}
	if err := container.Provide(func(settings *entities.Settings) domainRepos.GitRepository {
		return gitRepo.NewGoGitRepository(settings)
	}); err != nil {
		return err
	}

	// Register manifest registry in detection order
	if err := container.Provide(func() *ManifestRegistry {
		reg := NewManifestRegistry()
		reg.Register(manifestRepo.NewJSONManifestRepository())
		reg.Register(manifestRepo.NewHCLManifestRepository())
		reg.Register(manifestRepo.NewTextManifestRepository())
		return reg
	}); err != nil {
		return err
	}

	// Register executor registry with all executor implementations
	if err := container.Provide(func() *ExecutorRegistry {
		reg := NewExecutorRegistry()
		reg.Register(execRepo.NewShellExecutorRepository())
		return reg
	}); err != nil {
		return err
	}

	return nil
}
