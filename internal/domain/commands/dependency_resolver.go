package commands

import (
	"context"
	"fmt"

	"github.com/rios0rios0/releaser/internal/domain/entities"
	"github.com/rios0rios0/releaser/internal/domain/repositories"
)

// DependencyResolver finds the upstream projects whose commits count toward
// the release decision of a project.
type DependencyResolver struct {
	workspace repositories.WorkspaceRepository
}

// NewDependencyResolver creates a new DependencyResolver over the workspace graph.
func NewDependencyResolver(workspace repositories.WorkspaceRepository) *DependencyResolver {
	return &DependencyResolver{workspace: workspace}
}

// Resolve returns every project transitively depended on by projectName,
// depth-first in declaration order, each with the same releaseAs override.
// Without trackDeps only the project's own commits count and the result is empty.
func (it *DependencyResolver) Resolve(
	ctx context.Context,
	projectName, releaseAs string,
	trackDeps bool,
) ([]entities.DependencyRoot, error) {
	if !trackDeps {
		return nil, nil
	}

	project, err := it.workspace.Project(ctx, projectName)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", entities.ErrDependencyResolution, err)
	}

	visited := map[string]bool{projectName: true}
	var roots []entities.DependencyRoot
	if err = it.walk(ctx, project, releaseAs, visited, &roots); err != nil {
		return nil, err
	}
	return roots, nil
}

func (it *DependencyResolver) walk(
	ctx context.Context,
	project entities.Project,
	releaseAs string,
	visited map[string]bool,
	roots *[]entities.DependencyRoot,
) error {
	for _, name := range project.Dependencies {
		if visited[name] {
			continue
		}
		visited[name] = true

		dependency, err := it.workspace.Project(ctx, name)
		if err != nil {
			return fmt.Errorf("%w: project %q depends on %q: %w",
				entities.ErrDependencyResolution, project.Name, name, err)
		}
		*roots = append(*roots, entities.DependencyRoot{
			ProjectName: dependency.Name,
			RootPath:    dependency.Root,
			ReleaseAs:   releaseAs,
		})
		if err = it.walk(ctx, dependency, releaseAs, visited, roots); err != nil {
			return err
		}
	}
	return nil
}
