//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"
	"fmt"

	"github.com/rios0rios0/releaser/internal/domain/entities"
	"github.com/rios0rios0/releaser/internal/domain/repositories"
)

// StubWorkspaceRepository implements repositories.WorkspaceRepository over an in-memory project map.
type StubWorkspaceRepository struct {
	RootDir      string
	ProjectMap   map[string]entities.Project
	ProjectsErr  error
	ProjectCalls []string
}

var _ repositories.WorkspaceRepository = (*StubWorkspaceRepository)(nil)

// NewStubWorkspaceRepository builds a stub from the given projects, keyed by their names.
func NewStubWorkspaceRepository(root string, projects ...entities.Project) *StubWorkspaceRepository {
	projectMap := make(map[string]entities.Project, len(projects))
	for _, project := range projects {
		projectMap[project.Name] = project
	}
	return &StubWorkspaceRepository{RootDir: root, ProjectMap: projectMap}
}

func (s *StubWorkspaceRepository) Root() string { return s.RootDir }

func (s *StubWorkspaceRepository) Projects(_ context.Context) (map[string]entities.Project, error) {
	if s.ProjectsErr != nil {
		return nil, s.ProjectsErr
	}
	return s.ProjectMap, nil
}

func (s *StubWorkspaceRepository) Project(_ context.Context, name string) (entities.Project, error) {
	s.ProjectCalls = append(s.ProjectCalls, name)
	if s.ProjectsErr != nil {
		return entities.Project{}, s.ProjectsErr
	}
	project, ok := s.ProjectMap[name]
	if !ok {
		return entities.Project{}, fmt.Errorf("%w: %q", entities.ErrProjectNotFound, name)
	}
	return project, nil
}
