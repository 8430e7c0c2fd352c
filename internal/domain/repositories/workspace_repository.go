package repositories

import (
	"context"

	"github.com/rios0rios0/releaser/internal/domain/entities"
)

// WorkspaceRepository gives read access to the projects of a monorepo workspace.
type WorkspaceRepository interface {
	// Root returns the absolute workspace root. Project roots are relative to it.
	Root() string

	// Projects returns every project keyed by name.
	Projects(ctx context.Context) (map[string]entities.Project, error)

	// Project returns a single project, failing with entities.ErrProjectNotFound.
	// Its Dependencies name the projects it directly depends on.
	Project(ctx context.Context, name string) (entities.Project, error)
}
