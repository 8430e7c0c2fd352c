package repositories

import (
	"context"

	"github.com/rios0rios0/releaser/internal/domain/entities"
)

// GitRepository abstracts the version-control operations needed for a release.
type GitRepository interface {
	// Tags returns the short names of every tag.
	Tags(ctx context.Context) ([]string, error)

	// CommitsSince returns the commits reachable from HEAD but not from ref,
	// newest first, touching path. An empty ref means the whole history and
	// an empty path the whole repository.
	CommitsSince(ctx context.Context, ref, path string) ([]entities.Commit, error)

	// CurrentBranch returns the checked out branch name.
	CurrentBranch(ctx context.Context) (string, error)

	Commit(ctx context.Context, input entities.CommitInput) error
	CreateTag(ctx context.Context, input entities.TagInput) error
	Push(ctx context.Context, input entities.PushInput) error
}
