package commands

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/rios0rios0/releaser/internal/domain/entities"
	"github.com/rios0rios0/releaser/internal/domain/repositories"
)

// ChangelogInput describes the release notes to render.
type ChangelogInput struct {
	Decision entities.VersionDecision
	Header   string
	// Path is the changelog file the notes are written to.
	Path string
	// Scope limits the commits to a project root; empty means the whole repository.
	Scope           string
	Preset          string
	SkipCommitTypes []string
}

// ChangelogGenerator renders the release notes of a version decision.
type ChangelogGenerator struct {
	git repositories.GitRepository
	now func() time.Time
}

// ChangelogOption configures a ChangelogGenerator.
type ChangelogOption func(*ChangelogGenerator)

// WithClock overrides the clock used to date releases.
func WithClock(now func() time.Time) ChangelogOption {
	return func(it *ChangelogGenerator) {
		it.now = now
	}
}

// NewChangelogGenerator creates a new ChangelogGenerator.
func NewChangelogGenerator(git repositories.GitRepository, opts ...ChangelogOption) *ChangelogGenerator {
	generator := &ChangelogGenerator{git: git, now: time.Now}
	for _, opt := range opts {
		opt(generator)
	}
	return generator
}

// Generate renders the notes for the commits between the previous release and
// HEAD, followed by the dependency updates. Both parts are rendered concurrently.
// An absent version yields an empty result without reading history.
func (it *ChangelogGenerator) Generate(ctx context.Context, input ChangelogInput) (entities.ChangelogResult, error) {
	if !input.Decision.HasVersion() {
		return entities.ChangelogResult{}, nil
	}

	var releaseNotes, dependencyNotes string
	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		preset := entities.NormalizePreset(input.Preset)
		commits, err := readCommits(groupCtx, it.git, input.Decision.PreviousTag, input.Scope, preset)
		if err != nil {
			return err
		}
		commits = entities.FilterCommits(commits, input.SkipCommitTypes)
		releaseNotes = entities.RenderReleaseNotes(input.Decision.Version, it.now(), preset, commits)
		return nil
	})
	group.Go(func() error {
		dependencyNotes = entities.RenderDependencyUpdates(input.Decision.DependencyUpdates)
		return nil
	})

	if err := group.Wait(); err != nil {
		return entities.ChangelogResult{}, fmt.Errorf("failed to generate changelog: %w", err)
	}

	return entities.ChangelogResult{
		Path:   input.Path,
		Header: input.Header,
		Notes:  releaseNotes + dependencyNotes,
	}, nil
}
