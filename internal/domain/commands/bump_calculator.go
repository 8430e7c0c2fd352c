package commands

import (
	"context"
	"fmt"

	"github.com/rios0rios0/releaser/internal/domain/entities"
	"github.com/rios0rios0/releaser/internal/domain/repositories"
)

// BumpInput holds everything the calculator needs to decide the next version.
type BumpInput struct {
	ProjectName string
	// ProjectRoot scopes the project's commits. It is ignored in sync mode.
	ProjectRoot     string
	DependencyRoots []entities.DependencyRoot
	Preset          string
	// TagPrefix is the rendered prefix of the project tags.
	TagPrefix string
	// VersionTagPrefix is the raw template, rendered again for every dependency root.
	VersionTagPrefix  *string
	ReleaseType       string
	Preid             string
	SyncVersions      bool
	AllowEmptyRelease bool
	SkipCommitTypes   []string
	Observer          entities.Observer
}

// BumpCalculator derives the next version from the commit history of a
// project and its dependency roots. It only reads from version control.
type BumpCalculator struct {
	git repositories.GitRepository
}

// NewBumpCalculator creates a new BumpCalculator.
func NewBumpCalculator(git repositories.GitRepository) *BumpCalculator {
	return &BumpCalculator{git: git}
}

// Compute returns the version decision. An empty Version means nothing to release.
func (it *BumpCalculator) Compute(ctx context.Context, input BumpInput) (entities.VersionDecision, error) {
	tags, err := it.git.Tags(ctx)
	if err != nil {
		return entities.VersionDecision{}, fmt.Errorf("%w: failed to list tags: %w", entities.ErrBumpCalculation, err)
	}

	preset := entities.NormalizePreset(input.Preset)
	lastVersion, lastTag := entities.LatestVersion(tags, input.TagPrefix, input.Preid != "")
	if lastVersion == "" {
		lastVersion = entities.InitialVersion
		notify(input.Observer, input.ProjectName, entities.StepWarning, entities.LevelWarning,
			fmt.Sprintf("No previous version tag found, fallback to version %s.", entities.InitialVersion))
	}
	decision := entities.VersionDecision{PreviousVersion: lastVersion, PreviousTag: lastTag}

	if input.ReleaseType != "" {
		decision.Version, err = entities.ManualBump(lastVersion, input.ReleaseType, input.Preid)
		if err != nil {
			return entities.VersionDecision{}, fmt.Errorf("%w: %w", entities.ErrBumpCalculation, err)
		}
		return decision, nil
	}

	scope := input.ProjectRoot
	if input.SyncVersions {
		scope = ""
	}
	commits, err := it.qualifyingCommits(ctx, lastTag, scope, preset, input.SkipCommitTypes)
	if err != nil {
		return entities.VersionDecision{}, err
	}
	bump := entities.ClassifyCommits(commits)

	updates, err := it.dependencyUpdates(ctx, input, tags, preset)
	if err != nil {
		return entities.VersionDecision{}, err
	}
	if bump == entities.BumpNone && len(updates) > 0 {
		bump = entities.BumpPatch
	}

	if bump == entities.BumpNone {
		if !input.AllowEmptyRelease {
			return decision, nil
		}
		decision.Version, err = emptyReleaseVersion(lastVersion, input.Preid)
		if err != nil {
			return entities.VersionDecision{}, fmt.Errorf("%w: %w", entities.ErrBumpCalculation, err)
		}
		return decision, nil
	}

	decision.Version, err = entities.AutomaticBump(lastVersion, bump, input.Preid)
	if err != nil {
		return entities.VersionDecision{}, fmt.Errorf("%w: %w", entities.ErrBumpCalculation, err)
	}
	decision.DependencyUpdates = updates
	return decision, nil
}

// dependencyUpdates computes the next version of every dependency root that
// has qualifying commits since its own last release.
func (it *BumpCalculator) dependencyUpdates(
	ctx context.Context,
	input BumpInput,
	tags []string,
	preset entities.Preset,
) ([]entities.DependencyUpdate, error) {
	var updates []entities.DependencyUpdate
	for _, root := range input.DependencyRoots {
		prefix := entities.FormatTagPrefix(input.VersionTagPrefix, root.ProjectName, input.SyncVersions)
		version, tag := entities.LatestVersion(tags, prefix, input.Preid != "")
		if version == "" {
			version = entities.InitialVersion
		}

		commits, err := it.qualifyingCommits(ctx, tag, root.RootPath, preset, input.SkipCommitTypes)
		if err != nil {
			return nil, err
		}
		bump := entities.ClassifyCommits(commits)
		if bump == entities.BumpNone {
			continue
		}

		next, err := entities.AutomaticBump(version, bump, input.Preid)
		if err != nil {
			return nil, fmt.Errorf("%w: dependency %q: %w", entities.ErrBumpCalculation, root.ProjectName, err)
		}
		updates = append(updates, entities.DependencyUpdate{ProjectName: root.ProjectName, NewVersion: next})
	}
	return updates, nil
}

func (it *BumpCalculator) qualifyingCommits(
	ctx context.Context,
	ref, path string,
	preset entities.Preset,
	skipCommitTypes []string,
) ([]entities.Commit, error) {
	commits, err := readCommits(ctx, it.git, ref, path, preset)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", entities.ErrBumpCalculation, err)
	}
	return entities.FilterCommits(commits, skipCommitTypes), nil
}

// emptyReleaseVersion is the version re-emitted by an empty release.
func emptyReleaseVersion(lastVersion, preid string) (string, error) {
	if preid == "" {
		return lastVersion, nil
	}
	return entities.IncrementVersion(lastVersion, entities.ReleasePrerelease, preid)
}

// readCommits reads the commits after ref touching path and classifies them with preset.
func readCommits(
	ctx context.Context,
	git repositories.GitRepository,
	ref, path string,
	preset entities.Preset,
) ([]entities.Commit, error) {
	raw, err := git.CommitsSince(ctx, ref, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read commits since %q: %w", ref, err)
	}
	commits := make([]entities.Commit, 0, len(raw))
	for _, commit := range raw {
		commits = append(commits, preset.ParseCommit(commit.Hash, commit.Message))
	}
	return commits, nil
}

// notify emits a step event when an observer is attached.
func notify(observer entities.Observer, projectName, step string, level entities.StepLevel, message string) {
	if observer == nil {
		return
	}
	observer.Notify(entities.StepEvent{
		Step:        step,
		Level:       level,
		Message:     message,
		ProjectName: projectName,
	})
}
