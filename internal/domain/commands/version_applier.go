package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/releaser/internal/domain/entities"
	"github.com/rios0rios0/releaser/internal/domain/repositories"
	infraRepos "github.com/rios0rios0/releaser/internal/infrastructure/repositories"
)

const changelogFileMode = 0o644

// CommonVersionOptions is shared by the project and workspace variants of the pipeline.
type CommonVersionOptions struct {
	ProjectName string
	// ProjectRoot is relative to the workspace root.
	ProjectRoot   string
	Version       string
	Tag           string
	CommitMessage string
	// Changelog holds the notes and the changelog file they go to: the
	// workspace root changelog in sync mode, the project changelog otherwise.
	// Dependency updates reach the release through its notes.
	Changelog entities.ChangelogResult

	DryRun               bool
	NoVerify             bool
	SkipCommit           bool
	SkipProjectChangelog bool
	SkipRootChangelog    bool

	PreCommitTargets  []string
	PostCommitTargets []string
	TemplateContext   entities.TemplateContext
	Observer          entities.Observer
}

// VersionApplier writes the release to the working tree and records it in version control.
type VersionApplier struct {
	git       repositories.GitRepository
	workspace repositories.WorkspaceRepository
	manifests *infraRepos.ManifestRegistry
	runner    *TargetRunner
}

// NewVersionApplier creates a new VersionApplier.
func NewVersionApplier(
	git repositories.GitRepository,
	workspace repositories.WorkspaceRepository,
	manifests *infraRepos.ManifestRegistry,
	runner *TargetRunner,
) *VersionApplier {
	return &VersionApplier{
		git:       git,
		workspace: workspace,
		manifests: manifests,
		runner:    runner,
	}
}

// VersionProject releases a single project: manifest, project changelog,
// pre-commit targets, commit, tag and post-commit targets, in this order.
// A dry run only returns the notes.
func (it *VersionApplier) VersionProject(ctx context.Context, opts CommonVersionOptions) (string, error) {
	if opts.DryRun {
		logger.Infof("[dry-run] Would release %q as %s with tag %q", opts.ProjectName, opts.Version, opts.Tag)
		return opts.Changelog.Notes, nil
	}

	var written []string
	path, err := it.writeManifest(opts, opts.ProjectRoot, opts.Version)
	if err != nil {
		return "", err
	}
	written = appendPath(written, path)

	if !opts.SkipProjectChangelog {
		if path, err = it.writeChangelog(opts, opts.Changelog.Path); err != nil {
			return "", err
		}
		written = appendPath(written, path)
	}

	if err = it.commitAndTag(ctx, opts, written); err != nil {
		return "", err
	}
	return opts.Changelog.Notes, nil
}

// VersionWorkspace releases a synchronized workspace: every project manifest
// gets the shared version, the root changelog and the project changelog are
// written, then the same commit and tag sequence as VersionProject follows.
func (it *VersionApplier) VersionWorkspace(ctx context.Context, opts CommonVersionOptions) (string, error) {
	if opts.DryRun {
		logger.Infof("[dry-run] Would release workspace as %s with tag %q", opts.Version, opts.Tag)
		return opts.Changelog.Notes, nil
	}

	projects, err := it.workspace.Projects(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to read workspace projects: %w", err)
	}
	names := make([]string, 0, len(projects))
	for name := range projects {
		names = append(names, name)
	}
	slices.Sort(names)

	var written []string
	for _, name := range names {
		path, writeErr := it.writeManifest(opts, projects[name].Root, opts.Version)
		if writeErr != nil {
			return "", fmt.Errorf("project %q: %w", name, writeErr)
		}
		written = appendPath(written, path)
	}

	rootChangelog := entities.ChangelogPath(it.workspace.Root())
	if !opts.SkipRootChangelog {
		path, writeErr := it.writeChangelog(opts, rootChangelog)
		if writeErr != nil {
			return "", writeErr
		}
		written = appendPath(written, path)
	}

	projectChangelog := entities.ChangelogPath(filepath.Join(it.workspace.Root(), opts.ProjectRoot))
	if !opts.SkipProjectChangelog && projectChangelog != rootChangelog {
		path, writeErr := it.writeChangelog(opts, projectChangelog)
		if writeErr != nil {
			return "", writeErr
		}
		written = appendPath(written, path)
	}

	if err = it.commitAndTag(ctx, opts, written); err != nil {
		return "", err
	}
	return opts.Changelog.Notes, nil
}

func (it *VersionApplier) commitAndTag(ctx context.Context, opts CommonVersionOptions, written []string) error {
	targets := RunTargetsInput{
		Context:     opts.TemplateContext,
		ProjectName: opts.ProjectName,
		Observer:    opts.Observer,
	}

	targets.Targets = opts.PreCommitTargets
	if err := it.runner.Run(ctx, targets); err != nil {
		return err
	}

	if !opts.SkipCommit {
		paths, err := relativePaths(it.workspace.Root(), written)
		if err != nil {
			return err
		}
		commit := entities.CommitInput{Message: opts.CommitMessage, Paths: paths, NoVerify: opts.NoVerify}
		if err = it.git.Commit(ctx, commit); err != nil {
			return fmt.Errorf("%w: failed to commit: %w", entities.ErrGitOperation, err)
		}
		notify(opts.Observer, opts.ProjectName, entities.StepCommitSuccess, entities.LevelInfo,
			fmt.Sprintf("Committed changes with message %q", opts.CommitMessage))
	}

	// the commit is kept when tagging fails
	tag := entities.TagInput{Name: opts.Tag, Message: opts.CommitMessage}
	if err := it.git.CreateTag(ctx, tag); err != nil {
		return fmt.Errorf("%w: failed to create tag %q: %w", entities.ErrGitOperation, opts.Tag, err)
	}
	notify(opts.Observer, opts.ProjectName, entities.StepTagSuccess, entities.LevelInfo,
		fmt.Sprintf("Tagged release with %s", opts.Tag))

	targets.Targets = opts.PostCommitTargets
	return it.runner.Run(ctx, targets)
}

// writeManifest records the version in the first manifest found in the project
// root and returns the written file, or "" when the project has no manifest.
func (it *VersionApplier) writeManifest(opts CommonVersionOptions, projectRoot, version string) (string, error) {
	dir := filepath.Join(it.workspace.Root(), projectRoot)
	manifest, ok := it.manifests.Detect(dir)
	if !ok {
		notify(opts.Observer, opts.ProjectName, entities.StepManifestSuccess, entities.LevelInfo,
			fmt.Sprintf("No manifest (%s) found in %q, skipping version update",
				strings.Join(it.manifests.Names(), ", "), dir))
		return "", nil
	}

	previous, readErr := manifest.ReadVersion(dir)
	if readErr != nil {
		logger.Debugf("Failed to read the current %s version in %q: %v", manifest.Name(), dir, readErr)
	}

	path, err := manifest.WriteVersion(dir, version)
	if err != nil {
		return "", fmt.Errorf("failed to write %s version in %q: %w", manifest.Name(), dir, err)
	}
	message := fmt.Sprintf("Updated %s to version %s", path, version)
	if previous != "" {
		message = fmt.Sprintf("Updated %s from version %s to %s", path, previous, version)
	}
	notify(opts.Observer, opts.ProjectName, entities.StepManifestSuccess, entities.LevelInfo, message)
	return path, nil
}

// writeChangelog inserts the release notes into the changelog at path.
func (it *VersionApplier) writeChangelog(opts CommonVersionOptions, path string) (string, error) {
	if opts.Changelog.IsEmpty() || path == "" {
		return "", nil
	}

	existing, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return "", fmt.Errorf("failed to read changelog %q: %w", path, err)
	}
	if err = os.MkdirAll(filepath.Dir(path), 0o755); err != nil { //nolint:mnd // directory permissions
		return "", fmt.Errorf("failed to create changelog directory: %w", err)
	}
	if err = os.WriteFile(path, []byte(opts.Changelog.Render(string(existing))), changelogFileMode); err != nil {
		return "", fmt.Errorf("failed to write changelog %q: %w", path, err)
	}

	notify(opts.Observer, opts.ProjectName, entities.StepChangelogSuccess, entities.LevelInfo,
		fmt.Sprintf("Generated changelog %s", path))
	return path, nil
}

func appendPath(paths []string, path string) []string {
	if path == "" || slices.Contains(paths, path) {
		return paths
	}
	return append(paths, path)
}

// relativePaths converts absolute paths to slash-separated paths relative to root.
func relativePaths(root string, paths []string) ([]string, error) {
	result := make([]string, 0, len(paths))
	for _, path := range paths {
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return nil, fmt.Errorf("path %q is outside the workspace: %w", path, err)
		}
		result = append(result, filepath.ToSlash(rel))
	}
	return result, nil
}
