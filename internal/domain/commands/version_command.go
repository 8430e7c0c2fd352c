package commands

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/google/uuid"
	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/releaser/internal/domain/entities"
	"github.com/rios0rios0/releaser/internal/domain/repositories"
)

// Version is the interface for the release command.
type Version interface {
	Execute(ctx context.Context, projectName string, opts entities.ReleaseOptions) entities.RunResult
}

// VersionCommand runs one release of a project: resolve dependency roots,
// compute the version, render the changelog, apply the version, then push
// and run the post targets. Failures are reported to the observer, never returned.
type VersionCommand struct {
	workspace  repositories.WorkspaceRepository
	resolver   *DependencyResolver
	calculator *BumpCalculator
	changelog  *ChangelogGenerator
	applier    *VersionApplier
	pusher     *Pusher
	runner     *TargetRunner
	observer   entities.Observer
	newRunID   func() string
}

// NewVersionCommand creates a new VersionCommand.
func NewVersionCommand(
	workspace repositories.WorkspaceRepository,
	resolver *DependencyResolver,
	calculator *BumpCalculator,
	changelog *ChangelogGenerator,
	applier *VersionApplier,
	pusher *Pusher,
	runner *TargetRunner,
	observer entities.Observer,
) *VersionCommand {
	return &VersionCommand{
		workspace:  workspace,
		resolver:   resolver,
		calculator: calculator,
		changelog:  changelog,
		applier:    applier,
		pusher:     pusher,
		runner:     runner,
		observer:   observer,
		newRunID:   uuid.NewString,
	}
}

// Execute releases projectName. The result is successful when a release was
// applied or when nothing changed since the last one.
func (it *VersionCommand) Execute(
	ctx context.Context,
	projectName string,
	opts entities.ReleaseOptions,
) (result entities.RunResult) {
	observer := it.runObserver(it.newRunID(), projectName)

	defer func() {
		if recovered := recover(); recovered != nil {
			notify(observer, projectName, entities.StepFailure, entities.LevelError,
				fmt.Sprintf("unexpected failure: %v", recovered))
			result = entities.RunResult{Success: false}
		}
	}()

	if err := it.release(ctx, projectName, opts.Normalize(), observer); err != nil {
		notify(observer, projectName, entities.StepFailure, entities.LevelError, err.Error())
		return entities.RunResult{Success: false}
	}
	return entities.RunResult{Success: true}
}

func (it *VersionCommand) release(
	ctx context.Context,
	projectName string,
	opts entities.ReleaseOptions,
	observer entities.Observer,
) error {
	project, err := it.workspace.Project(ctx, projectName)
	if err != nil {
		return err
	}

	roots, err := it.resolver.Resolve(ctx, projectName, opts.ReleaseAs, opts.TrackDeps)
	if err != nil {
		return err
	}

	tagPrefix := entities.FormatTagPrefix(opts.VersionTagPrefix, projectName, opts.SyncVersions)
	decision, err := it.calculator.Compute(ctx, BumpInput{
		ProjectName:       projectName,
		ProjectRoot:       project.Root,
		DependencyRoots:   roots,
		Preset:            opts.Preset,
		TagPrefix:         tagPrefix,
		VersionTagPrefix:  opts.VersionTagPrefix,
		ReleaseType:       opts.ReleaseAs,
		Preid:             opts.Preid,
		SyncVersions:      opts.SyncVersions,
		AllowEmptyRelease: opts.AllowEmptyRelease,
		SkipCommitTypes:   opts.SkipCommitTypes,
		Observer:          observer,
	})
	if err != nil {
		return err
	}

	changelog, err := it.changelog.Generate(ctx, it.changelogInput(decision, project, opts))
	if err != nil {
		return err
	}

	if !decision.HasVersion() {
		notify(observer, projectName, entities.StepNothingChanged, entities.LevelInfo,
			"Nothing changed since last release.")
		return nil
	}
	notify(observer, projectName, entities.StepCalculateVersionSuccess, entities.LevelInfo,
		fmt.Sprintf("Calculated new version %q.", decision.Version))

	tag := entities.FormatTag(tagPrefix, decision.Version)
	commitMessage := entities.FormatCommitMessage(opts.CommitMessageFormat, projectName, decision.Version)
	templateContext := entities.TemplateContext{
		"notes":           changelog.Notes,
		"version":         decision.Version,
		"projectName":     projectName,
		"tag":             tag,
		"dryRun":          opts.DryRun,
		"previousVersion": decision.PreviousVersion,
	}

	common := CommonVersionOptions{
		ProjectName:          projectName,
		ProjectRoot:          project.Root,
		Version:              decision.Version,
		Tag:                  tag,
		CommitMessage:        commitMessage,
		Changelog:            changelog,
		DryRun:               opts.DryRun,
		NoVerify:             opts.NoVerify,
		SkipCommit:           opts.SkipCommit,
		SkipProjectChangelog: opts.SkipProjectChangelog,
		SkipRootChangelog:    opts.SkipRootChangelog,
		PreCommitTargets:     opts.PreCommitTargets,
		PostCommitTargets:    opts.PostCommitTargets,
		TemplateContext:      templateContext,
		Observer:             observer,
	}

	var notes string
	if opts.SyncVersions {
		notes, err = it.applier.VersionWorkspace(ctx, common)
	} else {
		notes, err = it.applier.VersionProject(ctx, common)
	}
	if err != nil {
		return err
	}

	if opts.DryRun {
		logger.Infof("[dry-run] Skipping push and post targets for %q", projectName)
		return nil
	}

	if opts.Push {
		pushErr := it.pusher.Push(ctx, entities.PushInput{
			ProjectName: projectName,
			Remote:      opts.Remote,
			Branch:      opts.BaseBranch,
			Tag:         tag,
			NoVerify:    opts.NoVerify,
		}, observer)
		if pushErr != nil {
			return pushErr
		}
		notify(observer, projectName, entities.StepPushSuccess, entities.LevelInfo,
			fmt.Sprintf("Pushed %s to %s", tag, opts.Remote))
	}

	if len(opts.PostTargets) > 0 {
		templateContext["notes"] = notes
		runErr := it.runner.Run(ctx, RunTargetsInput{
			Targets:     opts.PostTargets,
			Context:     templateContext,
			ProjectName: projectName,
			Observer:    observer,
		})
		if runErr != nil {
			return runErr
		}
		notify(observer, projectName, entities.StepPostTargetsSuccess, entities.LevelInfo,
			"Successfully ran post targets.")
	}

	return nil
}

// changelogInput scopes the notes to the workspace in sync mode and to the project otherwise.
func (it *VersionCommand) changelogInput(
	decision entities.VersionDecision,
	project entities.Project,
	opts entities.ReleaseOptions,
) ChangelogInput {
	input := ChangelogInput{
		Decision:        decision,
		Header:          opts.ChangelogHeader,
		Path:            entities.ChangelogPath(filepath.Join(it.workspace.Root(), project.Root)),
		Scope:           project.Root,
		Preset:          opts.Preset,
		SkipCommitTypes: opts.SkipCommitTypes,
	}
	if opts.SyncVersions {
		input.Path = entities.ChangelogPath(it.workspace.Root())
		input.Scope = ""
	}
	return input
}

// runObserver stamps the run ID and project name on every event.
func (it *VersionCommand) runObserver(runID, projectName string) entities.Observer {
	return entities.ObserverFunc(func(event entities.StepEvent) {
		event.RunID = runID
		if event.ProjectName == "" {
			event.ProjectName = projectName
		}
		if it.observer != nil {
			it.observer.Notify(event)
		}
	})
}
