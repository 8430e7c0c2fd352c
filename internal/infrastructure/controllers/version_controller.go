package controllers

import (
	"context"
	"fmt"
	"os"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/rios0rios0/releaser/internal/domain/commands"
	"github.com/rios0rios0/releaser/internal/domain/entities"
	"github.com/rios0rios0/releaser/internal/infrastructure/observers"
)

// VersionController handles the "version" subcommand.
type VersionController struct {
	command  commands.Version
	settings *entities.Settings
	metrics  *observers.MetricsObserver
	exit     func(code int)
}

// NewVersionController creates a new VersionController.
func NewVersionController(
	command commands.Version,
	settings *entities.Settings,
	metrics *observers.MetricsObserver,
) *VersionController {
	return &VersionController{
		command:  command,
		settings: settings,
		metrics:  metrics,
		exit:     os.Exit,
	}
}

// GetBind returns the Cobra command metadata for the version controller.
func (it *VersionController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "version <project>",
		Short: "Release the next version of a workspace project",
		Long: `Compute the next semantic version of a project from its commit history
(and, with --track-deps, the history of the projects it depends on), then
write the manifest and changelog, commit, tag, optionally push, and run the
configured post targets.

Defaults are read from the "release" section of the config file; flags
override them.`,
	}
}

// AddFlags registers the release flags on the subcommand.
func (it *VersionController) AddFlags(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.Bool("dry-run", false, "Compute the release without writing files, committing, pushing or running targets")
	flags.Bool("push", false, "Push the branch and tag after the release")
	flags.String("remote", "", "Remote to push to (default: origin)")
	flags.String("base-branch", "", "Branch to push (default: main)")
	flags.Bool("no-verify", false, "Skip git hooks")
	flags.Bool("sync-versions", false, "Release every workspace project with one shared version")
	flags.Bool("track-deps", false, "Count the commits of the projects this project depends on")
	flags.String("release-as", "", "Explicit release type or version (major, minor, patch, pre*, or x.y.z)")
	flags.String("preid", "", "Prerelease identifier (e.g. beta)")
	flags.String("tag-prefix", "", "Tag prefix template, may use {{projectName}}")
	flags.String("preset", "", "Commit convention: angular or conventionalcommits")
	flags.Bool("allow-empty-release", false, "Release even when no commit qualifies")
	flags.Bool("skip-commit", false, "Do not create the release commit")
	flags.StringSlice("skip-commit-types", nil, "Commit types ignored for the release decision")
	flags.Bool("skip-root-changelog", false, "Do not write the workspace changelog")
	flags.Bool("skip-project-changelog", false, "Do not write the project changelog")
	flags.String("commit-message-format", "", "Commit message template, may use {{projectName}} and {{version}}")
	flags.String("changelog-header", "", "Changelog header (default: # Changelog)")
	flags.StringSlice("post-targets", nil, "Targets run after the release (project:target[:configuration])")
	flags.StringSlice("pre-commit-targets", nil, "Targets run before the release commit")
	flags.StringSlice("post-commit-targets", nil, "Targets run after the release tag")
	flags.String("metrics-file", "", "Write step event metrics to this file")
}

// Execute runs a release of the project given as argument.
func (it *VersionController) Execute(cmd *cobra.Command, args []string) {
	ctx := context.Background()

	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		logger.SetLevel(logger.DebugLevel)
	}
	if len(args) == 0 {
		logger.Error("missing project name: releaser version <project>")
		it.exit(1)
		return
	}

	if configPath, _ := cmd.Flags().GetString("config"); configPath != "" {
		settings, err := entities.NewSettings(configPath)
		if err != nil {
			logger.Errorf("failed to load config: %v", err)
			it.exit(1)
			return
		}
		logger.Infof("Using config file: %s", configPath)
		*it.settings = *settings
	}

	opts := it.settings.Release
	applyFlags(cmd.Flags(), &opts)

	result := it.command.Execute(ctx, args[0], opts)
	if summary, ok := warningSummary(it.metrics, args[0]); ok {
		logger.Warn(summary)
	}

	if metricsFile, _ := cmd.Flags().GetString("metrics-file"); metricsFile != "" {
		if err := it.metrics.WriteTextfile(metricsFile); err != nil {
			logger.Warnf("%v", err)
		}
	}

	if !result.Success {
		it.exit(1)
	}
}

// warningSummary describes the warnings emitted by the run, which do not fail it.
func warningSummary(metrics *observers.MetricsObserver, projectName string) (string, bool) {
	warnings := int(metrics.Count(entities.StepWarning, entities.LevelWarning))
	if warnings == 0 {
		return "", false
	}
	return fmt.Sprintf("Release of %q finished with %d warning(s)", projectName, warnings), true
}

// applyFlags overrides the configured options with the flags set on the command line.
func applyFlags(flags *pflag.FlagSet, opts *entities.ReleaseOptions) {
	boolFlags := map[string]*bool{
		"dry-run":                &opts.DryRun,
		"push":                   &opts.Push,
		"no-verify":              &opts.NoVerify,
		"sync-versions":          &opts.SyncVersions,
		"track-deps":             &opts.TrackDeps,
		"allow-empty-release":    &opts.AllowEmptyRelease,
		"skip-commit":            &opts.SkipCommit,
		"skip-root-changelog":    &opts.SkipRootChangelog,
		"skip-project-changelog": &opts.SkipProjectChangelog,
	}
	for name, target := range boolFlags {
		if flags.Changed(name) {
			*target, _ = flags.GetBool(name)
		}
	}

	stringFlags := map[string]*string{
		"remote":                &opts.Remote,
		"base-branch":           &opts.BaseBranch,
		"release-as":            &opts.ReleaseAs,
		"preid":                 &opts.Preid,
		"preset":                &opts.Preset,
		"commit-message-format": &opts.CommitMessageFormat,
		"changelog-header":      &opts.ChangelogHeader,
	}
	for name, target := range stringFlags {
		if flags.Changed(name) {
			*target, _ = flags.GetString(name)
		}
	}

	sliceFlags := map[string]*[]string{
		"skip-commit-types":   &opts.SkipCommitTypes,
		"post-targets":        &opts.PostTargets,
		"pre-commit-targets":  &opts.PreCommitTargets,
		"post-commit-targets": &opts.PostCommitTargets,
	}
	for name, target := range sliceFlags {
		if flags.Changed(name) {
			*target, _ = flags.GetStringSlice(name)
		}
	}

	if flags.Changed("tag-prefix") {
		prefix, _ := flags.GetString("tag-prefix")
		opts.VersionTagPrefix = &prefix
		opts.TagPrefix = nil
	}
}
