//go:build unit

package commands_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/releaser/internal/domain/commands"
	"github.com/rios0rios0/releaser/internal/domain/entities"
	infraRepos "github.com/rios0rios0/releaser/internal/infrastructure/repositories"
	"github.com/rios0rios0/releaser/test/domain/entitybuilders"
	"github.com/rios0rios0/releaser/test/domain/entitydoubles"
	"github.com/rios0rios0/releaser/test/infrastructure/repositorydoubles"
)

type commandFixture struct {
	root      string
	git       *repositorydoubles.SpyGitRepository
	workspace *repositorydoubles.StubWorkspaceRepository
	executor  *repositorydoubles.SpyTargetExecutorRepository
	observer  *entitydoubles.RecordingObserver
	command   *commands.VersionCommand
}

func newCommandFixture(t *testing.T) *commandFixture {
	t.Helper()

	root := t.TempDir()
	fixture := &commandFixture{
		root: root,
		git:  &repositorydoubles.SpyGitRepository{TagList: []string{"app-1.0.0", "lib-0.3.0"}},
		workspace: repositorydoubles.NewStubWorkspaceRepository(root,
			entitybuilders.NewProjectBuilder().
				WithDependencies("lib").
				WithTarget("deploy", "spy", entities.Mapping(entities.Entry("tag", entities.Scalar("{{tag}}")))).
				WithTarget("notify", "spy", entities.Mapping(entities.Entry("notes", entities.Scalar("{{notes}}")))).
				BuildProject(),
			entitybuilders.NewProjectBuilder().WithName("lib").WithRoot("libs/lib").BuildProject(),
		),
		executor: &repositorydoubles.SpyTargetExecutorRepository{ExecutorName: "spy"},
		observer: &entitydoubles.RecordingObserver{},
	}

	executors := infraRepos.NewExecutorRegistry()
	executors.Register(fixture.executor)
	runner := commands.NewTargetRunner(fixture.workspace, executors)

	fixture.command = commands.NewVersionCommand(
		fixture.workspace,
		commands.NewDependencyResolver(fixture.workspace),
		commands.NewBumpCalculator(fixture.git),
		commands.NewChangelogGenerator(fixture.git),
		commands.NewVersionApplier(fixture.git, fixture.workspace, infraRepos.NewManifestRegistry(), runner),
		commands.NewPusher(fixture.git),
		runner,
		fixture.observer,
	)
	commands.SetRunIDGenerator(fixture.command, func() string { return "run-1" })
	return fixture
}

func (f *commandFixture) withAppCommits(messages ...string) {
	commits := make([]entities.Commit, 0, len(messages))
	for i, message := range messages {
		commits = append(commits, repositorydoubles.NewCommit(string(rune('a'+i))+"000000", message))
	}
	if f.git.Commits == nil {
		f.git.Commits = make(map[string][]entities.Commit)
	}
	f.git.Commits["apps/app"] = commits
}

func TestVersionCommand_Execute(t *testing.T) {
	t.Parallel()

	t.Run("should succeed without side effects when nothing changed", func(t *testing.T) {
		t.Parallel()

		// given
		fixture := newCommandFixture(t)
		opts := entitybuilders.NewReleaseOptionsBuilder().
			WithPush(true).
			WithPostTargets("app:notify").
			BuildReleaseOptions()

		// when
		result := fixture.command.Execute(context.Background(), "app", opts)

		// then
		assert.True(t, result.Success)
		assert.Zero(t, fixture.git.MutationCount())
		assert.Empty(t, fixture.executor.Requests)
		assert.Equal(t, []string{entities.StepNothingChanged}, fixture.observer.Steps())
		event, _ := fixture.observer.Find(entities.StepNothingChanged)
		assert.Equal(t, "Nothing changed since last release.", event.Message)
		assert.Equal(t, "app", event.ProjectName)
		assert.Equal(t, "run-1", event.RunID)
	})

	t.Run("should release a major version for breaking changes", func(t *testing.T) {
		t.Parallel()

		// given
		fixture := newCommandFixture(t)
		fixture.withAppCommits("feat!: new config format", "fix: typo")
		opts := entitybuilders.NewReleaseOptionsBuilder().
			WithPreset("conventionalcommits").
			BuildReleaseOptions()

		// when
		result := fixture.command.Execute(context.Background(), "app", opts)

		// then
		require.True(t, result.Success)
		assert.Equal(t, []entities.TagInput{{
			Name:    "app-2.0.0",
			Message: "chore(app): release version 2.0.0",
		}}, fixture.git.TagCalls)
		assert.Equal(t, []string{"apps/app/CHANGELOG.md"}, fixture.git.CommitCalls[0].Paths)

		content, err := os.ReadFile(filepath.Join(fixture.root, "apps/app", entities.ChangelogFileName))
		require.NoError(t, err)
		assert.Contains(t, string(content), "## 2.0.0 (")
		assert.Contains(t, string(content), "### ⚠ BREAKING CHANGES\n\n* new config format\n")
		assert.Empty(t, fixture.git.PushCalls)
	})

	t.Run("should report nothing changed when every commit type is skipped", func(t *testing.T) {
		t.Parallel()

		// given
		fixture := newCommandFixture(t)
		fixture.withAppCommits("chore: bump tooling", "chore(ci): cache")
		opts := entitybuilders.NewReleaseOptionsBuilder().WithSkipCommitTypes("chore").BuildReleaseOptions()

		// when
		result := fixture.command.Execute(context.Background(), "app", opts)

		// then
		assert.True(t, result.Success)
		assert.Contains(t, fixture.observer.Steps(), entities.StepNothingChanged)
		assert.Zero(t, fixture.git.MutationCount())
	})

	t.Run("should release a patch with one dependency update when only a dependency changed", func(t *testing.T) {
		t.Parallel()

		// given
		fixture := newCommandFixture(t)
		fixture.git.Commits = map[string][]entities.Commit{
			"libs/lib": {repositorydoubles.NewCommit("b000000", "fix: lib bug")},
		}
		opts := entitybuilders.NewReleaseOptionsBuilder().WithTrackDeps(true).BuildReleaseOptions()

		// when
		result := fixture.command.Execute(context.Background(), "app", opts)

		// then
		require.True(t, result.Success)
		assert.Equal(t, "app-1.0.1", fixture.git.TagCalls[0].Name)
		content, err := os.ReadFile(filepath.Join(fixture.root, "apps/app", entities.ChangelogFileName))
		require.NoError(t, err)
		assert.Contains(t, string(content), "### Dependency Updates\n\n* `lib` updated to version `0.3.1`\n")
	})

	t.Run("should push and run post targets after a release", func(t *testing.T) {
		t.Parallel()

		// given
		fixture := newCommandFixture(t)
		fixture.withAppCommits("feat: dark mode")
		opts := entitybuilders.NewReleaseOptionsBuilder().
			WithPush(true).
			WithPostTargets("app:deploy", "app:notify").
			BuildReleaseOptions()

		// when
		result := fixture.command.Execute(context.Background(), "app", opts)

		// then
		require.True(t, result.Success)
		assert.Equal(t, []entities.PushInput{{ProjectName: "app", Remote: "origin", Branch: "main", Tag: "app-1.1.0"}}, fixture.git.PushCalls)
		assert.Equal(t, []string{"app:deploy", "app:notify"}, fixture.executor.ExecutedTargets())

		tag, _ := fixture.executor.Requests[0].Options.Lookup("tag")
		assert.Equal(t, "app-1.1.0", tag.Value)
		notes, _ := fixture.executor.Requests[1].Options.Lookup("notes")
		assert.Contains(t, notes.Value, "* dark mode (a000000)")

		assert.Equal(t, []string{
			entities.StepCalculateVersionSuccess,
			entities.StepManifestSuccess,
			entities.StepChangelogSuccess,
			entities.StepCommitSuccess,
			entities.StepTagSuccess,
			entities.StepPushSuccess,
			entities.StepRunTargetSuccess,
			entities.StepRunTargetSuccess,
			entities.StepPostTargetsSuccess,
		}, fixture.observer.Steps())
		for _, event := range fixture.observer.Events {
			assert.Equal(t, "run-1", event.RunID)
		}
	})

	t.Run("should neither push nor run post targets in dry run", func(t *testing.T) {
		t.Parallel()

		// given
		fixture := newCommandFixture(t)
		fixture.withAppCommits("feat: dark mode")
		opts := entitybuilders.NewReleaseOptionsBuilder().
			WithDryRun(true).
			WithPush(true).
			WithPostTargets("app:notify").
			BuildReleaseOptions()

		// when
		result := fixture.command.Execute(context.Background(), "app", opts)

		// then
		assert.True(t, result.Success)
		assert.Zero(t, fixture.git.MutationCount())
		assert.Empty(t, fixture.executor.Requests)
		assert.NoFileExists(t, filepath.Join(fixture.root, "apps/app", entities.ChangelogFileName))
		assert.Equal(t, []string{entities.StepCalculateVersionSuccess}, fixture.observer.Steps())
	})

	t.Run("should fail and skip the remaining targets when a post target fails", func(t *testing.T) {
		t.Parallel()

		// given
		fixture := newCommandFixture(t)
		fixture.withAppCommits("fix: crash")
		fixture.executor.Results = map[string][]entities.TargetResult{
			"app:deploy": {{Success: false, Err: errors.New("exit status 1")}},
		}
		opts := entitybuilders.NewReleaseOptionsBuilder().
			WithPostTargets("app:deploy", "app:notify").
			BuildReleaseOptions()

		// when
		result := fixture.command.Execute(context.Background(), "app", opts)

		// then
		assert.False(t, result.Success)
		assert.Equal(t, []string{"app:deploy"}, fixture.executor.ExecutedTargets())
		failure, found := fixture.observer.Find(entities.StepFailure)
		require.True(t, found)
		assert.Equal(t, entities.LevelError, failure.Level)
		assert.Contains(t, failure.Message, "app:deploy")
		assert.NotContains(t, fixture.observer.Steps(), entities.StepPostTargetsSuccess)
	})

	t.Run("should fail with the available projects for an unknown post target project", func(t *testing.T) {
		t.Parallel()

		// given
		fixture := newCommandFixture(t)
		fixture.withAppCommits("fix: crash")
		opts := entitybuilders.NewReleaseOptionsBuilder().WithPostTargets("ghost:build").BuildReleaseOptions()

		// when
		result := fixture.command.Execute(context.Background(), "app", opts)

		// then
		assert.False(t, result.Success)
		assert.Empty(t, fixture.executor.Requests)
		failure, found := fixture.observer.Find(entities.StepFailure)
		require.True(t, found)
		assert.Contains(t, failure.Message, `the target project "ghost" does not exist in your workspace`)
		assert.Contains(t, failure.Message, `"app", "lib"`)
	})

	t.Run("should report git failures through the observer", func(t *testing.T) {
		t.Parallel()

		// given
		fixture := newCommandFixture(t)
		fixture.git.TagsErr = errors.New("not a git repository")
		opts := entitybuilders.NewReleaseOptionsBuilder().BuildReleaseOptions()

		// when
		result := fixture.command.Execute(context.Background(), "app", opts)

		// then
		assert.False(t, result.Success)
		failure, found := fixture.observer.Find(entities.StepFailure)
		require.True(t, found)
		assert.Contains(t, failure.Message, "not a git repository")
	})

	t.Run("should fail for an undeclared project", func(t *testing.T) {
		t.Parallel()

		// given
		fixture := newCommandFixture(t)
		opts := entitybuilders.NewReleaseOptionsBuilder().BuildReleaseOptions()

		// when
		result := fixture.command.Execute(context.Background(), "ghost", opts)

		// then
		assert.False(t, result.Success)
		assert.Equal(t, []string{entities.StepFailure}, fixture.observer.Steps())
	})

	t.Run("should release the whole workspace with v tags in sync mode", func(t *testing.T) {
		t.Parallel()

		// given
		fixture := newCommandFixture(t)
		fixture.git.TagList = []string{"v2.3.0"}
		fixture.git.Commits = map[string][]entities.Commit{
			"": {repositorydoubles.NewCommit("c000000", "feat: shared feature")},
		}
		opts := entitybuilders.NewReleaseOptionsBuilder().WithSyncVersions(true).BuildReleaseOptions()

		// when
		result := fixture.command.Execute(context.Background(), "app", opts)

		// then
		require.True(t, result.Success)
		assert.Equal(t, "v2.4.0", fixture.git.TagCalls[0].Name)
		assert.FileExists(t, filepath.Join(fixture.root, entities.ChangelogFileName))
		assert.FileExists(t, filepath.Join(fixture.root, "apps/app", entities.ChangelogFileName))
	})
}

func TestVersionCommand_ChangelogInput(t *testing.T) {
	t.Parallel()

	t.Run("should scope the notes to the project by default and to the workspace in sync mode", func(t *testing.T) {
		t.Parallel()

		// given
		fixture := newCommandFixture(t)
		project := entitybuilders.NewProjectBuilder().BuildProject()
		decision := entities.VersionDecision{Version: "1.0.0"}

		// when
		independent := commands.ChangelogInputFor(fixture.command, decision, project, entities.ReleaseOptions{})
		synchronized := commands.ChangelogInputFor(fixture.command, decision, project,
			entities.ReleaseOptions{SyncVersions: true})

		// then
		assert.Equal(t, "apps/app", independent.Scope)
		assert.Equal(t, filepath.Join(fixture.root, "apps/app", entities.ChangelogFileName), independent.Path)
		assert.Empty(t, synchronized.Scope)
		assert.Equal(t, filepath.Join(fixture.root, entities.ChangelogFileName), synchronized.Path)
	})
}
