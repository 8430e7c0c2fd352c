//go:build unit

package commands_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/releaser/internal/domain/commands"
	"github.com/rios0rios0/releaser/internal/domain/entities"
	"github.com/rios0rios0/releaser/test/domain/entitydoubles"
	"github.com/rios0rios0/releaser/test/infrastructure/repositorydoubles"
)

func newBumpInput() commands.BumpInput {
	return commands.BumpInput{
		ProjectName: "app",
		ProjectRoot: "apps/app",
		Preset:      string(entities.PresetAngular),
		TagPrefix:   "app-",
	}
}

func TestBumpCalculator_Compute(t *testing.T) {
	t.Parallel()

	t.Run("should bump major for breaking changes", func(t *testing.T) {
		t.Parallel()

		// given
		git := &repositorydoubles.SpyGitRepository{
			TagList: []string{"app-1.2.3"},
			Commits: map[string][]entities.Commit{"apps/app": {
				repositorydoubles.NewCommit("a1", "fix: small"),
				repositorydoubles.NewCommit("a2", "feat: api\n\nBREAKING CHANGE: new api"),
			}},
		}
		calculator := commands.NewBumpCalculator(git)

		// when
		decision, err := calculator.Compute(context.Background(), newBumpInput())

		// then
		require.NoError(t, err)
		assert.Equal(t, "2.0.0", decision.Version)
		assert.Equal(t, "1.2.3", decision.PreviousVersion)
		assert.Equal(t, "app-1.2.3", decision.PreviousTag)
		assert.Equal(t, []repositorydoubles.CommitsSinceCall{{Ref: "app-1.2.3", Path: "apps/app"}}, git.CommitsSinceCalls)
	})

	t.Run("should be absent when every commit type is skipped", func(t *testing.T) {
		t.Parallel()

		// given
		git := &repositorydoubles.SpyGitRepository{
			TagList: []string{"app-1.0.0"},
			Commits: map[string][]entities.Commit{"apps/app": {repositorydoubles.NewCommit("a1", "chore: tidy")}},
		}
		input := newBumpInput()
		input.SkipCommitTypes = []string{"chore"}
		calculator := commands.NewBumpCalculator(git)

		// when
		decision, err := calculator.Compute(context.Background(), input)

		// then
		require.NoError(t, err)
		assert.False(t, decision.HasVersion())
	})

	t.Run("should fall back to the initial version and warn without tags", func(t *testing.T) {
		t.Parallel()

		// given
		git := &repositorydoubles.SpyGitRepository{
			Commits: map[string][]entities.Commit{"apps/app": {repositorydoubles.NewCommit("a1", "feat: first")}},
		}
		observer := &entitydoubles.RecordingObserver{}
		input := newBumpInput()
		input.Observer = observer
		calculator := commands.NewBumpCalculator(git)

		// when
		decision, err := calculator.Compute(context.Background(), input)

		// then
		require.NoError(t, err)
		assert.Equal(t, "0.1.0", decision.Version)
		assert.Empty(t, decision.PreviousTag)
		event, found := observer.Find(entities.StepWarning)
		require.True(t, found)
		assert.Equal(t, entities.LevelWarning, event.Level)
		assert.Contains(t, event.Message, "fallback to version 0.0.0")
	})

	t.Run("should use an explicit release type without reading commits", func(t *testing.T) {
		t.Parallel()

		// given
		git := &repositorydoubles.SpyGitRepository{TagList: []string{"app-1.0.0"}}
		input := newBumpInput()
		input.ReleaseType = "minor"
		calculator := commands.NewBumpCalculator(git)

		// when
		decision, err := calculator.Compute(context.Background(), input)

		// then
		require.NoError(t, err)
		assert.Equal(t, "1.1.0", decision.Version)
		assert.Empty(t, git.CommitsSinceCalls)
	})

	t.Run("should bump patch with exactly one update when only a dependency changed", func(t *testing.T) {
		t.Parallel()

		// given
		git := &repositorydoubles.SpyGitRepository{
			TagList: []string{"app-1.0.0", "lib-0.3.0"},
			Commits: map[string][]entities.Commit{"libs/lib": {repositorydoubles.NewCommit("b1", "fix: lib bug")}},
		}
		input := newBumpInput()
		input.DependencyRoots = []entities.DependencyRoot{
			{ProjectName: "lib", RootPath: "libs/lib"},
			{ProjectName: "core", RootPath: "libs/core"},
		}
		calculator := commands.NewBumpCalculator(git)

		// when
		decision, err := calculator.Compute(context.Background(), input)

		// then
		require.NoError(t, err)
		assert.Equal(t, "1.0.1", decision.Version)
		assert.Equal(t, []entities.DependencyUpdate{{ProjectName: "lib", NewVersion: "0.3.1"}}, decision.DependencyUpdates)
		assert.Contains(t, git.CommitsSinceCalls, repositorydoubles.CommitsSinceCall{Ref: "lib-0.3.0", Path: "libs/lib"})
	})

	t.Run("should read the whole repository with v tags in sync mode", func(t *testing.T) {
		t.Parallel()

		// given
		git := &repositorydoubles.SpyGitRepository{
			TagList: []string{"v0.4.0", "app-9.0.0"},
			Commits: map[string][]entities.Commit{"": {repositorydoubles.NewCommit("c1", "feat: shared")}},
		}
		input := newBumpInput()
		input.SyncVersions = true
		input.TagPrefix = entities.FormatTagPrefix(nil, "app", true)
		calculator := commands.NewBumpCalculator(git)

		// when
		decision, err := calculator.Compute(context.Background(), input)

		// then
		require.NoError(t, err)
		assert.Equal(t, "0.5.0", decision.Version)
		assert.Equal(t, "", git.CommitsSinceCalls[0].Path)
	})

	t.Run("should continue a prerelease with the same identifier", func(t *testing.T) {
		t.Parallel()

		// given
		git := &repositorydoubles.SpyGitRepository{
			TagList: []string{"app-1.0.0", "app-1.1.0-beta.0"},
			Commits: map[string][]entities.Commit{"apps/app": {repositorydoubles.NewCommit("a1", "feat: more")}},
		}
		input := newBumpInput()
		input.Preid = "beta"
		calculator := commands.NewBumpCalculator(git)

		// when
		decision, err := calculator.Compute(context.Background(), input)

		// then
		require.NoError(t, err)
		assert.Equal(t, "1.1.0-beta.1", decision.Version)
	})

	t.Run("should re-emit the last version for an allowed empty release", func(t *testing.T) {
		t.Parallel()

		// given
		git := &repositorydoubles.SpyGitRepository{TagList: []string{"app-1.4.0"}}
		input := newBumpInput()
		input.AllowEmptyRelease = true
		calculator := commands.NewBumpCalculator(git)

		// when
		decision, err := calculator.Compute(context.Background(), input)

		// then
		require.NoError(t, err)
		assert.Equal(t, "1.4.0", decision.Version)
	})

	t.Run("should wrap tag listing failures", func(t *testing.T) {
		t.Parallel()

		// given
		git := &repositorydoubles.SpyGitRepository{TagsErr: errors.New("corrupt refs")}
		calculator := commands.NewBumpCalculator(git)

		// when
		_, err := calculator.Compute(context.Background(), newBumpInput())

		// then
		require.ErrorIs(t, err, entities.ErrBumpCalculation)
		assert.Contains(t, err.Error(), "corrupt refs")
	})

	t.Run("should wrap history read failures", func(t *testing.T) {
		t.Parallel()

		// given
		git := &repositorydoubles.SpyGitRepository{
			TagList:    []string{"app-1.0.0"},
			CommitsErr: errors.New("object not found"),
		}
		calculator := commands.NewBumpCalculator(git)

		// when
		_, err := calculator.Compute(context.Background(), newBumpInput())

		// then
		require.ErrorIs(t, err, entities.ErrBumpCalculation)
	})
}

func TestEmptyReleaseVersion(t *testing.T) {
	t.Parallel()

	t.Run("should start the next prerelease when a preid is set", func(t *testing.T) {
		t.Parallel()

		// given
		lastVersion := "1.4.0"

		// when
		result, err := commands.EmptyReleaseVersion(lastVersion, "rc")

		// then
		require.NoError(t, err)
		assert.Equal(t, "1.4.1-rc.0", result)
	})
}
