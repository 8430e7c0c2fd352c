//go:build unit

package commands_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/releaser/internal/domain/commands"
	"github.com/rios0rios0/releaser/internal/domain/entities"
	"github.com/rios0rios0/releaser/test/infrastructure/repositorydoubles"
)

func fixedClock() time.Time {
	return time.Date(2026, time.October, 18, 9, 30, 0, 0, time.UTC)
}

func TestChangelogGenerator_Generate(t *testing.T) {
	t.Parallel()

	t.Run("should be empty without reading history when the version is absent", func(t *testing.T) {
		t.Parallel()

		// given
		git := &repositorydoubles.SpyGitRepository{}
		generator := commands.NewChangelogGenerator(git, commands.WithClock(fixedClock))

		// when
		result, err := generator.Generate(context.Background(), commands.ChangelogInput{})

		// then
		require.NoError(t, err)
		assert.True(t, result.IsEmpty())
		assert.Empty(t, git.CommitsSinceCalls)
	})

	t.Run("should render the scoped commits followed by the dependency updates", func(t *testing.T) {
		t.Parallel()

		// given
		git := &repositorydoubles.SpyGitRepository{
			Commits: map[string][]entities.Commit{"apps/app": {
				repositorydoubles.NewCommit("abcdef0123", "feat(ui): dark mode"),
				repositorydoubles.NewCommit("bcdef01234", "chore: tidy"),
			}},
		}
		generator := commands.NewChangelogGenerator(git, commands.WithClock(fixedClock))
		input := commands.ChangelogInput{
			Decision: entities.VersionDecision{
				Version:           "1.1.0",
				PreviousTag:       "app-1.0.0",
				DependencyUpdates: []entities.DependencyUpdate{{ProjectName: "lib", NewVersion: "0.3.1"}},
			},
			Header: "# Changelog",
			Path:   "/repo/apps/app/CHANGELOG.md",
			Scope:  "apps/app",
			Preset: "angular",
		}

		// when
		result, err := generator.Generate(context.Background(), input)

		// then
		require.NoError(t, err)
		assert.Equal(t, "/repo/apps/app/CHANGELOG.md", result.Path)
		assert.Equal(t, "# Changelog", result.Header)
		assert.Equal(t, "## 1.1.0 (2026-10-18)\n"+
			"\n### Features\n\n* **ui:** dark mode (abcdef0)\n"+
			"\n### Dependency Updates\n\n* `lib` updated to version `0.3.1`\n", result.Notes)
		assert.Equal(t, []repositorydoubles.CommitsSinceCall{{Ref: "app-1.0.0", Path: "apps/app"}}, git.CommitsSinceCalls)
	})

	t.Run("should wrap history read failures", func(t *testing.T) {
		t.Parallel()

		// given
		git := &repositorydoubles.SpyGitRepository{CommitsErr: errors.New("broken pack")}
		generator := commands.NewChangelogGenerator(git)
		input := commands.ChangelogInput{Decision: entities.VersionDecision{Version: "1.0.0"}}

		// when
		_, err := generator.Generate(context.Background(), input)

		// then
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to generate changelog")
		assert.Contains(t, err.Error(), "broken pack")
	})
}
