//go:build unit

package entities_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rios0rios0/releaser/internal/domain/entities"
)

func TestPresetParseCommit(t *testing.T) {
	t.Parallel()

	t.Run("should parse type, scope and subject", func(t *testing.T) {
		t.Parallel()

		// given
		message := "feat(api): add release endpoint\n\nsome body"

		// when
		commit := entities.PresetAngular.ParseCommit("0123456789abcdef", message)

		// then
		assert.Equal(t, "feat", commit.Type)
		assert.Equal(t, "api", commit.Scope)
		assert.Equal(t, "add release endpoint", commit.Subject)
		assert.False(t, commit.Breaking)
		assert.Equal(t, "0123456", commit.ShortHash())
	})

	t.Run("should detect breaking change footers in every preset", func(t *testing.T) {
		t.Parallel()

		// given
		message := "fix: drop legacy flag\n\nBREAKING CHANGE: the --legacy flag is gone"

		// when
		angular := entities.PresetAngular.ParseCommit("a", message)
		conventional := entities.PresetConventionalCommits.ParseCommit("a", message)

		// then
		assert.True(t, angular.Breaking)
		assert.True(t, conventional.Breaking)
		assert.Equal(t, "the --legacy flag is gone", angular.BreakingNote)
	})

	t.Run("should honour the bang marker only for conventionalcommits", func(t *testing.T) {
		t.Parallel()

		// given
		message := "feat!: rewrite the config format"

		// when
		angular := entities.PresetAngular.ParseCommit("a", message)
		conventional := entities.PresetConventionalCommits.ParseCommit("a", message)

		// then
		assert.False(t, angular.Breaking)
		assert.True(t, conventional.Breaking)
		assert.Equal(t, "feat", conventional.Type)
	})

	t.Run("should classify reverts", func(t *testing.T) {
		t.Parallel()

		// given
		message := `Revert "feat: add release endpoint"`

		// when
		commit := entities.PresetAngular.ParseCommit("a", message)

		// then
		assert.Equal(t, "revert", commit.Type)
		assert.Equal(t, "feat: add release endpoint", commit.Subject)
	})

	t.Run("should leave free-form messages untyped", func(t *testing.T) {
		t.Parallel()

		// given
		message := "Update README"

		// when
		commit := entities.PresetAngular.ParseCommit("a", message)

		// then
		assert.Empty(t, commit.Type)
		assert.Equal(t, "Update README", commit.Subject)
	})
}

func TestClassifyCommits(t *testing.T) {
	t.Parallel()

	parse := func(messages ...string) []entities.Commit {
		commits := make([]entities.Commit, 0, len(messages))
		for _, message := range messages {
			commits = append(commits, entities.PresetConventionalCommits.ParseCommit("a", message))
		}
		return commits
	}

	tests := []struct {
		name     string
		commits  []entities.Commit
		expected entities.Bump
	}{
		{name: "should be none without commits", commits: nil, expected: entities.BumpNone},
		{name: "should be patch for fixes", commits: parse("fix: a", "chore: b"), expected: entities.BumpPatch},
		{name: "should be minor for features", commits: parse("fix: a", "feat: b"), expected: entities.BumpMinor},
		{
			name:     "should be major whenever a breaking change is present",
			commits:  parse("fix: a", "feat: b", "refactor!: c", "docs: d"),
			expected: entities.BumpMajor,
		},
		{name: "should be patch for untyped commits", commits: parse("Update README"), expected: entities.BumpPatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			// given
			commits := tt.commits

			// when
			result := entities.ClassifyCommits(commits)

			// then
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestFilterCommits(t *testing.T) {
	t.Parallel()

	t.Run("should drop every commit of a skipped type", func(t *testing.T) {
		t.Parallel()

		// given
		commits := []entities.Commit{
			entities.PresetAngular.ParseCommit("1", "chore: bump deps"),
			entities.PresetAngular.ParseCommit("2", "chore(ci): tweak"),
			entities.PresetAngular.ParseCommit("3", "fix: crash"),
		}

		// when
		result := entities.FilterCommits(commits, []string{"chore"})

		// then
		assert.Len(t, result, 1)
		assert.Equal(t, "fix", result[0].Type)
	})
}

func TestNormalizePreset(t *testing.T) {
	t.Parallel()

	t.Run("should default to angular and resolve the conventional alias", func(t *testing.T) {
		t.Parallel()

		// given
		names := []string{"", "conventional", "conventionalcommits", "custom"}

		// when
		results := make([]entities.Preset, 0, len(names))
		for _, name := range names {
			results = append(results, entities.NormalizePreset(name))
		}

		// then
		assert.Equal(t, []entities.Preset{
			entities.PresetAngular,
			entities.PresetConventionalCommits,
			entities.PresetConventionalCommits,
			entities.Preset("custom"),
		}, results)
	})
}
