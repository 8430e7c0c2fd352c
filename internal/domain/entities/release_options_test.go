//go:build unit

package entities_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rios0rios0/releaser/internal/domain/entities"
)

func TestReleaseOptionsNormalize(t *testing.T) {
	t.Parallel()

	t.Run("should fill the defaults", func(t *testing.T) {
		t.Parallel()

		// given
		opts := entities.ReleaseOptions{}

		// when
		result := opts.Normalize()

		// then
		assert.Equal(t, entities.DefaultRemote, result.Remote)
		assert.Equal(t, entities.DefaultBaseBranch, result.BaseBranch)
		assert.Equal(t, entities.DefaultChangelogHeader, result.ChangelogHeader)
		assert.Equal(t, entities.DefaultCommitMessageFormat, result.CommitMessageFormat)
		assert.Equal(t, string(entities.PresetAngular), result.Preset)
		assert.Nil(t, result.VersionTagPrefix)
	})

	t.Run("should resolve the aliases", func(t *testing.T) {
		t.Parallel()

		// given
		primary := "v"
		alias := "{{projectName}}@"
		opts := entities.ReleaseOptions{
			Version:          "3.0.0",
			VersionTagPrefix: &primary,
			TagPrefix:        &alias,
			Preset:           "conventional",
		}

		// when
		result := opts.Normalize()

		// then
		assert.Equal(t, "3.0.0", result.ReleaseAs)
		assert.Equal(t, alias, *result.VersionTagPrefix)
		assert.Equal(t, string(entities.PresetConventionalCommits), result.Preset)
		assert.Empty(t, opts.ReleaseAs, "the receiver must not be modified")
	})

	t.Run("should prefer releaseAs over its alias", func(t *testing.T) {
		t.Parallel()

		// given
		opts := entities.ReleaseOptions{ReleaseAs: "minor", Version: "major"}

		// when
		result := opts.Normalize()

		// then
		assert.Equal(t, "minor", result.ReleaseAs)
	})
}
