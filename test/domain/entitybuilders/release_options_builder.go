//go:build integration || unit || test

package entitybuilders //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	testkit "github.com/rios0rios0/testkit/pkg/test"

	"github.com/rios0rios0/releaser/internal/domain/entities"
)

// ReleaseOptionsBuilder helps create release options with a fluent interface.
type ReleaseOptionsBuilder struct {
	*testkit.BaseBuilder
	options entities.ReleaseOptions
}

// NewReleaseOptionsBuilder creates a new builder with the options of a plain local release.
func NewReleaseOptionsBuilder() *ReleaseOptionsBuilder {
	return &ReleaseOptionsBuilder{
		BaseBuilder: testkit.NewBaseBuilder(),
		options:     entities.ReleaseOptions{},
	}
}

// WithPush enables pushing.
func (b *ReleaseOptionsBuilder) WithPush(push bool) *ReleaseOptionsBuilder {
	b.options.Push = push
	return b
}

// WithDryRun enables dry-run mode.
func (b *ReleaseOptionsBuilder) WithDryRun(dryRun bool) *ReleaseOptionsBuilder {
	b.options.DryRun = dryRun
	return b
}

// WithTrackDeps enables dependency tracking.
func (b *ReleaseOptionsBuilder) WithTrackDeps(trackDeps bool) *ReleaseOptionsBuilder {
	b.options.TrackDeps = trackDeps
	return b
}

// WithSyncVersions enables synchronized workspace releases.
func (b *ReleaseOptionsBuilder) WithSyncVersions(sync bool) *ReleaseOptionsBuilder {
	b.options.SyncVersions = sync
	return b
}

// WithReleaseAs sets an explicit release type or version.
func (b *ReleaseOptionsBuilder) WithReleaseAs(releaseAs string) *ReleaseOptionsBuilder {
	b.options.ReleaseAs = releaseAs
	return b
}

// WithPreid sets the prerelease identifier.
func (b *ReleaseOptionsBuilder) WithPreid(preid string) *ReleaseOptionsBuilder {
	b.options.Preid = preid
	return b
}

// WithPreset sets the commit convention preset.
func (b *ReleaseOptionsBuilder) WithPreset(preset string) *ReleaseOptionsBuilder {
	b.options.Preset = preset
	return b
}

// WithVersionTagPrefix sets the tag prefix template.
func (b *ReleaseOptionsBuilder) WithVersionTagPrefix(prefix string) *ReleaseOptionsBuilder {
	b.options.VersionTagPrefix = &prefix
	return b
}

// WithSkipCommitTypes sets the commit types ignored for the release decision.
func (b *ReleaseOptionsBuilder) WithSkipCommitTypes(types ...string) *ReleaseOptionsBuilder {
	b.options.SkipCommitTypes = types
	return b
}

// WithSkipCommit disables the release commit.
func (b *ReleaseOptionsBuilder) WithSkipCommit(skip bool) *ReleaseOptionsBuilder {
	b.options.SkipCommit = skip
	return b
}

// WithAllowEmptyRelease allows releases without qualifying commits.
func (b *ReleaseOptionsBuilder) WithAllowEmptyRelease(allow bool) *ReleaseOptionsBuilder {
	b.options.AllowEmptyRelease = allow
	return b
}

// WithPostTargets sets the targets run after the release.
func (b *ReleaseOptionsBuilder) WithPostTargets(targets ...string) *ReleaseOptionsBuilder {
	b.options.PostTargets = targets
	return b
}

// WithPreCommitTargets sets the targets run before the release commit.
func (b *ReleaseOptionsBuilder) WithPreCommitTargets(targets ...string) *ReleaseOptionsBuilder {
	b.options.PreCommitTargets = targets
	return b
}

// WithPostCommitTargets sets the targets run after the release tag.
func (b *ReleaseOptionsBuilder) WithPostCommitTargets(targets ...string) *ReleaseOptionsBuilder {
	b.options.PostCommitTargets = targets
	return b
}

// Build creates the options (satisfies testkit.Builder interface).
func (b *ReleaseOptionsBuilder) Build() interface{} {
	return b.BuildReleaseOptions()
}

// BuildReleaseOptions creates the options with a concrete return type.
func (b *ReleaseOptionsBuilder) BuildReleaseOptions() entities.ReleaseOptions {
	return b.options
}

// Reset clears the builder state, allowing it to be reused.
func (b *ReleaseOptionsBuilder) Reset() testkit.Builder {
	b.BaseBuilder.Reset()
	b.options = entities.ReleaseOptions{}
	return b
}

// Clone creates a deep copy of the ReleaseOptionsBuilder.
func (b *ReleaseOptionsBuilder) Clone() testkit.Builder {
	options := b.options
	options.SkipCommitTypes = append([]string(nil), b.options.SkipCommitTypes...)
	options.PostTargets = append([]string(nil), b.options.PostTargets...)
	options.PreCommitTargets = append([]string(nil), b.options.PreCommitTargets...)
	options.PostCommitTargets = append([]string(nil), b.options.PostCommitTargets...)
	return &ReleaseOptionsBuilder{
		BaseBuilder: b.BaseBuilder.Clone().(*testkit.BaseBuilder),
		options:     options,
	}
}
