package commands

import "github.com/rios0rios0/releaser/internal/domain/entities"

// RelativePaths exports relativePaths for testing.
var RelativePaths = relativePaths //nolint:gochecknoglobals // test export

// EmptyReleaseVersion exports emptyReleaseVersion for testing.
var EmptyReleaseVersion = emptyReleaseVersion //nolint:gochecknoglobals // test export

// SetRunIDGenerator replaces the run ID generator of a VersionCommand for testing.
func SetRunIDGenerator(command *VersionCommand, generator func() string) {
	command.newRunID = generator
}

// ChangelogInputFor exports changelogInput for testing.
func ChangelogInputFor(
	command *VersionCommand,
	decision entities.VersionDecision,
	project entities.Project,
	opts entities.ReleaseOptions,
) ChangelogInput {
	return command.changelogInput(decision, project, opts)
}
