//go:build integration || unit || test

package commanddoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/releaser/internal/domain/commands"
	"github.com/rios0rios0/releaser/internal/domain/entities"
)

// StubVersionCommand is a stub implementation of commands.Version.
type StubVersionCommand struct {
	ExecuteCallCount int
	Result           entities.RunResult
	LastProjectName  string
	LastOpts         entities.ReleaseOptions
}

var _ commands.Version = (*StubVersionCommand)(nil)

func (s *StubVersionCommand) Execute(
	_ context.Context,
	projectName string,
	opts entities.ReleaseOptions,
) entities.RunResult {
	s.ExecuteCallCount++
	s.LastProjectName = projectName
	s.LastOpts = opts
	return s.Result
}
