package repositories

import (
	"context"
	"iter"

	"github.com/rios0rios0/releaser/internal/domain/entities"
)

// TargetExecutorRepository runs a workspace target. An executor may yield
// several results; the first unsuccessful one fails the target.
type TargetExecutorRepository interface {
	// Name returns the executor identifier used in the workspace file (e.g. "shell").
	Name() string

	Execute(ctx context.Context, request entities.ExecutionRequest) iter.Seq[entities.TargetResult]
}

// OptionsValidator is implemented by executors that publish an options schema.
// A returned *entities.SchemaError is reported with its message only.
type OptionsValidator interface {
	ValidateOptions(options entities.OptionNode) error
}
