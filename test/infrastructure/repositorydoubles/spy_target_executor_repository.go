//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"
	"iter"

	"github.com/rios0rios0/releaser/internal/domain/entities"
	"github.com/rios0rios0/releaser/internal/domain/repositories"
)

// SpyTargetExecutorRepository implements repositories.TargetExecutorRepository as a configurable spy.
type SpyTargetExecutorRepository struct {
	ExecutorName string

	// Results maps a target ("project:target") to the results it yields.
	// Targets without an entry yield a single success.
	Results  map[string][]entities.TargetResult
	Requests []entities.ExecutionRequest
}

var _ repositories.TargetExecutorRepository = (*SpyTargetExecutorRepository)(nil)

func (s *SpyTargetExecutorRepository) Name() string { return s.ExecutorName }

func (s *SpyTargetExecutorRepository) Execute(
	_ context.Context,
	request entities.ExecutionRequest,
) iter.Seq[entities.TargetResult] {
	s.Requests = append(s.Requests, request)
	results, ok := s.Results[request.Target.String()]
	if !ok {
		results = []entities.TargetResult{{Success: true}}
	}
	return func(yield func(entities.TargetResult) bool) {
		for _, result := range results {
			if !yield(result) {
				return
			}
		}
	}
}

// ExecutedTargets returns the targets executed so far, in order.
func (s *SpyTargetExecutorRepository) ExecutedTargets() []string {
	targets := make([]string, 0, len(s.Requests))
	for _, request := range s.Requests {
		targets = append(targets, request.Target.String())
	}
	return targets
}

// ValidatingSpyTargetExecutorRepository is a SpyTargetExecutorRepository that also validates options.
type ValidatingSpyTargetExecutorRepository struct {
	SpyTargetExecutorRepository

	ValidateErr   error
	ValidateCalls []entities.OptionNode
}

var _ repositories.OptionsValidator = (*ValidatingSpyTargetExecutorRepository)(nil)

func (s *ValidatingSpyTargetExecutorRepository) ValidateOptions(options entities.OptionNode) error {
	s.ValidateCalls = append(s.ValidateCalls, options)
	return s.ValidateErr
}
