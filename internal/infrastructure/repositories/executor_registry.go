package repositories

import (
	"fmt"
	"slices"

	domainRepos "github.com/rios0rios0/releaser/internal/domain/repositories"
)

// ExecutorRegistry manages all registered target executor implementations.
type ExecutorRegistry struct {
	executors map[string]domainRepos.TargetExecutorRepository
}

// NewExecutorRegistry creates an empty executor registry.
func NewExecutorRegistry() *ExecutorRegistry {
	return &ExecutorRegistry{
		executors: make(map[string]domainRepos.TargetExecutorRepository),
	}
}

// Register adds an executor under its name (e.g. "shell").
func (r *ExecutorRegistry) Register(executor domainRepos.TargetExecutorRepository) {
	r.executors[executor.Name()] = executor
}

// Get returns the executor registered under name.
func (r *ExecutorRegistry) Get(name string) (domainRepos.TargetExecutorRepository, error) {
	executor, ok := r.executors[name]
	if !ok {
		return nil, fmt.Errorf("unknown executor: %q (registered: %v)", name, r.Names())
	}
	return executor, nil
}

// Names returns the sorted list of registered executor names.
func (r *ExecutorRegistry) Names() []string {
	names := make([]string, 0, len(r.executors))
	for name := range r.executors {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
