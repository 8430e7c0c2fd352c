package entities

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrDependencyResolution is returned when the dependency roots of a project cannot be determined.
	ErrDependencyResolution = errors.New("dependency resolution failed")
	// ErrBumpCalculation is returned when the tag or commit history cannot be read.
	ErrBumpCalculation = errors.New("version bump calculation failed")
	// ErrTargetNotFound is returned when a configured target does not exist in the workspace.
	ErrTargetNotFound = errors.New("target not found")
	// ErrTargetExecution is returned when a target's executor reports a non-success result.
	ErrTargetExecution = errors.New("target execution failed")
	// ErrGitOperation is returned when a commit, tag or push fails.
	ErrGitOperation = errors.New("git operation failed")
	// ErrProjectNotFound is returned by workspace lookups for an undeclared project.
	ErrProjectNotFound = errors.New("project not found")
)

// TargetNotFoundError reports a target reference that does not resolve to a
// declared project and target pair. Available lists the valid alternatives:
// project names when the project is missing, target names otherwise.
type TargetNotFoundError struct {
	Project        string
	Target         string
	ProjectMissing bool
	Available      []string
}

func (e *TargetNotFoundError) Error() string {
	if e.ProjectMissing {
		return fmt.Sprintf(
			"%s: the target project %q does not exist in your workspace. Available projects: %s.",
			ErrTargetNotFound, e.Project, quoteAll(e.Available),
		)
	}
	return fmt.Sprintf(
		"%s: the target name %q does not exist. Available targets for %q: %s.",
		ErrTargetNotFound, e.Target, e.Project, quoteAll(e.Available),
	)
}

func (e *TargetNotFoundError) Unwrap() error { return ErrTargetNotFound }

// TargetExecutionError reports that a target's executor yielded a failed result.
type TargetExecutionError struct {
	Target string
	Cause  error
}

func (e *TargetExecutionError) Error() string {
	msg := fmt.Sprintf("%s: something went wrong with run-target %q", ErrTargetExecution, e.Target)
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *TargetExecutionError) Unwrap() []error {
	if e.Cause == nil {
		return []error{ErrTargetExecution}
	}
	return []error{ErrTargetExecution, e.Cause}
}

// SchemaError is raised by executors whose options do not match their schema.
type SchemaError struct {
	Executor string
	Message  string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("invalid options for executor %q: %s", e.Executor, e.Message)
}

func quoteAll(values []string) string {
	quoted := make([]string, 0, len(values))
	for _, value := range values {
		quoted = append(quoted, fmt.Sprintf("%q", value))
	}
	return strings.Join(quoted, ", ")
}
