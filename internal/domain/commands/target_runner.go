package commands

import (
	"context"
	"errors"
	"fmt"
	"slices"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/releaser/internal/domain/entities"
	"github.com/rios0rios0/releaser/internal/domain/repositories"
	infraRepos "github.com/rios0rios0/releaser/internal/infrastructure/repositories"
)

// RunTargetsInput lists the targets to run and the context their options are resolved against.
type RunTargetsInput struct {
	Targets     []string
	Context     entities.TemplateContext
	ProjectName string
	Observer    entities.Observer
}

// TargetRunner runs workspace targets one after another, stopping at the first failure.
type TargetRunner struct {
	workspace repositories.WorkspaceRepository
	executors *infraRepos.ExecutorRegistry
}

// NewTargetRunner creates a new TargetRunner.
func NewTargetRunner(
	workspace repositories.WorkspaceRepository,
	executors *infraRepos.ExecutorRegistry,
) *TargetRunner {
	return &TargetRunner{
		workspace: workspace,
		executors: executors,
	}
}

// Run executes every target in order. A target must exist before its options
// are resolved; a target whose executor yields a failed result stops the run.
func (it *TargetRunner) Run(ctx context.Context, input RunTargetsInput) error {
	for _, raw := range input.Targets {
		if err := ctx.Err(); err != nil {
			return err
		}

		target, err := entities.ParseTarget(raw)
		if err != nil {
			return err
		}
		if err = it.runTarget(ctx, target, input.Context); err != nil {
			return err
		}

		notify(input.Observer, input.ProjectName, entities.StepRunTargetSuccess, entities.LevelInfo,
			fmt.Sprintf("Successfully ran target %s", target))
	}
	return nil
}

func (it *TargetRunner) runTarget(
	ctx context.Context,
	target entities.Target,
	templateContext entities.TemplateContext,
) error {
	project, config, err := it.lookupTarget(ctx, target)
	if err != nil {
		return err
	}

	options := config.OptionsFor(target.Configuration).Resolve(templateContext)

	executor, err := it.executors.Get(config.Executor)
	if err != nil {
		return fmt.Errorf("target %s: %w", target, err)
	}
	if validator, ok := executor.(repositories.OptionsValidator); ok {
		if err = validator.ValidateOptions(options); err != nil {
			var schemaErr *entities.SchemaError
			if errors.As(err, &schemaErr) {
				return errors.New(schemaErr.Error())
			}
			return err
		}
	}

	logger.Debugf("Running target %s with executor %q", target, config.Executor)
	request := entities.ExecutionRequest{
		Target:        target,
		Project:       project,
		WorkspaceRoot: it.workspace.Root(),
		Options:       options,
		Context:       templateContext,
	}
	for result := range executor.Execute(ctx, request) {
		if !result.Success {
			return &entities.TargetExecutionError{Target: target.String(), Cause: result.Err}
		}
	}
	return nil
}

// lookupTarget checks that both the project and the target are declared.
func (it *TargetRunner) lookupTarget(
	ctx context.Context,
	target entities.Target,
) (entities.Project, entities.TargetConfig, error) {
	projects, err := it.workspace.Projects(ctx)
	if err != nil {
		return entities.Project{}, entities.TargetConfig{}, fmt.Errorf("failed to read workspace projects: %w", err)
	}

	project, ok := projects[target.Project]
	if !ok {
		names := make([]string, 0, len(projects))
		for name := range projects {
			names = append(names, name)
		}
		slices.Sort(names)
		return entities.Project{}, entities.TargetConfig{}, &entities.TargetNotFoundError{
			Project:        target.Project,
			Target:         target.Name,
			ProjectMissing: true,
			Available:      names,
		}
	}

	config, ok := project.Targets[target.Name]
	if !ok {
		return entities.Project{}, entities.TargetConfig{}, &entities.TargetNotFoundError{
			Project:   target.Project,
			Target:    target.Name,
			Available: project.TargetNames(),
		}
	}
	return project, config, nil
}
