//go:build integration || unit || test

package entitybuilders //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"maps"

	testkit "github.com/rios0rios0/testkit/pkg/test"

	"github.com/rios0rios0/releaser/internal/domain/entities"
)

// ProjectBuilder helps create workspace projects with a fluent interface.
type ProjectBuilder struct {
	*testkit.BaseBuilder
	name         string
	root         string
	dependencies []string
	targets      map[string]entities.TargetConfig
}

// NewProjectBuilder creates a new project builder with sensible defaults.
func NewProjectBuilder() *ProjectBuilder {
	return &ProjectBuilder{
		BaseBuilder: testkit.NewBaseBuilder(),
		name:        "app",
		root:        "apps/app",
		targets:     make(map[string]entities.TargetConfig),
	}
}

// WithName sets the project name.
func (b *ProjectBuilder) WithName(name string) *ProjectBuilder {
	b.name = name
	return b
}

// WithRoot sets the project root, relative to the workspace root.
func (b *ProjectBuilder) WithRoot(root string) *ProjectBuilder {
	b.root = root
	return b
}

// WithDependencies sets the projects this project depends on.
func (b *ProjectBuilder) WithDependencies(names ...string) *ProjectBuilder {
	b.dependencies = names
	return b
}

// WithTarget declares a target run by executor with the given options.
func (b *ProjectBuilder) WithTarget(name, executor string, options entities.OptionNode) *ProjectBuilder {
	b.targets[name] = entities.TargetConfig{Executor: executor, Options: options}
	return b
}

// Build creates the project (satisfies testkit.Builder interface).
func (b *ProjectBuilder) Build() interface{} {
	return b.BuildProject()
}

// BuildProject creates the project with a concrete return type.
func (b *ProjectBuilder) BuildProject() entities.Project {
	return entities.Project{
		Name:         b.name,
		Root:         b.root,
		Dependencies: append([]string(nil), b.dependencies...),
		Targets:      maps.Clone(b.targets),
	}
}

// Reset clears the builder state, allowing it to be reused.
func (b *ProjectBuilder) Reset() testkit.Builder {
	b.BaseBuilder.Reset()
	b.name = "app"
	b.root = "apps/app"
	b.dependencies = nil
	b.targets = make(map[string]entities.TargetConfig)
	return b
}

// Clone creates a deep copy of the ProjectBuilder.
func (b *ProjectBuilder) Clone() testkit.Builder {
	return &ProjectBuilder{
		BaseBuilder:  b.BaseBuilder.Clone().(*testkit.BaseBuilder),
		name:         b.name,
		root:         b.root,
		dependencies: append([]string(nil), b.dependencies...),
		targets:      maps.Clone(b.targets),
	}
}
