package workspace

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/rios0rios0/releaser/internal/domain/entities"
)

// document is the layout of workspace.yaml:
//
//	projects:
//	  app:
//	    root: apps/app
//	    dependencies: [lib]
//	    targets:
//	      deploy:
//	        executor: shell
//	        options:
//	          command: ./deploy.sh {{version}}
type document struct {
	Projects map[string]entities.Project `yaml:"projects"`
}

// YAMLWorkspaceRepository reads the workspace graph from a YAML file. The
// file is loaded once, on first use.
type YAMLWorkspaceRepository struct {
	settings *entities.Settings

	once     sync.Once
	projects map[string]entities.Project
	loadErr  error
}

// NewYAMLWorkspaceRepository creates a repository for the workspace file named
// by the settings. The settings are read on first use.
func NewYAMLWorkspaceRepository(settings *entities.Settings) *YAMLWorkspaceRepository {
	return &YAMLWorkspaceRepository{settings: settings}
}

// NewYAMLWorkspaceRepositoryAt creates a repository for the given workspace file.
// The workspace root is the directory holding the file.
func NewYAMLWorkspaceRepositoryAt(path string) *YAMLWorkspaceRepository {
	absolute, err := filepath.Abs(path)
	if err != nil {
		absolute = path
	}
	return NewYAMLWorkspaceRepository(&entities.Settings{Workspace: absolute, Root: filepath.Dir(absolute)})
}

// Root returns the absolute workspace root.
func (it *YAMLWorkspaceRepository) Root() string {
	return it.settings.Root
}

// Projects returns every declared project keyed by name.
func (it *YAMLWorkspaceRepository) Projects(ctx context.Context) (map[string]entities.Project, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := it.load(); err != nil {
		return nil, err
	}

	projects := make(map[string]entities.Project, len(it.projects))
	for name, project := range it.projects {
		projects[name] = project
	}
	return projects, nil
}

// Project returns a single declared project.
func (it *YAMLWorkspaceRepository) Project(ctx context.Context, name string) (entities.Project, error) {
	projects, err := it.Projects(ctx)
	if err != nil {
		return entities.Project{}, err
	}
	project, ok := projects[name]
	if !ok {
		return entities.Project{}, fmt.Errorf("%w: %q is not declared in %s",
			entities.ErrProjectNotFound, name, it.settings.WorkspaceFile())
	}
	return project, nil
}

func (it *YAMLWorkspaceRepository) load() error {
	it.once.Do(func() {
		it.projects, it.loadErr = parseWorkspace(it.settings.WorkspaceFile())
	})
	return it.loadErr
}

func parseWorkspace(path string) (map[string]entities.Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read workspace file %q: %w", path, err)
	}

	var doc document
	if err = yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse workspace file %q: %w", path, err)
	}

	projects := make(map[string]entities.Project, len(doc.Projects))
	for name, project := range doc.Projects {
		project.Name = name
		project.Root = filepath.ToSlash(filepath.Clean(project.Root))
		if project.Root == "." {
			project.Root = ""
		}
		projects[name] = project
	}
	return projects, nil
}
