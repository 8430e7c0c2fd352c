package entities

import "slices"

// Project is a workspace project: its root (relative to the workspace root),
// the projects it depends on and the targets it declares.
type Project struct {
	Name         string                  `yaml:"-"`
	Root         string                  `yaml:"root"`
	Dependencies []string                `yaml:"dependencies"`
	Targets      map[string]TargetConfig `yaml:"targets"`
}

// TargetNames returns the declared target names, sorted.
func (p Project) TargetNames() []string {
	names := make([]string, 0, len(p.Targets))
	for name := range p.Targets {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
