package entities

import (
	"fmt"
	"strings"
)

// Target references an automation unit declared by a workspace project.
type Target struct {
	Project       string
	Name          string
	Configuration string
}

// ParseTarget parses "project:target[:configuration]".
func ParseTarget(raw string) (Target, error) {
	parts := strings.Split(strings.TrimSpace(raw), ":")
	if len(parts) < 2 || len(parts) > 3 || parts[0] == "" || parts[1] == "" { //nolint:mnd // project:target[:configuration]
		return Target{}, fmt.Errorf("invalid target %q: expected \"project:target[:configuration]\"", raw)
	}
	target := Target{Project: parts[0], Name: parts[1]}
	if len(parts) == 3 { //nolint:mnd // optional configuration
		target.Configuration = parts[2]
	}
	return target, nil
}

func (t Target) String() string {
	if t.Configuration != "" {
		return t.Project + ":" + t.Name + ":" + t.Configuration
	}
	return t.Project + ":" + t.Name
}

// TargetConfig is a target declaration: the executor that runs it and its option tree.
type TargetConfig struct {
	Executor       string                `yaml:"executor"`
	Options        OptionNode            `yaml:"options"`
	Configurations map[string]OptionNode `yaml:"configurations"`
}

// OptionsFor returns the target options, with the named configuration's
// entries overriding the defaults when present.
func (c TargetConfig) OptionsFor(configuration string) OptionNode {
	override, ok := c.Configurations[configuration]
	if configuration == "" || !ok || override.Kind != MappingOption {
		return c.Options
	}
	base := c.Options
	if base.Kind != MappingOption {
		base = Mapping()
	}

	entries := make([]OptionEntry, 0, len(base.Entries)+len(override.Entries))
	for _, entry := range base.Entries {
		if value, found := override.Lookup(entry.Key); found {
			entries = append(entries, Entry(entry.Key, value))
			continue
		}
		entries = append(entries, entry)
	}
	for _, entry := range override.Entries {
		if _, found := base.Lookup(entry.Key); !found {
			entries = append(entries, entry)
		}
	}
	return Mapping(entries...)
}

// TargetResult is one result yielded by a target executor.
type TargetResult struct {
	Success bool
	Output  string
	Err     error
}

// ExecutionRequest carries everything an executor needs to run a target.
type ExecutionRequest struct {
	Target        Target
	Project       Project
	WorkspaceRoot string
	Options       OptionNode // already resolved
	// Context is the template context the options were resolved against.
	Context TemplateContext
}
