package entities

// Preset is the name of a commit message convention.
type Preset string

const (
	PresetAngular             Preset = "angular"
	PresetConventionalCommits Preset = "conventionalcommits"
)

// ChangelogSection maps a commit type to its changelog heading.
type ChangelogSection struct {
	Type  string
	Title string
}

// NormalizePreset resolves aliases and defaults to angular.
func NormalizePreset(name string) Preset {
	switch name {
	case "":
		return PresetAngular
	case "conventional":
		return PresetConventionalCommits
	default:
		return Preset(name)
	}
}

// SupportsBreakingMarker reports whether "type!:" headers denote breaking changes.
func (p Preset) SupportsBreakingMarker() bool {
	return p == PresetConventionalCommits
}

// BreakingTitle is the heading of the breaking changes section.
func (p Preset) BreakingTitle() string {
	if p == PresetConventionalCommits {
		return "⚠ BREAKING CHANGES"
	}
	return "BREAKING CHANGES"
}

// ChangelogSections lists the visible commit groups in rendering order.
// Custom presets are rendered like angular.
func (p Preset) ChangelogSections() []ChangelogSection {
	sections := []ChangelogSection{
		{Type: "feat", Title: "Features"},
		{Type: "fix", Title: "Bug Fixes"},
		{Type: "perf", Title: "Performance Improvements"},
		{Type: "revert", Title: "Reverts"},
	}
	if p == PresetConventionalCommits {
		sections = append(sections,
			ChangelogSection{Type: "docs", Title: "Documentation"},
			ChangelogSection{Type: "refactor", Title: "Code Refactoring"},
			ChangelogSection{Type: "build", Title: "Build System"},
		)
	}
	return sections
}
