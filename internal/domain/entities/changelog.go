package entities

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

const (
	DefaultChangelogHeader = "# Changelog"
	ChangelogFileName      = "CHANGELOG.md"

	releaseHeadingPrefix    = "## "
	dependencyUpdatesTitle  = "Dependency Updates"
	changelogDateLayout     = "2006-01-02"
	changelogSectionLineEnd = "\n"
)

// ChangelogResult is the rendered release notes of one version.
type ChangelogResult struct {
	// Path is the changelog file the notes belong to.
	Path   string
	Header string
	// Notes is the markdown section of the release, starting with its "## " heading.
	Notes string
}

// IsEmpty reports whether there is nothing to write.
func (r ChangelogResult) IsEmpty() bool {
	return strings.TrimSpace(r.Notes) == ""
}

// Render returns the changelog file content with the release notes inserted.
func (r ChangelogResult) Render(existing string) string {
	return InsertChangelogRelease(existing, r.Header, r.Notes)
}

// ChangelogPath returns the changelog file path under root.
func ChangelogPath(root string) string {
	return filepath.Join(root, ChangelogFileName)
}

// InsertChangelogRelease inserts a release section into changelog content.
//
// Behaviour:
//   - Empty content becomes the header followed by the section.
//   - A missing header is prepended.
//   - The section is placed before the first "## " heading, so releases
//     stay newest first; without one, it is appended.
func InsertChangelogRelease(content, header, section string) string {
	if header == "" {
		header = DefaultChangelogHeader
	}
	section = strings.TrimRight(section, "\n") + changelogSectionLineEnd

	if strings.TrimSpace(content) == "" {
		return header + "\n\n" + section
	}
	if !strings.HasPrefix(strings.TrimSpace(content), header) {
		content = header + "\n\n" + strings.TrimLeft(content, "\n")
	}

	lines := strings.Split(content, "\n")
	releaseIdx := findReleaseHeadingIndex(lines, headerEnd(lines, header))
	if releaseIdx < 0 {
		return strings.TrimRight(content, "\n") + "\n\n" + section
	}

	block := strings.Split(section, "\n")
	lines = insertLines(lines, releaseIdx, block)
	return strings.Join(lines, "\n")
}

// RenderReleaseNotes renders the release section of version from the commits.
// Commits without a visible type are left out; breaking notes are listed first.
func RenderReleaseNotes(version string, date time.Time, preset Preset, commits []Commit) string {
	var builder strings.Builder
	fmt.Fprintf(&builder, "%s%s (%s)\n", releaseHeadingPrefix, version, date.Format(changelogDateLayout))

	var breaking []string
	for _, commit := range commits {
		if commit.Breaking {
			breaking = append(breaking, formatNote(commit.Scope, commit.BreakingNote, ""))
		}
	}
	writeGroup(&builder, preset.BreakingTitle(), breaking)

	for _, section := range preset.ChangelogSections() {
		var entries []string
		for _, commit := range commits {
			if commit.Type == section.Type {
				entries = append(entries, formatNote(commit.Scope, commit.Subject, commit.ShortHash()))
			}
		}
		writeGroup(&builder, section.Title, entries)
	}

	return builder.String()
}

// RenderDependencyUpdates renders the dependency updates group, or "" when there are none.
func RenderDependencyUpdates(updates []DependencyUpdate) string {
	entries := make([]string, 0, len(updates))
	for _, update := range updates {
		entries = append(entries, fmt.Sprintf("* `%s` updated to version `%s`", update.ProjectName, update.NewVersion))
	}
	var builder strings.Builder
	writeGroup(&builder, dependencyUpdatesTitle, entries)
	return builder.String()
}

func writeGroup(builder *strings.Builder, title string, entries []string) {
	if len(entries) == 0 {
		return
	}
	fmt.Fprintf(builder, "\n### %s\n\n", title)
	for _, entry := range entries {
		builder.WriteString(entry)
		builder.WriteString("\n")
	}
}

func formatNote(scope, text, shortHash string) string {
	note := "* "
	if scope != "" {
		note += "**" + scope + ":** "
	}
	note += text
	if shortHash != "" {
		note += " (" + shortHash + ")"
	}
	return note
}

// headerEnd returns the index of the first line after the header, which
// starts at the first non-blank line.
func headerEnd(lines []string, header string) int {
	headerLines := len(strings.Split(strings.TrimRight(header, "\n"), "\n"))
	for i, line := range lines {
		if strings.TrimSpace(line) != "" {
			return min(i+headerLines, len(lines))
		}
	}
	return len(lines)
}

// findReleaseHeadingIndex returns the line index of the first "## "
// heading at or after from, or -1 if not found.
func findReleaseHeadingIndex(lines []string, from int) int {
	for i := from; i < len(lines); i++ {
		if strings.HasPrefix(lines[i], releaseHeadingPrefix) {
			return i
		}
	}
	return -1
}

// insertLines inserts extra lines into slice at the given index.
func insertLines(lines []string, at int, extra []string) []string {
	result := make([]string, 0, len(lines)+len(extra))
	result = append(result, lines[:at]...)
	result = append(result, extra...)
	result = append(result, lines[at:]...)
	return result
}
