package entities

import (
	"regexp"
	"slices"
	"strings"
)

// Commit is a version-control commit, optionally classified by a commit convention.
type Commit struct {
	Hash         string
	Message      string
	Subject      string
	Type         string
	Scope        string
	Breaking     bool
	BreakingNote string
}

// ShortHash returns the abbreviated commit hash.
func (c Commit) ShortHash() string {
	const shortHashLength = 7
	if len(c.Hash) <= shortHashLength {
		return c.Hash
	}
	return c.Hash[:shortHashLength]
}

// Bump is the severity of a version increment.
type Bump int

const (
	BumpNone Bump = iota
	BumpPatch
	BumpMinor
	BumpMajor
)

func (b Bump) String() string {
	switch b {
	case BumpPatch:
		return ReleasePatch
	case BumpMinor:
		return ReleaseMinor
	case BumpMajor:
		return ReleaseMajor
	default:
		return "none"
	}
}

var (
	headerPattern         = regexp.MustCompile(`^(\w+)(?:\(([^)]*)\))?(!)?: (.+)$`)
	revertPattern         = regexp.MustCompile(`^[Rr]evert:? "?(.+?)"?$`)
	breakingFooterPattern = regexp.MustCompile(`(?ms)^BREAKING[ -]CHANGE: ?(.+?)(?:\n\n|\z)`)
)

// ParseCommit classifies a raw commit message according to the preset.
// Messages that do not follow the convention keep an empty Type.
func (p Preset) ParseCommit(hash, message string) Commit {
	header, body, _ := strings.Cut(strings.TrimSpace(message), "\n")
	header = strings.TrimSpace(header)

	commit := Commit{Hash: hash, Message: message, Subject: header}

	if match := revertPattern.FindStringSubmatch(header); match != nil {
		commit.Type = "revert"
		commit.Subject = match[1]
		return commit
	}

	if match := headerPattern.FindStringSubmatch(header); match != nil {
		commit.Type = strings.ToLower(match[1])
		commit.Scope = match[2]
		commit.Subject = match[4]
		if match[3] == "!" && p.SupportsBreakingMarker() {
			commit.Breaking = true
			commit.BreakingNote = commit.Subject
		}
	}

	if footer := breakingFooterPattern.FindStringSubmatch(body); footer != nil {
		commit.Breaking = true
		commit.BreakingNote = strings.TrimSpace(footer[1])
	}

	return commit
}

// FilterCommits drops every commit whose type is listed in skipTypes.
func FilterCommits(commits []Commit, skipTypes []string) []Commit {
	if len(skipTypes) == 0 {
		return commits
	}
	filtered := make([]Commit, 0, len(commits))
	for _, commit := range commits {
		if commit.Type != "" && slices.Contains(skipTypes, commit.Type) {
			continue
		}
		filtered = append(filtered, commit)
	}
	return filtered
}

// ClassifyCommits returns the highest bump warranted by the commits:
// a breaking change is major, a feature is minor and anything else a patch.
func ClassifyCommits(commits []Commit) Bump {
	bump := BumpNone
	for _, commit := range commits {
		switch {
		case commit.Breaking:
			return BumpMajor
		case commit.Type == "feat":
			bump = max(bump, BumpMinor)
		default:
			bump = max(bump, BumpPatch)
		}
	}
	return bump
}
