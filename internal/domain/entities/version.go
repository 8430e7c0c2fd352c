package entities

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	mastermindsSemver "github.com/Masterminds/semver/v3"
	"golang.org/x/mod/semver"
)

// InitialVersion is the version assumed when a project has never been tagged.
const InitialVersion = "0.0.0"

// Release types accepted by releaseAs.
const (
	ReleaseMajor      = "major"
	ReleaseMinor      = "minor"
	ReleasePatch      = "patch"
	ReleasePremajor   = "premajor"
	ReleasePreminor   = "preminor"
	ReleasePrepatch   = "prepatch"
	ReleasePrerelease = "prerelease"
)

// IsValidVersion reports whether v is a strict semantic version (without a "v" prefix).
func IsValidVersion(v string) bool {
	if _, err := mastermindsSemver.StrictNewVersion(v); err != nil {
		return false
	}
	return semver.IsValid(normalizeVersion(v))
}

// LatestVersion returns the highest version tagged with prefix, and the tag
// itself. Prerelease versions are ignored unless includePrerelease is set.
// Both results are empty when no tag matches.
func LatestVersion(tags []string, prefix string, includePrerelease bool) (string, string) {
	type candidate struct {
		version string
		tag     string
	}

	candidates := make([]candidate, 0, len(tags))
	for _, tag := range tags {
		if !strings.HasPrefix(tag, prefix) {
			continue
		}
		version := strings.TrimPrefix(tag, prefix)
		if !IsValidVersion(version) {
			continue
		}
		if !includePrerelease && semver.Prerelease(normalizeVersion(version)) != "" {
			continue
		}
		candidates = append(candidates, candidate{version: version, tag: tag})
	}

	if len(candidates) == 0 {
		return "", ""
	}

	sort.Slice(candidates, func(i, j int) bool {
		return semver.Compare(normalizeVersion(candidates[i].version), normalizeVersion(candidates[j].version)) > 0
	})
	return candidates[0].version, candidates[0].tag
}

// ManualBump applies an explicit release type. A valid semantic version is
// returned verbatim; with a preid, plain release types are promoted to their
// prerelease form.
func ManualBump(current, releaseType, preid string) (string, error) {
	if IsValidVersion(releaseType) {
		return releaseType, nil
	}
	if preid != "" && !strings.HasPrefix(releaseType, "pre") {
		releaseType = "pre" + releaseType
	}
	return IncrementVersion(current, releaseType, preid)
}

// AutomaticBump increments current according to the classified bump. With a
// preid the result is always a prerelease; an existing prerelease of the same
// identifier is continued instead of starting a new one.
func AutomaticBump(current string, bump Bump, preid string) (string, error) {
	if bump == BumpNone {
		return "", fmt.Errorf("no bump to apply to %q", current)
	}
	if preid == "" {
		return IncrementVersion(current, bump.String(), "")
	}
	if prereleaseIdentifier(current) == preid {
		return IncrementVersion(current, ReleasePrerelease, preid)
	}
	return IncrementVersion(current, "pre"+bump.String(), preid)
}

// IncrementVersion increments a version by the given release type.
// Supported release types are: major, minor, patch, premajor, preminor, prepatch, prerelease.
func IncrementVersion(current, releaseType, preid string) (string, error) {
	v, err := mastermindsSemver.StrictNewVersion(current)
	if err != nil {
		return "", fmt.Errorf("invalid version %q: %w", current, err)
	}

	var next mastermindsSemver.Version
	switch releaseType {
	case ReleaseMajor:
		next = releaseMajor(*v)
	case ReleaseMinor:
		next = releaseMinor(*v)
	case ReleasePatch:
		next = v.IncPatch()
	case ReleasePremajor:
		next, err = v.IncMajor().SetPrerelease(startPrerelease(preid))
	case ReleasePreminor:
		next, err = v.IncMinor().SetPrerelease(startPrerelease(preid))
	case ReleasePrepatch:
		next, err = v.IncPatch().SetPrerelease(startPrerelease(preid))
	case ReleasePrerelease:
		next, err = incrementPrerelease(*v, preid)
	default:
		return "", fmt.Errorf("unknown release type: %s", releaseType)
	}
	if err != nil {
		return "", fmt.Errorf("failed to increment %q as %s: %w", current, releaseType, err)
	}

	return next.String(), nil
}

// releaseMajor finalises a pending major prerelease (2.0.0-rc.1 -> 2.0.0)
// and increments the major number otherwise.
func releaseMajor(v mastermindsSemver.Version) mastermindsSemver.Version {
	if v.Prerelease() != "" && v.Minor() == 0 && v.Patch() == 0 {
		stripped, _ := v.SetPrerelease("")
		return stripped
	}
	return v.IncMajor()
}

func releaseMinor(v mastermindsSemver.Version) mastermindsSemver.Version {
	if v.Prerelease() != "" && v.Patch() == 0 {
		stripped, _ := v.SetPrerelease("")
		return stripped
	}
	return v.IncMinor()
}

func incrementPrerelease(v mastermindsSemver.Version, preid string) (mastermindsSemver.Version, error) {
	prerelease := v.Prerelease()
	if prerelease == "" {
		return v.IncPatch().SetPrerelease(startPrerelease(preid))
	}

	if preid != "" && prereleaseIdentifierOf(prerelease) != preid {
		return v.SetPrerelease(startPrerelease(preid))
	}

	// Try to bump the last numeric part of the prerelease.
	parts := strings.Split(prerelease, ".")
	last := parts[len(parts)-1]
	if n, err := strconv.Atoi(last); err == nil {
		parts[len(parts)-1] = strconv.Itoa(n + 1)
		return v.SetPrerelease(strings.Join(parts, "."))
	}
	return v.SetPrerelease(prerelease + ".0")
}

func startPrerelease(preid string) string {
	if preid == "" {
		return "0"
	}
	return preid + ".0"
}

// prereleaseIdentifier returns the leading non-numeric identifier of the
// version's prerelease part ("beta" for 1.0.0-beta.2).
func prereleaseIdentifier(version string) string {
	v, err := mastermindsSemver.StrictNewVersion(version)
	if err != nil {
		return ""
	}
	return prereleaseIdentifierOf(v.Prerelease())
}

func prereleaseIdentifierOf(prerelease string) string {
	if prerelease == "" {
		return ""
	}
	first := strings.Split(prerelease, ".")[0]
	if _, err := strconv.Atoi(first); err == nil {
		return ""
	}
	return first
}

// normalizeVersion ensures version has 'v' prefix for semver compatibility
func normalizeVersion(version string) string {
	if strings.HasPrefix(version, "v") {
		return version
	}
	return "v" + version
}
