package entities

// DependencyRoot is an upstream project whose commits count toward the
// release decision of a downstream project.
type DependencyRoot struct {
	ProjectName string
	RootPath    string
	ReleaseAs   string
}

// DependencyUpdate records the next version computed for an updated dependency root.
type DependencyUpdate struct {
	ProjectName string
	NewVersion  string
}

// VersionDecision is the outcome of the bump calculation. An empty Version
// means there is nothing to release.
type VersionDecision struct {
	Version           string
	PreviousVersion   string
	PreviousTag       string // empty when no previous release tag exists
	DependencyUpdates []DependencyUpdate
}

// HasVersion reports whether the decision warrants a release.
func (d VersionDecision) HasVersion() bool {
	return d.Version != ""
}
