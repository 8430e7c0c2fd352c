package entities

const (
	DefaultRemote              = "origin"
	DefaultBaseBranch          = "main"
	DefaultCommitMessageFormat = "chore({{projectName}}): release version {{version}}"
)

// ReleaseOptions is the configuration of one release run.
type ReleaseOptions struct {
	Push                 bool     `yaml:"push"`
	Remote               string   `yaml:"remote"`
	DryRun               bool     `yaml:"dryRun"`
	TrackDeps            bool     `yaml:"trackDeps"`
	BaseBranch           string   `yaml:"baseBranch"`
	NoVerify             bool     `yaml:"noVerify"`
	SyncVersions         bool     `yaml:"syncVersions"`
	SkipRootChangelog    bool     `yaml:"skipRootChangelog"`
	SkipProjectChangelog bool     `yaml:"skipProjectChangelog"`
	ReleaseAs            string   `yaml:"releaseAs"`
	Version              string   `yaml:"version"` // alias of releaseAs
	Preid                string   `yaml:"preid"`
	ChangelogHeader      string   `yaml:"changelogHeader"`
	VersionTagPrefix     *string  `yaml:"versionTagPrefix"`
	TagPrefix            *string  `yaml:"tagPrefix"` // alias of versionTagPrefix, takes precedence
	PostTargets          []string `yaml:"postTargets"`
	CommitMessageFormat  string   `yaml:"commitMessageFormat"`
	Preset               string   `yaml:"preset"`
	AllowEmptyRelease    bool     `yaml:"allowEmptyRelease"`
	SkipCommitTypes      []string `yaml:"skipCommitTypes"`
	SkipCommit           bool     `yaml:"skipCommit"`
	PreCommitTargets     []string `yaml:"preCommitTargets"`
	PostCommitTargets    []string `yaml:"postCommitTargets"`
}

// Normalize resolves option aliases and fills defaults. The receiver is not modified.
func (o ReleaseOptions) Normalize() ReleaseOptions {
	normalized := o

	if normalized.ReleaseAs == "" {
		normalized.ReleaseAs = normalized.Version
	}
	if normalized.TagPrefix != nil {
		normalized.VersionTagPrefix = normalized.TagPrefix
	}
	if normalized.Remote == "" {
		normalized.Remote = DefaultRemote
	}
	if normalized.BaseBranch == "" {
		normalized.BaseBranch = DefaultBaseBranch
	}
	if normalized.ChangelogHeader == "" {
		normalized.ChangelogHeader = DefaultChangelogHeader
	}
	if normalized.CommitMessageFormat == "" {
		normalized.CommitMessageFormat = DefaultCommitMessageFormat
	}
	normalized.Preset = string(NormalizePreset(normalized.Preset))

	return normalized
}
