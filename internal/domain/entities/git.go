package entities

// CommitInput describes a commit created by the version pipeline.
type CommitInput struct {
	Message  string
	Paths    []string // relative to the workspace root
	NoVerify bool
}

// TagInput describes an annotated tag.
type TagInput struct {
	Name    string
	Message string
}

// PushInput describes the refs pushed after a release.
type PushInput struct {
	ProjectName string
	Remote      string
	Branch      string
	Tag         string
	NoVerify    bool
}
