package repositories

// ManifestRepository reads and writes the version of a project manifest format
// (package.json, version.hcl, VERSION, etc.).
type ManifestRepository interface {
	// Name returns the manifest identifier (e.g. "package.json").
	Name() string

	// Detect returns true if the directory holds a manifest of this format.
	Detect(dir string) bool

	// ReadVersion returns the version recorded in the manifest of dir.
	ReadVersion(dir string) (string, error)

	// WriteVersion records version in the manifest of dir and returns the written file path.
	WriteVersion(dir, version string) (string, error)
}
