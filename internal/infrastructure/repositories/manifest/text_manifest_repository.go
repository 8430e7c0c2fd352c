package manifest

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const versionTextFile = "VERSION"

// TextManifestRepository handles a plain VERSION file holding only the version.
type TextManifestRepository struct{}

// NewTextManifestRepository creates a new VERSION file manifest repository.
func NewTextManifestRepository() *TextManifestRepository {
	return &TextManifestRepository{}
}

func (it *TextManifestRepository) Name() string { return versionTextFile }

func (it *TextManifestRepository) Detect(dir string) bool {
	return fileExists(filepath.Join(dir, versionTextFile))
}

func (it *TextManifestRepository) ReadVersion(dir string) (string, error) {
	content, err := os.ReadFile(filepath.Join(dir, versionTextFile))
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", versionTextFile, err)
	}
	version := strings.TrimPrefix(strings.TrimSpace(string(content)), "v")
	if version == "" {
		return "", fmt.Errorf("%s: %w", versionTextFile, ErrVersionNotFound)
	}
	return version, nil
}

func (it *TextManifestRepository) WriteVersion(dir, version string) (string, error) {
	path := filepath.Join(dir, versionTextFile)
	err := rewrite(path, func(_ []byte) ([]byte, error) {
		return []byte(version + "\n"), nil
	})
	if err != nil {
		return "", err
	}
	return path, nil
}
