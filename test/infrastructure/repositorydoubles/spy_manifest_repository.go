//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"path/filepath"

	"github.com/rios0rios0/releaser/internal/domain/repositories"
)

// SpyManifestRepository implements repositories.ManifestRepository as a configurable spy.
// It detects every directory listed in DetectDirs (or all of them when DetectAll is set).
type SpyManifestRepository struct {
	ManifestName string
	DetectAll    bool
	DetectDirs   []string

	Version  string
	ReadErr  error
	WriteErr error
	Writes   []ManifestWrite
}

// ManifestWrite records a single invocation of WriteVersion.
type ManifestWrite struct {
	Dir     string
	Version string
}

var _ repositories.ManifestRepository = (*SpyManifestRepository)(nil)

func (s *SpyManifestRepository) Name() string { return s.ManifestName }

func (s *SpyManifestRepository) Detect(dir string) bool {
	if s.DetectAll {
		return true
	}
	for _, candidate := range s.DetectDirs {
		if filepath.Clean(candidate) == filepath.Clean(dir) {
			return true
		}
	}
	return false
}

func (s *SpyManifestRepository) ReadVersion(_ string) (string, error) {
	return s.Version, s.ReadErr
}

func (s *SpyManifestRepository) WriteVersion(dir, version string) (string, error) {
	s.Writes = append(s.Writes, ManifestWrite{Dir: dir, Version: version})
	if s.WriteErr != nil {
		return "", s.WriteErr
	}
	return filepath.Join(dir, s.ManifestName), nil
}
