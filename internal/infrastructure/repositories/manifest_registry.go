package repositories

import (
	domainRepos "github.com/rios0rios0/releaser/internal/domain/repositories"
)

// ManifestRegistry manages the supported manifest formats in detection order.
type ManifestRegistry struct {
	manifests []domainRepos.ManifestRepository
}

// NewManifestRegistry creates an empty manifest registry.
func NewManifestRegistry() *ManifestRegistry {
	return &ManifestRegistry{}
}

// Register appends a manifest format. Earlier registrations win on detection.
func (r *ManifestRegistry) Register(manifest domainRepos.ManifestRepository) {
	r.manifests = append(r.manifests, manifest)
}

// Detect returns the first manifest format present in dir.
func (r *ManifestRegistry) Detect(dir string) (domainRepos.ManifestRepository, bool) {
	for _, manifest := range r.manifests {
		if manifest.Detect(dir) {
			return manifest, true
		}
	}
	return nil, false
}

// Names returns the registered manifest names in detection order.
func (r *ManifestRegistry) Names() []string {
	names := make([]string, 0, len(r.manifests))
	for _, manifest := range r.manifests {
		names = append(names, manifest.Name())
	}
	return names
}
