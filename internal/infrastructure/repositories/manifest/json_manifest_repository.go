package manifest

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

const (
	packageJSONFile = "package.json"
	versionKey      = "version"
)

// JSONManifestRepository reads and writes the version of a package.json,
// keeping the rest of the document byte-for-byte.
type JSONManifestRepository struct{}

// NewJSONManifestRepository creates a new package.json manifest repository.
func NewJSONManifestRepository() *JSONManifestRepository {
	return &JSONManifestRepository{}
}

func (it *JSONManifestRepository) Name() string { return packageJSONFile }

func (it *JSONManifestRepository) Detect(dir string) bool {
	return fileExists(filepath.Join(dir, packageJSONFile))
}

func (it *JSONManifestRepository) ReadVersion(dir string) (string, error) {
	content, err := os.ReadFile(filepath.Join(dir, packageJSONFile))
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", packageJSONFile, err)
	}
	var manifest struct {
		Version string `json:"version"`
	}
	if err = json.Unmarshal(content, &manifest); err != nil {
		return "", fmt.Errorf("failed to parse %s: %w", packageJSONFile, err)
	}
	if manifest.Version == "" {
		return "", fmt.Errorf("%s: %w", packageJSONFile, ErrVersionNotFound)
	}
	return manifest.Version, nil
}

func (it *JSONManifestRepository) WriteVersion(dir, version string) (string, error) {
	path := filepath.Join(dir, packageJSONFile)
	err := rewrite(path, func(content []byte) ([]byte, error) {
		if !json.Valid(content) {
			return nil, fmt.Errorf("invalid JSON in %s", packageJSONFile)
		}
		start, end, err := rootVersionSpan(content)
		if err != nil {
			return nil, err
		}
		quoted, err := json.Marshal(version)
		if err != nil {
			return nil, fmt.Errorf("failed to encode version %q: %w", version, err)
		}
		updated := make([]byte, 0, len(content)+len(quoted))
		updated = append(updated, content[:start]...)
		updated = append(updated, quoted...)
		updated = append(updated, content[end:]...)
		return updated, nil
	})
	if err != nil {
		return "", err
	}
	return path, nil
}

// rootVersionSpan returns the byte range of the quoted value of the top-level
// "version" key. Keys of nested objects are skipped.
func rootVersionSpan(content []byte) (int, int, error) {
	decoder := json.NewDecoder(bytes.NewReader(content))
	if token, err := decoder.Token(); err != nil || token != json.Delim('{') {
		return 0, 0, errors.New("document root is not an object")
	}

	for decoder.More() {
		token, err := decoder.Token()
		if err != nil {
			return 0, 0, fmt.Errorf("failed to read key: %w", err)
		}
		keyEnd := int(decoder.InputOffset())

		if key, _ := token.(string); key != versionKey {
			if err = skipValue(decoder); err != nil {
				return 0, 0, err
			}
			continue
		}

		value, err := decoder.Token()
		if err != nil {
			return 0, 0, fmt.Errorf("failed to read %q: %w", versionKey, err)
		}
		if _, ok := value.(string); !ok {
			return 0, 0, fmt.Errorf("%q is not a string", versionKey)
		}
		valueEnd := int(decoder.InputOffset())
		// the span between the key and the value end is `: "x.y.z"`
		quote := bytes.IndexByte(content[keyEnd:valueEnd], '"')
		if quote < 0 {
			return 0, 0, fmt.Errorf("failed to locate %q value", versionKey)
		}
		return keyEnd + quote, valueEnd, nil
	}
	return 0, 0, ErrVersionNotFound
}

// skipValue consumes the next value, nested containers included.
func skipValue(decoder *json.Decoder) error {
	depth := 0
	for {
		token, err := decoder.Token()
		if err != nil {
			return fmt.Errorf("failed to skip value: %w", err)
		}
		switch token {
		case json.Delim('{'), json.Delim('['):
			depth++
		case json.Delim('}'), json.Delim(']'):
			depth--
		}
		if depth == 0 {
			return nil
		}
	}
}
