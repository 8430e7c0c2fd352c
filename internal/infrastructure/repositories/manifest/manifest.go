package manifest

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

const manifestFileMode = 0o644

// ErrVersionNotFound is returned when a manifest has no version field.
var ErrVersionNotFound = errors.New("version field not found")

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// rewrite reads the file, transforms it and writes it back with its original mode.
func rewrite(path string, transform func([]byte) ([]byte, error)) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("failed to stat %q: %w", path, err)
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %q: %w", path, err)
	}
	updated, err := transform(content)
	if err != nil {
		return fmt.Errorf("failed to update %q: %w", filepath.Base(path), err)
	}

	mode := info.Mode().Perm()
	if mode == 0 {
		mode = manifestFileMode
	}
	if err = os.WriteFile(path, updated, mode); err != nil {
		return fmt.Errorf("failed to write %q: %w", path, err)
	}
	return nil
}
