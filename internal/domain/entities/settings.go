package entities

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	logger "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// DefaultWorkspaceFile is the workspace description used when the settings do not name one.
const DefaultWorkspaceFile = "workspace.yaml"

// Settings is the top-level configuration of releaser.
type Settings struct {
	// Workspace is the path of the workspace file, relative to the settings file.
	Workspace string `yaml:"workspace"`
	// Release holds the default release options; CLI flags override them.
	Release ReleaseOptions `yaml:"release"`

	// Root is the absolute workspace root (directory of the workspace file).
	Root string `yaml:"-"`
}

// WorkspaceFile returns the absolute path of the workspace description.
func (s *Settings) WorkspaceFile() string {
	if filepath.IsAbs(s.Workspace) {
		return s.Workspace
	}
	return filepath.Join(s.Root, s.Workspace)
}

// envVarPattern matches ${VAR_NAME} placeholders.
var envVarPattern = regexp.MustCompile(`\$\{([^}]+)}`)

// NewSettings reads and parses a settings file, expanding ${ENV_VAR} references.
func NewSettings(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %q: %w", path, err)
	}

	var settings Settings
	if unmarshalErr := yaml.Unmarshal([]byte(expandEnv(string(data))), &settings); unmarshalErr != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", unmarshalErr)
	}

	if settings.Workspace == "" {
		settings.Workspace = DefaultWorkspaceFile
	}

	configDir, err := filepath.Abs(filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("invalid config path %q: %w", path, err)
	}
	workspacePath := settings.Workspace
	if !filepath.IsAbs(workspacePath) {
		workspacePath = filepath.Join(configDir, workspacePath)
	}
	settings.Workspace = workspacePath
	settings.Root = filepath.Dir(workspacePath)

	return &settings, nil
}

// NewSettingsFromEnvironment loads the first settings file found in the
// default locations, or falls back to a workspace.yaml in the working directory.
func NewSettingsFromEnvironment() (*Settings, error) {
	if path, err := FindConfigFile(); err == nil {
		logger.Debugf("Using config file: %s", path)
		return NewSettings(path)
	}

	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve working directory: %w", err)
	}
	return &Settings{
		Workspace: filepath.Join(cwd, DefaultWorkspaceFile),
		Root:      cwd,
	}, nil
}

// FindConfigFile searches for a configuration file in standard locations.
// Returns the path to the first file found or an error if none is found.
func FindConfigFile() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = ""
	}

	locations := []string{
		".",
		".config",
		"configs",
	}
	if homeDir != "" {
		locations = append(
			locations,
			homeDir,
			filepath.Join(homeDir, ".config"),
		)
	}

	patterns := []string{
		".releaser.yaml",
		".releaser.yml",
		"releaser.yaml",
		"releaser.yml",
	}

	for _, loc := range locations {
		for _, pat := range patterns {
			p := filepath.Join(loc, pat)
			if _, statErr := os.Stat(p); statErr == nil {
				return p, nil
			}
		}
	}

	return "", errors.New("config file not found in default locations")
}

// expandEnv replaces ${VAR} references with their environment values.
func expandEnv(raw string) string {
	return envVarPattern.ReplaceAllStringFunc(raw, func(match string) string {
		varName := envVarPattern.FindStringSubmatch(match)[1]
		if val := os.Getenv(varName); val != "" {
			return val
		}
		logger.Warnf("Environment variable %q is not set", varName)
		return ""
	})
}
