package git

import (
	"net/url"
	"os"
	"strings"

	"github.com/go-git/go-git/v5/plumbing/transport"
	"github.com/go-git/go-git/v5/plumbing/transport/http"
)

const (
	providerGitHub      = "github"
	providerAzureDevOps = "azuredevops"
	providerGitLab      = "gitlab"
)

// providerFromURL detects the hosting service of a remote URL.
func providerFromURL(rawURL string) string {
	switch {
	case strings.Contains(rawURL, "dev.azure.com") || strings.Contains(rawURL, "visualstudio.com"):
		return providerAzureDevOps
	case strings.Contains(rawURL, "github.com"):
		return providerGitHub
	case strings.Contains(rawURL, "gitlab"):
		return providerGitLab
	default:
		return ""
	}
}

// resolveTokenFromEnv returns the token of the hosting service, falling back to GIT_TOKEN.
func resolveTokenFromEnv(providerType string) string {
	var candidates []string
	switch providerType {
	case providerGitHub:
		candidates = []string{"GITHUB_TOKEN", "GH_TOKEN"}
	case providerAzureDevOps:
		candidates = []string{"AZURE_DEVOPS_EXT_PAT", "SYSTEM_ACCESSTOKEN"}
	case providerGitLab:
		candidates = []string{"GITLAB_TOKEN", "GL_TOKEN"}
	}
	candidates = append(candidates, "GIT_TOKEN")

	for _, name := range candidates {
		if token := os.Getenv(name); token != "" {
			return token
		}
	}
	return ""
}

// usernameFor returns the basic auth user each hosting service expects with a token.
func usernameFor(providerType string) string {
	switch providerType {
	case providerGitHub:
		return "x-access-token"
	case providerGitLab:
		return "oauth2"
	case providerAzureDevOps:
		return "pat"
	default:
		return "git"
	}
}

// authForURL builds HTTP basic auth for HTTP(S) remotes with a token in the
// environment. Other remotes use go-git's default transport auth.
func authForURL(rawURL string) transport.AuthMethod {
	parsed, err := url.Parse(rawURL)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		return nil
	}

	providerType := providerFromURL(rawURL)
	token := resolveTokenFromEnv(providerType)
	if token == "" {
		return nil
	}
	return &http.BasicAuth{Username: usernameFor(providerType), Password: token}
}
