//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"
	"sync"

	"github.com/rios0rios0/releaser/internal/domain/entities"
	"github.com/rios0rios0/releaser/internal/domain/repositories"
)

// SpyGitRepository implements repositories.GitRepository as a configurable spy.
// Configure the response fields for the methods your test exercises,
// then inspect the call-tracking fields to verify behavior.
type SpyGitRepository struct {
	mu sync.Mutex

	// --- Tags ---
	TagList []string
	TagsErr error

	// --- CommitsSince ---
	// Commits maps a path scope ("" for the whole repository) to its commits.
	Commits           map[string][]entities.Commit
	CommitsErr        error
	CommitsSinceCalls []CommitsSinceCall

	// --- CurrentBranch ---
	Branch string

	// --- Commit / CreateTag / Push ---
	CommitErr   error
	CommitCalls []entities.CommitInput
	TagErr      error
	TagCalls    []entities.TagInput
	PushErr     error
	PushCalls   []entities.PushInput
}

// CommitsSinceCall records a single invocation of CommitsSince.
type CommitsSinceCall struct {
	Ref  string
	Path string
}

var _ repositories.GitRepository = (*SpyGitRepository)(nil)

func (s *SpyGitRepository) Tags(_ context.Context) ([]string, error) {
	return s.TagList, s.TagsErr
}

func (s *SpyGitRepository) CommitsSince(_ context.Context, ref, path string) ([]entities.Commit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.CommitsSinceCalls = append(s.CommitsSinceCalls, CommitsSinceCall{Ref: ref, Path: path})
	if s.CommitsErr != nil {
		return nil, s.CommitsErr
	}
	return s.Commits[path], nil
}

func (s *SpyGitRepository) CurrentBranch(_ context.Context) (string, error) {
	return s.Branch, nil
}

func (s *SpyGitRepository) Commit(_ context.Context, input entities.CommitInput) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.CommitCalls = append(s.CommitCalls, input)
	return s.CommitErr
}

func (s *SpyGitRepository) CreateTag(_ context.Context, input entities.TagInput) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.TagCalls = append(s.TagCalls, input)
	return s.TagErr
}

func (s *SpyGitRepository) Push(_ context.Context, input entities.PushInput) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.PushCalls = append(s.PushCalls, input)
	return s.PushErr
}

// MutationCount returns the number of commit, tag and push invocations.
func (s *SpyGitRepository) MutationCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.CommitCalls) + len(s.TagCalls) + len(s.PushCalls)
}

// NewCommit builds a raw commit as read from version control.
func NewCommit(hash, message string) entities.Commit {
	return entities.Commit{Hash: hash, Message: message}
}
