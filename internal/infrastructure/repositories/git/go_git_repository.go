package git

import (
	"context"
	"errors"
	"fmt"
	pathpkg "path"
	"path/filepath"
	"strings"
	"sync"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	lru "github.com/hashicorp/golang-lru/v2"
	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/releaser/internal/domain/entities"
)

const (
	defaultAuthorName  = "releaser"
	defaultAuthorEmail = "releaser@localhost"
	historyCacheSize   = 64
)

// historyKey identifies a CommitsSince range.
type historyKey struct {
	ref  string
	path string
}

// GoGitRepository implements the version-control operations with go-git.
// Commit hooks are not run by go-git, so NoVerify has no effect.
//
// Paths on its API are relative to the workspace root, which may sit below the
// git work tree root; they are translated before reaching go-git.
//
// History reads are cached per (ref, path) until the next commit or tag, so the
// bump calculation and the changelog walk the log only once.
type GoGitRepository struct {
	settings *entities.Settings
	history  *lru.Cache[historyKey, []entities.Commit]

	once    sync.Once
	repo    *gogit.Repository
	prefix  string // workspace root relative to the work tree root
	openErr error
}

// NewGoGitRepository creates a repository rooted at (or above) the workspace
// root. The repository is opened on first use.
func NewGoGitRepository(settings *entities.Settings) *GoGitRepository {
	history, err := lru.New[historyKey, []entities.Commit](historyCacheSize)
	if err != nil {
		panic(fmt.Sprintf("failed to create history cache: %v", err))
	}
	return &GoGitRepository{settings: settings, history: history}
}

// NewGoGitRepositoryAt creates a repository for the given directory.
func NewGoGitRepositoryAt(dir string) *GoGitRepository {
	return NewGoGitRepository(&entities.Settings{Root: dir})
}

func (it *GoGitRepository) open() (*gogit.Repository, error) {
	it.once.Do(func() {
		dir := it.settings.Root
		it.repo, it.openErr = gogit.PlainOpenWithOptions(dir, &gogit.PlainOpenOptions{DetectDotGit: true})
		if it.openErr != nil {
			it.openErr = fmt.Errorf("failed to open git repository at %q: %w", dir, it.openErr)
			return
		}

		worktree, err := it.repo.Worktree()
		if err != nil {
			// bare repositories have no work tree to be nested in
			return
		}
		it.prefix, it.openErr = workspacePrefix(worktree.Filesystem.Root(), dir)
	})
	return it.repo, it.openErr
}

// workspacePrefix returns the slash-separated path of workspaceRoot inside the
// work tree, "" when both are the same directory.
func workspacePrefix(worktreeRoot, workspaceRoot string) (string, error) {
	absolute, err := filepath.Abs(workspaceRoot)
	if err != nil {
		return "", fmt.Errorf("failed to resolve workspace root %q: %w", workspaceRoot, err)
	}
	rel, err := filepath.Rel(resolveSymlinks(worktreeRoot), resolveSymlinks(absolute))
	if err != nil {
		return "", fmt.Errorf("workspace root %q is outside the git work tree %q: %w", workspaceRoot, worktreeRoot, err)
	}
	rel = filepath.ToSlash(rel)
	if rel == ".." || strings.HasPrefix(rel, "../") {
		return "", fmt.Errorf("workspace root %q is outside the git work tree %q", workspaceRoot, worktreeRoot)
	}
	return normalizePath(rel), nil
}

func resolveSymlinks(path string) string {
	if resolved, err := filepath.EvalSymlinks(path); err == nil {
		return resolved
	}
	return path
}

// worktreePath converts a workspace-relative path to a work tree path.
func (it *GoGitRepository) worktreePath(path string) string {
	return normalizePath(pathpkg.Join(it.prefix, normalizePath(path)))
}

// Tags returns the short names of every tag.
func (it *GoGitRepository) Tags(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	repo, err := it.open()
	if err != nil {
		return nil, err
	}

	iter, err := repo.Tags()
	if err != nil {
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}
	defer iter.Close()

	var tags []string
	err = iter.ForEach(func(ref *plumbing.Reference) error {
		tags = append(tags, ref.Name().Short())
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to iterate tags: %w", err)
	}
	return tags, nil
}

// CommitsSince returns the commits reachable from HEAD and not from the tag
// ref, newest first, that touch path.
func (it *GoGitRepository) CommitsSince(ctx context.Context, ref, path string) ([]entities.Commit, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	key := historyKey{ref: ref, path: normalizePath(path)}
	if commits, ok := it.history.Get(key); ok {
		return commits, nil
	}

	commits, err := it.readHistory(ref, key.path)
	if err != nil {
		return nil, err
	}
	it.history.Add(key, commits)
	return commits, nil
}

func (it *GoGitRepository) readHistory(ref, workspacePath string) ([]entities.Commit, error) {
	repo, err := it.open()
	if err != nil {
		return nil, err
	}

	head, err := repo.Head()
	if err != nil {
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to resolve HEAD: %w", err)
	}

	excluded, err := it.ancestorsOfTag(repo, ref)
	if err != nil {
		return nil, err
	}

	options := &gogit.LogOptions{From: head.Hash()}
	if scope := it.worktreePath(workspacePath); scope != "" {
		options.PathFilter = func(file string) bool {
			return strings.HasPrefix(file, scope+"/")
		}
	}

	iter, err := repo.Log(options)
	if err != nil {
		return nil, fmt.Errorf("failed to read log: %w", err)
	}
	defer iter.Close()

	var commits []entities.Commit
	err = iter.ForEach(func(commit *object.Commit) error {
		if excluded[commit.Hash] {
			return nil
		}
		commits = append(commits, entities.Commit{
			Hash:    commit.Hash.String(),
			Message: commit.Message,
			Subject: strings.TrimSpace(strings.SplitN(commit.Message, "\n", 2)[0]), //nolint:mnd // header and body
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to iterate log: %w", err)
	}
	return commits, nil
}

// ancestorsOfTag collects every commit reachable from the tag, including the tagged one.
func (it *GoGitRepository) ancestorsOfTag(repo *gogit.Repository, tag string) (map[plumbing.Hash]bool, error) {
	excluded := make(map[plumbing.Hash]bool)
	if tag == "" {
		return excluded, nil
	}

	ref, err := repo.Tag(tag)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve tag %q: %w", tag, err)
	}
	commit, err := peelTag(repo, ref)
	if err != nil {
		return nil, err
	}

	iter := object.NewCommitPreorderIter(commit, nil, nil)
	defer iter.Close()
	err = iter.ForEach(func(ancestor *object.Commit) error {
		excluded[ancestor.Hash] = true
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk history of %q: %w", tag, err)
	}
	return excluded, nil
}

// peelTag returns the commit a lightweight or annotated tag points to.
func peelTag(repo *gogit.Repository, ref *plumbing.Reference) (*object.Commit, error) {
	tagObject, err := repo.TagObject(ref.Hash())
	switch {
	case err == nil:
		commit, commitErr := tagObject.Commit()
		if commitErr != nil {
			return nil, fmt.Errorf("tag %q does not point to a commit: %w", ref.Name().Short(), commitErr)
		}
		return commit, nil
	case errors.Is(err, plumbing.ErrObjectNotFound):
		commit, commitErr := repo.CommitObject(ref.Hash())
		if commitErr != nil {
			return nil, fmt.Errorf("tag %q does not point to a commit: %w", ref.Name().Short(), commitErr)
		}
		return commit, nil
	default:
		return nil, fmt.Errorf("failed to read tag %q: %w", ref.Name().Short(), err)
	}
}

// CurrentBranch returns the checked out branch name.
func (it *GoGitRepository) CurrentBranch(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	repo, err := it.open()
	if err != nil {
		return "", err
	}
	head, err := repo.Head()
	if err != nil {
		return "", fmt.Errorf("failed to resolve HEAD: %w", err)
	}
	if !head.Name().IsBranch() {
		return "", errors.New("HEAD is detached")
	}
	return head.Name().Short(), nil
}

// Commit stages the given paths and records a commit. Empty commits are allowed.
func (it *GoGitRepository) Commit(ctx context.Context, input entities.CommitInput) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	repo, err := it.open()
	if err != nil {
		return err
	}

	worktree, err := repo.Worktree()
	if err != nil {
		return fmt.Errorf("failed to open worktree: %w", err)
	}
	for _, path := range input.Paths {
		if _, err = worktree.Add(it.worktreePath(path)); err != nil {
			return fmt.Errorf("failed to stage %q: %w", path, err)
		}
	}

	hash, err := worktree.Commit(input.Message, &gogit.CommitOptions{
		Author:            it.signature(repo),
		AllowEmptyCommits: true,
	})
	if err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}
	it.history.Purge()
	logger.Debugf("Created commit %s", hash)
	return nil
}

// CreateTag creates an annotated tag on HEAD.
func (it *GoGitRepository) CreateTag(ctx context.Context, input entities.TagInput) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	repo, err := it.open()
	if err != nil {
		return err
	}

	head, err := repo.Head()
	if err != nil {
		return fmt.Errorf("failed to resolve HEAD: %w", err)
	}
	_, err = repo.CreateTag(input.Name, head.Hash(), &gogit.CreateTagOptions{
		Tagger:  it.signature(repo),
		Message: input.Message,
	})
	if err != nil {
		return fmt.Errorf("failed to create tag %q: %w", input.Name, err)
	}
	it.history.Purge()
	return nil
}

// Push sends the branch and the tag to the remote. An up-to-date remote is not an error.
func (it *GoGitRepository) Push(ctx context.Context, input entities.PushInput) error {
	repo, err := it.open()
	if err != nil {
		return err
	}

	remote, err := repo.Remote(input.Remote)
	if err != nil {
		return fmt.Errorf("failed to find remote %q: %w", input.Remote, err)
	}

	var refSpecs []config.RefSpec
	if input.Branch != "" {
		refSpecs = append(refSpecs, config.RefSpec(fmt.Sprintf("refs/heads/%[1]s:refs/heads/%[1]s", input.Branch)))
	}
	if input.Tag != "" {
		refSpecs = append(refSpecs, config.RefSpec(fmt.Sprintf("refs/tags/%[1]s:refs/tags/%[1]s", input.Tag)))
	}

	options := &gogit.PushOptions{RemoteName: input.Remote, RefSpecs: refSpecs}
	if urls := remote.Config().URLs; len(urls) > 0 {
		if auth := authForURL(urls[0]); auth != nil {
			options.Auth = auth
		}
	}

	err = repo.PushContext(ctx, options)
	if err != nil && !errors.Is(err, gogit.NoErrAlreadyUpToDate) {
		return fmt.Errorf("failed to push: %w", err)
	}
	return nil
}

// signature reads user.name and user.email from the repository and global
// configuration, with a fixed identity as fallback.
func (it *GoGitRepository) signature(repo *gogit.Repository) *object.Signature {
	signature := &object.Signature{Name: defaultAuthorName, Email: defaultAuthorEmail, When: time.Now()}

	cfg, err := repo.ConfigScoped(config.GlobalScope)
	if err != nil {
		logger.Debugf("Failed to read git config, using default identity: %v", err)
		return signature
	}
	if cfg.User.Name != "" {
		signature.Name = cfg.User.Name
	}
	if cfg.User.Email != "" {
		signature.Email = cfg.User.Email
	}
	return signature
}

func normalizePath(path string) string {
	path = strings.Trim(strings.ReplaceAll(path, "\\", "/"), "/")
	if path == "." {
		return ""
	}
	return strings.TrimPrefix(path, "./")
}
