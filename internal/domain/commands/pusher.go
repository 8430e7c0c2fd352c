package commands

import (
	"context"
	"fmt"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/releaser/internal/domain/entities"
	"github.com/rios0rios0/releaser/internal/domain/repositories"
)

// Pusher publishes the release branch and tag. Whether it runs at all is
// decided by the caller.
type Pusher struct {
	git repositories.GitRepository
}

// NewPusher creates a new Pusher.
func NewPusher(git repositories.GitRepository) *Pusher {
	return &Pusher{git: git}
}

// Push sends the branch and the tag to the remote. A checked out branch other
// than the pushed one is reported as a warning; the push still goes ahead.
func (it *Pusher) Push(ctx context.Context, input entities.PushInput, observer entities.Observer) error {
	current, err := it.git.CurrentBranch(ctx)
	switch {
	case err != nil:
		logger.Debugf("Failed to read the checked out branch: %v", err)
	case current != "" && current != input.Branch:
		notify(observer, input.ProjectName, entities.StepWarning, entities.LevelWarning,
			fmt.Sprintf("Checked out branch %q differs from the pushed branch %q.", current, input.Branch))
	}

	logger.WithField("project", input.ProjectName).
		Infof("Pushing branch %q and tag %q to %q", input.Branch, input.Tag, input.Remote)
	if err = it.git.Push(ctx, input); err != nil {
		return fmt.Errorf("%w: failed to push to %q: %w", entities.ErrGitOperation, input.Remote, err)
	}
	return nil
}
