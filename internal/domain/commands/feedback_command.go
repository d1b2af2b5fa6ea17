package commands

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/rios0rios0/ship/internal/domain/entities"
	"github.com/rios0rios0/ship/internal/domain/repositories"
)

// Feedback is the interface for the review-feedback command.
type Feedback interface {
	Execute(ctx context.Context) (entities.PullRequestFeedback, error)
}

// FeedbackCommand gathers everything reviewers said about the current
// change's PR: reviews, inline review comments, and conversation comments,
// fetched concurrently.
type FeedbackCommand struct {
	vcs    repositories.VCSRepository
	prHost repositories.PRHostRepository
}

// NewFeedbackCommand creates a new FeedbackCommand.
func NewFeedbackCommand(
	vcs repositories.VCSRepository,
	prHost repositories.PRHostRepository,
) *FeedbackCommand {
	return &FeedbackCommand{vcs: vcs, prHost: prHost}
}

// Execute resolves the PR for the current bookmark and fans out the three
// feedback fetches, waiting for all of them before returning.
func (it *FeedbackCommand) Execute(ctx context.Context) (entities.PullRequestFeedback, error) {
	if err := checkVCSPreconditions(ctx, it.vcs); err != nil {
		return entities.PullRequestFeedback{}, err
	}
	if !it.prHost.IsAvailable(ctx) {
		return entities.PullRequestFeedback{}, entities.ErrPRHostUnavailable
	}

	current, err := it.vcs.GetCurrentChange(ctx)
	if err != nil {
		return entities.PullRequestFeedback{}, fmt.Errorf("failed to read working copy: %w", err)
	}

	bookmark := current.Bookmark()
	if bookmark == "" {
		// The working copy may be an empty checkpoint on top of the real work.
		parent, parentErr := it.vcs.GetParentChange(ctx)
		if parentErr == nil {
			bookmark = parent.Bookmark()
		}
	}
	if bookmark == "" {
		return entities.PullRequestFeedback{}, entities.ErrNoBookmark
	}

	pr, err := it.prHost.GetByBranch(ctx, bookmark)
	if err != nil {
		return entities.PullRequestFeedback{}, fmt.Errorf("failed to look up PR for %q: %w", bookmark, err)
	}
	if pr == nil {
		return entities.PullRequestFeedback{}, fmt.Errorf("no pull request found for bookmark %q", bookmark)
	}

	feedback := entities.PullRequestFeedback{PR: *pr}

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		reviews, reviewsErr := it.prHost.GetReviews(groupCtx, pr.Number)
		feedback.Reviews = reviews
		return reviewsErr
	})
	group.Go(func() error {
		comments, commentsErr := it.prHost.GetReviewComments(groupCtx, pr.Number)
		feedback.ReviewComments = comments
		return commentsErr
	})
	group.Go(func() error {
		comments, commentsErr := it.prHost.GetComments(groupCtx, pr.Number)
		feedback.Comments = comments
		return commentsErr
	})

	if waitErr := group.Wait(); waitErr != nil {
		return entities.PullRequestFeedback{}, fmt.Errorf("failed to fetch PR feedback: %w", waitErr)
	}

	return feedback, nil
}
