package repositories

import (
	"context"

	"github.com/rios0rios0/ship/internal/domain/entities"
)

// PRHostRepository abstracts the code-review host. Idempotency is always keyed
// on the head branch: "a PR exists for branch B" is the only existence query
// the core performs.
type PRHostRepository interface {
	// IsAvailable reports whether the host CLI is installed and authenticated.
	IsAvailable(ctx context.Context) bool

	// CreatePullRequest opens a new PR.
	CreatePullRequest(ctx context.Context, input entities.PullRequestInput) (entities.PullRequest, error)

	// UpdatePullRequest updates title and/or body of an existing PR. Empty
	// fields are left untouched.
	UpdatePullRequest(ctx context.Context, number int, title, body string) error

	// UpdateBaseBranch retargets an existing PR onto a new base branch.
	UpdateBaseBranch(ctx context.Context, number int, base string) error

	// GetByBranch returns the PR whose head is the given branch, or nil when
	// none exists.
	GetByBranch(ctx context.Context, branch string) (*entities.PullRequest, error)

	// GetReviews returns the submitted reviews of a PR.
	GetReviews(ctx context.Context, number int) ([]entities.Review, error)

	// GetReviewComments returns the inline review comments of a PR.
	GetReviewComments(ctx context.Context, number int) ([]entities.ReviewComment, error)

	// GetComments returns the conversation comments of a PR.
	GetComments(ctx context.Context, number int) ([]entities.ConversationComment, error)

	// OpenInBrowser opens the given PR URL in the user's browser.
	OpenInBrowser(ctx context.Context, url string) error
}
