//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"
	"sync"

	"github.com/rios0rios0/ship/internal/domain/entities"
	"github.com/rios0rios0/ship/internal/domain/repositories"
)

// UpdateCall records a single invocation of UpdatePullRequest.
type UpdateCall struct {
	Number int
	Title  string
	Body   string
}

// RetargetCall records a single invocation of UpdateBaseBranch.
type RetargetCall struct {
	Number int
	Base   string
}

// SpyPRHostRepository implements repositories.PRHostRepository as a
// configurable spy. GetByBranch is safe for concurrent use because the
// submit flow looks up stack PRs from multiple goroutines.
type SpyPRHostRepository struct {
	mu sync.Mutex

	// --- availability ---
	Available bool

	// --- GetByBranch ---
	PRsByBranch    map[string]*entities.PullRequest
	GetByBranchErr error
	LookedUp       []string

	// --- CreatePullRequest ---
	CreatePRErr error
	NextNumber  int
	PRInputs    []entities.PullRequestInput

	// --- UpdatePullRequest / UpdateBaseBranch ---
	UpdateErr     error
	UpdateCalls   []UpdateCall
	RetargetErr   error
	RetargetCalls []RetargetCall

	// --- feedback reads ---
	Reviews           []entities.Review
	ReviewsErr        error
	ReviewComments    []entities.ReviewComment
	ReviewCommentsErr error
	Comments          []entities.ConversationComment
	CommentsErr       error

	// --- OpenInBrowser ---
	OpenErr    error
	OpenedURLs []string
}

var _ repositories.PRHostRepository = (*SpyPRHostRepository)(nil)

func (p *SpyPRHostRepository) IsAvailable(_ context.Context) bool { return p.Available }

func (p *SpyPRHostRepository) CreatePullRequest(
	_ context.Context,
	input entities.PullRequestInput,
) (entities.PullRequest, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.PRInputs = append(p.PRInputs, input)
	if p.CreatePRErr != nil {
		return entities.PullRequest{}, p.CreatePRErr
	}

	number := p.NextNumber
	if number == 0 {
		number = 100 + len(p.PRInputs)
	}
	return entities.PullRequest{
		Number:     number,
		Title:      input.Title,
		URL:        "https://example.com/pr/" + input.Head,
		State:      entities.PRStateOpen,
		HeadBranch: input.Head,
		BaseBranch: input.Base,
	}, nil
}

func (p *SpyPRHostRepository) UpdatePullRequest(
	_ context.Context,
	number int,
	title, body string,
) error {
	p.UpdateCalls = append(p.UpdateCalls, UpdateCall{Number: number, Title: title, Body: body})
	return p.UpdateErr
}

func (p *SpyPRHostRepository) UpdateBaseBranch(_ context.Context, number int, base string) error {
	p.RetargetCalls = append(p.RetargetCalls, RetargetCall{Number: number, Base: base})
	return p.RetargetErr
}

func (p *SpyPRHostRepository) GetByBranch(
	_ context.Context,
	branch string,
) (*entities.PullRequest, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.LookedUp = append(p.LookedUp, branch)
	if p.GetByBranchErr != nil {
		return nil, p.GetByBranchErr
	}
	return p.PRsByBranch[branch], nil
}

func (p *SpyPRHostRepository) GetReviews(_ context.Context, _ int) ([]entities.Review, error) {
	return p.Reviews, p.ReviewsErr
}

func (p *SpyPRHostRepository) GetReviewComments(
	_ context.Context,
	_ int,
) ([]entities.ReviewComment, error) {
	return p.ReviewComments, p.ReviewCommentsErr
}

func (p *SpyPRHostRepository) GetComments(
	_ context.Context,
	_ int,
) ([]entities.ConversationComment, error) {
	return p.Comments, p.CommentsErr
}

func (p *SpyPRHostRepository) OpenInBrowser(_ context.Context, url string) error {
	p.OpenedURLs = append(p.OpenedURLs, url)
	return p.OpenErr
}
