package gh

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/rios0rios0/ship/internal/domain/entities"
	domainRepos "github.com/rios0rios0/ship/internal/domain/repositories"
	"github.com/rios0rios0/ship/internal/infrastructure/repositories/shell"
)

const (
	toolName = "gh"

	// apiTimeout bounds every gh invocation; they all talk to the remote.
	apiTimeout = 30 * time.Second
)

// PRHostRepository implements the PR-host port by shelling out to the gh CLI.
type PRHostRepository struct {
	runner shell.CommandRunner
}

// NewPRHostRepository creates a gh-backed PR host repository.
func NewPRHostRepository(runner shell.CommandRunner) domainRepos.PRHostRepository {
	return &PRHostRepository{runner: runner}
}

// IsAvailable reports whether gh is installed and authenticated.
func (it *PRHostRepository) IsAvailable(ctx context.Context) bool {
	_, _, err := it.run(ctx, "auth", "status")
	return err == nil
}

// CreatePullRequest opens a new PR. gh prints the PR URL on stdout; the number
// is its last path segment.
func (it *PRHostRepository) CreatePullRequest(
	ctx context.Context,
	input entities.PullRequestInput,
) (entities.PullRequest, error) {
	args := []string{
		"pr", "create",
		"--title", input.Title,
		"--body", input.Body,
		"--head", input.Head,
		"--base", input.Base,
	}
	if input.Draft {
		args = append(args, "--draft")
	}

	stdout, _, err := it.run(ctx, args...)
	if err != nil {
		return entities.PullRequest{}, err
	}

	url := lastNonEmptyLine(stdout)
	number := numberFromURL(url)
	if number == 0 {
		return entities.PullRequest{}, fmt.Errorf("could not parse PR number from %q", url)
	}

	return entities.PullRequest{
		Number:     number,
		Title:      input.Title,
		URL:        url,
		State:      entities.PRStateOpen,
		HeadBranch: input.Head,
		BaseBranch: input.Base,
	}, nil
}

// UpdatePullRequest updates the title and/or body of an existing PR.
func (it *PRHostRepository) UpdatePullRequest(
	ctx context.Context,
	number int,
	title, body string,
) error {
	args := []string{"pr", "edit", fmt.Sprintf("%d", number)}
	if title != "" {
		args = append(args, "--title", title)
	}
	if body != "" {
		args = append(args, "--body", body)
	}
	if len(args) == 3 {
		return nil // nothing to update
	}

	_, _, err := it.run(ctx, args...)
	return err
}

// UpdateBaseBranch retargets an existing PR onto a new base branch.
func (it *PRHostRepository) UpdateBaseBranch(ctx context.Context, number int, base string) error {
	_, _, err := it.run(ctx, "pr", "edit", fmt.Sprintf("%d", number), "--base", base)
	return err
}

// ghPR mirrors the fields we request from gh's JSON output.
type ghPR struct {
	Number      int    `json:"number"`
	Title       string `json:"title"`
	URL         string `json:"url"`
	State       string `json:"state"` // "OPEN", "MERGED", "CLOSED"
	HeadRefName string `json:"headRefName"`
	BaseRefName string `json:"baseRefName"`
}

// GetByBranch returns the open PR whose head is the given branch, or nil.
func (it *PRHostRepository) GetByBranch(
	ctx context.Context,
	branch string,
) (*entities.PullRequest, error) {
	var stdout string
	err := shell.RetryIdempotent(ctx, func() error {
		var runErr error
		stdout, _, runErr = it.run(ctx,
			"pr", "list",
			"--head", branch,
			"--state", "open",
			"--limit", "1",
			"--json", "number,title,url,state,headRefName,baseRefName",
		)
		return runErr
	})
	if err != nil {
		return nil, err
	}

	var prs []ghPR
	if unmarshalErr := json.Unmarshal([]byte(stdout), &prs); unmarshalErr != nil {
		return nil, fmt.Errorf("failed to parse gh pr list output: %w", unmarshalErr)
	}
	if len(prs) == 0 {
		return nil, nil
	}

	pr := toPullRequest(prs[0])
	return &pr, nil
}

type ghReview struct {
	ID          string    `json:"id"`
	Author      ghAuthor  `json:"author"`
	State       string    `json:"state"`
	Body        string    `json:"body"`
	SubmittedAt time.Time `json:"submittedAt"`
}

type ghAuthor struct {
	Login string `json:"login"`
}

// GetReviews returns the submitted reviews of a PR.
func (it *PRHostRepository) GetReviews(
	ctx context.Context,
	number int,
) ([]entities.Review, error) {
	stdout, err := it.runRead(ctx,
		"pr", "view", fmt.Sprintf("%d", number), "--json", "reviews")
	if err != nil {
		return nil, err
	}

	var payload struct {
		Reviews []ghReview `json:"reviews"`
	}
	if unmarshalErr := json.Unmarshal([]byte(stdout), &payload); unmarshalErr != nil {
		return nil, fmt.Errorf("failed to parse reviews: %w", unmarshalErr)
	}

	reviews := make([]entities.Review, 0, len(payload.Reviews))
	for _, review := range payload.Reviews {
		reviews = append(reviews, entities.Review{
			ID:          review.ID,
			Author:      review.Author.Login,
			State:       review.State,
			Body:        review.Body,
			SubmittedAt: review.SubmittedAt,
		})
	}
	return reviews, nil
}

type ghReviewComment struct {
	ID        int64     `json:"id"`
	Path      string    `json:"path"`
	Line      *int      `json:"line"`
	Body      string    `json:"body"`
	User      ghUser    `json:"user"`
	CreatedAt time.Time `json:"created_at"`
	InReplyTo int64     `json:"in_reply_to_id"`
	DiffHunk  string    `json:"diff_hunk"`
}

type ghUser struct {
	Login string `json:"login"`
}

// GetReviewComments returns the inline review comments of a PR via the REST
// API; gh substitutes {owner} and {repo} from the current repository.
func (it *PRHostRepository) GetReviewComments(
	ctx context.Context,
	number int,
) ([]entities.ReviewComment, error) {
	stdout, err := it.runRead(ctx,
		"api", fmt.Sprintf("repos/{owner}/{repo}/pulls/%d/comments", number))
	if err != nil {
		return nil, err
	}

	var raw []ghReviewComment
	if unmarshalErr := json.Unmarshal([]byte(stdout), &raw); unmarshalErr != nil {
		return nil, fmt.Errorf("failed to parse review comments: %w", unmarshalErr)
	}

	comments := make([]entities.ReviewComment, 0, len(raw))
	for _, comment := range raw {
		replyTo := ""
		if comment.InReplyTo != 0 {
			replyTo = fmt.Sprintf("%d", comment.InReplyTo)
		}
		comments = append(comments, entities.ReviewComment{
			ID:        fmt.Sprintf("%d", comment.ID),
			Path:      comment.Path,
			Line:      comment.Line,
			Body:      comment.Body,
			Author:    comment.User.Login,
			CreatedAt: comment.CreatedAt,
			ReplyTo:   replyTo,
			DiffHunk:  comment.DiffHunk,
		})
	}
	return comments, nil
}

type ghComment struct {
	ID        string    `json:"id"`
	Author    ghAuthor  `json:"author"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"createdAt"`
}

// GetComments returns the conversation comments of a PR.
func (it *PRHostRepository) GetComments(
	ctx context.Context,
	number int,
) ([]entities.ConversationComment, error) {
	stdout, err := it.runRead(ctx,
		"pr", "view", fmt.Sprintf("%d", number), "--json", "comments")
	if err != nil {
		return nil, err
	}

	var payload struct {
		Comments []ghComment `json:"comments"`
	}
	if unmarshalErr := json.Unmarshal([]byte(stdout), &payload); unmarshalErr != nil {
		return nil, fmt.Errorf("failed to parse comments: %w", unmarshalErr)
	}

	comments := make([]entities.ConversationComment, 0, len(payload.Comments))
	for _, comment := range payload.Comments {
		comments = append(comments, entities.ConversationComment{
			ID:        comment.ID,
			Body:      comment.Body,
			Author:    comment.Author.Login,
			CreatedAt: comment.CreatedAt,
		})
	}
	return comments, nil
}

// OpenInBrowser opens the given PR URL in the user's browser.
func (it *PRHostRepository) OpenInBrowser(ctx context.Context, url string) error {
	_, _, err := it.run(ctx, "pr", "view", url, "--web")
	return err
}

func (it *PRHostRepository) runRead(ctx context.Context, args ...string) (string, error) {
	var stdout string
	err := shell.RetryIdempotent(ctx, func() error {
		var runErr error
		stdout, _, runErr = it.run(ctx, args...)
		return runErr
	})
	return stdout, err
}

// run executes gh with a bounded timeout and classifies failures at this
// boundary.
func (it *PRHostRepository) run(ctx context.Context, args ...string) (string, string, error) {
	runCtx, cancel := context.WithTimeout(ctx, apiTimeout)
	defer cancel()

	stdout, stderr, err := it.runner.Run(runCtx, toolName, args...)
	if err != nil {
		return stdout, stderr, shell.ClassifyError(toolName, stderr, err)
	}
	return stdout, stderr, nil
}

func toPullRequest(pr ghPR) entities.PullRequest {
	return entities.PullRequest{
		ID:         fmt.Sprintf("%d", pr.Number),
		Number:     pr.Number,
		Title:      pr.Title,
		URL:        pr.URL,
		State:      strings.ToLower(pr.State),
		HeadBranch: pr.HeadRefName,
		BaseBranch: pr.BaseRefName,
	}
}

func lastNonEmptyLine(output string) string {
	lines := strings.Split(strings.TrimSpace(output), "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		if line := strings.TrimSpace(lines[i]); line != "" {
			return line
		}
	}
	return ""
}

func numberFromURL(url string) int {
	idx := strings.LastIndex(url, "/")
	if idx < 0 || idx == len(url)-1 {
		return 0
	}
	var number int
	if _, err := fmt.Sscanf(url[idx+1:], "%d", &number); err != nil {
		return 0
	}
	return number
}
