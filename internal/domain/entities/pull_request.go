package entities

import "time"

// Pull request states as reported by the PR host.
const (
	PRStateOpen   = "open"
	PRStateClosed = "closed"
	PRStateMerged = "merged"
)

// PullRequest is a snapshot of a pull request on the PR host. The head branch
// is unique per open PR, so ship keys all idempotency decisions on it, never
// on the PR id.
type PullRequest struct {
	ID         string
	Number     int
	Title      string
	URL        string
	State      string // PRStateOpen, PRStateClosed, or PRStateMerged
	HeadBranch string // equals the bookmark name
	BaseBranch string
}

// PullRequestInput holds everything needed to create a pull request.
type PullRequestInput struct {
	Title string
	Body  string
	Head  string
	Base  string
	Draft bool
}

// Review is a read-only projection of a submitted PR review.
type Review struct {
	ID          string
	Author      string
	State       string // "APPROVED", "CHANGES_REQUESTED", "COMMENTED", ...
	Body        string
	SubmittedAt time.Time
}

// ReviewComment is an inline review comment anchored to a file.
type ReviewComment struct {
	ID        string
	Path      string
	Line      *int // nil for file-level comments
	Body      string
	Author    string
	CreatedAt time.Time
	ReplyTo   string // parent comment id, "" for top-level comments
	DiffHunk  string
}

// ConversationComment is a comment on the PR conversation itself.
type ConversationComment struct {
	ID        string
	Body      string
	Author    string
	CreatedAt time.Time
}

// PullRequestFeedback bundles everything reviewers said about one PR.
type PullRequestFeedback struct {
	PR             PullRequest
	Reviews        []Review
	ReviewComments []ReviewComment
	Comments       []ConversationComment
}
