package entities

import (
	"errors"
	"fmt"
	"strings"
)

// Precondition errors. These are reported before any side effect is attempted.
var (
	// ErrNotRepo means the working directory is not inside a VCS repository.
	ErrNotRepo = errors.New("not inside a repository")
	// ErrVCSUnavailable means the VCS CLI is missing or too old.
	ErrVCSUnavailable = errors.New("vcs tool is not available")
	// ErrPRHostUnavailable means the PR host CLI is missing or unauthenticated.
	ErrPRHostUnavailable = errors.New("pr host tool is not available")
	// ErrNoBookmark means the effective change has no bookmark to push.
	ErrNoBookmark = errors.New("change has no bookmark")
	// ErrEmptyChange means the effective change has no content to submit.
	ErrEmptyChange = errors.New("change is empty")
)

// StackConflictedError blocks all planning and pushing: at least one change in
// the stack carries a conflict. It enumerates every conflicted change so the
// user can fix them in one pass.
type StackConflictedError struct {
	Conflicted []Change
}

func (e *StackConflictedError) Error() string {
	lines := make([]string, 0, len(e.Conflicted))
	for _, change := range e.Conflicted {
		lines = append(lines, fmt.Sprintf("%s %s", change.ShortID(), change.Title()))
	}
	return fmt.Sprintf(
		"stack has %d conflicted change(s), resolve before submitting:\n  %s",
		len(e.Conflicted), strings.Join(lines, "\n  "),
	)
}

// PushFailedError is fatal for the whole submission: nothing after the push is
// attempted when the push itself fails.
type PushFailedError struct {
	Bookmark string
	Cause    error
}

func (e *PushFailedError) Error() string {
	return fmt.Sprintf("failed to push bookmark %q: %v", e.Bookmark, e.Cause)
}

func (e *PushFailedError) Unwrap() error { return e.Cause }

// CollaboratorErrorKind classifies raw collaborator failures at the adapter
// boundary. The core never inspects transport error text itself.
type CollaboratorErrorKind string

const (
	// KindNotInstalled means the external CLI binary was not found.
	KindNotInstalled CollaboratorErrorKind = "not-installed"
	// KindNotAuthenticated means the external tool rejected our credentials.
	KindNotAuthenticated CollaboratorErrorKind = "not-authenticated"
	// KindRateLimited means the remote throttled us; retry later.
	KindRateLimited CollaboratorErrorKind = "rate-limited"
	// KindUnrecognized is the fallback for error text no pattern matched.
	KindUnrecognized CollaboratorErrorKind = "unrecognized"
)

// CollaboratorError wraps a raw adapter failure with its classified kind.
type CollaboratorError struct {
	Kind  CollaboratorErrorKind
	Tool  string // "jj", "gh", "linear", "agentd"
	Cause error
}

func (e *CollaboratorError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Tool, e.Kind, e.Cause)
}

func (e *CollaboratorError) Unwrap() error { return e.Cause }
