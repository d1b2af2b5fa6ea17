package entities

import (
	"strings"
	"time"
)

// placeholderDescriptions are descriptions the VCS assigns to changes that were
// never described by a human. They count as "no description" everywhere.
var placeholderDescriptions = map[string]bool{
	"":                 true,
	"(no description)": true,
	"(empty)":          true,
}

// Change is a snapshot of a single VCS change (a commit-like unit). Changes are
// created and mutated exclusively by the VCS; ship only reads snapshots.
type Change struct {
	ID            string    // full commit id
	ChangeID      string    // stable human-facing change id
	Description   string    // full description; first line is the title
	Author        string
	Timestamp     time.Time
	Bookmarks     []string // ordered; index 0 is the one ship uses
	IsWorkingCopy bool
	IsEmpty       bool
	HasConflict   bool
}

// Title returns the first line of the description.
func (c Change) Title() string {
	line, _, _ := strings.Cut(c.Description, "\n")
	return strings.TrimSpace(line)
}

// Bookmark returns the change's primary bookmark, or "" when it has none.
//
// Policy: when a change carries multiple bookmarks, ship always uses the first
// one and ignores the rest. Multi-bookmark disambiguation is an open product
// question; until it is answered, index 0 wins.
func (c Change) Bookmark() string {
	if len(c.Bookmarks) == 0 {
		return ""
	}
	return c.Bookmarks[0]
}

// ShortID returns the first 8 characters of the change id.
func (c Change) ShortID() string {
	const shortLen = 8
	if len(c.ChangeID) <= shortLen {
		return c.ChangeID
	}
	return c.ChangeID[:shortLen]
}

// HasDescription reports whether the change carries a real, human-written
// description (placeholder text does not count).
func (c Change) HasDescription() bool {
	return !placeholderDescriptions[strings.ToLower(strings.TrimSpace(c.Description))]
}

// EligibleForPR reports whether the change can be the head of its own pull
// request: it must have at least one bookmark and actual content.
func (c Change) EligibleForPR() bool {
	return len(c.Bookmarks) > 0 && !c.IsEmpty
}

// Discardable reports whether the change is a stray empty checkpoint that the
// submit flow may abandon silently: empty, undescribed, and untracked by any
// bookmark.
func (c Change) Discardable() bool {
	return c.IsEmpty && !c.HasDescription() && len(c.Bookmarks) == 0
}

// Stack is the ordered chain of changes between trunk (exclusive) and the
// current working copy (inclusive), newest first as the VCS returns it:
// index 0 is the working copy, the tail is the change closest to trunk.
type Stack []Change

// Conflicted returns every change in the stack carrying a conflict, in stack
// order. A non-empty result blocks all push and PR activity.
func (s Stack) Conflicted() []Change {
	var conflicted []Change
	for _, change := range s {
		if change.HasConflict {
			conflicted = append(conflicted, change)
		}
	}
	return conflicted
}

// Eligible returns the PR-eligible changes reordered base-first (closest to
// trunk at index 0). The ordering is load-bearing: the base branch of entry N
// is the bookmark of entry N-1.
func (s Stack) Eligible() []Change {
	var eligible []Change
	for i := len(s) - 1; i >= 0; i-- {
		if s[i].EligibleForPR() {
			eligible = append(eligible, s[i])
		}
	}
	return eligible
}

// Bookmarks returns the primary bookmark of every change that has one,
// newest first.
func (s Stack) Bookmarks() []string {
	var bookmarks []string
	for _, change := range s {
		if b := change.Bookmark(); b != "" {
			bookmarks = append(bookmarks, b)
		}
	}
	return bookmarks
}

// PushResult reports a completed push of a single bookmark.
type PushResult struct {
	Bookmark string
	Remote   string
	ChangeID string
}

// Workspace is a VCS working-copy workspace as reported by the VCS itself.
type Workspace struct {
	Name     string
	ChangeID string
}
