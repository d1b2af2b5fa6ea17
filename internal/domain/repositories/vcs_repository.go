package repositories

import (
	"context"

	"github.com/rios0rios0/ship/internal/domain/entities"
)

// VCSRepository abstracts the stacked-change VCS. The core never shells out
// itself; it consumes typed snapshots and operations through this port.
// Implementations must map raw tool failures into entities.CollaboratorError
// kinds at this boundary.
type VCSRepository interface {
	// IsAvailable reports whether the VCS CLI is installed and recent enough.
	IsAvailable(ctx context.Context) bool

	// IsRepo reports whether the working directory is inside a repository.
	IsRepo(ctx context.Context) bool

	// GetCurrentChange returns the working-copy change (@).
	GetCurrentChange(ctx context.Context) (entities.Change, error)

	// GetParentChange returns the parent of the working copy (@-).
	GetParentChange(ctx context.Context) (entities.Change, error)

	// GetGrandparentChange returns the grandparent of the working copy (@--).
	GetGrandparentChange(ctx context.Context) (entities.Change, error)

	// GetStack returns trunk..@ newest first: index 0 is the working copy.
	GetStack(ctx context.Context) (entities.Stack, error)

	// GetLog returns the changes matching the given revset, newest first.
	GetLog(ctx context.Context, revset string) ([]entities.Change, error)

	// Push pushes a single bookmark to the configured remote. Safe to retry:
	// pushing an unchanged bookmark is a no-op.
	Push(ctx context.Context, bookmark string) (entities.PushResult, error)

	// Fetch updates remote-tracking state.
	Fetch(ctx context.Context) error

	// Rebase moves sourceID (and descendants) onto the given bookmark.
	Rebase(ctx context.Context, sourceID, destBookmark string) error

	// Abandon abandons the given change (or the working copy when empty) and
	// returns the new working-copy change.
	Abandon(ctx context.Context, changeID string) (entities.Change, error)

	// CreateBookmark creates a bookmark at ref, or at the working copy when
	// ref is empty.
	CreateBookmark(ctx context.Context, name, ref string) error

	// CreateWorkspace adds a workspace rooted at path.
	CreateWorkspace(ctx context.Context, name, path string) error

	// ListWorkspaces returns the live workspace listing.
	ListWorkspaces(ctx context.Context) ([]entities.Workspace, error)

	// ForgetWorkspace removes a workspace from the VCS without touching files.
	ForgetWorkspace(ctx context.Context, name string) error
}
