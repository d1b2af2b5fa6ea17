package commands

import (
	"context"
	"fmt"

	"github.com/rios0rios0/ship/internal/domain/entities"
	"github.com/rios0rios0/ship/internal/domain/repositories"
)

// Abandon is the interface for the abandon command.
type Abandon interface {
	Execute(ctx context.Context) (AbandonResult, error)
}

// AbandonResult reports an abandoned change and any workspace cleanup it
// triggered.
type AbandonResult struct {
	AbandonedChangeID string                 `json:"abandonedChangeId"`
	NewWorkingCopy    string                 `json:"newWorkingCopy"`
	Cleanup           entities.CleanupResult `json:"cleanup"`
}

// AbandonCommand abandons the working-copy change and, when the change carried
// bookmarks, hands them to the workspace lifecycle manager so the workspace
// that was created for them can be cleaned up.
type AbandonCommand struct {
	vcs     repositories.VCSRepository
	cleanup WorkspaceCleanup
}

// NewAbandonCommand creates a new AbandonCommand.
func NewAbandonCommand(
	vcs repositories.VCSRepository,
	cleanup WorkspaceCleanup,
) *AbandonCommand {
	return &AbandonCommand{vcs: vcs, cleanup: cleanup}
}

// Execute abandons the current change and triggers bookmark cleanup.
func (it *AbandonCommand) Execute(ctx context.Context) (AbandonResult, error) {
	if err := checkVCSPreconditions(ctx, it.vcs); err != nil {
		return AbandonResult{}, err
	}

	current, err := it.vcs.GetCurrentChange(ctx)
	if err != nil {
		return AbandonResult{}, fmt.Errorf("failed to read working copy: %w", err)
	}
	if current.HasConflict {
		return AbandonResult{}, &entities.StackConflictedError{
			Conflicted: []entities.Change{current},
		}
	}

	newWorkingCopy, err := it.vcs.Abandon(ctx, current.ChangeID)
	if err != nil {
		return AbandonResult{}, fmt.Errorf("failed to abandon %s: %w", current.ShortID(), err)
	}

	result := AbandonResult{
		AbandonedChangeID: current.ChangeID,
		NewWorkingCopy:    newWorkingCopy.ChangeID,
	}

	// Best-effort by contract: cleanup never fails the abandon.
	result.Cleanup, _ = it.cleanup.CleanupForBookmarks(ctx, current.Bookmarks)

	return result, nil
}
