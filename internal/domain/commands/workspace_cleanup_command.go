package commands

import (
	"context"
	"fmt"
	"os"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/ship/internal/domain/entities"
	"github.com/rios0rios0/ship/internal/domain/repositories"
)

// WorkspaceCleanup is the interface for the workspace lifecycle manager.
type WorkspaceCleanup interface {
	CleanupForBookmarks(ctx context.Context, bookmarks []string) (entities.CleanupResult, error)
	RemoveWorkspace(ctx context.Context, name string, deleteFiles bool) (entities.RemoveWorkspaceResult, error)
	ListWorkspaces(ctx context.Context) ([]entities.WorkspaceMetadata, error)
}

// WorkspaceCleanupCommand reconciles ship's persisted workspace metadata with
// the live VCS workspace state. The metadata file is shared between concurrent
// CLI invocations and agent sessions, so every mutation happens inside the
// store's cross-process lock, against a fresh read.
type WorkspaceCleanupCommand struct {
	vcs      repositories.VCSRepository
	store    repositories.WorkspaceStore
	settings *entities.Settings
}

// NewWorkspaceCleanupCommand creates a new WorkspaceCleanupCommand.
func NewWorkspaceCleanupCommand(
	vcs repositories.VCSRepository,
	store repositories.WorkspaceStore,
	settings *entities.Settings,
) *WorkspaceCleanupCommand {
	return &WorkspaceCleanupCommand{
		vcs:      vcs,
		store:    store,
		settings: settings,
	}
}

// CleanupForBookmarks removes the first workspace whose bookmark matches one
// of the given bookmarks. Called after a bookmark's last change is abandoned.
// Best-effort throughout: a forget failure aborts the cleanup but never fails
// the caller.
func (it *WorkspaceCleanupCommand) CleanupForBookmarks(
	ctx context.Context,
	bookmarks []string,
) (entities.CleanupResult, error) {
	if !it.settings.AutoCleanupEnabled() {
		return entities.CleanupResult{}, nil
	}
	if len(bookmarks) == 0 {
		return entities.CleanupResult{}, nil
	}

	wanted := make(map[string]bool, len(bookmarks))
	for _, bookmark := range bookmarks {
		wanted[bookmark] = true
	}

	var result entities.CleanupResult

	err := it.store.Mutate(ctx, func(
		entries []entities.WorkspaceMetadata,
	) ([]entities.WorkspaceMetadata, error) {
		matchIdx := -1
		for i, entry := range entries {
			if entry.Bookmark != "" && wanted[entry.Bookmark] {
				matchIdx = i
				break
			}
		}
		if matchIdx < 0 {
			return entries, nil
		}

		name := entries[matchIdx].Name
		if forgetErr := it.vcs.ForgetWorkspace(ctx, name); forgetErr != nil {
			logger.Warnf("Failed to forget workspace %q, leaving metadata intact: %v", name, forgetErr)
			return entries, nil
		}

		result = entities.CleanupResult{Removed: true, Name: name}
		return append(entries[:matchIdx], entries[matchIdx+1:]...), nil
	})
	if err != nil {
		// Cleanup must never fail the primary operation.
		logger.Warnf("Workspace cleanup failed: %v", err)
		return entities.CleanupResult{}, nil
	}

	return result, nil
}

// RemoveWorkspace removes a workspace by name. The live VCS listing and the
// metadata file are consulted independently: metadata-only and VCS-only
// existence are both valid states, handled without error. The on-disk
// directory is deleted only on request, and its outcome is reported
// independently of the logical removal.
func (it *WorkspaceCleanupCommand) RemoveWorkspace(
	ctx context.Context,
	name string,
	deleteFiles bool,
) (entities.RemoveWorkspaceResult, error) {
	inVCS := false
	workspaces, err := it.vcs.ListWorkspaces(ctx)
	if err != nil {
		logger.Warnf("Failed to list VCS workspaces: %v", err)
	}
	for _, workspace := range workspaces {
		if workspace.Name == name {
			inVCS = true
			break
		}
	}

	result := entities.RemoveWorkspaceResult{Name: name}
	var workspacePath string

	mutateErr := it.store.Mutate(ctx, func(
		entries []entities.WorkspaceMetadata,
	) ([]entities.WorkspaceMetadata, error) {
		matchIdx := -1
		for i, entry := range entries {
			if entry.Name == name {
				matchIdx = i
				break
			}
		}

		result.Presence = entities.ResolvePresence(matchIdx >= 0, inVCS)
		result.PresenceLabel = result.Presence.String()

		if result.Presence == entities.PresenceNeither {
			return entries, fmt.Errorf("workspace %q is not known", name)
		}

		if inVCS {
			if forgetErr := it.vcs.ForgetWorkspace(ctx, name); forgetErr != nil {
				logger.Warnf("Failed to forget workspace %q in VCS: %v", name, forgetErr)
			} else {
				result.ForgottenInVCS = true
			}
		}

		if matchIdx >= 0 {
			workspacePath = entries[matchIdx].Path
			result.RemovedFromStore = true
			return append(entries[:matchIdx], entries[matchIdx+1:]...), nil
		}
		return entries, nil
	})
	if mutateErr != nil {
		return result, mutateErr
	}

	if deleteFiles && workspacePath != "" {
		if removeErr := os.RemoveAll(workspacePath); removeErr != nil {
			result.FileDeleteError = removeErr.Error()
		} else {
			result.FilesDeleted = true
		}
	}

	return result, nil
}

// ListWorkspaces returns the persisted workspace metadata.
func (it *WorkspaceCleanupCommand) ListWorkspaces(
	ctx context.Context,
) ([]entities.WorkspaceMetadata, error) {
	return it.store.List(ctx)
}
