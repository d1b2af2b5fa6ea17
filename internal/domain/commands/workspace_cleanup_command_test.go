//go:build unit

package commands_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/ship/internal/domain/commands"
	"github.com/rios0rios0/ship/internal/domain/entities"
	"github.com/rios0rios0/ship/test/infrastructure/repositorydoubles"
)

func boolPtr(b bool) *bool { return &b }

func TestWorkspaceCleanupCommand_CleanupForBookmarks(t *testing.T) {
	t.Parallel()

	t.Run("should remove the workspace matching an abandoned bookmark", func(t *testing.T) {
		t.Parallel()

		// given
		vcs := &repositorydoubles.SpyVCSRepository{Available: true, InRepo: true}
		store := &repositorydoubles.StubWorkspaceStore{
			Entries: []entities.WorkspaceMetadata{
				{Name: "ws-keep", Bookmark: "feat-x"},
				{Name: "ws-gone", Bookmark: "feat-b"},
			},
		}
		command := commands.NewWorkspaceCleanupCommand(vcs, store, submitSettings())

		// when
		result, err := command.CleanupForBookmarks(context.Background(), []string{"feat-b"})

		// then
		require.NoError(t, err)
		assert.True(t, result.Removed)
		assert.Equal(t, "ws-gone", result.Name)
		assert.Equal(t, []string{"ws-gone"}, vcs.ForgottenNames)
		require.Len(t, store.Entries, 1)
		assert.Equal(t, "ws-keep", store.Entries[0].Name)
	})

	t.Run("should do nothing when auto cleanup is disabled", func(t *testing.T) {
		t.Parallel()

		// given
		settings := submitSettings()
		settings.AutoCleanup = boolPtr(false)
		vcs := &repositorydoubles.SpyVCSRepository{Available: true, InRepo: true}
		store := &repositorydoubles.StubWorkspaceStore{
			Entries: []entities.WorkspaceMetadata{{Name: "ws-gone", Bookmark: "feat-b"}},
		}
		command := commands.NewWorkspaceCleanupCommand(vcs, store, settings)

		// when
		result, err := command.CleanupForBookmarks(context.Background(), []string{"feat-b"})

		// then
		require.NoError(t, err)
		assert.False(t, result.Removed)
		assert.Zero(t, store.MutateCalls)
	})

	t.Run("should leave metadata intact when the VCS forget fails", func(t *testing.T) {
		t.Parallel()

		// given
		vcs := &repositorydoubles.SpyVCSRepository{
			Available: true,
			InRepo:    true,
			ForgetErr: errors.New("workspace is busy"),
		}
		store := &repositorydoubles.StubWorkspaceStore{
			Entries: []entities.WorkspaceMetadata{{Name: "ws-gone", Bookmark: "feat-b"}},
		}
		command := commands.NewWorkspaceCleanupCommand(vcs, store, submitSettings())

		// when
		result, err := command.CleanupForBookmarks(context.Background(), []string{"feat-b"})

		// then: no error surfaced, nothing removed
		require.NoError(t, err)
		assert.False(t, result.Removed)
		assert.Len(t, store.Entries, 1)
	})

	t.Run("should swallow a store failure", func(t *testing.T) {
		t.Parallel()

		// given
		vcs := &repositorydoubles.SpyVCSRepository{Available: true, InRepo: true}
		store := &repositorydoubles.StubWorkspaceStore{
			Entries:   []entities.WorkspaceMetadata{{Name: "ws-gone", Bookmark: "feat-b"}},
			MutateErr: errors.New("locked by another process"),
		}
		command := commands.NewWorkspaceCleanupCommand(vcs, store, submitSettings())

		// when
		result, err := command.CleanupForBookmarks(context.Background(), []string{"feat-b"})

		// then
		require.NoError(t, err)
		assert.False(t, result.Removed)
	})

	t.Run("should do nothing without matching bookmarks", func(t *testing.T) {
		t.Parallel()

		// given
		vcs := &repositorydoubles.SpyVCSRepository{Available: true, InRepo: true}
		store := &repositorydoubles.StubWorkspaceStore{
			Entries: []entities.WorkspaceMetadata{{Name: "ws-keep", Bookmark: "feat-x"}},
		}
		command := commands.NewWorkspaceCleanupCommand(vcs, store, submitSettings())

		// when
		result, err := command.CleanupForBookmarks(context.Background(), []string{"feat-b"})

		// then
		require.NoError(t, err)
		assert.False(t, result.Removed)
		assert.Empty(t, vcs.ForgottenNames)
	})
}

func TestWorkspaceCleanupCommand_RemoveWorkspace(t *testing.T) {
	t.Parallel()

	t.Run("should remove a workspace known to both sides", func(t *testing.T) {
		t.Parallel()

		// given
		vcs := &repositorydoubles.SpyVCSRepository{
			Available:  true,
			InRepo:     true,
			Workspaces: []entities.Workspace{{Name: "ws-1", ChangeID: "aaa11111"}},
		}
		store := &repositorydoubles.StubWorkspaceStore{
			Entries: []entities.WorkspaceMetadata{{Name: "ws-1", Path: "/tmp/does-not-exist-ws-1"}},
		}
		command := commands.NewWorkspaceCleanupCommand(vcs, store, submitSettings())

		// when
		result, err := command.RemoveWorkspace(context.Background(), "ws-1", false)

		// then
		require.NoError(t, err)
		assert.Equal(t, entities.PresenceBoth, result.Presence)
		assert.True(t, result.ForgottenInVCS)
		assert.True(t, result.RemovedFromStore)
		assert.False(t, result.FilesDeleted)
		assert.Empty(t, store.Entries)
	})

	t.Run("should handle a metadata-only workspace", func(t *testing.T) {
		t.Parallel()

		// given: the VCS lost the workspace but ship still has the record
		vcs := &repositorydoubles.SpyVCSRepository{Available: true, InRepo: true}
		store := &repositorydoubles.StubWorkspaceStore{
			Entries: []entities.WorkspaceMetadata{{Name: "ws-1"}},
		}
		command := commands.NewWorkspaceCleanupCommand(vcs, store, submitSettings())

		// when
		result, err := command.RemoveWorkspace(context.Background(), "ws-1", false)

		// then
		require.NoError(t, err)
		assert.Equal(t, entities.PresenceMetadataOnly, result.Presence)
		assert.False(t, result.ForgottenInVCS)
		assert.True(t, result.RemovedFromStore)
		assert.Empty(t, vcs.ForgottenNames)
	})

	t.Run("should handle a vcs-only workspace", func(t *testing.T) {
		t.Parallel()

		// given: the VCS has it but ship never recorded it
		vcs := &repositorydoubles.SpyVCSRepository{
			Available:  true,
			InRepo:     true,
			Workspaces: []entities.Workspace{{Name: "ws-1"}},
		}
		store := &repositorydoubles.StubWorkspaceStore{}
		command := commands.NewWorkspaceCleanupCommand(vcs, store, submitSettings())

		// when
		result, err := command.RemoveWorkspace(context.Background(), "ws-1", false)

		// then
		require.NoError(t, err)
		assert.Equal(t, entities.PresenceVCSOnly, result.Presence)
		assert.True(t, result.ForgottenInVCS)
		assert.False(t, result.RemovedFromStore)
	})

	t.Run("should fail for a workspace known nowhere", func(t *testing.T) {
		t.Parallel()

		// given
		vcs := &repositorydoubles.SpyVCSRepository{Available: true, InRepo: true}
		store := &repositorydoubles.StubWorkspaceStore{}
		command := commands.NewWorkspaceCleanupCommand(vcs, store, submitSettings())

		// when
		result, err := command.RemoveWorkspace(context.Background(), "ws-1", false)

		// then
		require.Error(t, err)
		assert.Equal(t, entities.PresenceNeither, result.Presence)
	})
}

func TestWorkspaceCleanupCommand_ListWorkspaces(t *testing.T) {
	t.Parallel()

	t.Run("should return the persisted metadata", func(t *testing.T) {
		t.Parallel()

		// given
		store := &repositorydoubles.StubWorkspaceStore{
			Entries: []entities.WorkspaceMetadata{{Name: "ws-1"}, {Name: "ws-2"}},
		}
		command := commands.NewWorkspaceCleanupCommand(
			&repositorydoubles.SpyVCSRepository{}, store, submitSettings())

		// when
		workspaces, err := command.ListWorkspaces(context.Background())

		// then
		require.NoError(t, err)
		assert.Len(t, workspaces, 2)
	})
}
