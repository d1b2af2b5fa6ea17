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
	"github.com/rios0rios0/ship/test/domain/entitybuilders"
	"github.com/rios0rios0/ship/test/infrastructure/repositorydoubles"
)

func TestAbandonCommand_Execute(t *testing.T) {
	t.Parallel()

	newCleanup := func(vcs *repositorydoubles.SpyVCSRepository, store *repositorydoubles.StubWorkspaceStore) commands.WorkspaceCleanup {
		return commands.NewWorkspaceCleanupCommand(vcs, store, submitSettings())
	}

	t.Run("should abandon the working copy and clean up its workspace", func(t *testing.T) {
		t.Parallel()

		// given
		vcs := &repositorydoubles.SpyVCSRepository{
			Available: true,
			InRepo:    true,
			Current: entitybuilders.NewChangeBuilder().
				WithChangeID("bbb22222").WithBookmarks("feat-b").AsWorkingCopy().BuildChange(),
			AbandonResult: entitybuilders.NewChangeBuilder().
				WithChangeID("fff99999").AsWorkingCopy().BuildChange(),
		}
		store := &repositorydoubles.StubWorkspaceStore{
			Entries: []entities.WorkspaceMetadata{{Name: "ws-b", Bookmark: "feat-b"}},
		}
		command := commands.NewAbandonCommand(vcs, newCleanup(vcs, store))

		// when
		result, err := command.Execute(context.Background())

		// then
		require.NoError(t, err)
		assert.Equal(t, "bbb22222", result.AbandonedChangeID)
		assert.Equal(t, "fff99999", result.NewWorkingCopy)
		assert.True(t, result.Cleanup.Removed)
		assert.Equal(t, "ws-b", result.Cleanup.Name)
		assert.Contains(t, vcs.AbandonedIDs, "bbb22222")
	})

	t.Run("should refuse to abandon a conflicted change", func(t *testing.T) {
		t.Parallel()

		// given
		vcs := &repositorydoubles.SpyVCSRepository{
			Available: true,
			InRepo:    true,
			Current: entitybuilders.NewChangeBuilder().
				WithChangeID("bbb22222").Conflicted().AsWorkingCopy().BuildChange(),
		}
		command := commands.NewAbandonCommand(vcs, newCleanup(vcs, &repositorydoubles.StubWorkspaceStore{}))

		// when
		_, err := command.Execute(context.Background())

		// then
		var conflictErr *entities.StackConflictedError
		require.ErrorAs(t, err, &conflictErr)
		assert.Empty(t, vcs.AbandonedIDs)
	})

	t.Run("should fail when the abandon itself fails", func(t *testing.T) {
		t.Parallel()

		// given
		vcs := &repositorydoubles.SpyVCSRepository{
			Available: true,
			InRepo:    true,
			Current: entitybuilders.NewChangeBuilder().
				WithChangeID("bbb22222").AsWorkingCopy().BuildChange(),
			AbandonErr: errors.New("immutable change"),
		}
		command := commands.NewAbandonCommand(vcs, newCleanup(vcs, &repositorydoubles.StubWorkspaceStore{}))

		// when
		_, err := command.Execute(context.Background())

		// then
		require.Error(t, err)
	})

	t.Run("should succeed even when cleanup finds nothing", func(t *testing.T) {
		t.Parallel()

		// given: no bookmarks on the abandoned change
		vcs := &repositorydoubles.SpyVCSRepository{
			Available: true,
			InRepo:    true,
			Current: entitybuilders.NewChangeBuilder().
				WithChangeID("bbb22222").AsWorkingCopy().BuildChange(),
			AbandonResult: entitybuilders.NewChangeBuilder().
				WithChangeID("fff99999").BuildChange(),
		}
		command := commands.NewAbandonCommand(vcs, newCleanup(vcs, &repositorydoubles.StubWorkspaceStore{}))

		// when
		result, err := command.Execute(context.Background())

		// then
		require.NoError(t, err)
		assert.False(t, result.Cleanup.Removed)
	})
}
