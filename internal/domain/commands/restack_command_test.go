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

func TestRestackCommand_Execute(t *testing.T) {
	t.Parallel()

	t.Run("should fetch and rebase the oldest change", func(t *testing.T) {
		t.Parallel()

		// given
		vcs := &repositorydoubles.SpyVCSRepository{
			Available: true,
			InRepo:    true,
			Stack: entities.Stack{
				entitybuilders.NewChangeBuilder().WithChangeID("bbb22222").AsWorkingCopy().BuildChange(),
				entitybuilders.NewChangeBuilder().WithChangeID("aaa11111").BuildChange(),
			},
		}
		command := commands.NewRestackCommand(vcs, submitSettings())

		// when
		result, err := command.Execute(context.Background())

		// then
		require.NoError(t, err)
		assert.True(t, vcs.Fetched)
		assert.True(t, result.Fetched)
		assert.Equal(t, 2, result.RebasedCount)
		assert.Equal(t, "main", result.Target)
		require.Len(t, vcs.RebaseCalls, 1)
		assert.Equal(t, "aaa11111", vcs.RebaseCalls[0].SourceID)
		assert.Equal(t, "main", vcs.RebaseCalls[0].DestBookmark)
	})

	t.Run("should fail when the fetch fails", func(t *testing.T) {
		t.Parallel()

		// given
		vcs := &repositorydoubles.SpyVCSRepository{
			Available: true,
			InRepo:    true,
			FetchErr:  errors.New("network down"),
		}
		command := commands.NewRestackCommand(vcs, submitSettings())

		// when
		_, err := command.Execute(context.Background())

		// then
		require.Error(t, err)
		assert.Empty(t, vcs.RebaseCalls)
	})

	t.Run("should refuse to rebase a conflicted stack", func(t *testing.T) {
		t.Parallel()

		// given
		vcs := &repositorydoubles.SpyVCSRepository{
			Available: true,
			InRepo:    true,
			Stack: entities.Stack{
				entitybuilders.NewChangeBuilder().WithChangeID("aaa11111").Conflicted().BuildChange(),
			},
		}
		command := commands.NewRestackCommand(vcs, submitSettings())

		// when
		_, err := command.Execute(context.Background())

		// then
		var conflictErr *entities.StackConflictedError
		require.ErrorAs(t, err, &conflictErr)
		assert.Empty(t, vcs.RebaseCalls)
	})

	t.Run("should do nothing for an empty stack", func(t *testing.T) {
		t.Parallel()

		// given
		vcs := &repositorydoubles.SpyVCSRepository{Available: true, InRepo: true}
		command := commands.NewRestackCommand(vcs, submitSettings())

		// when
		result, err := command.Execute(context.Background())

		// then
		require.NoError(t, err)
		assert.Zero(t, result.RebasedCount)
		assert.Empty(t, vcs.RebaseCalls)
	})

	t.Run("should report conflicts the rebase introduced", func(t *testing.T) {
		t.Parallel()

		// given
		vcs := &repositorydoubles.SpyVCSRepository{
			Available: true,
			InRepo:    true,
			Stack: entities.Stack{
				entitybuilders.NewChangeBuilder().WithChangeID("bbb2222299999999").BuildChange(),
			},
			RestackedStack: entities.Stack{
				entitybuilders.NewChangeBuilder().WithChangeID("bbb2222299999999").Conflicted().BuildChange(),
			},
		}
		command := commands.NewRestackCommand(vcs, submitSettings())

		// when
		result, err := command.Execute(context.Background())

		// then
		require.NoError(t, err)
		assert.Equal(t, []string{"bbb22222"}, result.NewConflicts)
	})
}
