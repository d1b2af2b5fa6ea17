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

// stubSubmit satisfies commands.Submit with a canned result.
type stubSubmit struct {
	result entities.SubmitResult
	err    error
	opts   []commands.SubmitOptions
}

func (s *stubSubmit) Execute(
	_ context.Context,
	opts commands.SubmitOptions,
) (entities.SubmitResult, error) {
	s.opts = append(s.opts, opts)
	return s.result, s.err
}

func TestPRCreateCommand_Execute(t *testing.T) {
	t.Parallel()

	t.Run("should submit and open the PR in the browser", func(t *testing.T) {
		t.Parallel()

		// given
		submit := &stubSubmit{
			result: entities.SubmitResult{
				Pushed: true,
				PR: &entities.PullRequestOutcome{
					Status: entities.PROutcomeCreated,
					Number: 7,
					URL:    "https://example.com/pr/7",
				},
			},
		}
		prHost := &repositorydoubles.SpyPRHostRepository{Available: true}
		command := commands.NewPRCreateCommand(submit, prHost)

		// when
		result, err := command.Execute(context.Background(), commands.PRCreateOptions{
			Draft: true,
			Open:  true,
		})

		// then
		require.NoError(t, err)
		assert.Equal(t, 7, result.PR.Number)
		require.Len(t, submit.opts, 1)
		assert.True(t, submit.opts[0].Draft)
		assert.Equal(t, []string{"https://example.com/pr/7"}, prHost.OpenedURLs)
	})

	t.Run("should not open the browser unless asked", func(t *testing.T) {
		t.Parallel()

		// given
		submit := &stubSubmit{
			result: entities.SubmitResult{
				Pushed: true,
				PR:     &entities.PullRequestOutcome{URL: "https://example.com/pr/7"},
			},
		}
		prHost := &repositorydoubles.SpyPRHostRepository{Available: true}
		command := commands.NewPRCreateCommand(submit, prHost)

		// when
		_, err := command.Execute(context.Background(), commands.PRCreateOptions{})

		// then
		require.NoError(t, err)
		assert.Empty(t, prHost.OpenedURLs)
	})

	t.Run("should not fail the command when the browser open fails", func(t *testing.T) {
		t.Parallel()

		// given
		submit := &stubSubmit{
			result: entities.SubmitResult{
				Pushed: true,
				PR:     &entities.PullRequestOutcome{URL: "https://example.com/pr/7"},
			},
		}
		prHost := &repositorydoubles.SpyPRHostRepository{
			Available: true,
			OpenErr:   errors.New("no display"),
		}
		command := commands.NewPRCreateCommand(submit, prHost)

		// when
		_, err := command.Execute(context.Background(), commands.PRCreateOptions{Open: true})

		// then
		require.NoError(t, err)
	})

	t.Run("should pass a submit failure through", func(t *testing.T) {
		t.Parallel()

		// given
		submit := &stubSubmit{err: entities.ErrNoBookmark}
		command := commands.NewPRCreateCommand(submit, &repositorydoubles.SpyPRHostRepository{})

		// when
		_, err := command.Execute(context.Background(), commands.PRCreateOptions{})

		// then
		require.ErrorIs(t, err, entities.ErrNoBookmark)
	})
}
