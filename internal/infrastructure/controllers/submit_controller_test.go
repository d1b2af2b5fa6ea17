//go:build unit

package controllers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spf13/cobra"

	"github.com/rios0rios0/ship/internal/domain/commands"
	"github.com/rios0rios0/ship/internal/domain/entities"
)

type stubSubmitCommand struct {
	opts   commands.SubmitOptions
	result entities.SubmitResult
	err    error
}

func (s *stubSubmitCommand) Execute(
	_ context.Context,
	opts commands.SubmitOptions,
) (entities.SubmitResult, error) {
	s.opts = opts
	return s.result, s.err
}

func newSubmitCommand(controller *SubmitController) *cobra.Command {
	cmd := newTestCommand("submit")
	controller.AddFlags(cmd)
	return cmd
}

func TestSubmitController_Execute(t *testing.T) {
	t.Run("should exit non-zero on partial success", func(t *testing.T) {
		// given: the push landed but the PR step failed
		buf, codes := captureOutput(t)
		stub := &stubSubmitCommand{result: entities.SubmitResult{
			Bookmark: "feat-a",
			Pushed:   true,
			Error:    "failed to look up PR for \"feat-a\": rate limited",
		}}
		controller := NewSubmitController(stub)

		// when
		controller.Execute(newSubmitCommand(controller), nil)

		// then: what succeeded is reported, the exit code says not done
		assert.Contains(t, buf.String(), "Pushed bookmark")
		assert.Equal(t, []int{1}, *codes)
	})

	t.Run("should exit zero on full success", func(t *testing.T) {
		// given
		buf, codes := captureOutput(t)
		stub := &stubSubmitCommand{result: entities.SubmitResult{
			Bookmark: "feat-a",
			Pushed:   true,
			PR: &entities.PullRequestOutcome{
				Status: entities.PROutcomeCreated,
				Number: 42,
				URL:    "https://example.com/pr/42",
			},
		}}
		controller := NewSubmitController(stub)

		// when
		controller.Execute(newSubmitCommand(controller), nil)

		// then
		assert.Contains(t, buf.String(), "Created PR #42")
		assert.Empty(t, *codes)
	})

	t.Run("should exit non-zero on a json-mode partial success", func(t *testing.T) {
		// given
		buf, codes := captureOutput(t)
		stub := &stubSubmitCommand{result: entities.SubmitResult{
			Bookmark: "feat-a",
			Pushed:   true,
			Error:    "host down",
		}}
		controller := NewSubmitController(stub)
		cmd := newSubmitCommand(controller)
		require.NoError(t, cmd.Flags().Set("json", "true"))

		// when
		controller.Execute(cmd, nil)

		// then
		assert.Contains(t, buf.String(), `"host down"`)
		assert.Equal(t, []int{1}, *codes)
	})

	t.Run("should pass the subscribe session through", func(t *testing.T) {
		// given
		captureOutput(t)
		stub := &stubSubmitCommand{result: entities.SubmitResult{
			Bookmark: "feat-a",
			Pushed:   true,
		}}
		controller := NewSubmitController(stub)
		cmd := newSubmitCommand(controller)
		require.NoError(t, cmd.Flags().Set("subscribe", "sess-1"))

		// when
		controller.Execute(cmd, nil)

		// then
		assert.Equal(t, "sess-1", stub.opts.SubscribeSessionID)
	})
}
