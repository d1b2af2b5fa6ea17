//go:build unit

package controllers

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spf13/cobra"
)

// captureOutput redirects stdout to a buffer and records exit codes instead of
// terminating the process. Tests using it must not run in parallel.
func captureOutput(t *testing.T) (*bytes.Buffer, *[]int) {
	t.Helper()

	buf := &bytes.Buffer{}
	var codes []int

	prevStdout, prevExit := stdout, exit
	stdout = buf
	exit = func(code int) { codes = append(codes, code) }
	t.Cleanup(func() {
		stdout, exit = prevStdout, prevExit
	})

	return buf, &codes
}

func newTestCommand(use string) *cobra.Command {
	//nolint:exhaustruct // Minimal Command initialization with required fields only
	cmd := &cobra.Command{Use: use}
	cmd.Flags().Bool("json", false, "")
	return cmd
}

func TestFail(t *testing.T) {
	t.Run("should emit a structured error object in json mode", func(t *testing.T) {
		// given
		buf, codes := captureOutput(t)
		cmd := newTestCommand("submit")
		require.NoError(t, cmd.Flags().Set("json", "true"))

		// when
		fail(cmd, "submit failed: %v", errors.New("boom"))

		// then
		assert.Equal(t, []int{1}, *codes)
		assert.JSONEq(t, `{"error": "submit failed: boom"}`, buf.String())
	})

	t.Run("should keep the error off stdout in text mode", func(t *testing.T) {
		// given
		buf, codes := captureOutput(t)
		cmd := newTestCommand("submit")

		// when
		fail(cmd, "submit failed: %v", errors.New("boom"))

		// then: the error goes to the log, the exit code carries the failure
		assert.Equal(t, []int{1}, *codes)
		assert.Empty(t, buf.String())
	})
}
