//go:build unit

package jj

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/ship/internal/domain/entities"
)

// stubRunner answers every invocation with canned output keyed on the first
// few arguments, and records the full argument lists it saw.
type stubRunner struct {
	stdout map[string]string
	errs   map[string]error
	calls  [][]string
}

func (s *stubRunner) Run(_ context.Context, _ string, args ...string) (string, string, error) {
	s.calls = append(s.calls, args)
	key := args[0]
	if err, ok := s.errs[key]; ok {
		return "", "stub failure", err
	}
	return s.stdout[key], "", nil
}

func record(fields ...string) string {
	return strings.Join(fields, fieldSep) + recordSep
}

func TestVCSRepository_IsAvailable(t *testing.T) {
	t.Parallel()

	t.Run("should accept a recent version", func(t *testing.T) {
		t.Parallel()

		// given
		runner := &stubRunner{stdout: map[string]string{"--version": "jj 0.23.0"}}
		repo := &VCSRepository{runner: runner, settings: &entities.Settings{Remote: "origin"}}

		// when / then
		assert.True(t, repo.IsAvailable(context.Background()))
	})

	t.Run("should reject a version below the minimum", func(t *testing.T) {
		t.Parallel()

		// given
		runner := &stubRunner{stdout: map[string]string{"--version": "jj 0.19.2"}}
		repo := &VCSRepository{runner: runner, settings: &entities.Settings{Remote: "origin"}}

		// when / then
		assert.False(t, repo.IsAvailable(context.Background()))
	})

	t.Run("should reject when the tool is missing", func(t *testing.T) {
		t.Parallel()

		// given
		runner := &stubRunner{errs: map[string]error{"--version": errors.New("not found")}}
		repo := &VCSRepository{runner: runner, settings: &entities.Settings{Remote: "origin"}}

		// when / then
		assert.False(t, repo.IsAvailable(context.Background()))
	})
}

func TestVCSRepository_Push(t *testing.T) {
	t.Parallel()

	t.Run("should push the bookmark to the configured remote", func(t *testing.T) {
		t.Parallel()

		// given
		runner := &stubRunner{}
		repo := &VCSRepository{runner: runner, settings: &entities.Settings{Remote: "upstream"}}

		// when
		result, err := repo.Push(context.Background(), "feat-a")

		// then
		require.NoError(t, err)
		assert.Equal(t, "feat-a", result.Bookmark)
		assert.Equal(t, "upstream", result.Remote)
		require.Len(t, runner.calls, 1)
		assert.Equal(t,
			[]string{"git", "push", "--bookmark", "feat-a", "--remote", "upstream", "--allow-new"},
			runner.calls[0])
	})
}

func TestParseChanges(t *testing.T) {
	t.Parallel()

	t.Run("should parse a full record", func(t *testing.T) {
		t.Parallel()

		// given
		output := record(
			"deadbeefcafe",
			"kxyzmnop12345678",
			"feat: add widget\n\nmore detail",
			"dev@example.com",
			"2025-06-01T12:00:00+0200",
			"feat-a,feat-a-alias",
			"1",
			"0",
			"0",
		)

		// when
		changes, err := parseChanges(output)

		// then
		require.NoError(t, err)
		require.Len(t, changes, 1)
		change := changes[0]
		assert.Equal(t, "deadbeefcafe", change.ID)
		assert.Equal(t, "kxyzmnop12345678", change.ChangeID)
		assert.Equal(t, "feat: add widget", change.Title())
		assert.Equal(t, []string{"feat-a", "feat-a-alias"}, change.Bookmarks)
		assert.True(t, change.IsWorkingCopy)
		assert.False(t, change.IsEmpty)
		assert.False(t, change.HasConflict)
		assert.Equal(t, 2025, change.Timestamp.Year())
	})

	t.Run("should parse multiple records newest first", func(t *testing.T) {
		t.Parallel()

		// given
		output := record("c2", "id2", "second", "a@b", "2025-06-02T09:00:00+0000", "", "1", "0", "0") +
			"\n" + record("c1", "id1", "first", "a@b", "2025-06-01T09:00:00+0000", "feat-a", "0", "0", "1")

		// when
		changes, err := parseChanges(output)

		// then
		require.NoError(t, err)
		require.Len(t, changes, 2)
		assert.Equal(t, "id2", changes[0].ChangeID)
		assert.Empty(t, changes[0].Bookmarks)
		assert.True(t, changes[1].HasConflict)
	})

	t.Run("should fail on a malformed record", func(t *testing.T) {
		t.Parallel()

		// when
		_, err := parseChanges("only-three" + fieldSep + "fields" + fieldSep + "here" + recordSep)

		// then
		require.Error(t, err)
		assert.Contains(t, err.Error(), "malformed")
	})

	t.Run("should return nothing for empty output", func(t *testing.T) {
		t.Parallel()

		changes, err := parseChanges("")

		require.NoError(t, err)
		assert.Empty(t, changes)
	})
}

func TestParseWorkspaces(t *testing.T) {
	t.Parallel()

	t.Run("should parse name and change id per line", func(t *testing.T) {
		t.Parallel()

		// given
		output := "default: kxyzmnop 12ab34cd main | feat: widget\nagent-1: qrstuvwx 56ef78ab (empty)\n"

		// when
		workspaces := parseWorkspaces(output)

		// then
		require.Len(t, workspaces, 2)
		assert.Equal(t, "default", workspaces[0].Name)
		assert.Equal(t, "kxyzmnop", workspaces[0].ChangeID)
		assert.Equal(t, "agent-1", workspaces[1].Name)
	})

	t.Run("should skip blank and malformed lines", func(t *testing.T) {
		t.Parallel()

		workspaces := parseWorkspaces("\n\nnot a workspace line without colon\n")

		assert.Empty(t, workspaces)
	})
}
