//go:build unit

package entities_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rios0rios0/ship/internal/domain/entities"
)

func TestChange_Title(t *testing.T) {
	t.Parallel()

	t.Run("should return the first description line trimmed", func(t *testing.T) {
		t.Parallel()

		change := entities.Change{Description: "feat: add widget  \n\nmore detail"}

		assert.Equal(t, "feat: add widget", change.Title())
	})

	t.Run("should return empty for an empty description", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, entities.Change{}.Title())
	})
}

func TestChange_Bookmark(t *testing.T) {
	t.Parallel()

	t.Run("should always pick the first bookmark", func(t *testing.T) {
		t.Parallel()

		change := entities.Change{Bookmarks: []string{"feat-a", "feat-a-alias"}}

		assert.Equal(t, "feat-a", change.Bookmark())
	})

	t.Run("should return empty without bookmarks", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, entities.Change{}.Bookmark())
	})
}

func TestChange_HasDescription(t *testing.T) {
	t.Parallel()

	t.Run("should treat placeholders as no description", func(t *testing.T) {
		t.Parallel()

		for _, description := range []string{"", "(no description)", "(EMPTY)", "  (no description)  "} {
			change := entities.Change{Description: description}
			assert.False(t, change.HasDescription(), "description %q", description)
		}
	})

	t.Run("should accept a real description", func(t *testing.T) {
		t.Parallel()

		assert.True(t, entities.Change{Description: "fix: things"}.HasDescription())
	})
}

func TestChange_Discardable(t *testing.T) {
	t.Parallel()

	t.Run("should discard an empty undescribed untracked change", func(t *testing.T) {
		t.Parallel()

		change := entities.Change{IsEmpty: true}

		assert.True(t, change.Discardable())
	})

	t.Run("should keep a bookmarked empty change", func(t *testing.T) {
		t.Parallel()

		change := entities.Change{IsEmpty: true, Bookmarks: []string{"feat-a"}}

		assert.False(t, change.Discardable())
	})

	t.Run("should keep a described empty change", func(t *testing.T) {
		t.Parallel()

		change := entities.Change{IsEmpty: true, Description: "wip: checkpoint"}

		assert.False(t, change.Discardable())
	})
}

func TestChange_ShortID(t *testing.T) {
	t.Parallel()

	t.Run("should shorten long change ids to eight characters", func(t *testing.T) {
		t.Parallel()

		change := entities.Change{ChangeID: "kxyzmnop12345678"}

		assert.Equal(t, "kxyzmnop", change.ShortID())
	})

	t.Run("should keep short ids as they are", func(t *testing.T) {
		t.Parallel()

		change := entities.Change{ChangeID: "kxy"}

		assert.Equal(t, "kxy", change.ShortID())
	})
}

func TestStack_Eligible(t *testing.T) {
	t.Parallel()

	t.Run("should reverse to base-first and drop ineligible changes", func(t *testing.T) {
		t.Parallel()

		// given: newest first, the middle change has no bookmark
		stack := entities.Stack{
			{ChangeID: "ccc", Bookmarks: []string{"feat-c"}},
			{ChangeID: "bbb"},
			{ChangeID: "aaa", Bookmarks: []string{"feat-a"}},
		}

		// when
		eligible := stack.Eligible()

		// then
		assert.Equal(t, "aaa", eligible[0].ChangeID)
		assert.Equal(t, "ccc", eligible[1].ChangeID)
	})

	t.Run("should drop bookmarked empty changes", func(t *testing.T) {
		t.Parallel()

		stack := entities.Stack{
			{ChangeID: "aaa", Bookmarks: []string{"feat-a"}, IsEmpty: true},
		}

		assert.Empty(t, stack.Eligible())
	})
}

func TestStack_Conflicted(t *testing.T) {
	t.Parallel()

	t.Run("should collect conflicted changes in stack order", func(t *testing.T) {
		t.Parallel()

		stack := entities.Stack{
			{ChangeID: "ccc", HasConflict: true},
			{ChangeID: "bbb"},
			{ChangeID: "aaa", HasConflict: true},
		}

		conflicted := stack.Conflicted()

		assert.Len(t, conflicted, 2)
		assert.Equal(t, "ccc", conflicted[0].ChangeID)
		assert.Equal(t, "aaa", conflicted[1].ChangeID)
	})
}

func TestWorkspacePresence(t *testing.T) {
	t.Parallel()

	t.Run("should derive every presence state", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, entities.PresenceBoth, entities.ResolvePresence(true, true))
		assert.Equal(t, entities.PresenceMetadataOnly, entities.ResolvePresence(true, false))
		assert.Equal(t, entities.PresenceVCSOnly, entities.ResolvePresence(false, true))
		assert.Equal(t, entities.PresenceNeither, entities.ResolvePresence(false, false))
	})
}
