//go:build integration || unit || test

package entitybuilders //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"time"

	testkit "github.com/rios0rios0/testkit/pkg/test"

	"github.com/rios0rios0/ship/internal/domain/entities"
)

// ChangeBuilder helps create test changes with a fluent interface.
type ChangeBuilder struct {
	*testkit.BaseBuilder
	id            string
	changeID      string
	description   string
	bookmarks     []string
	isWorkingCopy bool
	isEmpty       bool
	hasConflict   bool
}

// NewChangeBuilder creates a new change builder with sensible defaults.
func NewChangeBuilder() *ChangeBuilder {
	return &ChangeBuilder{
		BaseBuilder: testkit.NewBaseBuilder(),
		id:          "abcdef1234567890",
		changeID:    "kxyzmnop12345678",
		description: "feat: add widget support\n\nLonger explanation.",
	}
}

// WithChangeID sets the stable change id.
func (b *ChangeBuilder) WithChangeID(changeID string) *ChangeBuilder {
	b.changeID = changeID
	return b
}

// WithDescription sets the full description.
func (b *ChangeBuilder) WithDescription(description string) *ChangeBuilder {
	b.description = description
	return b
}

// WithBookmarks sets the bookmark list.
func (b *ChangeBuilder) WithBookmarks(bookmarks ...string) *ChangeBuilder {
	b.bookmarks = bookmarks
	return b
}

// AsWorkingCopy marks the change as the working copy.
func (b *ChangeBuilder) AsWorkingCopy() *ChangeBuilder {
	b.isWorkingCopy = true
	return b
}

// Empty marks the change as having no content.
func (b *ChangeBuilder) Empty() *ChangeBuilder {
	b.isEmpty = true
	return b
}

// Conflicted marks the change as carrying a conflict.
func (b *ChangeBuilder) Conflicted() *ChangeBuilder {
	b.hasConflict = true
	return b
}

// Build creates the change (satisfies testkit.Builder interface).
func (b *ChangeBuilder) Build() interface{} {
	return b.BuildChange()
}

// BuildChange creates the change with a concrete return type.
func (b *ChangeBuilder) BuildChange() entities.Change {
	return entities.Change{
		ID:            b.id,
		ChangeID:      b.changeID,
		Description:   b.description,
		Author:        "dev@example.com",
		Timestamp:     time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		Bookmarks:     b.bookmarks,
		IsWorkingCopy: b.isWorkingCopy,
		IsEmpty:       b.isEmpty,
		HasConflict:   b.hasConflict,
	}
}

// Reset clears the builder state, allowing it to be reused.
func (b *ChangeBuilder) Reset() testkit.Builder {
	b.BaseBuilder.Reset()
	b.id = "abcdef1234567890"
	b.changeID = "kxyzmnop12345678"
	b.description = "feat: add widget support\n\nLonger explanation."
	b.bookmarks = nil
	b.isWorkingCopy = false
	b.isEmpty = false
	b.hasConflict = false
	return b
}

// Clone creates a deep copy of the ChangeBuilder.
func (b *ChangeBuilder) Clone() testkit.Builder {
	bookmarks := make([]string, len(b.bookmarks))
	copy(bookmarks, b.bookmarks)
	return &ChangeBuilder{
		BaseBuilder:   b.BaseBuilder.Clone().(*testkit.BaseBuilder),
		id:            b.id,
		changeID:      b.changeID,
		description:   b.description,
		bookmarks:     bookmarks,
		isWorkingCopy: b.isWorkingCopy,
		isEmpty:       b.isEmpty,
		hasConflict:   b.hasConflict,
	}
}
