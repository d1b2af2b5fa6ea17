package repositories

import (
	"context"

	"github.com/rios0rios0/ship/internal/domain/entities"
)

// WorkspaceStore persists ship's workspace metadata. The store is shared
// between concurrent CLI invocations and agent sessions, so every
// read-modify-write must be serialized by the implementation (a file lock
// scoped to the metadata file, not an in-process mutex).
type WorkspaceStore interface {
	// List returns a fresh read of all workspace metadata entries.
	List(ctx context.Context) ([]entities.WorkspaceMetadata, error)

	// Mutate runs fn inside the store lock. fn receives a fresh read of the
	// entries and returns the full replacement set, which is persisted before
	// the lock is released.
	Mutate(ctx context.Context, fn func([]entities.WorkspaceMetadata) ([]entities.WorkspaceMetadata, error)) error
}
