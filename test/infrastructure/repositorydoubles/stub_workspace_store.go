//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/ship/internal/domain/entities"
	"github.com/rios0rios0/ship/internal/domain/repositories"
)

// StubWorkspaceStore implements repositories.WorkspaceStore in memory,
// honoring the Mutate contract: fn sees the current entries and its return
// value replaces them.
type StubWorkspaceStore struct {
	Entries   []entities.WorkspaceMetadata
	ListErr   error
	MutateErr error
	// MutateCalls counts how many mutations ran (including failed fn calls).
	MutateCalls int
}

var _ repositories.WorkspaceStore = (*StubWorkspaceStore)(nil)

func (s *StubWorkspaceStore) List(_ context.Context) ([]entities.WorkspaceMetadata, error) {
	if s.ListErr != nil {
		return nil, s.ListErr
	}
	return s.Entries, nil
}

func (s *StubWorkspaceStore) Mutate(
	_ context.Context,
	fn func([]entities.WorkspaceMetadata) ([]entities.WorkspaceMetadata, error),
) error {
	s.MutateCalls++
	if s.MutateErr != nil {
		return s.MutateErr
	}

	updated, err := fn(s.Entries)
	if err != nil {
		return err
	}
	s.Entries = updated
	return nil
}
