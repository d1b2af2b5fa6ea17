package commands

import (
	"context"

	"github.com/rios0rios0/ship/internal/domain/entities"
	"github.com/rios0rios0/ship/internal/domain/repositories"
)

// checkVCSPreconditions verifies the VCS tool is usable before any command
// attempts side effects.
func checkVCSPreconditions(ctx context.Context, vcs repositories.VCSRepository) error {
	if !vcs.IsAvailable(ctx) {
		return entities.ErrVCSUnavailable
	}
	if !vcs.IsRepo(ctx) {
		return entities.ErrNotRepo
	}
	return nil
}
