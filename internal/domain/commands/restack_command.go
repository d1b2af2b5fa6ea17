package commands

import (
	"context"
	"fmt"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/ship/internal/domain/entities"
	"github.com/rios0rios0/ship/internal/domain/repositories"
)

// Restack is the interface for the restack command.
type Restack interface {
	Execute(ctx context.Context) (entities.RestackResult, error)
}

// RestackCommand fetches the remote and rebases the current stack onto the
// default branch. Pre-existing conflicts block the rebase entirely; conflicts
// introduced by the rebase itself are reported, not rolled back.
type RestackCommand struct {
	vcs      repositories.VCSRepository
	settings *entities.Settings
}

// NewRestackCommand creates a new RestackCommand.
func NewRestackCommand(
	vcs repositories.VCSRepository,
	settings *entities.Settings,
) *RestackCommand {
	return &RestackCommand{vcs: vcs, settings: settings}
}

// Execute fetches and rebases the stack onto the configured trunk.
func (it *RestackCommand) Execute(ctx context.Context) (entities.RestackResult, error) {
	if err := checkVCSPreconditions(ctx, it.vcs); err != nil {
		return entities.RestackResult{}, err
	}

	if err := it.vcs.Fetch(ctx); err != nil {
		return entities.RestackResult{}, fmt.Errorf("failed to fetch: %w", err)
	}

	result := entities.RestackResult{
		Fetched: true,
		Target:  it.settings.DefaultBranch,
	}

	stack, err := it.vcs.GetStack(ctx)
	if err != nil {
		return result, fmt.Errorf("failed to read stack: %w", err)
	}

	if conflicted := stack.Conflicted(); len(conflicted) > 0 {
		return result, &entities.StackConflictedError{Conflicted: conflicted}
	}

	if len(stack) == 0 {
		logger.Info("Stack is empty, nothing to restack")
		return result, nil
	}

	// Rebasing the oldest change carries all its descendants along.
	oldest := stack[len(stack)-1]
	if rebaseErr := it.vcs.Rebase(ctx, oldest.ChangeID, it.settings.DefaultBranch); rebaseErr != nil {
		return result, fmt.Errorf("failed to rebase onto %q: %w", it.settings.DefaultBranch, rebaseErr)
	}
	result.RebasedCount = len(stack)

	rebased, err := it.vcs.GetStack(ctx)
	if err != nil {
		logger.Debugf("Failed to re-read stack after rebase: %v", err)
		return result, nil
	}
	for _, change := range rebased.Conflicted() {
		result.NewConflicts = append(result.NewConflicts, change.ShortID())
	}

	return result, nil
}
