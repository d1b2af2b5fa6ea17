package commands

import (
	"context"
	"fmt"

	"github.com/rios0rios0/ship/internal/domain/entities"
	"github.com/rios0rios0/ship/internal/domain/repositories"
)

// PlanStack is the interface for the stack reconciler.
type PlanStack interface {
	Execute(ctx context.Context, stack entities.Stack, defaultBranch string) (entities.Plan, error)
}

// PlanStackCommand computes the ordered action plan for a stack: which changes
// need a new PR, which existing PRs need retargeting, and which are already up
// to date. It performs reads only; execution belongs to the callers.
type PlanStackCommand struct {
	prHost repositories.PRHostRepository
}

// NewPlanStackCommand creates a new PlanStackCommand.
func NewPlanStackCommand(prHost repositories.PRHostRepository) *PlanStackCommand {
	return &PlanStackCommand{prHost: prHost}
}

// Execute builds the plan for the given stack.
//
// The conflict scan runs first, over the entire unfiltered stack: a single
// conflicted change blocks the whole plan before any other work happens.
// Eligible changes are then walked base-first: the base branch of each entry
// is the bookmark of the previous one, so the walk must stay sequential.
func (it *PlanStackCommand) Execute(
	ctx context.Context,
	stack entities.Stack,
	defaultBranch string,
) (entities.Plan, error) {
	if conflicted := stack.Conflicted(); len(conflicted) > 0 {
		return entities.Plan{}, &entities.StackConflictedError{Conflicted: conflicted}
	}

	eligible := stack.Eligible()
	actions := make([]entities.PlanAction, 0, len(eligible))

	for i, change := range eligible {
		base := defaultBranch
		if i > 0 {
			base = eligible[i-1].Bookmark()
		}

		bookmark := change.Bookmark()

		existing, err := it.prHost.GetByBranch(ctx, bookmark)
		if err != nil {
			return entities.Plan{}, fmt.Errorf("failed to look up PR for %q: %w", bookmark, err)
		}

		actions = append(actions, it.classify(change, existing, bookmark, base))
	}

	return entities.Plan{Actions: actions}, nil
}

func (it *PlanStackCommand) classify(
	change entities.Change,
	existing *entities.PullRequest,
	bookmark, base string,
) entities.PlanAction {
	if existing == nil {
		title := change.Title()
		if title == "" {
			title = bookmark
		}
		return entities.PlanAction{
			Kind:     entities.ActionCreate,
			ChangeID: change.ChangeID,
			Bookmark: bookmark,
			Base:     base,
			Title:    title,
			Body:     change.Description,
		}
	}

	if existing.BaseBranch != base {
		return entities.PlanAction{
			Kind:     entities.ActionRetarget,
			ChangeID: change.ChangeID,
			Bookmark: bookmark,
			Base:     base,
			PRNumber: existing.Number,
			URL:      existing.URL,
		}
	}

	return entities.PlanAction{
		Kind:     entities.ActionNoop,
		ChangeID: change.ChangeID,
		Bookmark: bookmark,
		Base:     base,
		PRNumber: existing.Number,
		URL:      existing.URL,
	}
}
