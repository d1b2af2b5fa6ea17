package commands

import (
	"context"
	"fmt"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/ship/internal/domain/entities"
	"github.com/rios0rios0/ship/internal/domain/repositories"
)

// StackPRs is the interface for the whole-stack PR command.
type StackPRs interface {
	Execute(ctx context.Context) ([]entities.ActionResult, error)
}

// StackPRsCommand plans the whole stack and executes the plan base-first:
// push each bookmark, then create or retarget its PR. A conflict anywhere in
// the stack blocks execution before any write; a push failure aborts the
// remaining actions; a PR create or retarget failure is recorded per action
// and execution continues, because base chaining depends on bookmarks only.
type StackPRsCommand struct {
	vcs      repositories.VCSRepository
	prHost   repositories.PRHostRepository
	planner  PlanStack
	settings *entities.Settings
}

// NewStackPRsCommand creates a new StackPRsCommand.
func NewStackPRsCommand(
	vcs repositories.VCSRepository,
	prHost repositories.PRHostRepository,
	planner PlanStack,
	settings *entities.Settings,
) *StackPRsCommand {
	return &StackPRsCommand{
		vcs:      vcs,
		prHost:   prHost,
		planner:  planner,
		settings: settings,
	}
}

// Execute plans and applies PR actions for every eligible change in the stack.
func (it *StackPRsCommand) Execute(ctx context.Context) ([]entities.ActionResult, error) {
	if err := checkVCSPreconditions(ctx, it.vcs); err != nil {
		return nil, err
	}
	if !it.prHost.IsAvailable(ctx) {
		return nil, entities.ErrPRHostUnavailable
	}

	stack, err := it.vcs.GetStack(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read stack: %w", err)
	}

	plan, err := it.planner.Execute(ctx, stack, it.settings.DefaultBranch)
	if err != nil {
		return nil, err
	}

	results := make([]entities.ActionResult, 0, len(plan.Actions))
	for _, action := range plan.Actions {
		if _, pushErr := it.vcs.Push(ctx, action.Bookmark); pushErr != nil {
			return results, &entities.PushFailedError{Bookmark: action.Bookmark, Cause: pushErr}
		}

		results = append(results, it.applyAction(ctx, action))
	}

	return results, nil
}

func (it *StackPRsCommand) applyAction(
	ctx context.Context,
	action entities.PlanAction,
) entities.ActionResult {
	result := entities.ActionResult{Action: action}

	switch action.Kind {
	case entities.ActionCreate:
		pr, err := it.prHost.CreatePullRequest(ctx, entities.PullRequestInput{
			Title: action.Title,
			Body:  action.Body,
			Head:  action.Bookmark,
			Base:  action.Base,
		})
		if err != nil {
			result.Err = err.Error()
			return result
		}
		result.PR = &pr
		logger.Infof("Created PR #%d: %s -> %s", pr.Number, action.Bookmark, action.Base)

	case entities.ActionRetarget:
		if err := it.prHost.UpdateBaseBranch(ctx, action.PRNumber, action.Base); err != nil {
			result.Err = err.Error()
			return result
		}
		logger.Infof("Retargeted PR #%d onto %s", action.PRNumber, action.Base)

	case entities.ActionNoop:
		logger.Debugf("PR #%d for %s is up to date", action.PRNumber, action.Bookmark)
	}

	return result
}
