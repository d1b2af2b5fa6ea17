package commands

import (
	"context"
	"fmt"
	"sort"
	"sync"

	logger "github.com/sirupsen/logrus"
	"golang.org/x/sync/semaphore"

	"github.com/rios0rios0/ship/internal/domain/entities"
	"github.com/rios0rios0/ship/internal/domain/repositories"
)

// prLookupConcurrency bounds the parallel PR-number lookups during subscribe.
const prLookupConcurrency = 5

// Submit is the interface for the submission orchestrator.
type Submit interface {
	Execute(ctx context.Context, opts SubmitOptions) (entities.SubmitResult, error)
}

// SubmitOptions holds runtime options for a single submission.
type SubmitOptions struct {
	Title              string // explicit PR title, wins over the derived one
	Body               string // explicit PR body, wins over the derived one
	Draft              bool
	SubscribeSessionID string // agent session to subscribe, "" to skip
}

// SubmitCommand pushes the effective change's bookmark and creates or updates
// its pull request. The push is the only fatal gate after preconditions:
// everything downstream degrades to partial success, because re-running the
// command is idempotent by bookmark lookup.
type SubmitCommand struct {
	vcs      repositories.VCSRepository
	prHost   repositories.PRHostRepository
	agent    repositories.AgentGateway
	settings *entities.Settings
}

// NewSubmitCommand creates a new SubmitCommand.
func NewSubmitCommand(
	vcs repositories.VCSRepository,
	prHost repositories.PRHostRepository,
	agent repositories.AgentGateway,
	settings *entities.Settings,
) *SubmitCommand {
	return &SubmitCommand{
		vcs:      vcs,
		prHost:   prHost,
		agent:    agent,
		settings: settings,
	}
}

// Execute runs the submission flow in strict order: resolve the effective
// change, check preconditions, auto-abandon stray empties, push, then create
// or update the PR and optionally subscribe the agent session.
func (it *SubmitCommand) Execute(
	ctx context.Context,
	opts SubmitOptions,
) (entities.SubmitResult, error) {
	if err := checkVCSPreconditions(ctx, it.vcs); err != nil {
		return entities.SubmitResult{}, err
	}
	if !it.prHost.IsAvailable(ctx) {
		return entities.SubmitResult{}, entities.ErrPRHostUnavailable
	}

	current, err := it.vcs.GetCurrentChange(ctx)
	if err != nil {
		return entities.SubmitResult{}, fmt.Errorf("failed to read working copy: %w", err)
	}

	effective, substituted := it.resolveEffectiveChange(ctx, current)

	bookmark := effective.Bookmark()
	if bookmark == "" {
		return entities.SubmitResult{}, entities.ErrNoBookmark
	}
	if effective.IsEmpty {
		return entities.SubmitResult{}, entities.ErrEmptyChange
	}
	if effective.HasConflict {
		return entities.SubmitResult{}, &entities.StackConflictedError{
			Conflicted: []entities.Change{effective},
		}
	}

	stack, err := it.vcs.GetStack(ctx)
	if err != nil {
		logger.Debugf("Failed to read stack, continuing without it: %v", err)
		stack = entities.Stack{effective}
	}

	result := entities.SubmitResult{
		Bookmark:  bookmark,
		Abandoned: it.autoAbandon(ctx, stack, effective),
	}

	// The push is the operation with externally visible, hard-to-undo side
	// effects; its failure aborts everything downstream.
	if _, pushErr := it.vcs.Push(ctx, bookmark); pushErr != nil {
		return result, &entities.PushFailedError{Bookmark: bookmark, Cause: pushErr}
	}
	result.Pushed = true

	result.Base = it.resolveBaseBranch(ctx, substituted)

	title, body := it.resolveContent(effective, bookmark, opts)

	outcome, prErr := it.createOrUpdatePR(ctx, bookmark, result.Base, title, body, opts)
	if prErr != nil {
		// Partial success: the push landed, only the PR step failed.
		result.Error = prErr.Error()
		return result, nil
	}
	result.PR = outcome

	if opts.SubscribeSessionID != "" && outcome != nil && outcome.Number > 0 {
		result.Subscribed = it.subscribeAgent(
			ctx, opts.SubscribeSessionID, outcome.Number, stack, bookmark,
		)
	}

	return result, nil
}

// resolveEffectiveChange substitutes the parent when the working copy is a
// fresh empty checkpoint sitting on top of real, bookmarked work.
func (it *SubmitCommand) resolveEffectiveChange(
	ctx context.Context,
	current entities.Change,
) (entities.Change, bool) {
	if !current.IsEmpty || len(current.Bookmarks) > 0 {
		return current, false
	}

	parent, err := it.vcs.GetParentChange(ctx)
	if err != nil {
		logger.Debugf("Failed to read parent change: %v", err)
		return current, false
	}

	if !parent.IsEmpty && parent.Bookmark() != "" {
		return parent, true
	}

	return current, false
}

// autoAbandon removes stray empty checkpoints from the stack so the push does
// not trip over undescribed, untracked changes. Strictly best-effort: each
// failure is logged and skipped. The effective change and the working copy
// are never candidates.
func (it *SubmitCommand) autoAbandon(
	ctx context.Context,
	stack entities.Stack,
	effective entities.Change,
) []string {
	var abandoned []string
	for _, change := range stack {
		if change.ChangeID == effective.ChangeID || change.IsWorkingCopy || !change.Discardable() {
			continue
		}
		if _, err := it.vcs.Abandon(ctx, change.ChangeID); err != nil {
			logger.Debugf("Failed to abandon empty change %s: %v", change.ShortID(), err)
			continue
		}
		abandoned = append(abandoned, change.ChangeID)
	}
	return abandoned
}

// resolveBaseBranch picks the PR base: the grandparent's bookmark when the
// effective change is the substituted parent (the real parent is then one
// level further up), otherwise the parent's bookmark, falling back to the
// configured default branch.
func (it *SubmitCommand) resolveBaseBranch(ctx context.Context, substituted bool) string {
	var ancestor entities.Change
	var err error

	if substituted {
		ancestor, err = it.vcs.GetGrandparentChange(ctx)
	} else {
		ancestor, err = it.vcs.GetParentChange(ctx)
	}
	if err != nil {
		logger.Debugf("Failed to read ancestor change: %v", err)
		return it.settings.DefaultBranch
	}

	if bookmark := ancestor.Bookmark(); bookmark != "" {
		return bookmark
	}
	return it.settings.DefaultBranch
}

func (it *SubmitCommand) resolveContent(
	effective entities.Change,
	bookmark string,
	opts SubmitOptions,
) (string, string) {
	title := opts.Title
	if title == "" {
		title = effective.Title()
	}
	if title == "" {
		title = bookmark
	}

	body := opts.Body
	if body == "" {
		body = effective.Description
	}

	return title, body
}

// createOrUpdatePR makes the idempotent create-vs-update decision keyed on the
// bookmark. Every returned error is a partial-success condition for the caller.
func (it *SubmitCommand) createOrUpdatePR(
	ctx context.Context,
	bookmark, base, title, body string,
	opts SubmitOptions,
) (*entities.PullRequestOutcome, error) {
	existing, err := it.prHost.GetByBranch(ctx, bookmark)
	if err != nil {
		return nil, fmt.Errorf("failed to look up PR for %q: %w", bookmark, err)
	}

	if existing != nil {
		if opts.Title == "" && opts.Body == "" {
			return &entities.PullRequestOutcome{
				Status: entities.PROutcomeExists,
				Number: existing.Number,
				URL:    existing.URL,
			}, nil
		}

		if updateErr := it.prHost.UpdatePullRequest(ctx, existing.Number, opts.Title, opts.Body); updateErr != nil {
			return nil, fmt.Errorf("failed to update PR #%d: %w", existing.Number, updateErr)
		}
		return &entities.PullRequestOutcome{
			Status: entities.PROutcomeUpdated,
			Number: existing.Number,
			URL:    existing.URL,
		}, nil
	}

	created, createErr := it.prHost.CreatePullRequest(ctx, entities.PullRequestInput{
		Title: title,
		Body:  body,
		Head:  bookmark,
		Base:  base,
		Draft: opts.Draft,
	})
	if createErr != nil {
		return nil, fmt.Errorf("failed to create PR for %q: %w", bookmark, createErr)
	}

	return &entities.PullRequestOutcome{
		Status: entities.PROutcomeCreated,
		Number: created.Number,
		URL:    created.URL,
	}, nil
}

// subscribeAgent subscribes the session to the submitted PR plus every other
// PR in the stack. Lookups run with bounded concurrency and missing PRs are
// skipped; a subscribe failure is logged and omitted from the result, never
// surfaced as a command failure.
func (it *SubmitCommand) subscribeAgent(
	ctx context.Context,
	sessionID string,
	currentNumber int,
	stack entities.Stack,
	currentBookmark string,
) []int {
	if !it.agent.IsRunning(ctx) {
		logger.Debug("Agent daemon is not running, skipping subscribe")
		return nil
	}

	numbers := it.collectStackPRNumbers(ctx, stack, currentBookmark)
	numbers = append(numbers, currentNumber)
	sort.Ints(numbers)

	if err := it.agent.Subscribe(ctx, sessionID, numbers); err != nil {
		logger.Warnf("Failed to subscribe agent session %q: %v", sessionID, err)
		return nil
	}

	return numbers
}

func (it *SubmitCommand) collectStackPRNumbers(
	ctx context.Context,
	stack entities.Stack,
	currentBookmark string,
) []int {
	sem := semaphore.NewWeighted(prLookupConcurrency)

	var mu sync.Mutex
	var wg sync.WaitGroup
	var numbers []int

	for _, bookmark := range stack.Bookmarks() {
		if bookmark == currentBookmark {
			continue
		}

		if err := sem.Acquire(ctx, 1); err != nil {
			break
		}

		wg.Add(1)
		go func(bookmark string) {
			defer wg.Done()
			defer sem.Release(1)

			pr, err := it.prHost.GetByBranch(ctx, bookmark)
			if err != nil || pr == nil {
				return
			}

			mu.Lock()
			numbers = append(numbers, pr.Number)
			mu.Unlock()
		}(bookmark)
	}

	wg.Wait()
	return numbers
}
