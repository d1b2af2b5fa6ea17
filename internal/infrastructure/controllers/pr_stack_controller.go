package controllers

import (
	"context"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/ship/internal/domain/commands"
	"github.com/rios0rios0/ship/internal/domain/entities"
)

// PRStackController handles "ship pr stack": reconcile a pull request per
// eligible change in the whole stack, base-first.
type PRStackController struct {
	command commands.StackPRs
}

// NewPRStackController creates a new PRStackController.
func NewPRStackController(command commands.StackPRs) *PRStackController {
	return &PRStackController{command: command}
}

// GetBind returns the Cobra command metadata for the pr stack controller.
func (it *PRStackController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "stack",
		Group: "pr",
		Short: "Create or retarget pull requests for every change in the stack",
		Long: `Walk the stack base-first and reconcile one pull request per eligible
change. Each PR targets the previous eligible change's bookmark; the oldest
targets the default branch. Existing PRs with a stale base are retargeted.`,
	}
}

// Execute runs the whole-stack reconciliation.
func (it *PRStackController) Execute(cmd *cobra.Command, _ []string) {
	ctx := context.Background()

	results, err := it.command.Execute(ctx)
	if err != nil {
		// A mid-stack push failure still returns the actions that landed.
		reportActions(cmd, results)
		fail(cmd, "Stack submission aborted: %v", err)
	}

	reportActions(cmd, results)

	failed := 0
	for _, result := range results {
		if result.Err != "" {
			failed++
		}
	}
	if failed > 0 {
		logger.Warnf("%d of %d actions failed; re-running is safe", failed, len(results))
		exit(1)
	}
}

func reportActions(cmd *cobra.Command, results []entities.ActionResult) {
	if wantJSON(cmd) {
		printJSON(results)
		return
	}

	for _, result := range results {
		action := result.Action
		if result.Err != "" {
			printLine("%-9s %s -> %s: FAILED: %s", action.Kind, action.Bookmark, action.Base, result.Err)
			continue
		}
		switch action.Kind {
		case entities.ActionCreate:
			printLine("created   %s -> %s: #%d %s", action.Bookmark, action.Base, result.PR.Number, result.PR.URL)
		case entities.ActionRetarget:
			printLine("retarget  %s -> %s: #%d", action.Bookmark, action.Base, action.PRNumber)
		case entities.ActionNoop:
			printLine("unchanged %s -> %s: #%d", action.Bookmark, action.Base, action.PRNumber)
		}
	}
}
