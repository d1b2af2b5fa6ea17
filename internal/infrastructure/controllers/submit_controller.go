package controllers

import (
	"context"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/ship/internal/domain/commands"
	"github.com/rios0rios0/ship/internal/domain/entities"
)

// SubmitController handles "ship stack submit": push the current change and
// reconcile its pull request.
type SubmitController struct {
	command commands.Submit
}

// NewSubmitController creates a new SubmitController.
func NewSubmitController(command commands.Submit) *SubmitController {
	return &SubmitController{command: command}
}

// GetBind returns the Cobra command metadata for the submit controller.
func (it *SubmitController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "submit",
		Group: "stack",
		Short: "Push the current change and create or update its pull request",
		Long: `Push the current change's bookmark and reconcile its pull request.

An empty working copy is substituted by its parent, so running submit from a
fresh checkpoint on top of finished work does the right thing. Abandoned-empty
ancestors are cleaned up along the way. Re-running submit is safe: the PR is
looked up by its head branch and updated instead of duplicated.`,
	}
}

// AddFlags registers submit-specific flags.
func (it *SubmitController) AddFlags(cmd *cobra.Command) {
	cmd.Flags().String("title", "", "Pull request title (overrides the derived one)")
	cmd.Flags().String("body", "", "Pull request body (overrides the derived one)")
	cmd.Flags().Bool("draft", false, "Create the pull request as a draft")
	cmd.Flags().String("subscribe", "", "Agent session id to subscribe to PR events")
}

// Execute runs the submission flow.
func (it *SubmitController) Execute(cmd *cobra.Command, _ []string) {
	ctx := context.Background()

	title, _ := cmd.Flags().GetString("title")
	body, _ := cmd.Flags().GetString("body")
	draft, _ := cmd.Flags().GetBool("draft")
	session, _ := cmd.Flags().GetString("subscribe")

	result, err := it.command.Execute(ctx, commands.SubmitOptions{
		Title:              title,
		Body:               body,
		Draft:              draft,
		SubscribeSessionID: session,
	})
	if err != nil {
		fail(cmd, "Submit failed: %v", err)
	}

	if wantJSON(cmd) {
		printJSON(result)
	} else {
		reportSubmit(result)
	}

	exitOnPartial(result)
}

// exitOnPartial turns a partial success into an overall failure exit: the
// report already said what landed, the exit code says the run is not done.
func exitOnPartial(result entities.SubmitResult) {
	if !result.PartialSuccess() {
		return
	}
	logger.Warnf("Pushed %q, but a later step failed: %s", result.Bookmark, result.Error)
	logger.Warn("Re-running the command is safe; completed steps are skipped")
	exit(1)
}

// reportSubmit prints the human-readable submit summary, including what
// succeeded before any partial failure.
func reportSubmit(result entities.SubmitResult) {
	if result.Pushed {
		printLine("Pushed bookmark %q (base %s)", result.Bookmark, result.Base)
	}
	for _, changeID := range result.Abandoned {
		printLine("Abandoned empty change %s", changeID)
	}
	if result.PR != nil {
		switch result.PR.Status {
		case entities.PROutcomeCreated:
			printLine("Created PR #%d: %s", result.PR.Number, result.PR.URL)
		case entities.PROutcomeUpdated:
			printLine("Updated PR #%d: %s", result.PR.Number, result.PR.URL)
		default:
			printLine("PR #%d already up to date: %s", result.PR.Number, result.PR.URL)
		}
	}
	if len(result.Subscribed) > 0 {
		printLine("Subscribed agent session to PRs %v", result.Subscribed)
	}
}
