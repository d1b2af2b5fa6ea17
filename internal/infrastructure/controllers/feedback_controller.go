package controllers

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rios0rios0/ship/internal/domain/commands"
	"github.com/rios0rios0/ship/internal/domain/entities"
)

// FeedbackController handles "ship pr comments": show everything reviewers
// said about the current change's pull request.
type FeedbackController struct {
	command commands.Feedback
}

// NewFeedbackController creates a new FeedbackController.
func NewFeedbackController(command commands.Feedback) *FeedbackController {
	return &FeedbackController{command: command}
}

// GetBind returns the Cobra command metadata for the feedback controller.
func (it *FeedbackController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "comments",
		Group: "pr",
		Short: "Show reviews and comments on the current change's pull request",
	}
}

// Execute fetches and prints the review feedback.
func (it *FeedbackController) Execute(cmd *cobra.Command, _ []string) {
	ctx := context.Background()

	feedback, err := it.command.Execute(ctx)
	if err != nil {
		fail(cmd, "Failed to fetch feedback: %v", err)
	}

	if wantJSON(cmd) {
		printJSON(feedback)
		return
	}

	printLine("PR #%d: %s", feedback.PR.Number, feedback.PR.Title)

	if len(feedback.Reviews) > 0 {
		printLine("\nReviews:")
		for _, review := range feedback.Reviews {
			printLine("  [%s] %s", review.State, review.Author)
			if review.Body != "" {
				printLine("    %s", review.Body)
			}
		}
	}

	if len(feedback.ReviewComments) > 0 {
		printLine("\nInline comments:")
		for _, comment := range feedback.ReviewComments {
			location := comment.Path
			if comment.Line != nil {
				location = fmt.Sprintf("%s:%d", comment.Path, *comment.Line)
			}
			printLine("  %s (%s):", location, comment.Author)
			printLine("    %s", comment.Body)
		}
	}

	if len(feedback.Comments) > 0 {
		printLine("\nConversation:")
		for _, comment := range feedback.Comments {
			printLine("  %s: %s", comment.Author, comment.Body)
		}
	}

	if len(feedback.Reviews) == 0 && len(feedback.ReviewComments) == 0 && len(feedback.Comments) == 0 {
		printLine("No feedback yet")
	}
}
