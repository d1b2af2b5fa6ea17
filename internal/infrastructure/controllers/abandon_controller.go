package controllers

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/rios0rios0/ship/internal/domain/commands"
	"github.com/rios0rios0/ship/internal/domain/entities"
)

// AbandonController handles "ship stack abandon": drop the working-copy change
// and clean up any workspace that was created for its bookmarks.
type AbandonController struct {
	command commands.Abandon
}

// NewAbandonController creates a new AbandonController.
func NewAbandonController(command commands.Abandon) *AbandonController {
	return &AbandonController{command: command}
}

// GetBind returns the Cobra command metadata for the abandon controller.
func (it *AbandonController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "abandon",
		Group: "stack",
		Short: "Abandon the current change and clean up its workspace",
	}
}

// Execute runs the abandon flow.
func (it *AbandonController) Execute(cmd *cobra.Command, _ []string) {
	ctx := context.Background()

	result, err := it.command.Execute(ctx)
	if err != nil {
		fail(cmd, "Abandon failed: %v", err)
	}

	if wantJSON(cmd) {
		printJSON(result)
		return
	}

	printLine("Abandoned change %s", result.AbandonedChangeID)
	printLine("Working copy is now %s", result.NewWorkingCopy)
	if result.Cleanup.Removed {
		printLine("Removed workspace %q", result.Cleanup.Name)
	}
}
