package controllers

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/rios0rios0/ship/internal/domain/commands"
	"github.com/rios0rios0/ship/internal/domain/entities"
)

// WorkspaceListController handles "ship workspace list".
type WorkspaceListController struct {
	command commands.WorkspaceCleanup
}

// NewWorkspaceListController creates a new WorkspaceListController.
func NewWorkspaceListController(command commands.WorkspaceCleanup) *WorkspaceListController {
	return &WorkspaceListController{command: command}
}

// GetBind returns the Cobra command metadata for the workspace list controller.
func (it *WorkspaceListController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "list",
		Group: "workspace",
		Short: "List the workspaces ship is managing",
	}
}

// Execute prints the managed workspaces.
func (it *WorkspaceListController) Execute(cmd *cobra.Command, _ []string) {
	ctx := context.Background()

	workspaces, err := it.command.ListWorkspaces(ctx)
	if err != nil {
		fail(cmd, "Failed to list workspaces: %v", err)
	}

	if wantJSON(cmd) {
		printJSON(workspaces)
		return
	}

	if len(workspaces) == 0 {
		printLine("No managed workspaces")
		return
	}
	for _, workspace := range workspaces {
		line := workspace.Name + "  " + workspace.Path
		if workspace.Bookmark != "" {
			line += "  (" + workspace.Bookmark + ")"
		}
		printLine("%s", line)
	}
}
