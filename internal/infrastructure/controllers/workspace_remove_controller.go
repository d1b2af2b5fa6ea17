package controllers

import (
	"context"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/ship/internal/domain/commands"
	"github.com/rios0rios0/ship/internal/domain/entities"
)

// WorkspaceRemoveController handles "ship workspace remove <name>".
type WorkspaceRemoveController struct {
	command commands.WorkspaceCleanup
}

// NewWorkspaceRemoveController creates a new WorkspaceRemoveController.
func NewWorkspaceRemoveController(command commands.WorkspaceCleanup) *WorkspaceRemoveController {
	return &WorkspaceRemoveController{command: command}
}

// GetBind returns the Cobra command metadata for the workspace remove
// controller.
func (it *WorkspaceRemoveController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "remove <name>",
		Group: "workspace",
		Short: "Remove a workspace from the VCS and ship's metadata",
		Long: `Remove a workspace wherever it is known: forget it in the VCS, drop it
from ship's metadata, and optionally delete its files. The VCS listing and
the metadata file may disagree; whichever half exists is removed.`,
	}
}

// AddFlags registers remove-specific flags.
func (it *WorkspaceRemoveController) AddFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("delete-files", false, "Also delete the workspace directory")
}

// Execute removes the named workspace.
func (it *WorkspaceRemoveController) Execute(cmd *cobra.Command, args []string) {
	ctx := context.Background()

	if len(args) == 0 {
		fail(cmd, "Usage: ship workspace remove <name>")
	}
	deleteFiles, _ := cmd.Flags().GetBool("delete-files")

	result, err := it.command.RemoveWorkspace(ctx, args[0], deleteFiles)
	if err != nil {
		fail(cmd, "Failed to remove workspace: %v", err)
	}

	if wantJSON(cmd) {
		printJSON(result)
	} else {
		reportRemoval(result)
	}

	if result.FileDeleteError != "" {
		logger.Warnf("Workspace removed, but deleting files failed: %s", result.FileDeleteError)
		exit(1)
	}
}

func reportRemoval(result entities.RemoveWorkspaceResult) {
	if result.ForgottenInVCS {
		printLine("Forgot workspace %q in the VCS", result.Name)
	}
	if result.RemovedFromStore {
		printLine("Removed %q from workspace metadata", result.Name)
	}
	if result.FilesDeleted {
		printLine("Deleted workspace files")
	}
}
