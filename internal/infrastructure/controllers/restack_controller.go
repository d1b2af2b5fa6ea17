package controllers

import (
	"context"
	"strings"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/ship/internal/domain/commands"
	"github.com/rios0rios0/ship/internal/domain/entities"
)

// RestackController handles "ship stack restack": fetch and rebase the stack
// onto the latest default branch.
type RestackController struct {
	command commands.Restack
}

// NewRestackController creates a new RestackController.
func NewRestackController(command commands.Restack) *RestackController {
	return &RestackController{command: command}
}

// GetBind returns the Cobra command metadata for the restack controller.
func (it *RestackController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "restack",
		Group: "stack",
		Short: "Rebase the current stack onto the latest default branch",
		Long: `Fetch the remote, then rebase the whole stack onto the default branch.
A stack that already carries conflicts is not rebased. Conflicts introduced
by the rebase itself are reported so they can be resolved change by change.`,
	}
}

// Execute runs the restack flow.
func (it *RestackController) Execute(cmd *cobra.Command, _ []string) {
	ctx := context.Background()

	result, err := it.command.Execute(ctx)
	if err != nil {
		fail(cmd, "Restack failed: %v", err)
	}

	if wantJSON(cmd) {
		printJSON(result)
	} else if result.RebasedCount == 0 {
		printLine("Nothing to restack")
	} else {
		printLine("Rebased %d changes onto %s", result.RebasedCount, result.Target)
	}

	if len(result.NewConflicts) > 0 {
		logger.Warnf("Rebase introduced conflicts in: %s", strings.Join(result.NewConflicts, ", "))
	}
}
