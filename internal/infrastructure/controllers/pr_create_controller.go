package controllers

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/rios0rios0/ship/internal/domain/commands"
	"github.com/rios0rios0/ship/internal/domain/entities"
)

// PRCreateController handles "ship pr create": submit the current change and
// optionally open the resulting PR in the browser.
type PRCreateController struct {
	command commands.PRCreate
}

// NewPRCreateController creates a new PRCreateController.
func NewPRCreateController(command commands.PRCreate) *PRCreateController {
	return &PRCreateController{command: command}
}

// GetBind returns the Cobra command metadata for the pr create controller.
func (it *PRCreateController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "create",
		Group: "pr",
		Short: "Create or update the pull request for the current change",
	}
}

// AddFlags registers pr-create-specific flags.
func (it *PRCreateController) AddFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("draft", false, "Create the pull request as a draft")
	cmd.Flags().Bool("open", false, "Open the pull request in the browser")
}

// Execute runs the pr create flow.
func (it *PRCreateController) Execute(cmd *cobra.Command, _ []string) {
	ctx := context.Background()

	draft, _ := cmd.Flags().GetBool("draft")
	open, _ := cmd.Flags().GetBool("open")

	result, err := it.command.Execute(ctx, commands.PRCreateOptions{
		Draft: draft,
		Open:  open,
	})
	if err != nil {
		fail(cmd, "PR create failed: %v", err)
	}

	if wantJSON(cmd) {
		printJSON(result)
	} else {
		reportSubmit(result)
	}

	exitOnPartial(result)
}
