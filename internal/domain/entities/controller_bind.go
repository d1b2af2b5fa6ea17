package entities

import "github.com/spf13/cobra"

// ControllerBind carries the Cobra metadata a controller exposes. Group names
// the parent command ("stack", "pr", "workspace"); an empty Group binds the
// controller directly under the root.
type ControllerBind struct {
	Use   string
	Group string
	Short string
	Long  string
}

// Controller is implemented by every CLI controller.
type Controller interface {
	GetBind() ControllerBind
	Execute(cmd *cobra.Command, args []string)
}
