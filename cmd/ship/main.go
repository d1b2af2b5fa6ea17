package main

import (
	"os"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/ship/internal"
)

// flagAdder is implemented by controllers that register their own flags.
type flagAdder interface {
	AddFlags(cmd *cobra.Command)
}

func buildRootCommand() *cobra.Command {
	//nolint:exhaustruct // Minimal Command initialization with required fields only
	cmd := &cobra.Command{
		Use:   "ship",
		Short: "Stacked-change delivery for jj, GitHub and Linear",
		Long: `Ship pushes jj changes, reconciles one pull request per change in a
stack, keeps PR bases chained to the bookmarks below them, and cleans up the
workspaces it created when their changes are abandoned or merged.

Usage modes:
  ship stack submit         Push the current change and reconcile its PR
  ship pr stack             Reconcile PRs for the whole stack
  ship stack restack        Rebase the stack onto the latest default branch
  ship pr comments          Show review feedback on the current PR`,
		PersistentPreRun: func(command *cobra.Command, _ []string) {
			if verbose, _ := command.Flags().GetBool("verbose"); verbose {
				logger.SetLevel(logger.DebugLevel)
			}
		},
	}

	// Global persistent flags
	cmd.PersistentFlags().Bool("json", false,
		"Emit machine-readable JSON instead of text")
	cmd.PersistentFlags().Bool("verbose", false,
		"Enable debug logging")

	return cmd
}

// addSubcommands binds every controller under its command group.
func addSubcommands(rootCmd *cobra.Command, appContext *internal.AppInternal) {
	//nolint:exhaustruct // Minimal Command initialization with required fields only
	groups := map[string]*cobra.Command{
		"stack": {
			Use:   "stack",
			Short: "Work with the current stack of changes",
		},
		"pr": {
			Use:   "pr",
			Short: "Work with pull requests",
		},
		"workspace": {
			Use:   "workspace",
			Short: "Manage ship-created workspaces",
		},
	}

	for _, controller := range appContext.GetControllers() {
		bind := controller.GetBind()
		ctrl := controller // capture for closure
		//nolint:exhaustruct // Minimal Command initialization with required fields only
		subCmd := &cobra.Command{
			Use:   bind.Use,
			Short: bind.Short,
			Long:  bind.Long,
			Run: func(command *cobra.Command, arguments []string) {
				ctrl.Execute(command, arguments)
			},
		}

		if adder, ok := ctrl.(flagAdder); ok {
			adder.AddFlags(subCmd)
		}

		parent := rootCmd
		if group, ok := groups[bind.Group]; ok {
			parent = group
		}
		parent.AddCommand(subCmd)
	}

	for _, group := range []string{"stack", "pr", "workspace"} {
		rootCmd.AddCommand(groups[group])
	}
}

func main() {
	//nolint:exhaustruct // Minimal TextFormatter initialization with required fields only
	logger.SetFormatter(&logger.TextFormatter{
		ForceColors:   true,
		FullTimestamp: true,
	})
	if os.Getenv("DEBUG") == "true" {
		logger.SetLevel(logger.DebugLevel)
	}

	// Inject controllers via DIG
	appContext := injectAppContext()

	cobraRoot := buildRootCommand()
	addSubcommands(cobraRoot, appContext)

	if err := cobraRoot.Execute(); err != nil {
		logger.Fatalf("Error executing 'ship': %s", err)
	}
}
