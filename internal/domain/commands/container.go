package commands

import (
	"go.uber.org/dig"
)

// RegisterProviders registers all command providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	// Register command constructors
	constructors := []interface{}{
		NewPlanStackCommand,
		NewSubmitCommand,
		NewStackPRsCommand,
		NewRestackCommand,
		NewFeedbackCommand,
		NewWorkspaceCleanupCommand,
		NewAbandonCommand,
		NewPRCreateCommand,
	}
	for _, constructor := range constructors {
		if err := container.Provide(constructor); err != nil {
			return err
		}
	}

	// Bind interfaces to implementations
	bindings := []interface{}{
		func(impl *PlanStackCommand) PlanStack { return impl },
		func(impl *SubmitCommand) Submit { return impl },
		func(impl *StackPRsCommand) StackPRs { return impl },
		func(impl *RestackCommand) Restack { return impl },
		func(impl *FeedbackCommand) Feedback { return impl },
		func(impl *WorkspaceCleanupCommand) WorkspaceCleanup { return impl },
		func(impl *AbandonCommand) Abandon { return impl },
		func(impl *PRCreateCommand) PRCreate { return impl },
	}
	for _, binding := range bindings {
		if err := container.Provide(binding); err != nil {
			return err
		}
	}

	return nil
}
