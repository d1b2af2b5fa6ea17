package controllers

import (
	"go.uber.org/dig"

	"github.com/rios0rios0/ship/internal/domain/entities"
)

// RegisterProviders registers all controller providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	// Register controller constructors
	constructors := []interface{}{
		NewSubmitController,
		NewRestackController,
		NewAbandonController,
		NewPRCreateController,
		NewPRStackController,
		NewFeedbackController,
		NewWorkspaceListController,
		NewWorkspaceRemoveController,
	}
	for _, constructor := range constructors {
		if err := container.Provide(constructor); err != nil {
			return err
		}
	}

	return container.Provide(NewControllers)
}

// NewControllers aggregates all controllers into a slice for the AppInternal.
func NewControllers(
	submitController *SubmitController,
	restackController *RestackController,
	abandonController *AbandonController,
	prCreateController *PRCreateController,
	prStackController *PRStackController,
	feedbackController *FeedbackController,
	workspaceListController *WorkspaceListController,
	workspaceRemoveController *WorkspaceRemoveController,
) *[]entities.Controller {
	return &[]entities.Controller{
		submitController,
		restackController,
		abandonController,
		prCreateController,
		prStackController,
		feedbackController,
		workspaceListController,
		workspaceRemoveController,
	}
}
