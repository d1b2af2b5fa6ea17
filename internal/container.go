package internal

import (
	"go.uber.org/dig"

	"github.com/rios0rios0/ship/internal/domain/commands"
	"github.com/rios0rios0/ship/internal/domain/entities"
	"github.com/rios0rios0/ship/internal/infrastructure/controllers"
	"github.com/rios0rios0/ship/internal/infrastructure/repositories"
)

// RegisterProviders registers all internal providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	// Register all layers (bottom-up: domain entities -> infrastructure repos -> domain commands -> controllers)
	if err := entities.RegisterProviders(container); err != nil {
		return err
	}
	if err := repositories.RegisterProviders(container); err != nil {
		return err
	}
	if err := commands.RegisterProviders(container); err != nil {
		return err
	}
	if err := controllers.RegisterProviders(container); err != nil {
		return err
	}

	// Register the main app internal
	return container.Provide(NewAppInternal)
}
