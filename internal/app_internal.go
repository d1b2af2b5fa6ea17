package internal

import (
	"github.com/rios0rios0/ship/internal/domain/entities"
)

// AppInternal carries the wired controllers for the cmd layer.
type AppInternal struct {
	controllers *[]entities.Controller
}

// NewAppInternal creates the application context from the wired controllers.
func NewAppInternal(controllers *[]entities.Controller) *AppInternal {
	return &AppInternal{controllers: controllers}
}

// GetControllers returns all wired controllers.
func (it *AppInternal) GetControllers() []entities.Controller {
	return *it.controllers
}
