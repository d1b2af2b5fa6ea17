package repositories

import (
	"context"

	"github.com/rios0rios0/ship/internal/domain/entities"
)

// IssueTrackerRepository is the narrow read interface ship needs from the
// issue tracker. Task CRUD beyond this is out of scope.
type IssueTrackerRepository interface {
	// GetTask fetches a task by its opaque id.
	GetTask(ctx context.Context, id string) (entities.Task, error)

	// GetTaskByIdentifier fetches a task by its human-facing key ("BRI-123").
	GetTaskByIdentifier(ctx context.Context, identifier string) (entities.Task, error)
}
