//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"
	"fmt"

	"github.com/rios0rios0/ship/internal/domain/entities"
	"github.com/rios0rios0/ship/internal/domain/repositories"
)

// SpyIssueTrackerRepository implements repositories.IssueTrackerRepository as
// a configurable spy.
type SpyIssueTrackerRepository struct {
	// Tasks is keyed by both opaque id and human identifier.
	Tasks      map[string]entities.Task
	GetTaskErr error
	Requested  []string
}

var _ repositories.IssueTrackerRepository = (*SpyIssueTrackerRepository)(nil)

func (t *SpyIssueTrackerRepository) GetTask(
	_ context.Context,
	id string,
) (entities.Task, error) {
	return t.lookup(id)
}

func (t *SpyIssueTrackerRepository) GetTaskByIdentifier(
	_ context.Context,
	identifier string,
) (entities.Task, error) {
	return t.lookup(identifier)
}

func (t *SpyIssueTrackerRepository) lookup(key string) (entities.Task, error) {
	t.Requested = append(t.Requested, key)
	if t.GetTaskErr != nil {
		return entities.Task{}, t.GetTaskErr
	}
	if task, ok := t.Tasks[key]; ok {
		return task, nil
	}
	return entities.Task{}, fmt.Errorf("task not found: %s", key)
}
