package task

import (
	"context"

	"github.com/edutrack-hub/edutrack/internal/domain/shared"
)

// Repository defines the storage contract for study tasks.
type Repository interface {
	// List returns all tasks in creation order.
	List(ctx context.Context) ([]*StudyTask, error)

	// GetByID returns a task by id.
	// Returns shared.ErrTaskNotFound if the task does not exist.
	GetByID(ctx context.Context, id shared.ID) (*StudyTask, error)

	// Save creates or replaces a task (last write wins).
	Save(ctx context.Context, t *StudyTask) error

	// Delete removes a task.
	Delete(ctx context.Context, id shared.ID) error
}
