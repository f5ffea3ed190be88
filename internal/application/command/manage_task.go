package command

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/edutrack-hub/edutrack/internal/domain/shared"
	"github.com/edutrack-hub/edutrack/internal/domain/task"
)

// ══════════════════════════════════════════════════════════════════════════════
// TASK COMMANDS
// ══════════════════════════════════════════════════════════════════════════════

// CreateTaskCommand contains parameters for creating a study task.
type CreateTaskCommand struct {
	SubjectID   shared.ID
	Description string
	TargetDate  time.Time
}

// CompleteTaskCommand marks a task as done.
type CompleteTaskCommand struct {
	ID shared.ID

	// At is the completion time. Zero means the current time.
	At time.Time
}

// DeleteTaskCommand removes a task.
type DeleteTaskCommand struct {
	ID shared.ID
}

// TaskHandler handles study task lifecycle commands.
type TaskHandler struct {
	taskRepo task.Repository
}

// NewTaskHandler creates the handler.
func NewTaskHandler(taskRepo task.Repository) *TaskHandler {
	return &TaskHandler{taskRepo: taskRepo}
}

// Create validates and stores a new pending task.
func (h *TaskHandler) Create(ctx context.Context, cmd CreateTaskCommand) (*task.StudyTask, error) {
	t, err := task.NewStudyTask(task.NewTaskParams{
		ID:          shared.ID(uuid.NewString()),
		SubjectID:   cmd.SubjectID,
		Description: cmd.Description,
		TargetDate:  cmd.TargetDate,
	})
	if err != nil {
		return nil, err
	}
	if err := h.taskRepo.Save(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

// Complete transitions a task to completed. Completing twice returns
// shared.ErrTaskAlreadyCompleted.
func (h *TaskHandler) Complete(ctx context.Context, cmd CompleteTaskCommand) (*task.StudyTask, error) {
	t, err := h.taskRepo.GetByID(ctx, cmd.ID)
	if err != nil {
		return nil, err
	}

	at := cmd.At
	if at.IsZero() {
		at = time.Now().UTC()
	}
	if err := t.Complete(at); err != nil {
		return nil, err
	}
	if err := h.taskRepo.Save(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

// Delete removes the task.
func (h *TaskHandler) Delete(ctx context.Context, cmd DeleteTaskCommand) error {
	if cmd.ID.IsEmpty() {
		return shared.NewDomainError("task", "Delete", shared.ErrInvalidID, "task id is required")
	}
	return h.taskRepo.Delete(ctx, cmd.ID)
}
