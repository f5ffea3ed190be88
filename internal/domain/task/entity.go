// Package task contains the study task domain model: one-off items the
// student plans against a target date and checks off when done.
package task

import (
	"strings"
	"time"

	"github.com/edutrack-hub/edutrack/internal/domain/shared"
)

// Status is the lifecycle state of a study task.
type Status string

const (
	// StatusPending - the task has not been completed yet.
	StatusPending Status = "pending"
	// StatusCompleted - the task is done. Terminal state.
	StatusCompleted Status = "completed"
)

// IsValid checks that the status is one of the known values.
func (s Status) IsValid() bool {
	return s == StatusPending || s == StatusCompleted
}

// StudyTask represents one planned study item.
type StudyTask struct {
	// ID is the unique task identifier.
	ID shared.ID `json:"id"`

	// SubjectID references the subject this task belongs to.
	// May dangle after subject deletion; consumers filter unresolved refs.
	SubjectID shared.ID `json:"subjectId"`

	// Description is what needs to be done.
	Description string `json:"description"`

	// TargetDate is the day the task is due.
	TargetDate time.Time `json:"targetDate"`

	// Status is pending or completed.
	Status Status `json:"status"`

	// CompletedAt is set exactly once, at the pending -> completed transition.
	CompletedAt *time.Time `json:"completedAt,omitempty"`

	// CreatedAt is when the task was created.
	CreatedAt time.Time `json:"createdAt"`

	// AutoPriorityScore is an optional numeric hint from the recommendation
	// engine, used by the UI to pre-sort the backlog.
	AutoPriorityScore *float64 `json:"autoPriorityScore,omitempty"`
}

// NewTaskParams contains parameters for creating a study task.
type NewTaskParams struct {
	ID          shared.ID
	SubjectID   shared.ID
	Description string
	TargetDate  time.Time
}

// NewStudyTask creates a pending task with validation.
func NewStudyTask(params NewTaskParams) (*StudyTask, error) {
	if params.ID.IsEmpty() {
		return nil, shared.NewDomainError("task", "Create", shared.ErrInvalidID, "task id is required")
	}
	if strings.TrimSpace(params.Description) == "" {
		return nil, shared.NewDomainError("task", "Create", shared.ErrEmptyValue, "task description is required")
	}
	if params.TargetDate.IsZero() {
		return nil, shared.NewDomainError("task", "Create", shared.ErrInvalidInput, "task target date is required")
	}

	return &StudyTask{
		ID:          params.ID,
		SubjectID:   params.SubjectID,
		Description: strings.TrimSpace(params.Description),
		TargetDate:  params.TargetDate,
		Status:      StatusPending,
		CreatedAt:   time.Now().UTC(),
	}, nil
}

// IsPending reports whether the task still needs doing.
func (t *StudyTask) IsPending() bool {
	return t.Status == StatusPending
}

// IsCompleted reports whether the task is done.
func (t *StudyTask) IsCompleted() bool {
	return t.Status == StatusCompleted
}

// Complete transitions the task to completed and stamps CompletedAt.
// Returns shared.ErrTaskAlreadyCompleted when already done.
func (t *StudyTask) Complete(at time.Time) error {
	if t.IsCompleted() {
		return shared.ErrTaskAlreadyCompleted
	}
	t.Status = StatusCompleted
	completedAt := at.UTC()
	t.CompletedAt = &completedAt
	return nil
}

// DaysUntilDue returns whole calendar days from now until the target date.
// Negative for overdue tasks, 0 for due today, 1 for due tomorrow.
func (t *StudyTask) DaysUntilDue(now time.Time) int {
	from := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	to := time.Date(t.TargetDate.Year(), t.TargetDate.Month(), t.TargetDate.Day(), 0, 0, 0, 0, t.TargetDate.Location())
	return int(to.Sub(from).Hours() / 24)
}

// CountPending counts pending tasks in a collection.
func CountPending(tasks []*StudyTask) int {
	count := 0
	for _, t := range tasks {
		if t.IsPending() {
			count++
		}
	}
	return count
}

// CountCompleted counts completed tasks in a collection.
func CountCompleted(tasks []*StudyTask) int {
	count := 0
	for _, t := range tasks {
		if t.IsCompleted() {
			count++
		}
	}
	return count
}

// CompletionRate returns completed/total as a display percentage,
// 0 when the collection is empty.
func CompletionRate(tasks []*StudyTask) shared.Percentage {
	return shared.Ratio(CountCompleted(tasks), len(tasks))
}
