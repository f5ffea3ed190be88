package command

import (
	"context"
	"time"

	"github.com/edutrack-hub/edutrack/internal/domain/planner"
	"github.com/edutrack-hub/edutrack/internal/domain/subject"
	"github.com/edutrack-hub/edutrack/internal/domain/task"
)

// ══════════════════════════════════════════════════════════════════════════════
// SAVE WEEKLY PLAN COMMAND
// ══════════════════════════════════════════════════════════════════════════════

// SaveWeeklyPlanCommand generates a plan for the week containing Now and
// appends it to the saved plans. Saving twice for the same week creates
// duplicate entries; the plan list is append-only.
type SaveWeeklyPlanCommand struct {
	// Now anchors the week. Zero means the current time.
	Now time.Time
}

// PlanHandler handles weekly plan commands.
type PlanHandler struct {
	subjectRepo subject.Repository
	taskRepo    task.Repository
	planRepo    planner.Repository
}

// NewPlanHandler creates the handler.
func NewPlanHandler(
	subjectRepo subject.Repository,
	taskRepo task.Repository,
	planRepo planner.Repository,
) *PlanHandler {
	return &PlanHandler{
		subjectRepo: subjectRepo,
		taskRepo:    taskRepo,
		planRepo:    planRepo,
	}
}

// Save generates and persists the plan, returning it.
func (h *PlanHandler) Save(ctx context.Context, cmd SaveWeeklyPlanCommand) (*planner.WeeklyPlan, error) {
	now := cmd.Now
	if now.IsZero() {
		now = time.Now().UTC()
	}

	subjects, err := h.subjectRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	tasks, err := h.taskRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	plan := planner.GenerateWeeklyPlan(now, subjects, tasks)
	if err := h.planRepo.Append(ctx, plan); err != nil {
		return nil, err
	}
	return plan, nil
}
