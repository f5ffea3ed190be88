package query

import (
	"context"
	"errors"
	"time"

	"github.com/edutrack-hub/edutrack/internal/domain/planner"
	"github.com/edutrack-hub/edutrack/internal/domain/shared"
	"github.com/edutrack-hub/edutrack/internal/domain/subject"
	"github.com/edutrack-hub/edutrack/internal/domain/task"
	"github.com/edutrack-hub/edutrack/pkg/timeutil"
)

// ══════════════════════════════════════════════════════════════════════════════
// GET WEEKLY PLAN QUERY
// ══════════════════════════════════════════════════════════════════════════════

// GetWeeklyPlanQuery contains parameters for weekly plan retrieval.
type GetWeeklyPlanQuery struct {
	// WeekOf is the week-start date key (yyyy-MM-dd) of a saved plan.
	// Empty means "generate a fresh plan for the current week".
	WeekOf string

	// Now anchors generation when WeekOf is empty. Zero means current time.
	Now time.Time
}

// Validate normalizes and checks the query parameters.
func (q *GetWeeklyPlanQuery) Validate() error {
	if q.Now.IsZero() {
		q.Now = time.Now().UTC()
	}
	if q.WeekOf != "" {
		if _, err := timeutil.ParseDateKey(q.WeekOf); err != nil {
			return shared.ErrInvalidWeekKey
		}
	}
	return nil
}

// GetWeeklyPlanResult contains the retrieved or generated plan.
type GetWeeklyPlanResult struct {
	Plan *planner.WeeklyPlan `json:"plan"`

	// Saved reports whether the plan came from the store (true) or was
	// generated for this call (false).
	Saved bool `json:"saved"`
}

// GetWeeklyPlanHandler handles weekly plan queries.
type GetWeeklyPlanHandler struct {
	subjectRepo subject.Repository
	taskRepo    task.Repository
	planRepo    planner.Repository
}

// NewGetWeeklyPlanHandler creates the handler.
func NewGetWeeklyPlanHandler(
	subjectRepo subject.Repository,
	taskRepo task.Repository,
	planRepo planner.Repository,
) *GetWeeklyPlanHandler {
	return &GetWeeklyPlanHandler{
		subjectRepo: subjectRepo,
		taskRepo:    taskRepo,
		planRepo:    planRepo,
	}
}

// Handle executes the query. With a WeekOf it returns the first saved plan
// for that week; otherwise it generates a plan for the week containing Now,
// without saving it.
func (h *GetWeeklyPlanHandler) Handle(ctx context.Context, query GetWeeklyPlanQuery) (*GetWeeklyPlanResult, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	if query.WeekOf != "" {
		plan, err := h.planRepo.GetByWeekOf(ctx, query.WeekOf)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil, shared.ErrPlanNotFound
			}
			return nil, err
		}
		return &GetWeeklyPlanResult{Plan: plan, Saved: true}, nil
	}

	subjects, err := h.subjectRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	tasks, err := h.taskRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	return &GetWeeklyPlanResult{
		Plan:  planner.GenerateWeeklyPlan(query.Now, subjects, tasks),
		Saved: false,
	}, nil
}
