// Package query contains read operations (CQRS - Queries). Every handler
// loads the record collections it needs, runs the pure domain functions over
// them, and returns a result DTO. Nothing is cached: results are recomputed
// from the records on every call, so they can never go stale.
package query

import (
	"context"
	"time"

	"github.com/edutrack-hub/edutrack/internal/domain/attendance"
	"github.com/edutrack-hub/edutrack/internal/domain/insights"
	"github.com/edutrack-hub/edutrack/internal/domain/shared"
	"github.com/edutrack-hub/edutrack/internal/domain/subject"
	"github.com/edutrack-hub/edutrack/internal/domain/task"
	"github.com/edutrack-hub/edutrack/internal/domain/topic"
)

// ══════════════════════════════════════════════════════════════════════════════
// GET ACTION PLAN QUERY
// ══════════════════════════════════════════════════════════════════════════════

// GetActionPlanQuery contains parameters for the daily action plan.
type GetActionPlanQuery struct {
	// Now anchors "today" for due dates and exam windows. Zero means the
	// current time.
	Now time.Time
}

// Validate normalizes the query parameters.
func (q *GetActionPlanQuery) Validate() error {
	if q.Now.IsZero() {
		q.Now = time.Now().UTC()
	}
	return nil
}

// GetActionPlanResult contains the generated plan.
type GetActionPlanResult struct {
	// Recommendations is the ranked plan, highest priority first.
	Recommendations []insights.Recommendation `json:"recommendations"`

	// GeneratedAt is when the plan was computed.
	GeneratedAt time.Time `json:"generatedAt"`
}

// GetActionPlanHandler handles daily action plan queries.
type GetActionPlanHandler struct {
	subjectRepo    subject.Repository
	attendanceRepo attendance.Repository
	taskRepo       task.Repository
	topicRepo      topic.Repository
	aggregator     *attendance.Aggregator
}

// NewGetActionPlanHandler creates the handler.
func NewGetActionPlanHandler(
	subjectRepo subject.Repository,
	attendanceRepo attendance.Repository,
	taskRepo task.Repository,
	topicRepo topic.Repository,
) *GetActionPlanHandler {
	return &GetActionPlanHandler{
		subjectRepo:    subjectRepo,
		attendanceRepo: attendanceRepo,
		taskRepo:       taskRepo,
		topicRepo:      topicRepo,
		aggregator:     attendance.NewAggregator(),
	}
}

// Handle executes the query.
func (h *GetActionPlanHandler) Handle(ctx context.Context, query GetActionPlanQuery) (*GetActionPlanResult, error) {
	if err := query.Validate(); err != nil {
		return nil, shared.WrapError("query", "GetActionPlan", shared.ErrValidation, err.Error(), err)
	}

	subjects, err := h.subjectRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	records, err := h.attendanceRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	tasks, err := h.taskRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	topics, err := h.topicRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	stats := h.aggregator.StatsBySubject(records, subjectIDs(subjects))

	return &GetActionPlanResult{
		Recommendations: insights.GenerateDailyActionPlan(query.Now, subjects, tasks, stats, topics),
		GeneratedAt:     query.Now,
	}, nil
}

// subjectIDs extracts the id list in store order.
func subjectIDs(subjects []*subject.Subject) []shared.ID {
	ids := make([]shared.ID, len(subjects))
	for i, s := range subjects {
		ids[i] = s.ID
	}
	return ids
}
