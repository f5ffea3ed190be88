package query

import (
	"context"
	"time"

	"github.com/edutrack-hub/edutrack/internal/domain/attendance"
	"github.com/edutrack-hub/edutrack/internal/domain/insights"
	"github.com/edutrack-hub/edutrack/internal/domain/shared"
	"github.com/edutrack-hub/edutrack/internal/domain/subject"
	"github.com/edutrack-hub/edutrack/internal/domain/task"
)

// ══════════════════════════════════════════════════════════════════════════════
// GET PRODUCTIVITY QUERY
// ══════════════════════════════════════════════════════════════════════════════

// GetProductivityQuery contains parameters for the productivity report.
type GetProductivityQuery struct {
	// Now anchors the trailing 30-day consistency window. Zero means the
	// current time.
	Now time.Time
}

// Validate normalizes the query parameters.
func (q *GetProductivityQuery) Validate() error {
	if q.Now.IsZero() {
		q.Now = time.Now().UTC()
	}
	return nil
}

// GetProductivityResult contains the computed metrics.
type GetProductivityResult struct {
	Metrics insights.ProductivityMetrics `json:"metrics"`

	// GeneratedAt is when the metrics were computed.
	GeneratedAt time.Time `json:"generatedAt"`
}

// GetProductivityHandler handles productivity metric queries.
type GetProductivityHandler struct {
	subjectRepo    subject.Repository
	attendanceRepo attendance.Repository
	taskRepo       task.Repository
	aggregator     *attendance.Aggregator
}

// NewGetProductivityHandler creates the handler.
func NewGetProductivityHandler(
	subjectRepo subject.Repository,
	attendanceRepo attendance.Repository,
	taskRepo task.Repository,
) *GetProductivityHandler {
	return &GetProductivityHandler{
		subjectRepo:    subjectRepo,
		attendanceRepo: attendanceRepo,
		taskRepo:       taskRepo,
		aggregator:     attendance.NewAggregator(),
	}
}

// Handle executes the query.
func (h *GetProductivityHandler) Handle(ctx context.Context, query GetProductivityQuery) (*GetProductivityResult, error) {
	if err := query.Validate(); err != nil {
		return nil, shared.WrapError("query", "GetProductivity", shared.ErrValidation, err.Error(), err)
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

	stats := h.aggregator.StatsBySubject(records, subjectIDs(subjects))

	return &GetProductivityResult{
		Metrics:     insights.CalculateProductivity(query.Now, subjects, stats, tasks),
		GeneratedAt: query.Now,
	}, nil
}
