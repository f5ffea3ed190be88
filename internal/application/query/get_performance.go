package query

import (
	"context"
	"time"

	"github.com/edutrack-hub/edutrack/internal/domain/attendance"
	"github.com/edutrack-hub/edutrack/internal/domain/insights"
	"github.com/edutrack-hub/edutrack/internal/domain/subject"
	"github.com/edutrack-hub/edutrack/internal/domain/task"
)

// ══════════════════════════════════════════════════════════════════════════════
// GET PERFORMANCE QUERY
// ══════════════════════════════════════════════════════════════════════════════

// GetPerformanceResult contains the computed performance index.
type GetPerformanceResult struct {
	Index insights.PerformanceIndex `json:"index"`

	// GeneratedAt is when the index was computed.
	GeneratedAt time.Time `json:"generatedAt"`
}

// GetPerformanceHandler handles performance index queries.
type GetPerformanceHandler struct {
	subjectRepo    subject.Repository
	attendanceRepo attendance.Repository
	taskRepo       task.Repository
	aggregator     *attendance.Aggregator
}

// NewGetPerformanceHandler creates the handler.
func NewGetPerformanceHandler(
	subjectRepo subject.Repository,
	attendanceRepo attendance.Repository,
	taskRepo task.Repository,
) *GetPerformanceHandler {
	return &GetPerformanceHandler{
		subjectRepo:    subjectRepo,
		attendanceRepo: attendanceRepo,
		taskRepo:       taskRepo,
		aggregator:     attendance.NewAggregator(),
	}
}

// Handle executes the query.
func (h *GetPerformanceHandler) Handle(ctx context.Context) (*GetPerformanceResult, error) {
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

	return &GetPerformanceResult{
		Index:       insights.CalculatePerformanceIndex(subjects, stats, tasks),
		GeneratedAt: time.Now().UTC(),
	}, nil
}
