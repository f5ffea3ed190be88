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
// GET RISK QUERY
// ══════════════════════════════════════════════════════════════════════════════

// GetRiskResult contains the computed risk assessment.
type GetRiskResult struct {
	Assessment insights.RiskAssessment `json:"assessment"`

	// GeneratedAt is when the assessment was computed.
	GeneratedAt time.Time `json:"generatedAt"`
}

// GetRiskHandler handles risk assessment queries.
type GetRiskHandler struct {
	subjectRepo    subject.Repository
	attendanceRepo attendance.Repository
	taskRepo       task.Repository
	aggregator     *attendance.Aggregator
}

// NewGetRiskHandler creates the handler.
func NewGetRiskHandler(
	subjectRepo subject.Repository,
	attendanceRepo attendance.Repository,
	taskRepo task.Repository,
) *GetRiskHandler {
	return &GetRiskHandler{
		subjectRepo:    subjectRepo,
		attendanceRepo: attendanceRepo,
		taskRepo:       taskRepo,
		aggregator:     attendance.NewAggregator(),
	}
}

// Handle executes the query.
func (h *GetRiskHandler) Handle(ctx context.Context) (*GetRiskResult, error) {
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

	return &GetRiskResult{
		Assessment:  insights.AssessRisk(subjects, stats, tasks),
		GeneratedAt: time.Now().UTC(),
	}, nil
}
