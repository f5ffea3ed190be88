package query

import (
	"context"
	"time"

	"github.com/edutrack-hub/edutrack/internal/domain/attendance"
	"github.com/edutrack-hub/edutrack/internal/domain/shared"
	"github.com/edutrack-hub/edutrack/internal/domain/subject"
)

// ══════════════════════════════════════════════════════════════════════════════
// GET ATTENDANCE SUMMARY QUERY
// ══════════════════════════════════════════════════════════════════════════════

// SubjectAttendanceDTO is one subject's aggregated attendance.
type SubjectAttendanceDTO struct {
	SubjectID  shared.ID         `json:"subjectId"`
	Name       string            `json:"name"`
	Color      string            `json:"color,omitempty"`
	Present    int               `json:"present"`
	Total      int               `json:"total"`
	Percentage shared.Percentage `json:"percentage"`
}

// GetAttendanceSummaryResult contains per-subject and overall stats.
type GetAttendanceSummaryResult struct {
	// BySubject follows subject store order.
	BySubject []SubjectAttendanceDTO `json:"bySubject"`

	// Overall aggregates every scheduled entry plus extra classes.
	Overall attendance.SubjectStats `json:"overall"`

	// GeneratedAt is when the summary was computed.
	GeneratedAt time.Time `json:"generatedAt"`
}

// GetAttendanceSummaryHandler handles attendance summary queries.
type GetAttendanceSummaryHandler struct {
	subjectRepo    subject.Repository
	attendanceRepo attendance.Repository
	aggregator     *attendance.Aggregator
}

// NewGetAttendanceSummaryHandler creates the handler.
func NewGetAttendanceSummaryHandler(
	subjectRepo subject.Repository,
	attendanceRepo attendance.Repository,
) *GetAttendanceSummaryHandler {
	return &GetAttendanceSummaryHandler{
		subjectRepo:    subjectRepo,
		attendanceRepo: attendanceRepo,
		aggregator:     attendance.NewAggregator(),
	}
}

// Handle executes the query.
func (h *GetAttendanceSummaryHandler) Handle(ctx context.Context) (*GetAttendanceSummaryResult, error) {
	subjects, err := h.subjectRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	records, err := h.attendanceRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	bySubject := make([]SubjectAttendanceDTO, 0, len(subjects))
	for _, s := range subjects {
		stats := h.aggregator.SubjectStats(records, s.ID)
		bySubject = append(bySubject, SubjectAttendanceDTO{
			SubjectID:  s.ID,
			Name:       s.Name,
			Color:      s.Color,
			Present:    stats.Present,
			Total:      stats.Total,
			Percentage: stats.Percentage,
		})
	}

	return &GetAttendanceSummaryResult{
		BySubject:   bySubject,
		Overall:     h.aggregator.OverallStats(records),
		GeneratedAt: time.Now().UTC(),
	}, nil
}
