package query

import (
	"context"
	"sort"
	"time"

	"github.com/edutrack-hub/edutrack/internal/domain/subject"
)

// ══════════════════════════════════════════════════════════════════════════════
// GET TIMETABLE QUERY
// ══════════════════════════════════════════════════════════════════════════════

// TimetableEntryDTO is a timetable entry enriched with its subject name.
type TimetableEntryDTO struct {
	subject.TimetableEntry

	// SubjectName is resolved for display. Empty if the subject was deleted.
	SubjectName string `json:"subjectName"`
}

// GetTimetableResult contains the weekly schedule grouped by day.
type GetTimetableResult struct {
	// Days maps the weekday (0 = Sunday ... 6 = Saturday) to its classes,
	// sorted by start time.
	Days map[int][]TimetableEntryDTO `json:"days"`

	GeneratedAt time.Time `json:"generatedAt"`
}

// GetTimetableHandler handles timetable queries.
type GetTimetableHandler struct {
	subjectRepo   subject.Repository
	timetableRepo subject.TimetableRepository
}

// NewGetTimetableHandler creates the handler.
func NewGetTimetableHandler(
	subjectRepo subject.Repository,
	timetableRepo subject.TimetableRepository,
) *GetTimetableHandler {
	return &GetTimetableHandler{
		subjectRepo:   subjectRepo,
		timetableRepo: timetableRepo,
	}
}

// Handle executes the query.
func (h *GetTimetableHandler) Handle(ctx context.Context) (*GetTimetableResult, error) {
	subjects, err := h.subjectRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	entries, err := h.timetableRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	index := subject.ByID(subjects)
	days := make(map[int][]TimetableEntryDTO)
	for _, e := range entries {
		dto := TimetableEntryDTO{TimetableEntry: e}
		if s, ok := index[e.SubjectID]; ok {
			dto.SubjectName = s.Name
		}
		days[e.DayOfWeek] = append(days[e.DayOfWeek], dto)
	}

	for day := range days {
		classes := days[day]
		sort.SliceStable(classes, func(i, j int) bool {
			return classes[i].StartTime < classes[j].StartTime
		})
		days[day] = classes
	}

	return &GetTimetableResult{
		Days:        days,
		GeneratedAt: time.Now().UTC(),
	}, nil
}
