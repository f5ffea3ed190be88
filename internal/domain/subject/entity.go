// Package subject contains the subject domain model: the courses a student
// tracks, their optional exam dates, and the weekly timetable built on them.
// This is the core of the data model - every other record references a subject.
package subject

import (
	"strings"
	"time"

	"github.com/edutrack-hub/edutrack/internal/domain/shared"
)

// Subject represents a course the student is enrolled in.
type Subject struct {
	// ID is the unique subject identifier.
	ID shared.ID `json:"id"`

	// Name is the display name, e.g. "Mathematics".
	Name string `json:"name"`

	// Color is the UI accent color for this subject (hex string).
	Color string `json:"color"`

	// ExamDate is the next exam date, if one is scheduled.
	ExamDate *time.Time `json:"examDate,omitempty"`

	// CreatedAt is when the subject was added.
	CreatedAt time.Time `json:"createdAt"`
}

// HasExam reports whether an exam date is set.
func (s *Subject) HasExam() bool {
	return s.ExamDate != nil && !s.ExamDate.IsZero()
}

// DaysUntilExam returns whole days until the exam relative to now.
// Returns false when no exam is scheduled.
func (s *Subject) DaysUntilExam(now time.Time) (int, bool) {
	if !s.HasExam() {
		return 0, false
	}
	from := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	to := time.Date(s.ExamDate.Year(), s.ExamDate.Month(), s.ExamDate.Day(), 0, 0, 0, 0, s.ExamDate.Location())
	return int(to.Sub(from).Hours() / 24), true
}

// NewSubjectParams contains parameters for creating a subject.
type NewSubjectParams struct {
	ID       shared.ID
	Name     string
	Color    string
	ExamDate *time.Time
}

// NewSubject creates a new subject with validation.
func NewSubject(params NewSubjectParams) (*Subject, error) {
	if params.ID.IsEmpty() {
		return nil, shared.NewDomainError("subject", "Create", shared.ErrInvalidID, "subject id is required")
	}

	name := strings.TrimSpace(params.Name)
	if name == "" {
		return nil, shared.ErrInvalidSubjectName
	}

	return &Subject{
		ID:        params.ID,
		Name:      name,
		Color:     params.Color,
		ExamDate:  params.ExamDate,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// ByID builds a lookup map from a subject collection. Consumers use it to
// resolve references from tasks, topics, and attendance; a miss means the
// subject was deleted and the referencing record is filtered out.
func ByID(subjects []*Subject) map[shared.ID]*Subject {
	index := make(map[shared.ID]*Subject, len(subjects))
	for _, s := range subjects {
		index[s.ID] = s
	}
	return index
}

// TimetableEntry represents one scheduled class in the weekly timetable.
type TimetableEntry struct {
	// ID is the unique entry identifier.
	ID shared.ID `json:"id"`

	// SubjectID references the subject being taught.
	SubjectID shared.ID `json:"subjectId"`

	// DayOfWeek is the weekday of the class (0 = Sunday ... 6 = Saturday).
	DayOfWeek int `json:"dayOfWeek"`

	// StartTime is the class start in HH:MM.
	StartTime string `json:"startTime"`

	// EndTime is the class end in HH:MM.
	EndTime string `json:"endTime"`
}

// IsValid checks the timetable entry invariants.
func (e TimetableEntry) IsValid() bool {
	return !e.ID.IsEmpty() && !e.SubjectID.IsEmpty() && e.DayOfWeek >= 0 && e.DayOfWeek <= 6
}
