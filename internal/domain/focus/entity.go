// Package focus contains the focus session domain model. A FocusLog is an
// append-only record written when a timed study session completes; the
// profile's XP and streak are derived from these records.
package focus

import (
	"time"

	"github.com/edutrack-hub/edutrack/internal/domain/shared"
)

// FocusLog records one completed focus session.
type FocusLog struct {
	// Date is when the session completed.
	Date time.Time `json:"date"`

	// DurationMinutes is the session length in minutes.
	DurationMinutes int `json:"durationMinutes"`

	// SubjectID references the subject studied. May dangle after subject
	// deletion; consumers filter unresolved refs.
	SubjectID shared.ID `json:"subjectId"`
}

// NewFocusLog creates a focus log with validation.
func NewFocusLog(date time.Time, durationMinutes int, subjectID shared.ID) (*FocusLog, error) {
	if durationMinutes <= 0 {
		return nil, shared.ErrInvalidFocusDuration
	}
	return &FocusLog{
		Date:            date,
		DurationMinutes: durationMinutes,
		SubjectID:       subjectID,
	}, nil
}

// TotalMinutes sums session minutes across a collection.
func TotalMinutes(logs []*FocusLog) int {
	total := 0
	for _, l := range logs {
		total += l.DurationMinutes
	}
	return total
}

// MinutesBySubject aggregates session minutes per subject id.
func MinutesBySubject(logs []*FocusLog) map[shared.ID]int {
	out := make(map[shared.ID]int)
	for _, l := range logs {
		out[l.SubjectID] += l.DurationMinutes
	}
	return out
}
