// Package attendance contains the daily attendance domain model and the
// aggregation logic that turns raw day records into per-subject and overall
// present/total/percentage statistics.
package attendance

import (
	"time"

	"github.com/edutrack-hub/edutrack/internal/domain/shared"
)

// ═══════════════════════════════════════════════════════════════════════════
// STATUS
// ═══════════════════════════════════════════════════════════════════════════

// Status is the attendance state of one subject on one day.
type Status string

const (
	// StatusPresent - the student attended the class.
	StatusPresent Status = "present"
	// StatusAbsent - the class happened, the student missed it.
	StatusAbsent Status = "absent"
	// StatusCancelled - the class was cancelled but still counts as scheduled.
	StatusCancelled Status = "cancelled"
	// StatusNone - no class for this subject that day. Contributes to neither
	// present nor total.
	StatusNone Status = ""
)

// IsValid checks that the status is one of the known values.
func (s Status) IsValid() bool {
	switch s {
	case StatusPresent, StatusAbsent, StatusCancelled, StatusNone:
		return true
	default:
		return false
	}
}

// Counts reports whether the status contributes to the scheduled total.
// Absent and cancelled classes still count toward total; only an unset
// status means "no class".
func (s Status) Counts() bool {
	return s != StatusNone
}

// ═══════════════════════════════════════════════════════════════════════════
// STATUS MAP
// ═══════════════════════════════════════════════════════════════════════════

// StatusMap maps subject ids to their attendance status for one day.
// Absent keys default to StatusNone ("no class"), so lookups never need an
// existence check.
type StatusMap map[shared.ID]Status

// Get returns the status for a subject, defaulting to StatusNone.
func (m StatusMap) Get(subjectID shared.ID) Status {
	return m[subjectID]
}

// Set records a status for a subject. Setting StatusNone removes the entry.
func (m StatusMap) Set(subjectID shared.ID, status Status) {
	if status == StatusNone {
		delete(m, subjectID)
		return
	}
	m[subjectID] = status
}

// ═══════════════════════════════════════════════════════════════════════════
// DAILY RECORD
// ═══════════════════════════════════════════════════════════════════════════

// ExtraClass is an unscheduled class appended to a day record.
type ExtraClass struct {
	Status Status `json:"status"`
}

// DailyAttendance is the attendance record for one calendar day.
// There is at most one record per day; marking attendance mutates the record
// in place. Records are never deleted except by a full data clear.
type DailyAttendance struct {
	// Date is the calendar day, normalized to midnight.
	Date time.Time `json:"date"`

	// Subjects maps subject ids to their status for this day.
	Subjects StatusMap `json:"subjects"`

	// ExtraClasses are unscheduled classes attended this day.
	ExtraClasses []ExtraClass `json:"extraClasses,omitempty"`
}

// NewDailyAttendance creates an empty record for the given day.
func NewDailyAttendance(date time.Time) *DailyAttendance {
	return &DailyAttendance{
		Date:     time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location()),
		Subjects: make(StatusMap),
	}
}

// Mark sets the status for a subject on this day.
func (d *DailyAttendance) Mark(subjectID shared.ID, status Status) error {
	if !status.IsValid() {
		return shared.ErrInvalidAttendanceStatus
	}
	if d.Subjects == nil {
		d.Subjects = make(StatusMap)
	}
	d.Subjects.Set(subjectID, status)
	return nil
}

// AddExtraClass appends an unscheduled class to this day.
func (d *DailyAttendance) AddExtraClass(status Status) error {
	if !status.IsValid() || status == StatusNone {
		return shared.ErrInvalidAttendanceStatus
	}
	d.ExtraClasses = append(d.ExtraClasses, ExtraClass{Status: status})
	return nil
}
