package command

import (
	"context"
	"errors"
	"time"

	"github.com/edutrack-hub/edutrack/internal/domain/attendance"
	"github.com/edutrack-hub/edutrack/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// ATTENDANCE COMMANDS
// ══════════════════════════════════════════════════════════════════════════════

// MarkAttendanceCommand records a status for one subject on one day.
// Marking StatusNone clears the entry (the class is removed from the day).
type MarkAttendanceCommand struct {
	Date      time.Time
	SubjectID shared.ID
	Status    attendance.Status
}

// AddExtraClassCommand appends an unscheduled class to a day record.
type AddExtraClassCommand struct {
	Date   time.Time
	Status attendance.Status
}

// AttendanceHandler handles attendance mutation commands. The day record is
// fetched (or created) and mutated in place; there is at most one record per
// calendar day.
type AttendanceHandler struct {
	attendanceRepo attendance.Repository
}

// NewAttendanceHandler creates the handler.
func NewAttendanceHandler(attendanceRepo attendance.Repository) *AttendanceHandler {
	return &AttendanceHandler{attendanceRepo: attendanceRepo}
}

// Mark records the status and returns the updated day record.
func (h *AttendanceHandler) Mark(ctx context.Context, cmd MarkAttendanceCommand) (*attendance.DailyAttendance, error) {
	if cmd.Date.IsZero() {
		return nil, shared.ErrInvalidAttendanceDate
	}
	if cmd.SubjectID.IsEmpty() {
		return nil, shared.NewDomainError("attendance", "Mark", shared.ErrInvalidID, "subject id is required")
	}

	record, err := h.dayRecord(ctx, cmd.Date)
	if err != nil {
		return nil, err
	}
	if err := record.Mark(cmd.SubjectID, cmd.Status); err != nil {
		return nil, err
	}
	if err := h.attendanceRepo.Save(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

// AddExtraClass appends an unscheduled class and returns the updated record.
func (h *AttendanceHandler) AddExtraClass(ctx context.Context, cmd AddExtraClassCommand) (*attendance.DailyAttendance, error) {
	if cmd.Date.IsZero() {
		return nil, shared.ErrInvalidAttendanceDate
	}

	record, err := h.dayRecord(ctx, cmd.Date)
	if err != nil {
		return nil, err
	}
	if err := record.AddExtraClass(cmd.Status); err != nil {
		return nil, err
	}
	if err := h.attendanceRepo.Save(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

// dayRecord fetches the record for the day, creating an empty one if the day
// has not been touched yet.
func (h *AttendanceHandler) dayRecord(ctx context.Context, date time.Time) (*attendance.DailyAttendance, error) {
	record, err := h.attendanceRepo.GetByDate(ctx, date)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return attendance.NewDailyAttendance(date), nil
		}
		return nil, err
	}
	return record, nil
}
