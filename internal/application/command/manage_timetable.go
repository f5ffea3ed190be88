package command

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/edutrack-hub/edutrack/internal/domain/shared"
	"github.com/edutrack-hub/edutrack/internal/domain/subject"
)

// ══════════════════════════════════════════════════════════════════════════════
// TIMETABLE COMMANDS
// ══════════════════════════════════════════════════════════════════════════════

// AddTimetableEntryCommand schedules a recurring weekly class.
type AddTimetableEntryCommand struct {
	SubjectID shared.ID

	// DayOfWeek is 0 = Sunday ... 6 = Saturday.
	DayOfWeek int

	// StartTime and EndTime are HH:MM wall-clock strings.
	StartTime string
	EndTime   string
}

// DeleteTimetableEntryCommand removes a scheduled class.
type DeleteTimetableEntryCommand struct {
	ID shared.ID
}

// TimetableHandler handles weekly timetable commands.
type TimetableHandler struct {
	timetableRepo subject.TimetableRepository
}

// NewTimetableHandler creates the handler.
func NewTimetableHandler(timetableRepo subject.TimetableRepository) *TimetableHandler {
	return &TimetableHandler{timetableRepo: timetableRepo}
}

// Add validates and stores a new timetable entry.
func (h *TimetableHandler) Add(ctx context.Context, cmd AddTimetableEntryCommand) (*subject.TimetableEntry, error) {
	if cmd.SubjectID.IsEmpty() {
		return nil, shared.NewDomainError("timetable", "Add", shared.ErrInvalidID, "subject id is required")
	}
	if cmd.DayOfWeek < 0 || cmd.DayOfWeek > 6 {
		return nil, shared.NewDomainError("timetable", "Add", shared.ErrValueOutOfRange, "day of week must be 0..6")
	}
	if !isClockTime(cmd.StartTime) || !isClockTime(cmd.EndTime) {
		return nil, shared.NewDomainError("timetable", "Add", shared.ErrInvalidFormat, "times must be HH:MM")
	}

	entry := subject.TimetableEntry{
		ID:        shared.ID(uuid.NewString()),
		SubjectID: cmd.SubjectID,
		DayOfWeek: cmd.DayOfWeek,
		StartTime: cmd.StartTime,
		EndTime:   cmd.EndTime,
	}
	if err := h.timetableRepo.Save(ctx, entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

// Delete removes the timetable entry.
func (h *TimetableHandler) Delete(ctx context.Context, cmd DeleteTimetableEntryCommand) error {
	if cmd.ID.IsEmpty() {
		return shared.NewDomainError("timetable", "Delete", shared.ErrInvalidID, "entry id is required")
	}
	return h.timetableRepo.Delete(ctx, cmd.ID)
}

func isClockTime(s string) bool {
	_, err := time.Parse("15:04", s)
	return err == nil
}
