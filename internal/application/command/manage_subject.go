// Package command contains write operations (CQRS - Commands). Every handler
// validates its input, mutates exactly one aggregate through its repository,
// and returns the updated entity. IDs are generated here, never in the domain.
package command

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/edutrack-hub/edutrack/internal/domain/shared"
	"github.com/edutrack-hub/edutrack/internal/domain/subject"
)

// ══════════════════════════════════════════════════════════════════════════════
// SUBJECT COMMANDS
// ══════════════════════════════════════════════════════════════════════════════

// CreateSubjectCommand contains parameters for creating a subject.
type CreateSubjectCommand struct {
	// Name is the subject display name. Required.
	Name string

	// Color is the UI accent color (hex string). Optional.
	Color string

	// ExamDate is the next exam date. Optional.
	ExamDate *time.Time
}

// UpdateSubjectCommand contains parameters for updating a subject.
// Zero-valued fields keep the current value; ClearExamDate removes the exam.
type UpdateSubjectCommand struct {
	ID shared.ID

	Name          string
	Color         string
	ExamDate      *time.Time
	ClearExamDate bool
}

// DeleteSubjectCommand removes a subject. Records referencing it are left in
// place; consumers filter dangling references.
type DeleteSubjectCommand struct {
	ID shared.ID
}

// SubjectHandler handles subject lifecycle commands.
type SubjectHandler struct {
	subjectRepo subject.Repository
}

// NewSubjectHandler creates the handler.
func NewSubjectHandler(subjectRepo subject.Repository) *SubjectHandler {
	return &SubjectHandler{subjectRepo: subjectRepo}
}

// Create validates and stores a new subject.
func (h *SubjectHandler) Create(ctx context.Context, cmd CreateSubjectCommand) (*subject.Subject, error) {
	s, err := subject.NewSubject(subject.NewSubjectParams{
		ID:       shared.ID(uuid.NewString()),
		Name:     cmd.Name,
		Color:    cmd.Color,
		ExamDate: cmd.ExamDate,
	})
	if err != nil {
		return nil, err
	}
	if err := h.subjectRepo.Save(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}

// Update applies the non-zero fields of the command to an existing subject.
func (h *SubjectHandler) Update(ctx context.Context, cmd UpdateSubjectCommand) (*subject.Subject, error) {
	s, err := h.subjectRepo.GetByID(ctx, cmd.ID)
	if err != nil {
		return nil, err
	}

	if name := strings.TrimSpace(cmd.Name); name != "" {
		s.Name = name
	}
	if cmd.Color != "" {
		s.Color = cmd.Color
	}
	if cmd.ClearExamDate {
		s.ExamDate = nil
	} else if cmd.ExamDate != nil {
		s.ExamDate = cmd.ExamDate
	}

	if err := h.subjectRepo.Save(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}

// Delete removes the subject.
func (h *SubjectHandler) Delete(ctx context.Context, cmd DeleteSubjectCommand) error {
	if cmd.ID.IsEmpty() {
		return shared.NewDomainError("subject", "Delete", shared.ErrInvalidID, "subject id is required")
	}
	return h.subjectRepo.Delete(ctx, cmd.ID)
}
