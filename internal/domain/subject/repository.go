package subject

import (
	"context"

	"github.com/edutrack-hub/edutrack/internal/domain/shared"
)

// Repository defines the storage contract for subjects.
// The core reads collections and resolves by id; writes happen only through
// explicit commands from the interface layer. Implementations live in
// infrastructure/persistence.
type Repository interface {
	// List returns all subjects in insertion order.
	List(ctx context.Context) ([]*Subject, error)

	// GetByID returns a subject by id.
	// Returns shared.ErrSubjectNotFound if the subject does not exist.
	GetByID(ctx context.Context, id shared.ID) (*Subject, error)

	// Save creates or replaces a subject (last write wins).
	Save(ctx context.Context, s *Subject) error

	// Delete removes a subject. References from other records are not
	// cascaded; consumers tolerate dangling ids.
	Delete(ctx context.Context, id shared.ID) error
}

// TimetableRepository defines the storage contract for timetable entries.
type TimetableRepository interface {
	// List returns all timetable entries.
	List(ctx context.Context) ([]TimetableEntry, error)

	// Save creates or replaces a timetable entry.
	Save(ctx context.Context, e TimetableEntry) error

	// Delete removes a timetable entry.
	Delete(ctx context.Context, id shared.ID) error
}
