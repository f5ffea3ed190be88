package attendance

import (
	"context"
	"time"
)

// Repository defines the storage contract for daily attendance records.
// The aggregator only ever reads; writes go through the mark-attendance
// command. Implementations live in infrastructure/persistence.
type Repository interface {
	// List returns all day records in chronological insertion order.
	List(ctx context.Context) ([]*DailyAttendance, error)

	// GetByDate returns the record for a calendar day.
	// Returns shared.ErrAttendanceNotFound when no record exists for the day.
	GetByDate(ctx context.Context, date time.Time) (*DailyAttendance, error)

	// Save creates or replaces the record for its day (last write wins).
	Save(ctx context.Context, record *DailyAttendance) error
}
