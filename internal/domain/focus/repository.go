package focus

import (
	"context"
)

// Repository defines the storage contract for focus logs.
// The log is append-only: sessions are recorded once and never edited.
type Repository interface {
	// List returns all focus logs in append order.
	List(ctx context.Context) ([]*FocusLog, error)

	// Append adds a completed session to the log.
	Append(ctx context.Context, log *FocusLog) error
}
