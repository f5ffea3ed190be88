package profile

import (
	"context"
)

// Repository defines the storage contract for the single user profile.
type Repository interface {
	// Get returns the profile.
	// Returns shared.ErrProfileNotFound when none has been created yet.
	Get(ctx context.Context) (*UserProfile, error)

	// Save creates or replaces the profile (last write wins).
	Save(ctx context.Context, p *UserProfile) error
}
