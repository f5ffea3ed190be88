package query

import (
	"context"

	"github.com/edutrack-hub/edutrack/internal/domain/profile"
	"github.com/edutrack-hub/edutrack/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// GET PROFILE QUERY
// ══════════════════════════════════════════════════════════════════════════════

// GetProfileResult contains the profile and its display derivations.
type GetProfileResult struct {
	Profile *profile.UserProfile `json:"profile"`

	// Exists is false when no session has ever been recorded; Profile then
	// carries a fresh zero-valued profile for display.
	Exists bool `json:"exists"`

	// ProgressToNextLevel is the percentage through the current level.
	ProgressToNextLevel shared.Percentage `json:"progressToNextLevel"`

	// Badges describes every unlockable badge with its unlocked state.
	Badges []BadgeStateDTO `json:"badges"`
}

// BadgeStateDTO is one badge definition plus whether it is unlocked.
type BadgeStateDTO struct {
	Badge       profile.Badge `json:"badge"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Unlocked    bool          `json:"unlocked"`
}

// GetProfileHandler handles profile queries.
type GetProfileHandler struct {
	profileRepo profile.Repository
}

// NewGetProfileHandler creates the handler.
func NewGetProfileHandler(profileRepo profile.Repository) *GetProfileHandler {
	return &GetProfileHandler{profileRepo: profileRepo}
}

// Handle executes the query. A missing profile is not an error: the result
// carries a fresh profile with Exists set to false.
func (h *GetProfileHandler) Handle(ctx context.Context) (*GetProfileResult, error) {
	p, err := h.profileRepo.Get(ctx)
	exists := true
	if err != nil {
		if !shared.IsNotFound(err) {
			return nil, err
		}
		p = profile.NewUserProfile("")
		exists = false
	}

	badges := make([]BadgeStateDTO, 0, len(profile.BadgeDefinitions()))
	for _, def := range profile.BadgeDefinitions() {
		badges = append(badges, BadgeStateDTO{
			Badge:       def.Badge,
			Name:        def.Name,
			Description: def.Description,
			Unlocked:    p.HasBadge(def.Badge),
		})
	}

	return &GetProfileResult{
		Profile:             p,
		Exists:              exists,
		ProgressToNextLevel: p.XP.ProgressToNextLevel(),
		Badges:              badges,
	}, nil
}
