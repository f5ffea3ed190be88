package command

import (
	"context"
	"time"

	"github.com/edutrack-hub/edutrack/internal/domain/focus"
	"github.com/edutrack-hub/edutrack/internal/domain/profile"
	"github.com/edutrack-hub/edutrack/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// RECORD FOCUS SESSION COMMAND
// ══════════════════════════════════════════════════════════════════════════════

// DefaultProfileName is used when a focus session arrives before the user
// ever named their profile.
const DefaultProfileName = "Student"

// RecordFocusSessionCommand records one completed focus session.
type RecordFocusSessionCommand struct {
	// At is when the session finished. Zero means the current time.
	At time.Time

	// DurationMinutes is the session length. Must be positive.
	DurationMinutes int

	// SubjectID is the subject studied. Optional.
	SubjectID shared.ID
}

// RecordFocusSessionResult reports the profile after the session.
type RecordFocusSessionResult struct {
	// Log is the appended focus log entry.
	Log *focus.FocusLog `json:"log"`

	// Profile is the updated profile.
	Profile *profile.UserProfile `json:"profile"`

	// UnlockedBadges lists badges earned by this session, in unlock order.
	UnlockedBadges []profile.Badge `json:"unlockedBadges,omitempty"`
}

// FocusHandler handles focus session commands. A session touches two
// aggregates: the append-only focus log and the profile (XP, level, streak,
// badges).
type FocusHandler struct {
	focusRepo   focus.Repository
	profileRepo profile.Repository
}

// NewFocusHandler creates the handler.
func NewFocusHandler(focusRepo focus.Repository, profileRepo profile.Repository) *FocusHandler {
	return &FocusHandler{
		focusRepo:   focusRepo,
		profileRepo: profileRepo,
	}
}

// Record appends the session to the log and applies it to the profile.
// A missing profile is created on first use.
func (h *FocusHandler) Record(ctx context.Context, cmd RecordFocusSessionCommand) (*RecordFocusSessionResult, error) {
	at := cmd.At
	if at.IsZero() {
		at = time.Now().UTC()
	}

	log, err := focus.NewFocusLog(at, cmd.DurationMinutes, cmd.SubjectID)
	if err != nil {
		return nil, err
	}

	p, err := h.profileRepo.Get(ctx)
	if err != nil {
		if !shared.IsNotFound(err) {
			return nil, err
		}
		p = profile.NewUserProfile(DefaultProfileName)
	}

	unlocked, err := p.RecordFocusSession(at, cmd.DurationMinutes, cmd.SubjectID)
	if err != nil {
		return nil, err
	}

	if err := h.focusRepo.Append(ctx, log); err != nil {
		return nil, err
	}
	if err := h.profileRepo.Save(ctx, p); err != nil {
		return nil, err
	}

	return &RecordFocusSessionResult{
		Log:            log,
		Profile:        p,
		UnlockedBadges: unlocked,
	}, nil
}
