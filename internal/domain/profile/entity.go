// Package profile contains the user profile domain model: display name,
// experience points earned from focus sessions, the derived level, the
// consecutive-day study streak, and unlocked badges.
package profile

import (
	"time"

	"github.com/edutrack-hub/edutrack/internal/domain/shared"
)

// ═══════════════════════════════════════════════════════════════════════════
// XP & LEVEL
// ═══════════════════════════════════════════════════════════════════════════

// XP represents experience points. XP only ever increases: it is earned from
// completed focus sessions and never deducted.
type XP int

// XPPerLevel is the flat level threshold: every 1000 XP is one level.
const XPPerLevel = 1000

// IsValid checks that the XP value is non-negative.
func (x XP) IsValid() bool {
	return x >= 0
}

// Int returns the underlying int value.
func (x XP) Int() int {
	return int(x)
}

// Level represents the student's level, derived from XP.
type Level int

// LevelForXP computes the level for an XP total.
func LevelForXP(xp XP) Level {
	if xp < 0 {
		return 0
	}
	return Level(int(xp) / XPPerLevel)
}

// ProgressToNextLevel returns percentage progress within the current level.
func (x XP) ProgressToNextLevel() shared.Percentage {
	if x < 0 {
		return 0
	}
	return shared.Ratio(int(x)%XPPerLevel, XPPerLevel)
}

// ═══════════════════════════════════════════════════════════════════════════
// BADGES
// ═══════════════════════════════════════════════════════════════════════════

// Badge identifies an unlockable achievement badge.
type Badge string

const (
	// BadgeFirstSession - completed the first focus session.
	BadgeFirstSession Badge = "first_session"
	// BadgeStreak7 - studied 7 days in a row.
	BadgeStreak7 Badge = "streak_7"
	// BadgeStreak30 - studied 30 days in a row.
	BadgeStreak30 Badge = "streak_30"
	// BadgeLevel5 - reached level 5.
	BadgeLevel5 Badge = "level_5"
	// BadgeLevel10 - reached level 10.
	BadgeLevel10 Badge = "level_10"
	// BadgeXP10K - earned 10000 total XP.
	BadgeXP10K Badge = "xp_10k"
)

// BadgeDefinition describes a badge for display.
type BadgeDefinition struct {
	Badge       Badge
	Name        string
	Description string
}

// BadgeDefinitions returns all badge definitions in display order.
func BadgeDefinitions() []BadgeDefinition {
	return []BadgeDefinition{
		{BadgeFirstSession, "First Focus", "Completed the first focus session"},
		{BadgeStreak7, "Week of Fire", "Studied 7 days in a row"},
		{BadgeStreak30, "Iron Will", "Studied 30 days in a row"},
		{BadgeLevel5, "Apprentice", "Reached level 5"},
		{BadgeLevel10, "Scholar", "Reached level 10"},
		{BadgeXP10K, "Ten Thousand", "Earned 10000 XP"},
	}
}

// ═══════════════════════════════════════════════════════════════════════════
// USER PROFILE
// ═══════════════════════════════════════════════════════════════════════════

// UserProfile is the single student profile of the application.
type UserProfile struct {
	// Name is the display name.
	Name string `json:"name"`

	// XP is the total experience, monotonically increasing.
	XP XP `json:"xp"`

	// Level is derived from XP (1000 XP per level) and stored for display.
	Level Level `json:"level"`

	// CurrentStreak is the consecutive-day study streak.
	CurrentStreak int `json:"currentStreak"`

	// LastStudiedAt is the day of the most recent focus session,
	// used to continue or reset the streak.
	LastStudiedAt time.Time `json:"lastStudiedAt"`

	// Badges is the set of unlocked badge ids.
	Badges []Badge `json:"badges"`

	// LastStudiedSubjectID is the subject of the most recent focus session.
	LastStudiedSubjectID shared.ID `json:"lastStudiedSubjectId"`
}

// NewUserProfile creates a fresh profile.
func NewUserProfile(name string) *UserProfile {
	return &UserProfile{
		Name:   name,
		XP:     0,
		Level:  0,
		Badges: []Badge{},
	}
}

// HasBadge checks whether a badge is already unlocked.
func (p *UserProfile) HasBadge(b Badge) bool {
	for _, have := range p.Badges {
		if have == b {
			return true
		}
	}
	return false
}

// unlock adds a badge if not already present and reports whether it was new.
func (p *UserProfile) unlock(b Badge) bool {
	if p.HasBadge(b) {
		return false
	}
	p.Badges = append(p.Badges, b)
	return true
}

// RecordFocusSession applies a completed focus session to the profile:
// adds XP (1 XP per minute), recomputes the level, advances or resets the
// streak, remembers the subject, and unlocks any newly earned badges.
// Returns the badges unlocked by this session.
func (p *UserProfile) RecordFocusSession(at time.Time, durationMinutes int, subjectID shared.ID) ([]Badge, error) {
	if durationMinutes <= 0 {
		return nil, shared.ErrInvalidFocusDuration
	}

	firstEver := p.LastStudiedAt.IsZero()
	p.XP += XP(durationMinutes)
	p.Level = LevelForXP(p.XP)
	p.LastStudiedSubjectID = subjectID
	p.advanceStreak(at)

	var unlocked []Badge
	checks := []struct {
		badge Badge
		earn  bool
	}{
		{BadgeFirstSession, firstEver},
		{BadgeStreak7, p.CurrentStreak >= 7},
		{BadgeStreak30, p.CurrentStreak >= 30},
		{BadgeLevel5, p.Level >= 5},
		{BadgeLevel10, p.Level >= 10},
		{BadgeXP10K, p.XP >= 10000},
	}
	for _, c := range checks {
		if c.earn && p.unlock(c.badge) {
			unlocked = append(unlocked, c.badge)
		}
	}
	return unlocked, nil
}

// advanceStreak continues, keeps, or resets the consecutive-day streak
// depending on the gap since the last studied day.
func (p *UserProfile) advanceStreak(at time.Time) {
	day := time.Date(at.Year(), at.Month(), at.Day(), 0, 0, 0, 0, time.UTC)

	if p.LastStudiedAt.IsZero() {
		p.CurrentStreak = 1
		p.LastStudiedAt = day
		return
	}

	last := time.Date(p.LastStudiedAt.Year(), p.LastStudiedAt.Month(), p.LastStudiedAt.Day(), 0, 0, 0, 0, time.UTC)
	switch int(day.Sub(last).Hours() / 24) {
	case 0:
		// Same day - streak unchanged.
	case 1:
		p.CurrentStreak++
		p.LastStudiedAt = day
	default:
		p.CurrentStreak = 1
		p.LastStudiedAt = day
	}
}
