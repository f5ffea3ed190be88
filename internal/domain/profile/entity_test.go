package profile

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/edutrack-hub/edutrack/internal/domain/shared"
)

func TestLevelForXP(t *testing.T) {
	tests := []struct {
		xp   XP
		want Level
	}{
		{0, 0},
		{999, 0},
		{1000, 1},
		{4999, 4},
		{5000, 5},
		{-10, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, LevelForXP(tt.xp), "xp=%d", tt.xp)
	}
}

func TestUserProfile_RecordFocusSession(t *testing.T) {
	p := NewUserProfile("Sahil")
	sub := shared.ID("sub-math")
	day1 := time.Date(2026, 3, 2, 18, 30, 0, 0, time.UTC)

	unlocked, err := p.RecordFocusSession(day1, 25, sub)
	assert.NoError(t, err)
	assert.Equal(t, XP(25), p.XP)
	assert.Equal(t, Level(0), p.Level)
	assert.Equal(t, 1, p.CurrentStreak)
	assert.Equal(t, sub, p.LastStudiedSubjectID)
	assert.Equal(t, []Badge{BadgeFirstSession}, unlocked)

	// Second session the same day does not advance the streak.
	_, err = p.RecordFocusSession(day1.Add(2*time.Hour), 30, sub)
	assert.NoError(t, err)
	assert.Equal(t, XP(55), p.XP)
	assert.Equal(t, 1, p.CurrentStreak)

	// Next day continues the streak.
	_, err = p.RecordFocusSession(day1.AddDate(0, 0, 1), 20, sub)
	assert.NoError(t, err)
	assert.Equal(t, 2, p.CurrentStreak)

	// A gap resets it to 1.
	_, err = p.RecordFocusSession(day1.AddDate(0, 0, 5), 20, sub)
	assert.NoError(t, err)
	assert.Equal(t, 1, p.CurrentStreak)

	assert.Error(t, func() error { _, err := p.RecordFocusSession(day1, 0, sub); return err }())
}

func TestUserProfile_StreakBadges(t *testing.T) {
	p := NewUserProfile("Sahil")
	sub := shared.ID("sub-math")
	start := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	var all []Badge
	for i := 0; i < 7; i++ {
		unlocked, err := p.RecordFocusSession(start.AddDate(0, 0, i), 10, sub)
		assert.NoError(t, err)
		all = append(all, unlocked...)
	}

	assert.Equal(t, 7, p.CurrentStreak)
	assert.Contains(t, all, BadgeFirstSession)
	assert.Contains(t, all, BadgeStreak7)
	assert.True(t, p.HasBadge(BadgeStreak7))

	// Badges unlock once.
	unlocked, err := p.RecordFocusSession(start.AddDate(0, 0, 7), 10, sub)
	assert.NoError(t, err)
	assert.NotContains(t, unlocked, BadgeStreak7)
}

func TestUserProfile_XPIsMonotonic(t *testing.T) {
	p := NewUserProfile("Sahil")
	sub := shared.ID("sub-math")
	at := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	previous := p.XP
	for i := 0; i < 50; i++ {
		_, err := p.RecordFocusSession(at.AddDate(0, 0, i), 45, sub)
		assert.NoError(t, err)
		assert.GreaterOrEqual(t, p.XP, previous)
		previous = p.XP
	}
	assert.Equal(t, Level(2), p.Level) // 50*45 = 2250 XP
}
