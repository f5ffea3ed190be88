// Package shared contains common domain types, errors, and value objects
// that are used across all domain packages.
package shared

import (
	"math"
	"strings"
)

// ═══════════════════════════════════════════════════════════════════════════
// Percentage Value Object
// ═══════════════════════════════════════════════════════════════════════════

// Percentage represents a display percentage in [0, 100], rounded to the
// nearest integer. Every derived rate in the system (attendance, completion,
// consistency, EduScore) is presented through this type.
type Percentage int

const (
	MinPercentage Percentage = 0
	MaxPercentage Percentage = 100
)

// IsValid checks if the percentage is within [0, 100].
func (p Percentage) IsValid() bool {
	return p >= MinPercentage && p <= MaxPercentage
}

// Int returns the underlying int value.
func (p Percentage) Int() int {
	return int(p)
}

// Clamp forces the value into [0, 100].
func (p Percentage) Clamp() Percentage {
	if p < MinPercentage {
		return MinPercentage
	}
	if p > MaxPercentage {
		return MaxPercentage
	}
	return p
}

// Ratio converts a part/whole pair into a rounded Percentage.
// Returns 0 when whole is 0: empty inputs degrade to zero, never divide.
func Ratio(part, whole int) Percentage {
	if whole <= 0 {
		return 0
	}
	return Percentage(math.Round(float64(part) / float64(whole) * 100)).Clamp()
}

// RoundPercent rounds a float rate (already on the 0-100 scale) to a Percentage.
func RoundPercent(rate float64) Percentage {
	return Percentage(math.Round(rate)).Clamp()
}

// Round rounds a float to the nearest integer, half away from zero.
// This is the single display rounding rule used across the module.
func Round(v float64) int {
	return int(math.Round(v))
}

// ═══════════════════════════════════════════════════════════════════════════
// ID Value Objects
// ═══════════════════════════════════════════════════════════════════════════

// ID is a plain opaque identifier. Records are created by a single user in a
// single tab, so IDs only need to be unique within the profile, not globally
// meaningful. Dangling references are tolerated: consumers that fail to
// resolve an ID treat it as "unknown" and filter the record out.
type ID string

// IsEmpty checks if the ID is empty.
func (id ID) IsEmpty() bool {
	return strings.TrimSpace(string(id)) == ""
}

// String returns the string representation.
func (id ID) String() string {
	return string(id)
}

// ═══════════════════════════════════════════════════════════════════════════
// Trend Value Object
// ═══════════════════════════════════════════════════════════════════════════

// Trend classifies the direction of a per-subject score.
type Trend string

const (
	TrendUp     Trend = "up"
	TrendStable Trend = "stable"
	TrendDown   Trend = "down"
)

// TrendForScore classifies a 0-100 score: up above 70, stable above 50,
// down otherwise.
func TrendForScore(score float64) Trend {
	switch {
	case score > 70:
		return TrendUp
	case score > 50:
		return TrendStable
	default:
		return TrendDown
	}
}
