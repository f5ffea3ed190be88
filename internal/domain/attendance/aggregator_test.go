package attendance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/edutrack-hub/edutrack/internal/domain/shared"
)

func day(t *testing.T, key string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", key)
	assert.NoError(t, err)
	return d
}

func TestAggregator_SubjectStats(t *testing.T) {
	agg := NewAggregator()
	math := shared.ID("sub-math")
	physics := shared.ID("sub-physics")

	tests := []struct {
		name     string
		statuses []Status
		want     SubjectStats
	}{
		{
			name:     "empty records",
			statuses: nil,
			want:     SubjectStats{Present: 0, Total: 0, Percentage: 0},
		},
		{
			name:     "all present",
			statuses: []Status{StatusPresent, StatusPresent, StatusPresent},
			want:     SubjectStats{Present: 3, Total: 3, Percentage: 100},
		},
		{
			name:     "half attendance",
			statuses: []Status{StatusPresent, StatusAbsent, StatusPresent, StatusAbsent},
			want:     SubjectStats{Present: 2, Total: 4, Percentage: 50},
		},
		{
			name:     "cancelled counts toward total",
			statuses: []Status{StatusPresent, StatusCancelled, StatusAbsent},
			want:     SubjectStats{Present: 1, Total: 3, Percentage: 33},
		},
		{
			name:     "rounding to nearest integer",
			statuses: []Status{StatusPresent, StatusPresent, StatusAbsent},
			want:     SubjectStats{Present: 2, Total: 3, Percentage: 67},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var records []*DailyAttendance
			base := day(t, "2026-03-01")
			for i, status := range tt.statuses {
				rec := NewDailyAttendance(base.AddDate(0, 0, i))
				rec.Subjects.Set(math, status)
				records = append(records, rec)
			}
			got := agg.SubjectStats(records, math)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("unset subject entry is no class", func(t *testing.T) {
		rec := NewDailyAttendance(day(t, "2026-03-01"))
		rec.Subjects.Set(math, StatusPresent)
		// physics has no entry this day

		got := agg.SubjectStats([]*DailyAttendance{rec}, physics)
		assert.Equal(t, SubjectStats{Present: 0, Total: 0, Percentage: 0}, got)
	})

	t.Run("scenario math 5 of 10", func(t *testing.T) {
		var records []*DailyAttendance
		base := day(t, "2026-03-01")
		for i := 0; i < 10; i++ {
			rec := NewDailyAttendance(base.AddDate(0, 0, i))
			if i < 5 {
				rec.Subjects.Set(math, StatusPresent)
			} else {
				rec.Subjects.Set(math, StatusAbsent)
			}
			records = append(records, rec)
		}
		got := agg.SubjectStats(records, math)
		assert.Equal(t, SubjectStats{Present: 5, Total: 10, Percentage: 50}, got)
	})
}

func TestAggregator_SubjectStats_Invariants(t *testing.T) {
	agg := NewAggregator()
	math := shared.ID("sub-math")
	statuses := []Status{StatusPresent, StatusAbsent, StatusCancelled, StatusNone}

	// present <= total and 0 <= percentage <= 100 over a sweep of status mixes.
	base := day(t, "2026-01-01")
	for i := 0; i < len(statuses); i++ {
		for j := 0; j < len(statuses); j++ {
			recA := NewDailyAttendance(base)
			recA.Subjects.Set(math, statuses[i])
			recB := NewDailyAttendance(base.AddDate(0, 0, 1))
			recB.Subjects.Set(math, statuses[j])

			got := agg.SubjectStats([]*DailyAttendance{recA, recB}, math)
			assert.LessOrEqual(t, got.Present, got.Total)
			assert.True(t, got.Percentage.IsValid())
			if got.Total == 0 {
				assert.Equal(t, shared.Percentage(0), got.Percentage)
			}
		}
	}
}

func TestAggregator_OverallStats(t *testing.T) {
	agg := NewAggregator()
	math := shared.ID("sub-math")
	physics := shared.ID("sub-physics")

	rec1 := NewDailyAttendance(day(t, "2026-03-02"))
	rec1.Subjects.Set(math, StatusPresent)
	rec1.Subjects.Set(physics, StatusAbsent)

	rec2 := NewDailyAttendance(day(t, "2026-03-03"))
	rec2.Subjects.Set(math, StatusCancelled)
	assert.NoError(t, rec2.AddExtraClass(StatusPresent))
	assert.NoError(t, rec2.AddExtraClass(StatusAbsent))

	got := agg.OverallStats([]*DailyAttendance{rec1, rec2})
	assert.Equal(t, SubjectStats{Present: 2, Total: 5, Percentage: 40}, got)
}

func TestAggregator_OverallStats_Empty(t *testing.T) {
	agg := NewAggregator()
	got := agg.OverallStats(nil)
	assert.Equal(t, SubjectStats{Present: 0, Total: 0, Percentage: 0}, got)
}

func TestAggregator_DoesNotMutateInputs(t *testing.T) {
	agg := NewAggregator()
	math := shared.ID("sub-math")

	rec := NewDailyAttendance(day(t, "2026-03-02"))
	rec.Subjects.Set(math, StatusPresent)
	records := []*DailyAttendance{rec}

	first := agg.SubjectStats(records, math)
	second := agg.SubjectStats(records, math)

	assert.Equal(t, first, second)
	assert.Equal(t, StatusPresent, rec.Subjects.Get(math))
	assert.Len(t, rec.Subjects, 1)
}

func TestDailyAttendance_Mark(t *testing.T) {
	rec := NewDailyAttendance(day(t, "2026-03-02"))
	math := shared.ID("sub-math")

	assert.NoError(t, rec.Mark(math, StatusPresent))
	assert.Equal(t, StatusPresent, rec.Subjects.Get(math))

	// Re-marking mutates the same day in place.
	assert.NoError(t, rec.Mark(math, StatusAbsent))
	assert.Equal(t, StatusAbsent, rec.Subjects.Get(math))

	// Marking "no class" removes the entry entirely.
	assert.NoError(t, rec.Mark(math, StatusNone))
	assert.Len(t, rec.Subjects, 0)

	assert.Error(t, rec.Mark(math, Status("late")))
}
