package planner

import (
	"fmt"
	"time"

	"github.com/edutrack-hub/edutrack/internal/domain/shared"
	"github.com/edutrack-hub/edutrack/internal/domain/subject"
	"github.com/edutrack-hub/edutrack/internal/domain/task"
	"github.com/edutrack-hub/edutrack/pkg/timeutil"
)

// ═══════════════════════════════════════════════════════════════════════════
// WEEKLY PLAN GENERATION
// ═══════════════════════════════════════════════════════════════════════════

const (
	// minDailyHours is the floor for a day's estimate, even with no tasks.
	minDailyHours = 2.0

	// hoursPerTask is the per-task study time estimate.
	hoursPerTask = 1.5

	// rotationSize caps the subjects shown per day.
	rotationSize = 3
)

// weeklyGoals is the fixed goal list attached to every generated plan.
var weeklyGoals = []string{
	"Clear every task due this week",
	"Keep attendance above 75% in all subjects",
	"Finish at least one pending topic",
}

// GenerateWeeklyPlan buckets pending tasks into the 7 days starting at the
// most recent Sunday. Per day: studyTime = max(2, tasks*1.5) hours rounded
// for display, priority high above 2 tasks, medium at 1-2, low at 0.
// TotalEstimatedHours rounds the unrounded 7-day sum once, so it can differ
// from the sum of the displayed per-day values.
func GenerateWeeklyPlan(now time.Time, subjects []*subject.Subject, tasks []*task.StudyTask) *WeeklyPlan {
	weekStart := timeutil.StartOfWeek(now)

	rotation := subjectRotation(subjects)
	daily := make(map[string]DayPlan, 7)
	totalHours := 0.0

	for i := 0; i < 7; i++ {
		day := weekStart.AddDate(0, 0, i)

		var due []string
		for _, t := range tasks {
			if t.IsPending() && timeutil.IsSameDay(t.TargetDate, day) {
				due = append(due, t.Description)
			}
		}

		hours := minDailyHours
		if h := float64(len(due)) * hoursPerTask; h > hours {
			hours = h
		}
		totalHours += hours

		key := timeutil.DateKey(day)
		daily[key] = DayPlan{
			Date:      key,
			Subjects:  rotation,
			Tasks:     due,
			StudyTime: fmt.Sprintf("%dh", shared.Round(hours)),
			Priority:  dayPriority(len(due)),
		}
	}

	return &WeeklyPlan{
		WeekOf:              timeutil.DateKey(weekStart),
		DailyPlan:           daily,
		WeeklyGoals:         weeklyGoals,
		TotalEstimatedHours: shared.Round(totalHours),
		CreatedAt:           now.UTC(),
	}
}

// dayPriority grades a day by its task count.
func dayPriority(taskCount int) DayPriority {
	switch {
	case taskCount > 2:
		return PriorityHigh
	case taskCount >= 1:
		return PriorityMedium
	default:
		return PriorityLow
	}
}

// subjectRotation returns the first three subject names in store order.
func subjectRotation(subjects []*subject.Subject) []string {
	names := make([]string, 0, rotationSize)
	for _, s := range subjects {
		if len(names) == rotationSize {
			break
		}
		names = append(names, s.Name)
	}
	return names
}
