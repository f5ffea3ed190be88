// Package planner builds the weekly study plan: a 7-day bucket of pending
// tasks from the most recent week start, with a coarse study-time estimate
// per day. It sorts and buckets only; there is no schedule optimization.
package planner

import (
	"time"
)

// DayPriority grades how loaded a single day is.
type DayPriority string

const (
	// PriorityHigh - more than two tasks due that day.
	PriorityHigh DayPriority = "high"
	// PriorityMedium - one or two tasks due that day.
	PriorityMedium DayPriority = "medium"
	// PriorityLow - nothing due that day.
	PriorityLow DayPriority = "low"
)

// DayPlan is the plan for one day of the week.
type DayPlan struct {
	// Date is the canonical date key (YYYY-MM-DD) of the day.
	Date string `json:"date"`

	// Subjects lists the first three subject names in store order. The list
	// is the same for every day of the week; it is a rotation hint, not a
	// per-day schedule.
	Subjects []string `json:"subjects"`

	// Tasks lists the descriptions of pending tasks due that day.
	Tasks []string `json:"tasks"`

	// StudyTime is the display estimate for the day, like "3h".
	StudyTime string `json:"studyTime"`

	// Priority is high above 2 tasks, medium at 1-2, low at 0.
	Priority DayPriority `json:"priority"`
}

// WeeklyPlan is the generated plan for one week.
type WeeklyPlan struct {
	// WeekOf is the date key of the week's first day (the most recent
	// Sunday at generation time).
	WeekOf string `json:"weekOf"`

	// DailyPlan maps each day's date key to its plan. Always 7 entries.
	DailyPlan map[string]DayPlan `json:"dailyPlan"`

	// WeeklyGoals is a fixed set of goals shown alongside the plan.
	WeeklyGoals []string `json:"weeklyGoals"`

	// TotalEstimatedHours is the rounded sum of daily estimates.
	TotalEstimatedHours int `json:"totalEstimatedHours"`

	// CreatedAt is when the plan was generated.
	CreatedAt time.Time `json:"createdAt"`
}
