// Package insights contains the scoring and recommendation engine: the pure
// functions that turn raw records (attendance, tasks, topics, exam dates)
// into a daily action plan, a performance index, a risk assessment, and
// productivity metrics. Nothing here performs I/O or mutates its inputs;
// the consuming layer recomputes on demand whenever the records change.
package insights

import (
	"fmt"
	"sort"
	"time"

	"github.com/edutrack-hub/edutrack/internal/domain/attendance"
	"github.com/edutrack-hub/edutrack/internal/domain/shared"
	"github.com/edutrack-hub/edutrack/internal/domain/subject"
	"github.com/edutrack-hub/edutrack/internal/domain/task"
	"github.com/edutrack-hub/edutrack/internal/domain/topic"
)

// ═══════════════════════════════════════════════════════════════════════════
// RECOMMENDATION
// ═══════════════════════════════════════════════════════════════════════════

// RecommendationType classifies which rule produced a recommendation.
type RecommendationType string

const (
	// RecommendationAttendance - attendance below the safe threshold.
	RecommendationAttendance RecommendationType = "attendance"
	// RecommendationTask - a task is overdue or due within a day.
	RecommendationTask RecommendationType = "task"
	// RecommendationExam - an exam is 1-14 days away.
	RecommendationExam RecommendationType = "exam"
	// RecommendationTopic - backlog recovery: master the hardest pending topic.
	RecommendationTopic RecommendationType = "topic"
	// RecommendationHabit - fallback nudge to keep the study streak alive.
	RecommendationHabit RecommendationType = "habit"
)

// Recommendation is one actionable item in the daily plan.
type Recommendation struct {
	// ID is deterministic per rule and record, so identical inputs always
	// produce identical plans.
	ID string `json:"id"`

	// Type names the producing rule.
	Type RecommendationType `json:"type"`

	// Title is the short headline.
	Title string `json:"title"`

	// Description explains what to do and why.
	Description string `json:"description"`

	// Priority ranks the item, 0-100. Output is sorted descending.
	Priority int `json:"priority"`

	// ActionLabel is the optional call-to-action text.
	ActionLabel string `json:"actionLabel,omitempty"`

	// ActionLink is the optional in-app route for the action.
	ActionLink string `json:"actionLink,omitempty"`

	// Color is the optional UI accent, usually the subject color.
	Color string `json:"color,omitempty"`
}

// Attendance and exam thresholds used by the rules below.
const (
	attendanceSafePercent     = 75
	attendanceCriticalPercent = 60

	examWindowMinDays = 1
	examWindowMaxDays = 14

	priorityAttendanceCritical = 95
	priorityAttendanceLow      = 85
	priorityTaskOverdue        = 90
	priorityTaskDueSoon        = 80
	priorityExamImminent       = 92
	priorityExamNear           = 82
	priorityExamUpcoming       = 70
	priorityBacklogTopic       = 60
	priorityHabitNudge         = 50
)

// ═══════════════════════════════════════════════════════════════════════════
// DAILY ACTION PLAN
// ═══════════════════════════════════════════════════════════════════════════

// GenerateDailyActionPlan combines attendance stats, pending tasks, topic
// mastery, and exam dates into a ranked list of recommendations.
//
// Rules run in a fixed order and every matching rule emits; the final list is
// stable-sorted by descending priority, so equal priorities keep rule order.
// The function is pure: now is passed in, inputs are never mutated.
func GenerateDailyActionPlan(
	now time.Time,
	subjects []*subject.Subject,
	tasks []*task.StudyTask,
	stats map[shared.ID]attendance.SubjectStats,
	topics []*topic.Topic,
) []Recommendation {
	recs := make([]Recommendation, 0, len(subjects)+len(tasks))

	recs = append(recs, attendanceAlerts(subjects, stats)...)
	recs = append(recs, urgentTaskAlerts(now, tasks)...)
	recs = append(recs, examPreparation(now, subjects, topics)...)

	// Backlog recovery only fills a thin plan.
	if len(recs) < 3 {
		if rec, ok := backlogRecovery(subjects, topics); ok {
			recs = append(recs, rec)
		}
	}

	// Habit nudge only when nothing else came up at all.
	if len(recs) == 0 {
		recs = append(recs, habitNudge())
	}

	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].Priority > recs[j].Priority
	})
	return recs
}

// attendanceAlerts emits one alert per subject below the safe threshold.
// A subject without a stats entry counts as zero attendance, so it alerts at
// critical priority until classes are recorded.
func attendanceAlerts(subjects []*subject.Subject, stats map[shared.ID]attendance.SubjectStats) []Recommendation {
	var recs []Recommendation
	for _, s := range subjects {
		st := stats[s.ID]
		pct := st.Percentage.Int()
		if pct >= attendanceSafePercent {
			continue
		}

		priority := priorityAttendanceLow
		severity := "low"
		if pct < attendanceCriticalPercent {
			priority = priorityAttendanceCritical
			severity = "critical"
		}

		recs = append(recs, Recommendation{
			ID:       fmt.Sprintf("attendance-%s", s.ID),
			Type:     RecommendationAttendance,
			Title:    fmt.Sprintf("Attendance %s in %s", severity, s.Name),
			Description: fmt.Sprintf(
				"%s attendance is at %d%% (%d of %d classes). Attend the next classes to get back above %d%%.",
				s.Name, pct, st.Present, st.Total, attendanceSafePercent,
			),
			Priority:    priority,
			ActionLabel: "View attendance",
			ActionLink:  "/attendance",
			Color:       s.Color,
		})
	}
	return recs
}

// urgentTaskAlerts emits an alert per pending task that is overdue or due
// within a day, relative to the current day.
func urgentTaskAlerts(now time.Time, tasks []*task.StudyTask) []Recommendation {
	var recs []Recommendation
	for _, t := range tasks {
		if !t.IsPending() {
			continue
		}

		days := t.DaysUntilDue(now)
		switch {
		case days < 0:
			recs = append(recs, Recommendation{
				ID:          fmt.Sprintf("task-%s", t.ID),
				Type:        RecommendationTask,
				Title:       "Overdue task",
				Description: fmt.Sprintf("%q was due %d day(s) ago. Finish it before the backlog grows.", t.Description, -days),
				Priority:    priorityTaskOverdue,
				ActionLabel: "Open tasks",
				ActionLink:  "/tasks",
			})
		case days <= 1:
			due := "today"
			if days == 1 {
				due = "tomorrow"
			}
			recs = append(recs, Recommendation{
				ID:          fmt.Sprintf("task-%s", t.ID),
				Type:        RecommendationTask,
				Title:       fmt.Sprintf("Task due %s", due),
				Description: fmt.Sprintf("%q is due %s.", t.Description, due),
				Priority:    priorityTaskDueSoon,
				ActionLabel: "Open tasks",
				ActionLink:  "/tasks",
			})
		}
	}
	return recs
}

// examPreparation emits a recommendation per subject with an exam 1-14 days
// out, ranked by proximity, describing the remaining non-mastered topics.
func examPreparation(now time.Time, subjects []*subject.Subject, topics []*topic.Topic) []Recommendation {
	var recs []Recommendation
	for _, s := range subjects {
		days, ok := s.DaysUntilExam(now)
		if !ok || days < examWindowMinDays || days > examWindowMaxDays {
			continue
		}

		priority := priorityExamUpcoming
		switch {
		case days <= 3:
			priority = priorityExamImminent
		case days <= 7:
			priority = priorityExamNear
		}

		remaining, hard := topic.CountNotMastered(topic.ForSubject(topics, s.ID))
		recs = append(recs, Recommendation{
			ID:    fmt.Sprintf("exam-%s", s.ID),
			Type:  RecommendationExam,
			Title: fmt.Sprintf("%s exam in %d day(s)", s.Name, days),
			Description: fmt.Sprintf(
				"%d topics left to master in %s, including %d hard. Start with the hard ones.",
				remaining, s.Name, hard,
			),
			Priority:    priority,
			ActionLabel: "Review topics",
			ActionLink:  "/topics",
			Color:       s.Color,
		})
	}
	return recs
}

// backlogRecovery picks the single pending topic with the highest difficulty
// weight (hard 3, medium 2, easy 1), ties broken by collection order.
func backlogRecovery(subjects []*subject.Subject, topics []*topic.Topic) (Recommendation, bool) {
	var best *topic.Topic
	for _, t := range topics {
		if t.Status != topic.StatusPending {
			continue
		}
		if best == nil || t.Difficulty.Weight() > best.Difficulty.Weight() {
			best = t
		}
	}
	if best == nil {
		return Recommendation{}, false
	}

	description := fmt.Sprintf("Work through %q (%s) while there is slack in the schedule.", best.Name, best.Difficulty)
	if owner, ok := subject.ByID(subjects)[best.SubjectID]; ok {
		description = fmt.Sprintf("Work through %q (%s, %s) while there is slack in the schedule.", best.Name, owner.Name, best.Difficulty)
	}

	return Recommendation{
		ID:          fmt.Sprintf("topic-%s", best.ID),
		Type:        RecommendationTopic,
		Title:       "Master a pending topic",
		Description: description,
		Priority:    priorityBacklogTopic,
		ActionLabel: "Review topics",
		ActionLink:  "/topics",
	}, true
}

// habitNudge is the fixed fallback when no other rule fired.
func habitNudge() Recommendation {
	return Recommendation{
		ID:          "habit-streak",
		Type:        RecommendationHabit,
		Title:       "Keep the streak alive",
		Description: "Nothing urgent today. A short focus session keeps the study streak going.",
		Priority:    priorityHabitNudge,
		ActionLabel: "Start focus session",
		ActionLink:  "/focus",
	}
}
