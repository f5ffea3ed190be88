package insights

import (
	"time"

	"github.com/edutrack-hub/edutrack/internal/domain/attendance"
	"github.com/edutrack-hub/edutrack/internal/domain/shared"
	"github.com/edutrack-hub/edutrack/internal/domain/subject"
	"github.com/edutrack-hub/edutrack/internal/domain/task"
	"github.com/edutrack-hub/edutrack/pkg/timeutil"
)

// ═══════════════════════════════════════════════════════════════════════════
// PRODUCTIVITY METRICS (EduScore)
// ═══════════════════════════════════════════════════════════════════════════

// WeeklyTrend classifies the overall direction of recent productivity.
type WeeklyTrend string

const (
	TrendImproving WeeklyTrend = "improving"
	TrendSteady    WeeklyTrend = "stable"
	TrendDeclining WeeklyTrend = "declining"
)

// SubjectPerformance is the per-subject slice of the productivity report.
type SubjectPerformance struct {
	// Score = 0.6*subjectAttendance + 0.4*subjectTaskCompletionRate.
	Score int `json:"score"`

	// Trend is up above 70, stable above 50, down otherwise.
	Trend shared.Trend `json:"trend"`
}

// ProductivityMetrics is the composite productivity report shown on the
// dashboard. All rates are display percentages, rounded.
type ProductivityMetrics struct {
	// EduScore = 0.4*attendanceRate + 0.4*taskCompletionRate + 0.2*consistency.
	EduScore int `json:"eduScore"`

	// Consistency = min(tasksCreatedInLast30Days/30*100, 100).
	Consistency int `json:"consistency"`

	// AttendanceRate is the mean of per-subject attendance percentages.
	AttendanceRate int `json:"attendanceRate"`

	// TaskCompletionRate is completed/total tasks as a percentage.
	TaskCompletionRate int `json:"taskCompletionRate"`

	// StudyStreak is min(completedTaskCount, 30). This is a capped task-count
	// proxy, not a consecutive-day streak; the profile package tracks the
	// real one. Kept as-is so the dashboard number stays comparable across
	// versions.
	StudyStreak int `json:"studyStreak"`

	// WeeklyTrend classifies taskCompletionRate: improving above 70,
	// stable above 50, declining otherwise.
	WeeklyTrend WeeklyTrend `json:"weeklyTrend"`

	// SubjectPerformance maps subject name to its score and trend.
	SubjectPerformance map[string]SubjectPerformance `json:"subjectPerformance"`
}

// EduScore component weights.
const (
	eduWeightAttendance  = 0.4
	eduWeightTasks       = 0.4
	eduWeightConsistency = 0.2
)

// CalculateProductivity derives the EduScore report from subjects, attendance
// stats, and tasks. Pure function of its inputs; now anchors the trailing
// 30-day consistency window.
func CalculateProductivity(
	now time.Time,
	subjects []*subject.Subject,
	stats map[shared.ID]attendance.SubjectStats,
	tasks []*task.StudyTask,
) ProductivityMetrics {
	attendanceRate := averageAttendance(subjects, stats)
	completionRate := taskCompletionRate(tasks)
	consistency := recentConsistency(now, tasks)

	eduScore := eduWeightAttendance*attendanceRate +
		eduWeightTasks*completionRate +
		eduWeightConsistency*consistency

	streak := task.CountCompleted(tasks)
	if streak > 30 {
		streak = 30
	}

	return ProductivityMetrics{
		EduScore:           shared.Round(eduScore),
		Consistency:        shared.Round(consistency),
		AttendanceRate:     shared.Round(attendanceRate),
		TaskCompletionRate: shared.Round(completionRate),
		StudyStreak:        streak,
		WeeklyTrend:        classifyWeeklyTrend(completionRate),
		SubjectPerformance: subjectPerformance(subjects, stats, tasks),
	}
}

// classifyWeeklyTrend buckets the task completion rate.
func classifyWeeklyTrend(completionRate float64) WeeklyTrend {
	switch {
	case completionRate > 70:
		return TrendImproving
	case completionRate > 50:
		return TrendSteady
	default:
		return TrendDeclining
	}
}

// recentConsistency maps the number of tasks created in the trailing 30 days
// onto a 0-100 scale, saturating at one task per day.
func recentConsistency(now time.Time, tasks []*task.StudyTask) float64 {
	created := 0
	for _, t := range tasks {
		if timeutil.WithinLastDays(now, t.CreatedAt, 30) {
			created++
		}
	}
	consistency := float64(created) / 30 * 100
	if consistency > 100 {
		return 100
	}
	return consistency
}

// subjectPerformance scores each subject from its attendance and the
// completion rate of its own tasks.
func subjectPerformance(
	subjects []*subject.Subject,
	stats map[shared.ID]attendance.SubjectStats,
	tasks []*task.StudyTask,
) map[string]SubjectPerformance {
	out := make(map[string]SubjectPerformance, len(subjects))
	for _, s := range subjects {
		att := float64(stats[s.ID].Percentage.Int())

		var total, completed int
		for _, t := range tasks {
			if t.SubjectID != s.ID {
				continue
			}
			total++
			if t.IsCompleted() {
				completed++
			}
		}
		taskRate := 0.0
		if total > 0 {
			taskRate = float64(completed) / float64(total) * 100
		}

		score := 0.6*att + 0.4*taskRate
		out[s.Name] = SubjectPerformance{
			Score: shared.Round(score),
			Trend: shared.TrendForScore(score),
		}
	}
	return out
}
