package insights

import (
	"github.com/edutrack-hub/edutrack/internal/domain/attendance"
	"github.com/edutrack-hub/edutrack/internal/domain/shared"
	"github.com/edutrack-hub/edutrack/internal/domain/subject"
	"github.com/edutrack-hub/edutrack/internal/domain/task"
)

// ═══════════════════════════════════════════════════════════════════════════
// PERFORMANCE INDEX
// ═══════════════════════════════════════════════════════════════════════════

// PerformanceLevel classifies the overall performance index.
type PerformanceLevel string

const (
	PerformanceExcellent PerformanceLevel = "excellent"
	PerformanceGood      PerformanceLevel = "good"
	PerformanceAverage   PerformanceLevel = "average"
	PerformancePoor      PerformanceLevel = "poor"
	PerformanceCritical  PerformanceLevel = "critical"
)

// PerformanceIndex is the composite performance snapshot. All components are
// display percentages in [0, 100], rounded. Never stored - recomputed from
// the records on every read.
type PerformanceIndex struct {
	// Overall = 0.35*attendance + 0.25*taskCompletion + 0.30*progress
	// + 0.10*studyConsistency.
	Overall int `json:"overall"`

	// Level classifies Overall: >=85 excellent, >=70 good, >=55 average,
	// >=40 poor, else critical.
	Level PerformanceLevel `json:"level"`

	// Attendance is the mean of per-subject attendance percentages.
	Attendance int `json:"attendance"`

	// TaskCompletion is completed/total tasks as a percentage.
	TaskCompletion int `json:"taskCompletion"`

	// Progress = min(attendance + taskCompletion/2, 100).
	Progress int `json:"progress"`

	// StudyConsistency = min(taskCount/30*100, 100): a volume proxy, where
	// a backlog of 30 tracked tasks counts as fully consistent.
	StudyConsistency int `json:"studyConsistency"`

	// Suggestions lists improvement hints; any subset may appear.
	Suggestions []string `json:"suggestions,omitempty"`
}

// Performance index component weights.
const (
	weightAttendance     = 0.35
	weightTaskCompletion = 0.25
	weightProgress       = 0.30
	weightConsistency    = 0.10
)

// CalculatePerformanceIndex aggregates attendance, task completion, and
// consistency into a single index. Pure and idempotent: identical inputs
// always yield identical output. Empty collections degrade to zeros.
func CalculatePerformanceIndex(
	subjects []*subject.Subject,
	stats map[shared.ID]attendance.SubjectStats,
	tasks []*task.StudyTask,
) PerformanceIndex {
	avgAttendance := averageAttendance(subjects, stats)
	completionRate := taskCompletionRate(tasks)
	consistency := studyConsistency(len(tasks))

	progress := avgAttendance + completionRate/2
	if progress > 100 {
		progress = 100
	}

	overall := weightAttendance*avgAttendance +
		weightTaskCompletion*completionRate +
		weightProgress*progress +
		weightConsistency*consistency

	index := PerformanceIndex{
		Overall:          shared.Round(overall),
		Attendance:       shared.Round(avgAttendance),
		TaskCompletion:   shared.Round(completionRate),
		Progress:         shared.Round(progress),
		StudyConsistency: shared.Round(consistency),
	}
	index.Level = classifyPerformance(index.Overall)

	if avgAttendance < 75 {
		index.Suggestions = append(index.Suggestions, "Attendance is below 75%. Prioritize showing up to scheduled classes.")
	}
	if completionRate < 70 {
		index.Suggestions = append(index.Suggestions, "Less than 70% of tasks are completed. Close out small pending tasks first.")
	}
	if consistency < 60 {
		index.Suggestions = append(index.Suggestions, "Study consistency is low. Plan tasks regularly to build a steady routine.")
	}

	return index
}

// classifyPerformance maps the rounded overall score to a level.
func classifyPerformance(overall int) PerformanceLevel {
	switch {
	case overall >= 85:
		return PerformanceExcellent
	case overall >= 70:
		return PerformanceGood
	case overall >= 55:
		return PerformanceAverage
	case overall >= 40:
		return PerformancePoor
	default:
		return PerformanceCritical
	}
}

// averageAttendance returns the mean of per-subject attendance percentages,
// 0 when the subject collection is empty.
func averageAttendance(subjects []*subject.Subject, stats map[shared.ID]attendance.SubjectStats) float64 {
	if len(subjects) == 0 {
		return 0
	}
	sum := 0.0
	for _, s := range subjects {
		sum += float64(stats[s.ID].Percentage.Int())
	}
	return sum / float64(len(subjects))
}

// taskCompletionRate returns completed/total*100, 0 for an empty task set.
func taskCompletionRate(tasks []*task.StudyTask) float64 {
	if len(tasks) == 0 {
		return 0
	}
	return float64(task.CountCompleted(tasks)) / float64(len(tasks)) * 100
}

// studyConsistency maps the tracked task count onto a 0-100 scale, saturating
// at 30 tasks.
func studyConsistency(taskCount int) float64 {
	consistency := float64(taskCount) / 30 * 100
	if consistency > 100 {
		return 100
	}
	return consistency
}
