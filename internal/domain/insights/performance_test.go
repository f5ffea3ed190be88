package insights

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/edutrack-hub/edutrack/internal/domain/attendance"
	"github.com/edutrack-hub/edutrack/internal/domain/shared"
	"github.com/edutrack-hub/edutrack/internal/domain/subject"
	"github.com/edutrack-hub/edutrack/internal/domain/task"
)

func TestCalculatePerformanceIndex_EmptyInputs(t *testing.T) {
	index := CalculatePerformanceIndex(nil, nil, nil)

	assert.Equal(t, 0, index.Overall)
	assert.Equal(t, PerformanceCritical, index.Level)
	assert.Equal(t, 0, index.Attendance)
	assert.Equal(t, 0, index.TaskCompletion)
	assert.Equal(t, 0, index.Progress)
	assert.Equal(t, 0, index.StudyConsistency)
	assert.NotEmpty(t, index.Suggestions)
}

func TestCalculatePerformanceIndex_Components(t *testing.T) {
	subjects := []*subject.Subject{
		newSubject("sub-a", "Math"),
		newSubject("sub-b", "Physics"),
	}
	stats := map[shared.ID]attendance.SubjectStats{
		"sub-a": statsOf(8, 10),  // 80%
		"sub-b": statsOf(6, 10),  // 60%
	}
	// 3 of 6 tasks completed: rate 50%, consistency 6/30*100 = 20.
	var tasks []*task.StudyTask
	for i := 0; i < 6; i++ {
		tk := pendingTask(fmt.Sprintf("t-%d", i), "work", 5)
		if i < 3 {
			_ = tk.Complete(testNow)
		}
		tasks = append(tasks, tk)
	}

	index := CalculatePerformanceIndex(subjects, stats, tasks)

	// attendance 70, completion 50, progress 70+25=95, consistency 20
	// overall = 0.35*70 + 0.25*50 + 0.30*95 + 0.10*20 = 24.5+12.5+28.5+2 = 67.5
	assert.Equal(t, 70, index.Attendance)
	assert.Equal(t, 50, index.TaskCompletion)
	assert.Equal(t, 95, index.Progress)
	assert.Equal(t, 20, index.StudyConsistency)
	assert.Equal(t, 68, index.Overall)
	assert.Equal(t, PerformanceAverage, index.Level)
}

func TestCalculatePerformanceIndex_ProgressCapped(t *testing.T) {
	subjects := []*subject.Subject{newSubject("sub-a", "Math")}
	stats := map[shared.ID]attendance.SubjectStats{"sub-a": statsOf(10, 10)}
	done := pendingTask("t-1", "work", 5)
	_ = done.Complete(testNow)

	index := CalculatePerformanceIndex(subjects, stats, []*task.StudyTask{done})

	// progress would be 100 + 50 without the cap
	assert.Equal(t, 100, index.Progress)
}

func TestCalculatePerformanceIndex_Idempotent(t *testing.T) {
	subjects := []*subject.Subject{newSubject("sub-a", "Math")}
	stats := map[shared.ID]attendance.SubjectStats{"sub-a": statsOf(7, 10)}
	tasks := []*task.StudyTask{pendingTask("t-1", "work", 5)}

	first := CalculatePerformanceIndex(subjects, stats, tasks)
	second := CalculatePerformanceIndex(subjects, stats, tasks)
	assert.Equal(t, first, second)
}

func TestClassifyPerformance(t *testing.T) {
	tests := []struct {
		overall int
		want    PerformanceLevel
	}{
		{100, PerformanceExcellent},
		{85, PerformanceExcellent},
		{84, PerformanceGood},
		{70, PerformanceGood},
		{69, PerformanceAverage},
		{55, PerformanceAverage},
		{54, PerformancePoor},
		{40, PerformancePoor},
		{39, PerformanceCritical},
		{0, PerformanceCritical},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, classifyPerformance(tt.overall), "overall=%d", tt.overall)
	}
}

func TestStudyConsistency_SaturatesAtThirtyTasks(t *testing.T) {
	assert.Equal(t, 0.0, studyConsistency(0))
	assert.InDelta(t, 50.0, studyConsistency(15), 0.001)
	assert.Equal(t, 100.0, studyConsistency(30))
	assert.Equal(t, 100.0, studyConsistency(90))
}
