package insights

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edutrack-hub/edutrack/internal/domain/attendance"
	"github.com/edutrack-hub/edutrack/internal/domain/shared"
	"github.com/edutrack-hub/edutrack/internal/domain/subject"
	"github.com/edutrack-hub/edutrack/internal/domain/task"
)

func TestCalculateProductivity_EmptyInputs(t *testing.T) {
	metrics := CalculateProductivity(testNow, nil, nil, nil)

	assert.Equal(t, 0, metrics.EduScore)
	assert.Equal(t, 0, metrics.Consistency)
	assert.Equal(t, 0, metrics.AttendanceRate)
	assert.Equal(t, 0, metrics.TaskCompletionRate)
	assert.Equal(t, 0, metrics.StudyStreak)
	assert.Equal(t, TrendDeclining, metrics.WeeklyTrend)
	assert.Empty(t, metrics.SubjectPerformance)
}

func TestCalculateProductivity_EduScoreWeights(t *testing.T) {
	subjects := []*subject.Subject{newSubject("sub-a", "Math")}
	stats := map[shared.ID]attendance.SubjectStats{"sub-a": statsOf(8, 10)} // 80%

	// 3 of 4 tasks completed, all created now: rate 75%, consistency 4/30*100.
	var tasks []*task.StudyTask
	for i := 0; i < 4; i++ {
		tk := pendingTask(fmt.Sprintf("t-%d", i), "work", 5)
		if i < 3 {
			require.NoError(t, tk.Complete(testNow))
		}
		tasks = append(tasks, tk)
	}

	metrics := CalculateProductivity(testNow, subjects, stats, tasks)

	// consistency = 4/30*100 = 13.333 -> 13
	// eduScore = 0.4*80 + 0.4*75 + 0.2*13.333 = 32+30+2.667 = 64.667 -> 65
	assert.Equal(t, 80, metrics.AttendanceRate)
	assert.Equal(t, 75, metrics.TaskCompletionRate)
	assert.Equal(t, 13, metrics.Consistency)
	assert.Equal(t, 65, metrics.EduScore)
	assert.Equal(t, 3, metrics.StudyStreak)
	assert.Equal(t, TrendImproving, metrics.WeeklyTrend)
}

func TestCalculateProductivity_ConsistencyWindowExcludesOldTasks(t *testing.T) {
	recent := pendingTask("t-recent", "recent work", 5)
	old := pendingTask("t-old", "stale work", 5)
	old.CreatedAt = testNow.AddDate(0, 0, -45)

	metrics := CalculateProductivity(testNow, nil, nil, []*task.StudyTask{recent, old})

	// Only the recent task counts: 1/30*100 = 3.333 -> 3.
	assert.Equal(t, 3, metrics.Consistency)
}

func TestCalculateProductivity_StreakCappedAtThirty(t *testing.T) {
	var tasks []*task.StudyTask
	for i := 0; i < 40; i++ {
		tk := pendingTask(fmt.Sprintf("t-%d", i), "work", 5)
		require.NoError(t, tk.Complete(testNow))
		tasks = append(tasks, tk)
	}

	metrics := CalculateProductivity(testNow, nil, nil, tasks)
	assert.Equal(t, 30, metrics.StudyStreak)
}

func TestCalculateProductivity_WeeklyTrendBuckets(t *testing.T) {
	tests := []struct {
		completed int
		total     int
		want      WeeklyTrend
	}{
		{8, 10, TrendImproving},  // 80 > 70
		{7, 10, TrendSteady},     // 70 is not > 70
		{6, 10, TrendSteady},     // 60 > 50
		{5, 10, TrendDeclining},  // 50 is not > 50
		{0, 10, TrendDeclining},
	}

	for _, tt := range tests {
		var tasks []*task.StudyTask
		for i := 0; i < tt.total; i++ {
			tk := pendingTask(fmt.Sprintf("t-%d", i), "work", 5)
			if i < tt.completed {
				require.NoError(t, tk.Complete(testNow))
			}
			tasks = append(tasks, tk)
		}

		metrics := CalculateProductivity(testNow, nil, nil, tasks)
		assert.Equal(t, tt.want, metrics.WeeklyTrend, "%d/%d completed", tt.completed, tt.total)
	}
}

func TestCalculateProductivity_SubjectPerformance(t *testing.T) {
	subjects := []*subject.Subject{
		newSubject("sub-math", "Math"),
		newSubject("sub-phy", "Physics"),
	}
	stats := map[shared.ID]attendance.SubjectStats{
		"sub-math": statsOf(9, 10), // 90%
		"sub-phy":  statsOf(4, 10), // 40%
	}

	mathDone := pendingTask("t-1", "math work", 5)
	mathDone.SubjectID = "sub-math"
	require.NoError(t, mathDone.Complete(testNow))
	phyPending := pendingTask("t-2", "physics work", 5)
	phyPending.SubjectID = "sub-phy"

	metrics := CalculateProductivity(testNow, subjects, stats, []*task.StudyTask{mathDone, phyPending})

	require.Len(t, metrics.SubjectPerformance, 2)

	math := metrics.SubjectPerformance["Math"]
	// 0.6*90 + 0.4*100 = 94
	assert.Equal(t, 94, math.Score)
	assert.Equal(t, shared.TrendUp, math.Trend)

	phy := metrics.SubjectPerformance["Physics"]
	// 0.6*40 + 0.4*0 = 24
	assert.Equal(t, 24, phy.Score)
	assert.Equal(t, shared.TrendDown, phy.Trend)
}

func TestCalculateProductivity_SubjectWithNoTasksScoresOnAttendanceAlone(t *testing.T) {
	subjects := []*subject.Subject{newSubject("sub-a", "Chemistry")}
	stats := map[shared.ID]attendance.SubjectStats{"sub-a": statsOf(10, 10)}

	metrics := CalculateProductivity(testNow, subjects, stats, nil)

	perf := metrics.SubjectPerformance["Chemistry"]
	assert.Equal(t, 60, perf.Score)
	assert.Equal(t, shared.TrendStable, perf.Trend)
}
