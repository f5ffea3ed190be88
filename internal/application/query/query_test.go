package query

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edutrack-hub/edutrack/internal/domain/attendance"
	"github.com/edutrack-hub/edutrack/internal/domain/insights"
	"github.com/edutrack-hub/edutrack/internal/domain/planner"
	"github.com/edutrack-hub/edutrack/internal/domain/shared"
	"github.com/edutrack-hub/edutrack/internal/domain/subject"
	"github.com/edutrack-hub/edutrack/internal/domain/task"
	"github.com/edutrack-hub/edutrack/internal/infrastructure/persistence"
	"github.com/edutrack-hub/edutrack/internal/infrastructure/persistence/memory"
)

// Tuesday 2026-03-10.
var testNow = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

func seedStores(t *testing.T) *persistence.Stores {
	t.Helper()
	ctx := context.Background()
	stores := persistence.NewStores(memory.NewStore())

	require.NoError(t, stores.Subjects.Save(ctx, &subject.Subject{ID: "s-math", Name: "Math", CreatedAt: testNow}))
	require.NoError(t, stores.Subjects.Save(ctx, &subject.Subject{ID: "s-phy", Name: "Physics", CreatedAt: testNow}))

	// Math: present 1 of 2 days -> 50%.
	for i, status := range []attendance.Status{attendance.StatusPresent, attendance.StatusAbsent} {
		record := attendance.NewDailyAttendance(testNow.AddDate(0, 0, -i-1))
		require.NoError(t, record.Mark("s-math", status))
		require.NoError(t, record.Mark("s-phy", attendance.StatusPresent))
		require.NoError(t, stores.Attendance.Save(ctx, record))
	}

	require.NoError(t, stores.Tasks.Save(ctx, &task.StudyTask{
		ID: "t-overdue", SubjectID: "s-math", Description: "Overdue homework",
		TargetDate: testNow.AddDate(0, 0, -2), Status: task.StatusPending, CreatedAt: testNow,
	}))

	return stores
}

func TestGetActionPlanHandler(t *testing.T) {
	stores := seedStores(t)
	handler := NewGetActionPlanHandler(stores.Subjects, stores.Attendance, stores.Tasks, stores.Topics)

	result, err := handler.Handle(context.Background(), GetActionPlanQuery{Now: testNow})
	require.NoError(t, err)

	// Math at 50% -> critical attendance alert; overdue task alert.
	require.NotEmpty(t, result.Recommendations)
	assert.Equal(t, 95, result.Recommendations[0].Priority)
	assert.Equal(t, insights.RecommendationAttendance, result.Recommendations[0].Type)

	var hasTaskAlert bool
	for _, r := range result.Recommendations {
		if r.Type == insights.RecommendationTask {
			hasTaskAlert = true
		}
	}
	assert.True(t, hasTaskAlert)
}

func TestGetPerformanceHandler(t *testing.T) {
	stores := seedStores(t)
	handler := NewGetPerformanceHandler(stores.Subjects, stores.Attendance, stores.Tasks)

	result, err := handler.Handle(context.Background())
	require.NoError(t, err)

	// Math 50%, Physics 100% -> average 75.
	assert.Equal(t, 75, result.Index.Attendance)
	assert.Equal(t, 0, result.Index.TaskCompletion)
	assert.NotEmpty(t, result.Index.Level)
}

func TestGetRiskHandler(t *testing.T) {
	stores := seedStores(t)
	handler := NewGetRiskHandler(stores.Subjects, stores.Attendance, stores.Tasks)

	result, err := handler.Handle(context.Background())
	require.NoError(t, err)

	// Average attendance 75, one pending task: low risk.
	assert.Equal(t, insights.RiskLow, result.Assessment.Level)
}

func TestGetProductivityHandler(t *testing.T) {
	stores := seedStores(t)
	handler := NewGetProductivityHandler(stores.Subjects, stores.Attendance, stores.Tasks)

	result, err := handler.Handle(context.Background(), GetProductivityQuery{Now: testNow})
	require.NoError(t, err)

	assert.Equal(t, 75, result.Metrics.AttendanceRate)
	assert.Contains(t, result.Metrics.SubjectPerformance, "Math")
	assert.Contains(t, result.Metrics.SubjectPerformance, "Physics")
}

func TestGetWeeklyPlanHandler_GeneratesWhenNoWeekGiven(t *testing.T) {
	stores := seedStores(t)
	handler := NewGetWeeklyPlanHandler(stores.Subjects, stores.Tasks, stores.Plans)

	result, err := handler.Handle(context.Background(), GetWeeklyPlanQuery{Now: testNow})
	require.NoError(t, err)

	assert.False(t, result.Saved)
	assert.Equal(t, "2026-03-08", result.Plan.WeekOf)

	// Generation must not persist anything.
	plans, err := stores.Plans.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, plans)
}

func TestGetWeeklyPlanHandler_FetchesSavedPlan(t *testing.T) {
	ctx := context.Background()
	stores := seedStores(t)
	saved := planner.GenerateWeeklyPlan(testNow, nil, nil)
	require.NoError(t, stores.Plans.Append(ctx, saved))

	handler := NewGetWeeklyPlanHandler(stores.Subjects, stores.Tasks, stores.Plans)

	result, err := handler.Handle(ctx, GetWeeklyPlanQuery{WeekOf: "2026-03-08"})
	require.NoError(t, err)
	assert.True(t, result.Saved)
	assert.Equal(t, "2026-03-08", result.Plan.WeekOf)

	_, err = handler.Handle(ctx, GetWeeklyPlanQuery{WeekOf: "2026-01-04"})
	assert.ErrorIs(t, err, shared.ErrNotFound)

	_, err = handler.Handle(ctx, GetWeeklyPlanQuery{WeekOf: "not a date"})
	assert.ErrorIs(t, err, shared.ErrInvalidWeekKey)
}

func TestGetAttendanceSummaryHandler(t *testing.T) {
	stores := seedStores(t)
	handler := NewGetAttendanceSummaryHandler(stores.Subjects, stores.Attendance)

	result, err := handler.Handle(context.Background())
	require.NoError(t, err)

	require.Len(t, result.BySubject, 2)
	assert.Equal(t, "Math", result.BySubject[0].Name)
	assert.Equal(t, 1, result.BySubject[0].Present)
	assert.Equal(t, 2, result.BySubject[0].Total)
	assert.Equal(t, shared.Percentage(50), result.BySubject[0].Percentage)

	// Overall: 4 scheduled entries, 3 present.
	assert.Equal(t, 4, result.Overall.Total)
	assert.Equal(t, 3, result.Overall.Present)
}

func TestGetProfileHandler_MissingProfile(t *testing.T) {
	stores := persistence.NewStores(memory.NewStore())
	handler := NewGetProfileHandler(stores.Profile)

	result, err := handler.Handle(context.Background())
	require.NoError(t, err)

	assert.False(t, result.Exists)
	assert.Equal(t, shared.Percentage(0), result.ProgressToNextLevel)
	require.NotEmpty(t, result.Badges)
	for _, b := range result.Badges {
		assert.False(t, b.Unlocked)
	}
}
