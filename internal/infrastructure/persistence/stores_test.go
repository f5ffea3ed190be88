package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edutrack-hub/edutrack/internal/domain/attendance"
	"github.com/edutrack-hub/edutrack/internal/domain/focus"
	"github.com/edutrack-hub/edutrack/internal/domain/planner"
	"github.com/edutrack-hub/edutrack/internal/domain/profile"
	"github.com/edutrack-hub/edutrack/internal/domain/shared"
	"github.com/edutrack-hub/edutrack/internal/domain/subject"
	"github.com/edutrack-hub/edutrack/internal/domain/task"
	"github.com/edutrack-hub/edutrack/internal/domain/topic"
	"github.com/edutrack-hub/edutrack/internal/infrastructure/persistence/memory"
)

func newTestStores() *Stores {
	return NewStores(memory.NewStore())
}

func TestSubjectStore_CRUD(t *testing.T) {
	ctx := context.Background()
	stores := newTestStores()

	subjects, err := stores.Subjects.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, subjects)

	math := &subject.Subject{ID: "s-1", Name: "Math", Color: "#ff0000"}
	phy := &subject.Subject{ID: "s-2", Name: "Physics"}
	require.NoError(t, stores.Subjects.Save(ctx, math))
	require.NoError(t, stores.Subjects.Save(ctx, phy))

	subjects, err = stores.Subjects.List(ctx)
	require.NoError(t, err)
	require.Len(t, subjects, 2)
	assert.Equal(t, "Math", subjects[0].Name, "insertion order preserved")

	got, err := stores.Subjects.GetByID(ctx, "s-2")
	require.NoError(t, err)
	assert.Equal(t, "Physics", got.Name)

	// Save with the same id replaces in place.
	math.Name = "Mathematics"
	require.NoError(t, stores.Subjects.Save(ctx, math))
	subjects, err = stores.Subjects.List(ctx)
	require.NoError(t, err)
	require.Len(t, subjects, 2)
	assert.Equal(t, "Mathematics", subjects[0].Name)

	require.NoError(t, stores.Subjects.Delete(ctx, "s-1"))
	_, err = stores.Subjects.GetByID(ctx, "s-1")
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestAttendanceStore_SaveReplacesSameDay(t *testing.T) {
	ctx := context.Background()
	stores := newTestStores()
	day := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	record := attendance.NewDailyAttendance(day)
	require.NoError(t, record.Mark("s-1", attendance.StatusPresent))
	require.NoError(t, stores.Attendance.Save(ctx, record))

	// Second save for the same day replaces, even with a different clock time.
	updated := attendance.NewDailyAttendance(day.Add(14 * time.Hour))
	require.NoError(t, updated.Mark("s-1", attendance.StatusAbsent))
	require.NoError(t, stores.Attendance.Save(ctx, updated))

	records, err := stores.Attendance.List(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, attendance.StatusAbsent, records[0].Subjects.Get("s-1"))

	got, err := stores.Attendance.GetByDate(ctx, day)
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusAbsent, got.Subjects.Get("s-1"))

	_, err = stores.Attendance.GetByDate(ctx, day.AddDate(0, 0, 1))
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestTaskStore_RoundTripPreservesCompletion(t *testing.T) {
	ctx := context.Background()
	stores := newTestStores()
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	tk := &task.StudyTask{
		ID:          "t-1",
		SubjectID:   "s-1",
		Description: "Finish lab report",
		TargetDate:  now.AddDate(0, 0, 2),
		Status:      task.StatusPending,
		CreatedAt:   now,
	}
	require.NoError(t, stores.Tasks.Save(ctx, tk))
	require.NoError(t, tk.Complete(now))
	require.NoError(t, stores.Tasks.Save(ctx, tk))

	got, err := stores.Tasks.GetByID(ctx, "t-1")
	require.NoError(t, err)
	assert.True(t, got.IsCompleted())
	require.NotNil(t, got.CompletedAt)
	assert.True(t, got.CompletedAt.Equal(now))
}

func TestTopicStore_Delete(t *testing.T) {
	ctx := context.Background()
	stores := newTestStores()

	require.NoError(t, stores.Topics.Save(ctx, &topic.Topic{ID: "tp-1", SubjectID: "s-1", Name: "Optics"}))
	require.NoError(t, stores.Topics.Save(ctx, &topic.Topic{ID: "tp-2", SubjectID: "s-1", Name: "Waves"}))
	require.NoError(t, stores.Topics.Delete(ctx, "tp-1"))

	topics, err := stores.Topics.List(ctx)
	require.NoError(t, err)
	require.Len(t, topics, 1)
	assert.Equal(t, shared.ID("tp-2"), topics[0].ID)
}

func TestFocusLogStore_AppendOnly(t *testing.T) {
	ctx := context.Background()
	stores := newTestStores()
	day := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	first, err := focus.NewFocusLog(day, 25, "s-1")
	require.NoError(t, err)
	second, err := focus.NewFocusLog(day, 50, "s-1")
	require.NoError(t, err)

	require.NoError(t, stores.FocusLogs.Append(ctx, first))
	require.NoError(t, stores.FocusLogs.Append(ctx, second))

	logs, err := stores.FocusLogs.List(ctx)
	require.NoError(t, err)
	require.Len(t, logs, 2)
	assert.Equal(t, 25, logs[0].DurationMinutes)
	assert.Equal(t, 50, logs[1].DurationMinutes)
}

func TestProfileStore_GetBeforeSave(t *testing.T) {
	ctx := context.Background()
	stores := newTestStores()

	_, err := stores.Profile.Get(ctx)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	p := profile.NewUserProfile("Aruzhan")
	p.XP = 1500
	require.NoError(t, stores.Profile.Save(ctx, p))

	got, err := stores.Profile.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Aruzhan", got.Name)
	assert.Equal(t, profile.XP(1500), got.XP)
}

func TestPlanStore_DuplicateWeeksAllowed(t *testing.T) {
	ctx := context.Background()
	stores := newTestStores()
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	first := planner.GenerateWeeklyPlan(now, nil, nil)
	first.TotalEstimatedHours = 11
	second := planner.GenerateWeeklyPlan(now, nil, nil)
	second.TotalEstimatedHours = 22
	require.NoError(t, stores.Plans.Append(ctx, first))
	require.NoError(t, stores.Plans.Append(ctx, second))

	plans, err := stores.Plans.List(ctx)
	require.NoError(t, err)
	assert.Len(t, plans, 2, "no dedup by week")

	got, err := stores.Plans.GetByWeekOf(ctx, "2026-03-08")
	require.NoError(t, err)
	assert.Equal(t, "2026-03-08", got.WeekOf)
	assert.Equal(t, 11, got.TotalEstimatedHours, "lookup returns the first match in saved order")

	_, err = stores.Plans.GetByWeekOf(ctx, "2026-03-01")
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestTimetableStore_SaveAndDelete(t *testing.T) {
	ctx := context.Background()
	stores := newTestStores()

	entry := subject.TimetableEntry{ID: "tt-1", SubjectID: "s-1", DayOfWeek: 1, StartTime: "09:00", EndTime: "10:30"}
	require.NoError(t, stores.Timetable.Save(ctx, entry))

	entries, err := stores.Timetable.List(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	require.NoError(t, stores.Timetable.Delete(ctx, "tt-1"))
	entries, err = stores.Timetable.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
