package insights

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edutrack-hub/edutrack/internal/domain/attendance"
	"github.com/edutrack-hub/edutrack/internal/domain/shared"
	"github.com/edutrack-hub/edutrack/internal/domain/subject"
	"github.com/edutrack-hub/edutrack/internal/domain/task"
	"github.com/edutrack-hub/edutrack/internal/domain/topic"
)

var testNow = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

func newSubject(id, name string) *subject.Subject {
	return &subject.Subject{ID: shared.ID(id), Name: name, CreatedAt: testNow}
}

func newSubjectWithExam(id, name string, examInDays int) *subject.Subject {
	s := newSubject(id, name)
	exam := testNow.AddDate(0, 0, examInDays)
	s.ExamDate = &exam
	return s
}

func pendingTask(id, desc string, dueInDays int) *task.StudyTask {
	return &task.StudyTask{
		ID:          shared.ID(id),
		Description: desc,
		TargetDate:  testNow.AddDate(0, 0, dueInDays),
		Status:      task.StatusPending,
		CreatedAt:   testNow,
	}
}

func statsOf(present, total int) attendance.SubjectStats {
	return attendance.SubjectStats{Present: present, Total: total, Percentage: shared.Ratio(present, total)}
}

func findByID(t *testing.T, recs []Recommendation, id string) Recommendation {
	t.Helper()
	for _, r := range recs {
		if r.ID == id {
			return r
		}
	}
	t.Fatalf("recommendation %q not found in %v", id, recs)
	return Recommendation{}
}

func TestGenerateDailyActionPlan_AttendanceAlerts(t *testing.T) {
	tests := []struct {
		name         string
		present      int
		total        int
		wantEmitted  bool
		wantPriority int
	}{
		{"critical below 60", 5, 10, true, 95},
		{"warning between 60 and 75", 7, 10, true, 85},
		{"boundary 74 percent", 74, 100, true, 85},
		{"safe at 75", 75, 100, false, 0},
		{"safe above 75", 9, 10, false, 0},
		{"no classes recorded yet", 0, 0, true, 95},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			subjects := []*subject.Subject{newSubject("sub-math", "Math")}
			stats := map[shared.ID]attendance.SubjectStats{
				"sub-math": statsOf(tt.present, tt.total),
			}

			recs := GenerateDailyActionPlan(testNow, subjects, nil, stats, nil)

			var alert *Recommendation
			for i := range recs {
				if recs[i].Type == RecommendationAttendance {
					alert = &recs[i]
				}
			}
			if !tt.wantEmitted {
				assert.Nil(t, alert)
				return
			}
			require.NotNil(t, alert)
			assert.Equal(t, tt.wantPriority, alert.Priority)
			assert.Equal(t, "attendance-sub-math", alert.ID)
			assert.Contains(t, alert.Description, "Math")
		})
	}
}

func TestGenerateDailyActionPlan_AttendanceAlertWithoutStatsEntry(t *testing.T) {
	subjects := []*subject.Subject{newSubject("sub-chem", "Chemistry")}

	recs := GenerateDailyActionPlan(testNow, subjects, nil, nil, nil)

	alert := findByID(t, recs, "attendance-sub-chem")
	assert.Equal(t, RecommendationAttendance, alert.Type)
	assert.Equal(t, 95, alert.Priority, "zero attendance is below the critical threshold")
}

func TestGenerateDailyActionPlan_UrgentTasks(t *testing.T) {
	tasks := []*task.StudyTask{
		pendingTask("t-overdue", "Finish assignment 3", -1),
		pendingTask("t-today", "Revise chapter 5", 0),
		pendingTask("t-tomorrow", "Solve problem set", 1),
		pendingTask("t-later", "Read ahead", 4),
	}
	completed := pendingTask("t-done", "Old homework", -3)
	require.NoError(t, completed.Complete(testNow))
	tasks = append(tasks, completed)

	recs := GenerateDailyActionPlan(testNow, nil, tasks, nil, nil)

	overdue := findByID(t, recs, "task-t-overdue")
	assert.Equal(t, 90, overdue.Priority)
	assert.Equal(t, "Overdue task", overdue.Title)

	today := findByID(t, recs, "task-t-today")
	assert.Equal(t, 80, today.Priority)
	assert.Contains(t, today.Title, "today")

	tomorrow := findByID(t, recs, "task-t-tomorrow")
	assert.Equal(t, 80, tomorrow.Priority)
	assert.Contains(t, tomorrow.Title, "tomorrow")

	for _, r := range recs {
		assert.NotEqual(t, "task-t-later", r.ID, "task 4 days out must not alert")
		assert.NotEqual(t, "task-t-done", r.ID, "completed tasks must not alert")
	}
}

func TestGenerateDailyActionPlan_ExamPreparation(t *testing.T) {
	tests := []struct {
		days         int
		wantEmitted  bool
		wantPriority int
	}{
		{0, false, 0},  // exam today is out of the window
		{1, true, 92},
		{3, true, 92},
		{4, true, 82},
		{7, true, 82},
		{8, true, 70},
		{14, true, 70},
		{15, false, 0},
		{-2, false, 0}, // past exam
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("exam in %d days", tt.days), func(t *testing.T) {
			subjects := []*subject.Subject{newSubjectWithExam("sub-phy", "Physics", tt.days)}
			recs := GenerateDailyActionPlan(testNow, subjects, nil, nil, nil)

			var exam *Recommendation
			for i := range recs {
				if recs[i].Type == RecommendationExam {
					exam = &recs[i]
				}
			}
			if !tt.wantEmitted {
				assert.Nil(t, exam)
				return
			}
			require.NotNil(t, exam)
			assert.Equal(t, tt.wantPriority, exam.Priority)
		})
	}
}

func TestGenerateDailyActionPlan_ExamDescriptionCountsTopics(t *testing.T) {
	subjects := []*subject.Subject{newSubjectWithExam("sub-phy", "Physics", 3)}
	topics := []*topic.Topic{
		{ID: "tp-1", SubjectID: "sub-phy", Name: "Optics", Difficulty: topic.DifficultyHard, Status: topic.StatusPending},
		{ID: "tp-2", SubjectID: "sub-phy", Name: "Waves", Difficulty: topic.DifficultyEasy, Status: topic.StatusRevision},
		{ID: "tp-3", SubjectID: "sub-phy", Name: "Units", Difficulty: topic.DifficultyEasy, Status: topic.StatusMastered},
		{ID: "tp-4", SubjectID: "sub-other", Name: "Algebra", Difficulty: topic.DifficultyHard, Status: topic.StatusPending},
	}

	recs := GenerateDailyActionPlan(testNow, subjects, nil, nil, topics)
	exam := findByID(t, recs, "exam-sub-phy")

	assert.Equal(t, 92, exam.Priority)
	assert.Contains(t, exam.Description, "2 topics left")
	assert.Contains(t, exam.Description, "including 1 hard")
}

func TestGenerateDailyActionPlan_BacklogRecovery(t *testing.T) {
	topics := []*topic.Topic{
		{ID: "tp-easy", SubjectID: "sub-a", Name: "Sets", Difficulty: topic.DifficultyEasy, Status: topic.StatusPending},
		{ID: "tp-hard-1", SubjectID: "sub-a", Name: "Graphs", Difficulty: topic.DifficultyHard, Status: topic.StatusPending},
		{ID: "tp-hard-2", SubjectID: "sub-a", Name: "Trees", Difficulty: topic.DifficultyHard, Status: topic.StatusPending},
		{ID: "tp-mastered", SubjectID: "sub-a", Name: "Arrays", Difficulty: topic.DifficultyHard, Status: topic.StatusMastered},
	}

	recs := GenerateDailyActionPlan(testNow, nil, nil, nil, topics)

	require.Len(t, recs, 1)
	assert.Equal(t, RecommendationTopic, recs[0].Type)
	assert.Equal(t, 60, recs[0].Priority)
	// Ties on weight break by collection order: the first hard topic wins.
	assert.Equal(t, "topic-tp-hard-1", recs[0].ID)
}

func TestGenerateDailyActionPlan_BacklogOnlyWhenFewerThanThree(t *testing.T) {
	subjects := []*subject.Subject{
		newSubject("sub-a", "A"),
		newSubject("sub-b", "B"),
		newSubject("sub-c", "C"),
	}
	stats := map[shared.ID]attendance.SubjectStats{
		"sub-a": statsOf(1, 10),
		"sub-b": statsOf(1, 10),
		"sub-c": statsOf(1, 10),
	}
	topics := []*topic.Topic{
		{ID: "tp-1", SubjectID: "sub-a", Name: "Sets", Difficulty: topic.DifficultyHard, Status: topic.StatusPending},
	}

	recs := GenerateDailyActionPlan(testNow, subjects, nil, stats, topics)

	assert.Len(t, recs, 3)
	for _, r := range recs {
		assert.NotEqual(t, RecommendationTopic, r.Type)
	}
}

func TestGenerateDailyActionPlan_HabitFallback(t *testing.T) {
	recs := GenerateDailyActionPlan(testNow, nil, nil, nil, nil)

	require.Len(t, recs, 1)
	assert.Equal(t, "habit-streak", recs[0].ID)
	assert.Equal(t, 50, recs[0].Priority)
}

func TestGenerateDailyActionPlan_SortedByDescendingPriority(t *testing.T) {
	subjects := []*subject.Subject{
		newSubject("sub-math", "Math"),
		newSubjectWithExam("sub-phy", "Physics", 10),
	}
	stats := map[shared.ID]attendance.SubjectStats{
		"sub-math": statsOf(5, 10), // 50% -> 95
		"sub-phy":  statsOf(7, 10), // 70% -> 85
	}
	tasks := []*task.StudyTask{
		pendingTask("t-1", "Overdue homework", -2), // 90
		pendingTask("t-2", "Due tomorrow", 1),      // 80
	}

	recs := GenerateDailyActionPlan(testNow, subjects, tasks, stats, nil)

	require.Len(t, recs, 5)
	for i := 1; i < len(recs); i++ {
		assert.GreaterOrEqual(t, recs[i-1].Priority, recs[i].Priority,
			"priorities must be non-increasing")
	}
	assert.Equal(t, []int{95, 90, 85, 80, 70}, []int{
		recs[0].Priority, recs[1].Priority, recs[2].Priority, recs[3].Priority, recs[4].Priority,
	})
}

func TestGenerateDailyActionPlan_Deterministic(t *testing.T) {
	subjects := []*subject.Subject{newSubject("sub-math", "Math")}
	stats := map[shared.ID]attendance.SubjectStats{"sub-math": statsOf(5, 10)}
	tasks := []*task.StudyTask{pendingTask("t-1", "Overdue homework", -2)}

	first := GenerateDailyActionPlan(testNow, subjects, tasks, stats, nil)
	second := GenerateDailyActionPlan(testNow, subjects, tasks, stats, nil)
	assert.Equal(t, first, second)
}
