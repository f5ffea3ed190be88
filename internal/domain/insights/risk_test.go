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

func makePendingTasks(n int) []*task.StudyTask {
	tasks := make([]*task.StudyTask, 0, n)
	for i := 0; i < n; i++ {
		tasks = append(tasks, pendingTask(fmt.Sprintf("t-%d", i), "work", 5))
	}
	return tasks
}

func TestAssessRisk(t *testing.T) {
	tests := []struct {
		name    string
		present int
		total   int
		pending int
		want    RiskLevel
	}{
		{"low attendance is high risk", 6, 10, 0, RiskHigh},
		{"boundary 64 percent is high risk", 64, 100, 0, RiskHigh},
		{"big backlog is high risk despite attendance", 10, 10, 6, RiskHigh},
		{"attendance 65 to 74 is moderate", 7, 10, 0, RiskModerate},
		{"boundary 65 percent is moderate", 65, 100, 0, RiskModerate},
		{"healthy attendance is low risk", 9, 10, 0, RiskLow},
		{"boundary 75 percent is low risk", 75, 100, 0, RiskLow},
		{"five pending tasks is still low risk", 9, 10, 5, RiskLow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			subjects := []*subject.Subject{newSubject("sub-a", "Math")}
			stats := map[shared.ID]attendance.SubjectStats{
				"sub-a": statsOf(tt.present, tt.total),
			}

			got := AssessRisk(subjects, stats, makePendingTasks(tt.pending))

			assert.Equal(t, tt.want, got.Level)
			assert.NotEmpty(t, got.Factors)
			assert.NotEmpty(t, got.Warning)
			assert.NotEmpty(t, got.Recommendation)
		})
	}
}

func TestAssessRisk_EmptyInputsAreHighRisk(t *testing.T) {
	// No subjects means average attendance 0, which falls below the high
	// threshold.
	got := AssessRisk(nil, nil, nil)
	assert.Equal(t, RiskHigh, got.Level)
}
