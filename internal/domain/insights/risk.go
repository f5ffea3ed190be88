package insights

import (
	"github.com/edutrack-hub/edutrack/internal/domain/attendance"
	"github.com/edutrack-hub/edutrack/internal/domain/shared"
	"github.com/edutrack-hub/edutrack/internal/domain/subject"
	"github.com/edutrack-hub/edutrack/internal/domain/task"
)

// ═══════════════════════════════════════════════════════════════════════════
// RISK ASSESSMENT
// ═══════════════════════════════════════════════════════════════════════════

// RiskLevel is the coarse classification of academic jeopardy.
type RiskLevel string

const (
	RiskLow      RiskLevel = "low"
	RiskModerate RiskLevel = "moderate"
	RiskHigh     RiskLevel = "high"
)

// RiskAssessment carries the classified level and its fixed messaging.
type RiskAssessment struct {
	Level RiskLevel `json:"level"`

	// Factors names what pushed the student into this level.
	Factors []string `json:"factors"`

	// Warning is the fixed warning text for the level.
	Warning string `json:"warning"`

	// Recommendation is the fixed advice text for the level.
	Recommendation string `json:"recommendation"`
}

// Risk thresholds.
const (
	riskHighAttendancePercent     = 65
	riskModerateAttendancePercent = 75
	riskHighPendingTasks          = 5
)

// AssessRisk classifies academic risk from attendance and task backlog.
// Branches are mutually exclusive and evaluated high -> moderate -> low;
// the first match wins. Pure function, empty inputs degrade to zeros.
func AssessRisk(
	subjects []*subject.Subject,
	stats map[shared.ID]attendance.SubjectStats,
	tasks []*task.StudyTask,
) RiskAssessment {
	avgAttendance := averageAttendance(subjects, stats)
	pending := task.CountPending(tasks)

	switch {
	case avgAttendance < riskHighAttendancePercent || pending > riskHighPendingTasks:
		return RiskAssessment{
			Level: RiskHigh,
			Factors: []string{
				"Average attendance below 65% or more than 5 pending tasks",
			},
			Warning:        "Current attendance and backlog put eligibility and exam readiness at serious risk.",
			Recommendation: "Stop adding new work. Attend every remaining class and clear the oldest pending tasks first.",
		}
	case avgAttendance < riskModerateAttendancePercent:
		return RiskAssessment{
			Level: RiskModerate,
			Factors: []string{
				"Average attendance below 75%",
			},
			Warning:        "Attendance is drifting below the safe threshold.",
			Recommendation: "Attend the next classes consistently to rebuild the buffer above 75%.",
		}
	default:
		return RiskAssessment{
			Level: RiskLow,
			Factors: []string{
				"Attendance and task backlog are within safe bounds",
			},
			Warning:        "No immediate academic risk detected.",
			Recommendation: "Keep the current routine and review hard topics ahead of exams.",
		}
	}
}
