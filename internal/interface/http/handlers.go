package http

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/edutrack-hub/edutrack/internal/application/command"
	"github.com/edutrack-hub/edutrack/internal/application/query"
	"github.com/edutrack-hub/edutrack/internal/domain/attendance"
	"github.com/edutrack-hub/edutrack/internal/domain/shared"
	"github.com/edutrack-hub/edutrack/internal/domain/topic"
	"github.com/edutrack-hub/edutrack/internal/infrastructure/archive"
	"github.com/edutrack-hub/edutrack/pkg/logger"
)

// ══════════════════════════════════════════════════════════════════════════════
// HEALTH & STATUS HANDLERS
// ══════════════════════════════════════════════════════════════════════════════

// handleRoot serves the root endpoint with basic API information.
func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	info := map[string]interface{}{
		"name":        "EduTrack API",
		"version":     "v1",
		"description": "REST API for EduTrack - personal academic tracker",
		"endpoints": map[string]string{
			"health":       "/health",
			"action_plan":  "/api/v1/insights/action-plan",
			"performance":  "/api/v1/insights/performance",
			"risk":         "/api/v1/insights/risk",
			"productivity": "/api/v1/insights/productivity",
			"weekly_plan":  "/api/v1/plans/weekly",
			"attendance":   "/api/v1/attendance/summary",
			"profile":      "/api/v1/profile",
		},
	}

	writeJSON(w, http.StatusOK, info)
}

// handleHealth handles the health check endpoint.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if s.deps.HealthChecker != nil {
		status := s.deps.HealthChecker.Check(r.Context())
		if !status.Healthy {
			writeJSON(w, http.StatusServiceUnavailable, status)
			return
		}
		writeJSON(w, http.StatusOK, status)
		return
	}

	// Default health response
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "healthy",
		"uptime":  s.Uptime().String(),
		"version": "v1",
	})
}

// handleReady handles the readiness probe endpoint (for Kubernetes).
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if s.deps.HealthChecker != nil {
		status := s.deps.HealthChecker.Check(r.Context())
		if !status.Ready {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status": "not_ready",
				"reason": status.Message,
			})
			return
		}
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

// handleLive handles the liveness probe endpoint (for Kubernetes).
func (s *Server) handleLive(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "alive"})
}

// ══════════════════════════════════════════════════════════════════════════════
// INSIGHTS HANDLERS
// ══════════════════════════════════════════════════════════════════════════════

// handleGetActionPlan handles GET /api/v1/insights/action-plan
func (s *Server) handleGetActionPlan(w http.ResponseWriter, r *http.Request) {
	result, err := s.deps.ActionPlanHandler.Handle(r.Context(), query.GetActionPlanQuery{})
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// handleGetPerformance handles GET /api/v1/insights/performance
func (s *Server) handleGetPerformance(w http.ResponseWriter, r *http.Request) {
	result, err := s.deps.PerformanceHandler.Handle(r.Context())
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// handleGetRisk handles GET /api/v1/insights/risk
func (s *Server) handleGetRisk(w http.ResponseWriter, r *http.Request) {
	result, err := s.deps.RiskHandler.Handle(r.Context())
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// handleGetProductivity handles GET /api/v1/insights/productivity
func (s *Server) handleGetProductivity(w http.ResponseWriter, r *http.Request) {
	result, err := s.deps.ProductivityHandler.Handle(r.Context(), query.GetProductivityQuery{})
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// ══════════════════════════════════════════════════════════════════════════════
// WEEKLY PLAN HANDLERS
// ══════════════════════════════════════════════════════════════════════════════

// handleGetWeeklyPlan handles GET /api/v1/plans/weekly?week=yyyy-MM-dd
func (s *Server) handleGetWeeklyPlan(w http.ResponseWriter, r *http.Request) {
	q := query.GetWeeklyPlanQuery{
		WeekOf: r.URL.Query().Get("week"),
	}

	result, err := s.deps.WeeklyPlanHandler.Handle(r.Context(), q)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// handleSaveWeeklyPlan handles POST /api/v1/plans/weekly
func (s *Server) handleSaveWeeklyPlan(w http.ResponseWriter, r *http.Request) {
	plan, err := s.deps.PlanCommands.Save(r.Context(), command.SaveWeeklyPlanCommand{})
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, plan)
}

// ══════════════════════════════════════════════════════════════════════════════
// SUBJECT HANDLERS
// ══════════════════════════════════════════════════════════════════════════════

type subjectRequest struct {
	Name          string     `json:"name"`
	Color         string     `json:"color"`
	ExamDate      *time.Time `json:"examDate"`
	ClearExamDate bool       `json:"clearExamDate"`
}

// handleListSubjects handles GET /api/v1/subjects
func (s *Server) handleListSubjects(w http.ResponseWriter, r *http.Request) {
	subjects, err := s.deps.ListSubjectsHandler.Handle(r.Context())
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, subjects)
}

// handleCreateSubject handles POST /api/v1/subjects
func (s *Server) handleCreateSubject(w http.ResponseWriter, r *http.Request) {
	var req subjectRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}

	created, err := s.deps.SubjectCommands.Create(r.Context(), command.CreateSubjectCommand{
		Name:     req.Name,
		Color:    req.Color,
		ExamDate: req.ExamDate,
	})
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// handleUpdateSubject handles PUT /api/v1/subjects/{id}
func (s *Server) handleUpdateSubject(w http.ResponseWriter, r *http.Request) {
	var req subjectRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}

	updated, err := s.deps.SubjectCommands.Update(r.Context(), command.UpdateSubjectCommand{
		ID:            shared.ID(r.PathValue("id")),
		Name:          req.Name,
		Color:         req.Color,
		ExamDate:      req.ExamDate,
		ClearExamDate: req.ClearExamDate,
	})
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// handleDeleteSubject handles DELETE /api/v1/subjects/{id}
func (s *Server) handleDeleteSubject(w http.ResponseWriter, r *http.Request) {
	err := s.deps.SubjectCommands.Delete(r.Context(), command.DeleteSubjectCommand{
		ID: shared.ID(r.PathValue("id")),
	})
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// ══════════════════════════════════════════════════════════════════════════════
// TIMETABLE HANDLERS
// ══════════════════════════════════════════════════════════════════════════════

// handleGetTimetable handles GET /api/v1/timetable
func (s *Server) handleGetTimetable(w http.ResponseWriter, r *http.Request) {
	result, err := s.deps.TimetableHandler.Handle(r.Context())
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// handleAddTimetableEntry handles POST /api/v1/timetable
func (s *Server) handleAddTimetableEntry(w http.ResponseWriter, r *http.Request) {
	var req struct {
		SubjectID string `json:"subjectId"`
		DayOfWeek int    `json:"dayOfWeek"`
		StartTime string `json:"startTime"`
		EndTime   string `json:"endTime"`
	}
	if !s.decodeJSON(w, r, &req) {
		return
	}

	entry, err := s.deps.TimetableCommands.Add(r.Context(), command.AddTimetableEntryCommand{
		SubjectID: shared.ID(req.SubjectID),
		DayOfWeek: req.DayOfWeek,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
	})
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, entry)
}

// handleDeleteTimetableEntry handles DELETE /api/v1/timetable/{id}
func (s *Server) handleDeleteTimetableEntry(w http.ResponseWriter, r *http.Request) {
	err := s.deps.TimetableCommands.Delete(r.Context(), command.DeleteTimetableEntryCommand{
		ID: shared.ID(r.PathValue("id")),
	})
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// ══════════════════════════════════════════════════════════════════════════════
// ATTENDANCE HANDLERS
// ══════════════════════════════════════════════════════════════════════════════

// handleGetAttendanceSummary handles GET /api/v1/attendance/summary
func (s *Server) handleGetAttendanceSummary(w http.ResponseWriter, r *http.Request) {
	result, err := s.deps.AttendanceSummaryHandler.Handle(r.Context())
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// handleMarkAttendance handles POST /api/v1/attendance/mark
func (s *Server) handleMarkAttendance(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Date      time.Time `json:"date"`
		SubjectID string    `json:"subjectId"`
		Status    string    `json:"status"`
	}
	if !s.decodeJSON(w, r, &req) {
		return
	}

	record, err := s.deps.AttendanceCommands.Mark(r.Context(), command.MarkAttendanceCommand{
		Date:      req.Date,
		SubjectID: shared.ID(req.SubjectID),
		Status:    attendance.Status(req.Status),
	})
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, record)
}

// handleAddExtraClass handles POST /api/v1/attendance/extra
func (s *Server) handleAddExtraClass(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Date   time.Time `json:"date"`
		Status string    `json:"status"`
	}
	if !s.decodeJSON(w, r, &req) {
		return
	}

	record, err := s.deps.AttendanceCommands.AddExtraClass(r.Context(), command.AddExtraClassCommand{
		Date:   req.Date,
		Status: attendance.Status(req.Status),
	})
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, record)
}

// ══════════════════════════════════════════════════════════════════════════════
// TASK HANDLERS
// ══════════════════════════════════════════════════════════════════════════════

// handleListTasks handles GET /api/v1/tasks
func (s *Server) handleListTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := s.deps.ListTasksHandler.Handle(r.Context())
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, tasks)
}

// handleCreateTask handles POST /api/v1/tasks
func (s *Server) handleCreateTask(w http.ResponseWriter, r *http.Request) {
	var req struct {
		SubjectID   string    `json:"subjectId"`
		Description string    `json:"description"`
		TargetDate  time.Time `json:"targetDate"`
	}
	if !s.decodeJSON(w, r, &req) {
		return
	}

	created, err := s.deps.TaskCommands.Create(r.Context(), command.CreateTaskCommand{
		SubjectID:   shared.ID(req.SubjectID),
		Description: req.Description,
		TargetDate:  req.TargetDate,
	})
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// handleCompleteTask handles POST /api/v1/tasks/{id}/complete
func (s *Server) handleCompleteTask(w http.ResponseWriter, r *http.Request) {
	completed, err := s.deps.TaskCommands.Complete(r.Context(), command.CompleteTaskCommand{
		ID: shared.ID(r.PathValue("id")),
	})
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, completed)
}

// handleDeleteTask handles DELETE /api/v1/tasks/{id}
func (s *Server) handleDeleteTask(w http.ResponseWriter, r *http.Request) {
	err := s.deps.TaskCommands.Delete(r.Context(), command.DeleteTaskCommand{
		ID: shared.ID(r.PathValue("id")),
	})
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// ══════════════════════════════════════════════════════════════════════════════
// TOPIC HANDLERS
// ══════════════════════════════════════════════════════════════════════════════

// handleListTopics handles GET /api/v1/topics
func (s *Server) handleListTopics(w http.ResponseWriter, r *http.Request) {
	topics, err := s.deps.ListTopicsHandler.Handle(r.Context())
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, topics)
}

// handleCreateTopic handles POST /api/v1/topics
func (s *Server) handleCreateTopic(w http.ResponseWriter, r *http.Request) {
	var req struct {
		SubjectID  string `json:"subjectId"`
		Name       string `json:"name"`
		Difficulty string `json:"difficulty"`
	}
	if !s.decodeJSON(w, r, &req) {
		return
	}

	created, err := s.deps.TopicCommands.Create(r.Context(), command.CreateTopicCommand{
		SubjectID:  shared.ID(req.SubjectID),
		Name:       req.Name,
		Difficulty: topic.Difficulty(req.Difficulty),
	})
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// handleUpdateTopicStatus handles PUT /api/v1/topics/{id}/status
func (s *Server) handleUpdateTopicStatus(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Status string `json:"status"`
	}
	if !s.decodeJSON(w, r, &req) {
		return
	}

	updated, err := s.deps.TopicCommands.UpdateStatus(r.Context(), command.UpdateTopicStatusCommand{
		ID:     shared.ID(r.PathValue("id")),
		Status: topic.Status(req.Status),
	})
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// handleDeleteTopic handles DELETE /api/v1/topics/{id}
func (s *Server) handleDeleteTopic(w http.ResponseWriter, r *http.Request) {
	err := s.deps.TopicCommands.Delete(r.Context(), command.DeleteTopicCommand{
		ID: shared.ID(r.PathValue("id")),
	})
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// ══════════════════════════════════════════════════════════════════════════════
// FOCUS & PROFILE HANDLERS
// ══════════════════════════════════════════════════════════════════════════════

// handleRecordFocusSession handles POST /api/v1/focus/sessions
func (s *Server) handleRecordFocusSession(w http.ResponseWriter, r *http.Request) {
	var req struct {
		DurationMinutes int    `json:"durationMinutes"`
		SubjectID       string `json:"subjectId"`
	}
	if !s.decodeJSON(w, r, &req) {
		return
	}

	result, err := s.deps.FocusCommands.Record(r.Context(), command.RecordFocusSessionCommand{
		DurationMinutes: req.DurationMinutes,
		SubjectID:       shared.ID(req.SubjectID),
	})
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, result)
}

// handleGetProfile handles GET /api/v1/profile
func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	result, err := s.deps.ProfileHandler.Handle(r.Context())
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// ══════════════════════════════════════════════════════════════════════════════
// EXPORT / IMPORT HANDLERS
// ══════════════════════════════════════════════════════════════════════════════

// handleExport handles POST /api/v1/export. The response body is the archive
// itself, not a JSON envelope, so the dashboard can offer it as a download.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Password string `json:"password"`
		Format   string `json:"format"`
	}
	if !s.decodeJSON(w, r, &req) {
		return
	}

	snap, err := archive.CollectSnapshot(r.Context(), s.deps.Stores)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}

	now := time.Now().UTC()
	var data []byte
	var contentType, fileName string
	switch req.Format {
	case "", "json":
		data, err = archive.ExportJSON(snap, now, req.Password)
		contentType = "application/json"
		fileName = fmt.Sprintf("edutrack-export-%s.json", now.Format("2006-01-02"))
	case "zip":
		data, err = archive.ExportZip(snap, now, req.Password)
		contentType = "application/zip"
		fileName = fmt.Sprintf("edutrack-export-%s.zip", now.Format("2006-01-02"))
	default:
		writeJSONError(w, http.StatusBadRequest, "invalid_request", "format must be json or zip")
		return
	}
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fileName))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// handleImport handles POST /api/v1/import. The request body is the raw
// archive (JSON or zip); an optional X-Archive-Password header unlocks
// encrypted archives. Imported collections replace the stored ones.
func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_request", "Failed to read request body")
		return
	}
	defer r.Body.Close()

	snap, err := archive.Import(body, r.Header.Get("X-Archive-Password"))
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}

	if err := archive.RestoreSnapshot(r.Context(), s.deps.Stores, snap); err != nil {
		s.writeDomainError(w, r, err)
		return
	}

	s.logger.Info("archive imported",
		logger.Int("subjects", len(snap.Subjects)),
		logger.Int("tasks", len(snap.Tasks)),
		logger.Int("attendance_days", len(snap.Attendance)),
		logger.String("request_id", getRequestID(r.Context())),
	)

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":         "imported",
		"subjects":       len(snap.Subjects),
		"timetable":      len(snap.Timetable),
		"attendanceDays": len(snap.Attendance),
		"tasks":          len(snap.Tasks),
		"topics":         len(snap.Topics),
		"focusLogs":      len(snap.FocusLogs),
		"plans":          len(snap.Plans),
	})
}

// ══════════════════════════════════════════════════════════════════════════════
// REQUEST DECODING
// ══════════════════════════════════════════════════════════════════════════════

// decodeJSON decodes the request body into dest. On failure it writes a 400
// response and returns false.
func (s *Server) decodeJSON(w http.ResponseWriter, r *http.Request, dest interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dest); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_json", "Request body must be valid JSON")
		return false
	}
	return true
}
