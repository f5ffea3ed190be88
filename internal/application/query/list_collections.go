package query

import (
	"context"

	"github.com/edutrack-hub/edutrack/internal/domain/subject"
	"github.com/edutrack-hub/edutrack/internal/domain/task"
	"github.com/edutrack-hub/edutrack/internal/domain/topic"
)

// ══════════════════════════════════════════════════════════════════════════════
// COLLECTION LISTING QUERIES
// ══════════════════════════════════════════════════════════════════════════════
//
// Thin pass-through reads for the editing surfaces. They exist so the
// interface layer never touches repositories directly.

// ListSubjectsHandler lists all subjects in insertion order.
type ListSubjectsHandler struct {
	subjectRepo subject.Repository
}

// NewListSubjectsHandler creates the handler.
func NewListSubjectsHandler(subjectRepo subject.Repository) *ListSubjectsHandler {
	return &ListSubjectsHandler{subjectRepo: subjectRepo}
}

// Handle executes the query.
func (h *ListSubjectsHandler) Handle(ctx context.Context) ([]*subject.Subject, error) {
	return h.subjectRepo.List(ctx)
}

// ListTasksHandler lists all study tasks in insertion order.
type ListTasksHandler struct {
	taskRepo task.Repository
}

// NewListTasksHandler creates the handler.
func NewListTasksHandler(taskRepo task.Repository) *ListTasksHandler {
	return &ListTasksHandler{taskRepo: taskRepo}
}

// Handle executes the query.
func (h *ListTasksHandler) Handle(ctx context.Context) ([]*task.StudyTask, error) {
	return h.taskRepo.List(ctx)
}

// ListTopicsHandler lists all topics in insertion order.
type ListTopicsHandler struct {
	topicRepo topic.Repository
}

// NewListTopicsHandler creates the handler.
func NewListTopicsHandler(topicRepo topic.Repository) *ListTopicsHandler {
	return &ListTopicsHandler{topicRepo: topicRepo}
}

// Handle executes the query.
func (h *ListTopicsHandler) Handle(ctx context.Context) ([]*topic.Topic, error) {
	return h.topicRepo.List(ctx)
}
