package command

import (
	"context"

	"github.com/google/uuid"

	"github.com/edutrack-hub/edutrack/internal/domain/shared"
	"github.com/edutrack-hub/edutrack/internal/domain/topic"
)

// ══════════════════════════════════════════════════════════════════════════════
// TOPIC COMMANDS
// ══════════════════════════════════════════════════════════════════════════════

// CreateTopicCommand contains parameters for creating a topic.
type CreateTopicCommand struct {
	SubjectID  shared.ID
	Name       string
	Difficulty topic.Difficulty
}

// UpdateTopicStatusCommand transitions a topic's mastery status.
type UpdateTopicStatusCommand struct {
	ID     shared.ID
	Status topic.Status
}

// DeleteTopicCommand removes a topic.
type DeleteTopicCommand struct {
	ID shared.ID
}

// TopicHandler handles topic lifecycle commands.
type TopicHandler struct {
	topicRepo topic.Repository
}

// NewTopicHandler creates the handler.
func NewTopicHandler(topicRepo topic.Repository) *TopicHandler {
	return &TopicHandler{topicRepo: topicRepo}
}

// Create validates and stores a new pending topic.
func (h *TopicHandler) Create(ctx context.Context, cmd CreateTopicCommand) (*topic.Topic, error) {
	t, err := topic.NewTopic(topic.NewTopicParams{
		ID:         shared.ID(uuid.NewString()),
		SubjectID:  cmd.SubjectID,
		Name:       cmd.Name,
		Difficulty: cmd.Difficulty,
	})
	if err != nil {
		return nil, err
	}
	if err := h.topicRepo.Save(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

// UpdateStatus transitions the mastery status.
func (h *TopicHandler) UpdateStatus(ctx context.Context, cmd UpdateTopicStatusCommand) (*topic.Topic, error) {
	t, err := h.topicRepo.GetByID(ctx, cmd.ID)
	if err != nil {
		return nil, err
	}
	if err := t.UpdateStatus(cmd.Status); err != nil {
		return nil, err
	}
	if err := h.topicRepo.Save(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

// Delete removes the topic.
func (h *TopicHandler) Delete(ctx context.Context, cmd DeleteTopicCommand) error {
	if cmd.ID.IsEmpty() {
		return shared.NewDomainError("topic", "Delete", shared.ErrInvalidID, "topic id is required")
	}
	return h.topicRepo.Delete(ctx, cmd.ID)
}
