package topic

import (
	"context"

	"github.com/edutrack-hub/edutrack/internal/domain/shared"
)

// Repository defines the storage contract for topics.
type Repository interface {
	// List returns all topics in insertion order.
	List(ctx context.Context) ([]*Topic, error)

	// GetByID returns a topic by id.
	// Returns shared.ErrTopicNotFound if the topic does not exist.
	GetByID(ctx context.Context, id shared.ID) (*Topic, error)

	// Save creates or replaces a topic (last write wins).
	Save(ctx context.Context, t *Topic) error

	// Delete removes a topic.
	Delete(ctx context.Context, id shared.ID) error
}
