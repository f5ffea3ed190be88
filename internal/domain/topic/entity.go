// Package topic contains the topic mastery domain model: the syllabus units
// of a subject, each with a difficulty and a mastery status tracked
// independently of attendance and tasks.
package topic

import (
	"strings"

	"github.com/edutrack-hub/edutrack/internal/domain/shared"
)

// Difficulty classifies how hard a topic is to master.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// IsValid checks that the difficulty is one of the known values.
func (d Difficulty) IsValid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	default:
		return false
	}
}

// Weight returns the numeric weight used to rank topics by difficulty:
// hard 3, medium 2, easy 1.
func (d Difficulty) Weight() int {
	switch d {
	case DifficultyHard:
		return 3
	case DifficultyMedium:
		return 2
	case DifficultyEasy:
		return 1
	default:
		return 0
	}
}

// Status is the mastery state of a topic.
type Status string

const (
	// StatusPending - not studied yet.
	StatusPending Status = "pending"
	// StatusRevision - studied once, needs revision.
	StatusRevision Status = "revision"
	// StatusMastered - fully learned.
	StatusMastered Status = "mastered"
)

// IsValid checks that the status is one of the known values.
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusRevision, StatusMastered:
		return true
	default:
		return false
	}
}

// Topic represents one syllabus unit of a subject.
type Topic struct {
	// ID is the unique topic identifier.
	ID shared.ID `json:"id"`

	// SubjectID references the owning subject.
	SubjectID shared.ID `json:"subjectId"`

	// Name is the topic name, e.g. "Integration by parts".
	Name string `json:"name"`

	// Difficulty is easy, medium, or hard.
	Difficulty Difficulty `json:"difficulty"`

	// Status is pending, revision, or mastered.
	Status Status `json:"status"`
}

// NewTopicParams contains parameters for creating a topic.
type NewTopicParams struct {
	ID         shared.ID
	SubjectID  shared.ID
	Name       string
	Difficulty Difficulty
}

// NewTopic creates a pending topic with validation.
func NewTopic(params NewTopicParams) (*Topic, error) {
	if params.ID.IsEmpty() {
		return nil, shared.NewDomainError("topic", "Create", shared.ErrInvalidID, "topic id is required")
	}
	if strings.TrimSpace(params.Name) == "" {
		return nil, shared.NewDomainError("topic", "Create", shared.ErrEmptyValue, "topic name is required")
	}
	if !params.Difficulty.IsValid() {
		return nil, shared.ErrInvalidDifficulty
	}

	return &Topic{
		ID:         params.ID,
		SubjectID:  params.SubjectID,
		Name:       strings.TrimSpace(params.Name),
		Difficulty: params.Difficulty,
		Status:     StatusPending,
	}, nil
}

// IsMastered reports whether the topic is fully learned.
func (t *Topic) IsMastered() bool {
	return t.Status == StatusMastered
}

// UpdateStatus transitions the mastery status with validation.
func (t *Topic) UpdateStatus(status Status) error {
	if !status.IsValid() {
		return shared.ErrInvalidMasteryStatus
	}
	t.Status = status
	return nil
}

// ForSubject filters topics belonging to a subject, preserving order.
func ForSubject(topics []*Topic, subjectID shared.ID) []*Topic {
	var out []*Topic
	for _, t := range topics {
		if t.SubjectID == subjectID {
			out = append(out, t)
		}
	}
	return out
}

// CountNotMastered counts topics that still need work, and how many of those
// are hard.
func CountNotMastered(topics []*Topic) (remaining, hard int) {
	for _, t := range topics {
		if t.IsMastered() {
			continue
		}
		remaining++
		if t.Difficulty == DifficultyHard {
			hard++
		}
	}
	return remaining, hard
}
