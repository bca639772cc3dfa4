package models

import (
	"time"

	"github.com/google/uuid"
)

// IdeaStatus classifies where an idea is in its lifecycle.
type IdeaStatus string

const (
	IdeaStatusCaptured  IdeaStatus = "captured"
	IdeaStatusExploring IdeaStatus = "exploring"
	IdeaStatusPromoted  IdeaStatus = "promoted"
)

// ChatMessage is one turn of the idea-exploration transcript.
type ChatMessage struct {
	Role    string    `json:"role"`
	Content string    `json:"content"`
	SentAt  time.Time `json:"sentAt"`
}

// PRDCaptures buckets interesting fragments of the chat into the sections
// of a future product description.
type PRDCaptures struct {
	Overview []string `json:"overview"`
	Features []string `json:"features"`
	Users    []string `json:"users"`
	Screens  []string `json:"screens"`
	Data     []string `json:"data"`
	Design   []string `json:"design"`
}

// DefaultPRDCaptures returns capture buckets with all six sections empty.
// Used both by NewIdea and when the remote record carries no captures.
func DefaultPRDCaptures() PRDCaptures {
	return PRDCaptures{
		Overview: []string{},
		Features: []string{},
		Users:    []string{},
		Screens:  []string{},
		Data:     []string{},
		Design:   []string{},
	}
}

// Idea is a locally cached product idea, possibly promoted into a project.
// As with Project, every mutation must bump UpdatedAt via Touch.
type Idea struct {
	ID          string        `json:"id"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Tags        []string      `json:"tags"`
	Chat        []ChatMessage `json:"chat"`
	PRDCaptures PRDCaptures   `json:"prdCaptures"`
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`
	Status      IdeaStatus    `json:"status"`
	// ProjectID links to the project this idea was promoted into, if any.
	ProjectID string `json:"projectId"`
}

// NewIdea constructs a captured idea with a fresh id and stamped timestamps.
func NewIdea(title, description string) *Idea {
	now := time.Now().UTC()
	return &Idea{
		ID:          uuid.NewString(),
		Title:       title,
		Description: description,
		Tags:        []string{},
		Chat:        []ChatMessage{},
		PRDCaptures: DefaultPRDCaptures(),
		CreatedAt:   now,
		UpdatedAt:   now,
		Status:      IdeaStatusCaptured,
	}
}

// Touch bumps UpdatedAt. Call it after every local mutation.
func (i *Idea) Touch() {
	i.UpdatedAt = time.Now().UTC()
}

// EntityID returns the stable identifier used as the sync key.
func (i Idea) EntityID() string { return i.ID }

// ModifiedAt returns the last-write timestamp used for conflict resolution.
func (i Idea) ModifiedAt() time.Time { return i.UpdatedAt }
