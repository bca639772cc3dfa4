// Package models defines the workspace entity types kept in the local
// cache: projects being built and the ideas behind them.
package models

import (
	"time"

	"github.com/google/uuid"
)

// ProjectStatus classifies where a project is in its lifecycle.
type ProjectStatus string

const (
	ProjectStatusDraft    ProjectStatus = "draft"
	ProjectStatusBuilding ProjectStatus = "building"
	ProjectStatusDeployed ProjectStatus = "deployed"
	ProjectStatusArchived ProjectStatus = "archived"
)

// ProjectMode selects what the builder is doing with the project.
type ProjectMode string

const (
	ProjectModePlan  ProjectMode = "plan"
	ProjectModeBuild ProjectMode = "build"
)

// Task is one unit of generator work inside a project.
type Task struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      string `json:"status"`
	ModuleID    string `json:"moduleId"`
}

// Module is a generated application module.
type Module struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Status      string `json:"status"`
}

// BuildStep records one step of the generation pipeline.
type BuildStep struct {
	Name       string    `json:"name"`
	Status     string    `json:"status"`
	Detail     string    `json:"detail"`
	FinishedAt time.Time `json:"finishedAt"`
}

// VersionSnapshot points at a captured build version.
type VersionSnapshot struct {
	Version   string    `json:"version"`
	Label     string    `json:"label"`
	Notes     string    `json:"notes"`
	CreatedAt time.Time `json:"createdAt"`
}

// Suggestion is a generator-proposed follow-up for the project.
type Suggestion struct {
	ID   string `json:"id"`
	Kind string `json:"kind"`
	Text string `json:"text"`
}

// ReviewStatus classifies the review state of a project build.
type ReviewStatus string

const (
	ReviewStatusPending  ReviewStatus = "pending"
	ReviewStatusPassed   ReviewStatus = "passed"
	ReviewStatusRejected ReviewStatus = "rejected"
)

// Review holds the review state of the latest build.
type Review struct {
	Status   ReviewStatus `json:"status"`
	Notes    string       `json:"notes"`
	Findings []string     `json:"findings"`
}

// DefaultReview is the review state assumed when the remote side carries
// none: pending, with no findings.
func DefaultReview() Review {
	return Review{Status: ReviewStatusPending, Findings: []string{}}
}

// Project is a locally cached workspace project. Every mutation must go
// through Touch so UpdatedAt reflects the change; the sync engine relies on
// it for conflict resolution and never sets it itself.
type Project struct {
	ID             string            `json:"id"`
	Name           string            `json:"name"`
	Status         ProjectStatus     `json:"status"`
	Mode           ProjectMode       `json:"mode"`
	PRD            string            `json:"prd"`
	Tasks          []Task            `json:"tasks"`
	Modules        []Module          `json:"modules"`
	PriorityStack  []string          `json:"priorityStack"`
	BuildSteps     []BuildStep       `json:"buildSteps"`
	DeployURL      string            `json:"deployUrl"`
	ProdURL        string            `json:"prodUrl"`
	ProdVersion    string            `json:"prodVersion"`
	VersionHistory []VersionSnapshot `json:"versionHistory"`
	Suggestions    []Suggestion      `json:"suggestions"`
	Review         Review            `json:"review"`
	CreatedAt      time.Time         `json:"createdAt"`
	UpdatedAt      time.Time         `json:"updatedAt"`
}

// NewProject constructs a draft project with a fresh id and stamped
// timestamps. All nested collections start empty, never nil.
func NewProject(name string) *Project {
	now := time.Now().UTC()
	return &Project{
		ID:             uuid.NewString(),
		Name:           name,
		Status:         ProjectStatusDraft,
		Mode:           ProjectModePlan,
		Tasks:          []Task{},
		Modules:        []Module{},
		PriorityStack:  []string{},
		BuildSteps:     []BuildStep{},
		VersionHistory: []VersionSnapshot{},
		Suggestions:    []Suggestion{},
		Review:         DefaultReview(),
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

// Touch bumps UpdatedAt. Call it after every local mutation.
func (p *Project) Touch() {
	p.UpdatedAt = time.Now().UTC()
}

// EntityID returns the stable identifier used as the sync key.
func (p Project) EntityID() string { return p.ID }

// ModifiedAt returns the last-write timestamp used for conflict resolution.
func (p Project) ModifiedAt() time.Time { return p.UpdatedAt }
