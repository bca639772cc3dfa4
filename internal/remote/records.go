// Package remote defines the wire layouts of the owner-scoped remote
// collections and the codecs that translate them to and from the local
// models. The field names must match the existing hosted store exactly, so
// every struct tag here is part of a compatibility contract.
package remote

import (
	"time"

	"github.com/dspolyakov/buildpad/internal/client/models"
)

// ProjectRecord is the remote layout of a project. created_at/updated_at
// are assigned by the store on write and are only meaningful on read.
type ProjectRecord struct {
	ID             string                   `json:"id" dynamodbav:"id"`
	UserID         string                   `json:"user_id" dynamodbav:"user_id"`
	Name           string                   `json:"name" dynamodbav:"name"`
	Status         string                   `json:"status" dynamodbav:"status"`
	Mode           string                   `json:"mode" dynamodbav:"mode"`
	PRD            string                   `json:"prd" dynamodbav:"prd"`
	Tasks          []models.Task            `json:"tasks" dynamodbav:"tasks"`
	Modules        []models.Module          `json:"modules" dynamodbav:"modules"`
	PriorityStack  []string                 `json:"priority_stack" dynamodbav:"priority_stack"`
	BuildSteps     []models.BuildStep       `json:"build_steps" dynamodbav:"build_steps"`
	DeployURL      string                   `json:"deploy_url" dynamodbav:"deploy_url"`
	ProdURL        string                   `json:"prod_url" dynamodbav:"prod_url"`
	ProdVersion    string                   `json:"prod_version" dynamodbav:"prod_version"`
	VersionHistory []models.VersionSnapshot `json:"version_history" dynamodbav:"version_history"`
	Suggestions    []models.Suggestion      `json:"suggestions" dynamodbav:"suggestions"`
	Review         *models.Review           `json:"review" dynamodbav:"review"`
	CreatedAt      time.Time                `json:"created_at" dynamodbav:"created_at"`
	UpdatedAt      time.Time                `json:"updated_at" dynamodbav:"updated_at"`
}

// IdeaRecord is the remote layout of an idea.
type IdeaRecord struct {
	ID                  string               `json:"id" dynamodbav:"id"`
	UserID              string               `json:"user_id" dynamodbav:"user_id"`
	Title               string               `json:"title" dynamodbav:"title"`
	Description         string               `json:"description" dynamodbav:"description"`
	Tags                []string             `json:"tags" dynamodbav:"tags"`
	Chat                []models.ChatMessage `json:"chat" dynamodbav:"chat"`
	PRDCaptures         *models.PRDCaptures  `json:"prd_captures" dynamodbav:"prd_captures"`
	Status              string               `json:"status" dynamodbav:"status"`
	PromotedToProjectID string               `json:"promoted_to_project_id" dynamodbav:"promoted_to_project_id"`
	CreatedAt           time.Time            `json:"created_at" dynamodbav:"created_at"`
	UpdatedAt           time.Time            `json:"updated_at" dynamodbav:"updated_at"`
}
