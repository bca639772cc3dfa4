package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProject(t *testing.T) {
	p := NewProject("todo app")

	require.NotEmpty(t, p.ID)
	assert.Equal(t, "todo app", p.Name)
	assert.Equal(t, ProjectStatusDraft, p.Status)
	assert.Equal(t, ProjectModePlan, p.Mode)
	assert.Equal(t, ReviewStatusPending, p.Review.Status)
	assert.False(t, p.CreatedAt.IsZero())
	assert.Equal(t, p.CreatedAt, p.UpdatedAt)

	// structural fields must never start nil
	assert.NotNil(t, p.Tasks)
	assert.NotNil(t, p.Modules)
	assert.NotNil(t, p.PriorityStack)
	assert.NotNil(t, p.BuildSteps)
	assert.NotNil(t, p.VersionHistory)
	assert.NotNil(t, p.Suggestions)
	assert.NotNil(t, p.Review.Findings)
}

func TestNewIdea(t *testing.T) {
	i := NewIdea("calorie tracker", "track meals from photos")

	require.NotEmpty(t, i.ID)
	assert.Equal(t, IdeaStatusCaptured, i.Status)
	assert.NotNil(t, i.Tags)
	assert.NotNil(t, i.Chat)
	assert.NotNil(t, i.PRDCaptures.Overview)
	assert.NotNil(t, i.PRDCaptures.Design)
	assert.Empty(t, i.ProjectID)
}

func TestTouch_BumpsUpdatedAt(t *testing.T) {
	p := NewProject("x")
	before := p.UpdatedAt
	time.Sleep(5 * time.Millisecond)
	p.Touch()
	assert.True(t, p.UpdatedAt.After(before))

	i := NewIdea("y", "")
	before = i.UpdatedAt
	time.Sleep(5 * time.Millisecond)
	i.Touch()
	assert.True(t, i.UpdatedAt.After(before))
}

func TestSyncKeyAccessors(t *testing.T) {
	p := NewProject("x")
	assert.Equal(t, p.ID, p.EntityID())
	assert.Equal(t, p.UpdatedAt, p.ModifiedAt())

	i := NewIdea("y", "")
	assert.Equal(t, i.ID, i.EntityID())
	assert.Equal(t, i.UpdatedAt, i.ModifiedAt())
}

func TestNewProject_UniqueIDs(t *testing.T) {
	seen := map[string]bool{}
	for range 100 {
		p := NewProject("x")
		require.False(t, seen[p.ID], "duplicate id %s", p.ID)
		seen[p.ID] = true
	}
}
