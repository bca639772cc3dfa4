package ideas

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dspolyakov/buildpad/internal/client/models"
	"github.com/dspolyakov/buildpad/internal/common"
	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", "file:ideasrepo?mode=memory&cache=shared")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE IF NOT EXISTS ideas (
  id           TEXT PRIMARY KEY,
  title        TEXT NOT NULL DEFAULT '',
  description  TEXT NOT NULL DEFAULT '',
  tags         TEXT NOT NULL DEFAULT '[]',
  chat         TEXT NOT NULL DEFAULT '[]',
  prd_captures TEXT NOT NULL DEFAULT '{}',
  status       TEXT NOT NULL DEFAULT 'captured',
  project_id   TEXT NOT NULL DEFAULT '',
  created_at   TEXT NOT NULL,
  updated_at   TEXT NOT NULL
);`)
	require.NoError(t, err)
	_, err = db.Exec(`DELETE FROM ideas`)
	require.NoError(t, err)
	return db
}

func sample(title string) *models.Idea {
	i := models.NewIdea(title, "a thing worth building")
	i.Tags = []string{"ai", "tooling"}
	i.Chat = []models.ChatMessage{{Role: "user", Content: "what if"}}
	return i
}

func TestSQLiteRepository_CreateAndGet(t *testing.T) {
	repo := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	i := sample("voice notes")
	require.NoError(t, repo.CreateOrUpdate(ctx, i))

	got, err := repo.GetByID(ctx, i.ID)
	require.NoError(t, err)
	assert.Equal(t, i.Title, got.Title)
	assert.Equal(t, i.Tags, got.Tags)
	assert.Equal(t, i.Chat, got.Chat)
	assert.Equal(t, i.PRDCaptures, got.PRDCaptures)
	assert.True(t, got.UpdatedAt.Equal(i.UpdatedAt))
}

func TestSQLiteRepository_GetByID_NotFound(t *testing.T) {
	repo := NewSQLiteRepository(setupDB(t))

	_, err := repo.GetByID(context.Background(), "missing")
	require.ErrorIs(t, err, common.ErrNotFound)
}

func TestSQLiteRepository_UpsertOverwrites(t *testing.T) {
	repo := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	i := sample("v1")
	require.NoError(t, repo.CreateOrUpdate(ctx, i))

	i.Status = models.IdeaStatusPromoted
	i.ProjectID = "p-42"
	i.Touch()
	require.NoError(t, repo.CreateOrUpdate(ctx, i))

	got, err := repo.GetByID(ctx, i.ID)
	require.NoError(t, err)
	assert.Equal(t, models.IdeaStatusPromoted, got.Status)
	assert.Equal(t, "p-42", got.ProjectID)
}

func TestSQLiteRepository_DeleteByID(t *testing.T) {
	repo := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	i := sample("x")
	require.NoError(t, repo.CreateOrUpdate(ctx, i))
	require.NoError(t, repo.DeleteByID(ctx, i.ID))

	all, err := repo.GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestSQLiteRepository_ReplaceAll(t *testing.T) {
	repo := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, repo.CreateOrUpdate(ctx, sample("stale")))

	fresh := []models.Idea{*sample("a"), *sample("b")}
	require.NoError(t, repo.ReplaceAll(ctx, fresh))

	all, err := repo.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.ElementsMatch(t, []string{"a", "b"}, []string{all[0].Title, all[1].Title})
}
