package postgres

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dspolyakov/buildpad/internal/common"
	"github.com/dspolyakov/buildpad/internal/remote"
)

func newMock(t *testing.T) (sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return mock, db
}

var (
	projectUpsertRe = regexp.MustCompile(`INSERT INTO projects .* ON CONFLICT \(id\).* DO UPDATE SET .* WHERE projects\.user_id = EXCLUDED\.user_id;`)
	ideaUpsertRe    = regexp.MustCompile(`INSERT INTO ideas .* ON CONFLICT \(id\).* DO UPDATE SET .* WHERE ideas\.user_id = EXCLUDED\.user_id;`)
)

func TestProjectStore_Upsert_Success(t *testing.T) {
	mock, db := newMock(t)
	store := NewProjectStore(db)

	mock.ExpectExec(projectUpsertRe.String()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := store.Upsert(context.Background(), "u1", remote.ProjectRecord{ID: "p1", Name: "x"})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestProjectStore_Upsert_OwnerMismatch(t *testing.T) {
	mock, db := newMock(t)
	store := NewProjectStore(db)

	mock.ExpectExec(projectUpsertRe.String()).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := store.Upsert(context.Background(), "u1", remote.ProjectRecord{ID: "p1"})
	require.ErrorIs(t, err, common.ErrOwnerMismatch)
}

func TestProjectStore_Upsert_DBError(t *testing.T) {
	mock, db := newMock(t)
	store := NewProjectStore(db)

	mock.ExpectExec(projectUpsertRe.String()).
		WillReturnError(errors.New("connection reset"))

	err := store.Upsert(context.Background(), "u1", remote.ProjectRecord{ID: "p1"})
	require.Error(t, err)
	require.NotErrorIs(t, err, common.ErrOwnerMismatch)
}

func TestProjectStore_FetchAll(t *testing.T) {
	mock, db := newMock(t)
	store := NewProjectStore(db)

	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	cols := []string{
		"id", "user_id", "name", "status", "mode", "prd", "tasks", "modules",
		"priority_stack", "build_steps", "deploy_url", "prod_url", "prod_version",
		"version_history", "suggestions", "review", "created_at", "updated_at",
	}
	rows := sqlmock.NewRows(cols).
		AddRow("p1", "u1", "todo app", "building", "build", "a prd",
			[]byte(`[{"id":"t1","title":"scaffold","description":"","status":"open","moduleId":""}]`),
			[]byte(`[]`), []byte(`["t1"]`), []byte(`[]`),
			"", "", "",
			[]byte(`[]`), []byte(`[]`), nil,
			now, now.Add(time.Hour)).
		AddRow("p2", "u1", "other", "draft", "plan", "",
			nil, nil, nil, nil,
			"", "", "",
			nil, nil, []byte(`{"status":"passed","notes":"","findings":[]}`),
			now, now)

	mock.ExpectQuery(`SELECT .* FROM projects\s+WHERE user_id = \$1\s+ORDER BY updated_at DESC`).
		WithArgs("u1").
		WillReturnRows(rows)

	records, err := store.FetchAll(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "p1", records[0].ID)
	require.Len(t, records[0].Tasks, 1)
	assert.Equal(t, "scaffold", records[0].Tasks[0].Title)
	assert.Equal(t, []string{"t1"}, records[0].PriorityStack)
	assert.Nil(t, records[0].Review, "NULL review stays nil for the codec to default")
	assert.Equal(t, now.Add(time.Hour), records[0].UpdatedAt)

	require.NotNil(t, records[1].Review)
	assert.Equal(t, "passed", string(records[1].Review.Status))
	assert.Nil(t, records[1].Tasks)
}

func TestProjectStore_Delete(t *testing.T) {
	mock, db := newMock(t)
	store := NewProjectStore(db)

	mock.ExpectExec(`DELETE FROM projects WHERE id = \$1`).
		WithArgs("p1").
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, store.Delete(context.Background(), "p1"),
		"deleting an absent id is not an error")
}

func TestIdeaStore_Upsert_Success(t *testing.T) {
	mock, db := newMock(t)
	store := NewIdeaStore(db)

	mock.ExpectExec(ideaUpsertRe.String()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := store.Upsert(context.Background(), "u1", remote.IdeaRecord{ID: "i1", Title: "x"})
	require.NoError(t, err)
}

func TestIdeaStore_Upsert_OwnerMismatch(t *testing.T) {
	mock, db := newMock(t)
	store := NewIdeaStore(db)

	mock.ExpectExec(ideaUpsertRe.String()).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := store.Upsert(context.Background(), "u1", remote.IdeaRecord{ID: "i1"})
	require.ErrorIs(t, err, common.ErrOwnerMismatch)
}

func TestIdeaStore_FetchAll(t *testing.T) {
	mock, db := newMock(t)
	store := NewIdeaStore(db)

	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	cols := []string{
		"id", "user_id", "title", "description", "tags", "chat", "prd_captures",
		"status", "promoted_to_project_id", "created_at", "updated_at",
	}
	rows := sqlmock.NewRows(cols).
		AddRow("i1", "u1", "tracker", "track meals", []byte(`["health"]`),
			[]byte(`[]`), nil, "captured", "", now, now).
		AddRow("i2", "u1", "promoted one", "", nil, nil,
			[]byte(`{"overview":["x"],"features":[],"users":[],"screens":[],"data":[],"design":[]}`),
			"promoted", "p1", now, now)

	mock.ExpectQuery(`SELECT .* FROM ideas\s+WHERE user_id = \$1\s+ORDER BY updated_at DESC`).
		WithArgs("u1").
		WillReturnRows(rows)

	records, err := store.FetchAll(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, []string{"health"}, records[0].Tags)
	assert.Nil(t, records[0].PRDCaptures)

	require.NotNil(t, records[1].PRDCaptures)
	assert.Equal(t, []string{"x"}, records[1].PRDCaptures.Overview)
	assert.Equal(t, "p1", records[1].PromotedToProjectID)
}

func TestIdeaStore_Delete(t *testing.T) {
	mock, db := newMock(t)
	store := NewIdeaStore(db)

	mock.ExpectExec(`DELETE FROM ideas WHERE id = \$1`).
		WithArgs("i1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, store.Delete(context.Background(), "i1"))
}
