package ideas

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dspolyakov/buildpad/internal/client/models"
	"github.com/dspolyakov/buildpad/internal/common"
	"github.com/dspolyakov/buildpad/internal/dbx"
)

// SQLiteRepository implements Repository over a local SQLite database.
type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository returns a repository bound to the given database.
func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

const ideaColumns = `id, title, description, tags, chat, prd_captures, status,
	project_id, created_at, updated_at`

func (r *SQLiteRepository) GetAll(ctx context.Context) ([]models.Idea, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+ideaColumns+` FROM ideas`)
	if err != nil {
		return nil, fmt.Errorf("failed to select ideas: %w", err)
	}
	defer rows.Close()

	var result []models.Idea
	for rows.Next() {
		i, err := scanIdea(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *SQLiteRepository) GetByID(ctx context.Context, id string) (*models.Idea, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+ideaColumns+` FROM ideas WHERE id = ?`, id)
	i, err := scanIdea(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return i, nil
}

func (r *SQLiteRepository) CreateOrUpdate(ctx context.Context, i *models.Idea) error {
	return upsertIdea(ctx, r.db, i)
}

func (r *SQLiteRepository) DeleteByID(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM ideas WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete idea: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) ReplaceAll(ctx context.Context, list []models.Idea) error {
	return dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM ideas`); err != nil {
			return fmt.Errorf("failed to clear ideas: %w", err)
		}
		for i := range list {
			if err := upsertIdea(ctx, tx, &list[i]); err != nil {
				return err
			}
		}
		return nil
	})
}

func upsertIdea(ctx context.Context, db dbx.DBTX, i *models.Idea) error {
	query := `INSERT INTO ideas (` + ideaColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			description = excluded.description,
			tags = excluded.tags,
			chat = excluded.chat,
			prd_captures = excluded.prd_captures,
			status = excluded.status,
			project_id = excluded.project_id,
			created_at = excluded.created_at,
			updated_at = excluded.updated_at
	`
	tags, err := json.Marshal(i.Tags)
	if err != nil {
		return fmt.Errorf("marshal tags: %w", err)
	}
	chat, err := json.Marshal(i.Chat)
	if err != nil {
		return fmt.Errorf("marshal chat: %w", err)
	}
	captures, err := json.Marshal(i.PRDCaptures)
	if err != nil {
		return fmt.Errorf("marshal prd captures: %w", err)
	}

	_, err = db.ExecContext(ctx, query,
		i.ID, i.Title, i.Description,
		string(tags), string(chat), string(captures),
		string(i.Status), i.ProjectID,
		i.CreatedAt.Format(time.RFC3339Nano), i.UpdatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert idea: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanIdea(row rowScanner) (*models.Idea, error) {
	var i models.Idea
	var status string
	var tags, chat, captures string
	var createdAt, updatedAt string

	if err := row.Scan(
		&i.ID, &i.Title, &i.Description,
		&tags, &chat, &captures,
		&status, &i.ProjectID,
		&createdAt, &updatedAt,
	); err != nil {
		return nil, err
	}
	i.Status = models.IdeaStatus(status)

	for _, col := range []struct {
		data string
		dst  any
	}{
		{tags, &i.Tags},
		{chat, &i.Chat},
		{captures, &i.PRDCaptures},
	} {
		if err := json.Unmarshal([]byte(col.data), col.dst); err != nil {
			return nil, fmt.Errorf("unmarshal idea column: %w", err)
		}
	}

	var err error
	if i.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
		return nil, fmt.Errorf("parse created_at: %w", err)
	}
	if i.UpdatedAt, err = time.Parse(time.RFC3339Nano, updatedAt); err != nil {
		return nil, fmt.Errorf("parse updated_at: %w", err)
	}
	return &i, nil
}
