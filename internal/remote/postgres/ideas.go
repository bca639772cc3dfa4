package postgres

import (
	"context"
	"fmt"

	"github.com/dspolyakov/buildpad/internal/client/models"
	"github.com/dspolyakov/buildpad/internal/common"
	"github.com/dspolyakov/buildpad/internal/dbx"
	"github.com/dspolyakov/buildpad/internal/remote"
)

// IdeaStore persists idea records in the ideas table.
type IdeaStore struct {
	db dbx.DBTX
}

// NewIdeaStore constructs a store bound to the given DBTX.
func NewIdeaStore(db dbx.DBTX) *IdeaStore {
	return &IdeaStore{db: db}
}

// FetchAll returns every idea belonging to ownerID, newest first.
func (s *IdeaStore) FetchAll(ctx context.Context, ownerID string) ([]remote.IdeaRecord, error) {
	query := `
		SELECT id, user_id, title, description, tags, chat, prd_captures,
		       status, promoted_to_project_id, created_at, updated_at
		FROM ideas
		WHERE user_id = $1
		ORDER BY updated_at DESC
	`
	rows, err := s.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to select ideas: %w", err)
	}
	defer rows.Close()

	var result []remote.IdeaRecord
	for rows.Next() {
		var (
			rec                  remote.IdeaRecord
			tags, chat, captures []byte
		)
		if err := rows.Scan(
			&rec.ID, &rec.UserID, &rec.Title, &rec.Description,
			&tags, &chat, &captures,
			&rec.Status, &rec.PromotedToProjectID,
			&rec.CreatedAt, &rec.UpdatedAt,
		); err != nil {
			return nil, err
		}
		if err := fromJSONB(tags, &rec.Tags); err != nil {
			return nil, err
		}
		if err := fromJSONB(chat, &rec.Chat); err != nil {
			return nil, err
		}
		if len(captures) > 0 {
			var c models.PRDCaptures
			if err := fromJSONB(captures, &c); err != nil {
				return nil, err
			}
			rec.PRDCaptures = &c
		}
		result = append(result, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Upsert creates or overwrites the idea by id, with the same owner guard
// and timestamp stamping as the project store.
func (s *IdeaStore) Upsert(ctx context.Context, ownerID string, rec remote.IdeaRecord) error {
	query := `
		INSERT INTO ideas (id, user_id, title, description, tags, chat,
			prd_captures, status, promoted_to_project_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, now(), now())
		ON CONFLICT (id)
		DO UPDATE SET
			title = EXCLUDED.title,
			description = EXCLUDED.description,
			tags = EXCLUDED.tags,
			chat = EXCLUDED.chat,
			prd_captures = EXCLUDED.prd_captures,
			status = EXCLUDED.status,
			promoted_to_project_id = EXCLUDED.promoted_to_project_id,
			updated_at = now()
			WHERE ideas.user_id = EXCLUDED.user_id;
	`
	tags, err := jsonb(rec.Tags)
	if err != nil {
		return err
	}
	chat, err := jsonb(rec.Chat)
	if err != nil {
		return err
	}
	captures, err := jsonb(rec.PRDCaptures)
	if err != nil {
		return err
	}

	res, err := s.db.ExecContext(ctx, query,
		rec.ID, ownerID, rec.Title, rec.Description,
		tags, chat, captures,
		rec.Status, rec.PromotedToProjectID,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert idea: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	switch n {
	case 1:
		return nil
	case 0:
		return common.ErrOwnerMismatch
	default:
		return fmt.Errorf("unexpected rows affected: %d", n)
	}
}

// Delete removes the idea by id. Deleting an absent id succeeds.
func (s *IdeaStore) Delete(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM ideas WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete idea: %w", err)
	}
	return nil
}
