package postgres

import (
	"context"
	"fmt"

	"github.com/dspolyakov/buildpad/internal/client/models"
	"github.com/dspolyakov/buildpad/internal/common"
	"github.com/dspolyakov/buildpad/internal/dbx"
	"github.com/dspolyakov/buildpad/internal/remote"
)

// ProjectStore persists project records in the projects table.
type ProjectStore struct {
	db dbx.DBTX
}

// NewProjectStore constructs a store bound to the given DBTX.
func NewProjectStore(db dbx.DBTX) *ProjectStore {
	return &ProjectStore{db: db}
}

// FetchAll returns every project belonging to ownerID, newest first.
func (s *ProjectStore) FetchAll(ctx context.Context, ownerID string) ([]remote.ProjectRecord, error) {
	query := `
		SELECT id, user_id, name, status, mode, prd, tasks, modules,
		       priority_stack, build_steps, deploy_url, prod_url, prod_version,
		       version_history, suggestions, review, created_at, updated_at
		FROM projects
		WHERE user_id = $1
		ORDER BY updated_at DESC
	`
	rows, err := s.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to select projects: %w", err)
	}
	defer rows.Close()

	var result []remote.ProjectRecord
	for rows.Next() {
		var (
			rec                                              remote.ProjectRecord
			tasks, modules, stack, steps, history, sugg, rev []byte
		)
		if err := rows.Scan(
			&rec.ID, &rec.UserID, &rec.Name, &rec.Status, &rec.Mode, &rec.PRD,
			&tasks, &modules, &stack, &steps,
			&rec.DeployURL, &rec.ProdURL, &rec.ProdVersion,
			&history, &sugg, &rev,
			&rec.CreatedAt, &rec.UpdatedAt,
		); err != nil {
			return nil, err
		}
		if err := fromJSONB(tasks, &rec.Tasks); err != nil {
			return nil, err
		}
		if err := fromJSONB(modules, &rec.Modules); err != nil {
			return nil, err
		}
		if err := fromJSONB(stack, &rec.PriorityStack); err != nil {
			return nil, err
		}
		if err := fromJSONB(steps, &rec.BuildSteps); err != nil {
			return nil, err
		}
		if err := fromJSONB(history, &rec.VersionHistory); err != nil {
			return nil, err
		}
		if err := fromJSONB(sugg, &rec.Suggestions); err != nil {
			return nil, err
		}
		if len(rev) > 0 {
			var review models.Review
			if err := fromJSONB(rev, &review); err != nil {
				return nil, err
			}
			rec.Review = &review
		}
		result = append(result, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Upsert creates or overwrites the project by id. created_at is set once,
// updated_at on every write. If the id exists under another owner, no row
// changes and ErrOwnerMismatch is returned.
func (s *ProjectStore) Upsert(ctx context.Context, ownerID string, rec remote.ProjectRecord) error {
	query := `
		INSERT INTO projects (id, user_id, name, status, mode, prd, tasks, modules,
			priority_stack, build_steps, deploy_url, prod_url, prod_version,
			version_history, suggestions, review, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, now(), now())
		ON CONFLICT (id)
		DO UPDATE SET
			name = EXCLUDED.name,
			status = EXCLUDED.status,
			mode = EXCLUDED.mode,
			prd = EXCLUDED.prd,
			tasks = EXCLUDED.tasks,
			modules = EXCLUDED.modules,
			priority_stack = EXCLUDED.priority_stack,
			build_steps = EXCLUDED.build_steps,
			deploy_url = EXCLUDED.deploy_url,
			prod_url = EXCLUDED.prod_url,
			prod_version = EXCLUDED.prod_version,
			version_history = EXCLUDED.version_history,
			suggestions = EXCLUDED.suggestions,
			review = EXCLUDED.review,
			updated_at = now()
			WHERE projects.user_id = EXCLUDED.user_id;
	`
	tasks, err := jsonb(rec.Tasks)
	if err != nil {
		return err
	}
	modules, err := jsonb(rec.Modules)
	if err != nil {
		return err
	}
	stack, err := jsonb(rec.PriorityStack)
	if err != nil {
		return err
	}
	steps, err := jsonb(rec.BuildSteps)
	if err != nil {
		return err
	}
	history, err := jsonb(rec.VersionHistory)
	if err != nil {
		return err
	}
	sugg, err := jsonb(rec.Suggestions)
	if err != nil {
		return err
	}
	review, err := jsonb(rec.Review)
	if err != nil {
		return err
	}

	res, err := s.db.ExecContext(ctx, query,
		rec.ID, ownerID, rec.Name, rec.Status, rec.Mode, rec.PRD,
		tasks, modules, stack, steps,
		rec.DeployURL, rec.ProdURL, rec.ProdVersion,
		history, sugg, review,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert project: %w", err)
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

// Delete removes the project by id. Deleting an absent id succeeds.
func (s *ProjectStore) Delete(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM projects WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}
	return nil
}
