package projects

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
// Nested collections are stored as JSON text columns; timestamps as
// RFC 3339 strings.
type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository returns a repository bound to the given database.
func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

const projectColumns = `id, name, status, mode, prd, tasks, modules, priority_stack,
	build_steps, deploy_url, prod_url, prod_version, version_history,
	suggestions, review, created_at, updated_at`

func (r *SQLiteRepository) GetAll(ctx context.Context) ([]models.Project, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+projectColumns+` FROM projects`)
	if err != nil {
		return nil, fmt.Errorf("failed to select projects: %w", err)
	}
	defer rows.Close()

	var result []models.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *SQLiteRepository) GetByID(ctx context.Context, id string) (*models.Project, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+projectColumns+` FROM projects WHERE id = ?`, id)
	p, err := scanProject(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *SQLiteRepository) CreateOrUpdate(ctx context.Context, p *models.Project) error {
	return upsertProject(ctx, r.db, p)
}

func (r *SQLiteRepository) DeleteByID(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM projects WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) ReplaceAll(ctx context.Context, list []models.Project) error {
	return dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM projects`); err != nil {
			return fmt.Errorf("failed to clear projects: %w", err)
		}
		for i := range list {
			if err := upsertProject(ctx, tx, &list[i]); err != nil {
				return err
			}
		}
		return nil
	})
}

func upsertProject(ctx context.Context, db dbx.DBTX, p *models.Project) error {
	query := `INSERT INTO projects (` + projectColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			status = excluded.status,
			mode = excluded.mode,
			prd = excluded.prd,
			tasks = excluded.tasks,
			modules = excluded.modules,
			priority_stack = excluded.priority_stack,
			build_steps = excluded.build_steps,
			deploy_url = excluded.deploy_url,
			prod_url = excluded.prod_url,
			prod_version = excluded.prod_version,
			version_history = excluded.version_history,
			suggestions = excluded.suggestions,
			review = excluded.review,
			created_at = excluded.created_at,
			updated_at = excluded.updated_at
	`
	tasks, err := json.Marshal(p.Tasks)
	if err != nil {
		return fmt.Errorf("marshal tasks: %w", err)
	}
	modules, err := json.Marshal(p.Modules)
	if err != nil {
		return fmt.Errorf("marshal modules: %w", err)
	}
	stack, err := json.Marshal(p.PriorityStack)
	if err != nil {
		return fmt.Errorf("marshal priority stack: %w", err)
	}
	steps, err := json.Marshal(p.BuildSteps)
	if err != nil {
		return fmt.Errorf("marshal build steps: %w", err)
	}
	history, err := json.Marshal(p.VersionHistory)
	if err != nil {
		return fmt.Errorf("marshal version history: %w", err)
	}
	sugg, err := json.Marshal(p.Suggestions)
	if err != nil {
		return fmt.Errorf("marshal suggestions: %w", err)
	}
	review, err := json.Marshal(p.Review)
	if err != nil {
		return fmt.Errorf("marshal review: %w", err)
	}

	_, err = db.ExecContext(ctx, query,
		p.ID, p.Name, string(p.Status), string(p.Mode), p.PRD,
		string(tasks), string(modules), string(stack), string(steps),
		p.DeployURL, p.ProdURL, p.ProdVersion,
		string(history), string(sugg), string(review),
		p.CreatedAt.Format(time.RFC3339Nano), p.UpdatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert project: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProject(row rowScanner) (*models.Project, error) {
	var p models.Project
	var status, mode string
	var tasks, modules, stack, steps, history, sugg, review string
	var createdAt, updatedAt string
	if err := row.Scan(
		&p.ID, &p.Name, &status, &mode, &p.PRD,
		&tasks, &modules, &stack, &steps,
		&p.DeployURL, &p.ProdURL, &p.ProdVersion,
		&history, &sugg, &review,
		&createdAt, &updatedAt,
	); err != nil {
		return nil, err
	}
	p.Status = models.ProjectStatus(status)
	p.Mode = models.ProjectMode(mode)

	for _, col := range []struct {
		data string
		dst  any
	}{
		{tasks, &p.Tasks},
		{modules, &p.Modules},
		{stack, &p.PriorityStack},
		{steps, &p.BuildSteps},
		{history, &p.VersionHistory},
		{sugg, &p.Suggestions},
		{review, &p.Review},
	} {
		if err := json.Unmarshal([]byte(col.data), col.dst); err != nil {
			return nil, fmt.Errorf("unmarshal project column: %w", err)
		}
	}

	var err error
	if p.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
		return nil, fmt.Errorf("parse created_at: %w", err)
	}
	if p.UpdatedAt, err = time.Parse(time.RFC3339Nano, updatedAt); err != nil {
		return nil, fmt.Errorf("parse updated_at: %w", err)
	}
	return &p, nil
}
