// Package projects provides the local cache repository for projects.
package projects

import (
	"context"

	"github.com/dspolyakov/buildpad/internal/client/models"
)

// Repository describes CRUD and bulk operations on the cached project
// collection. Implementations are typically backed by a local SQLite
// database.
type Repository interface {
	// GetAll returns all cached projects.
	GetAll(ctx context.Context) ([]models.Project, error)

	// GetByID returns a project by id, or common.ErrNotFound.
	GetByID(ctx context.Context, id string) (*models.Project, error)

	// CreateOrUpdate inserts a new project or overwrites an existing one by id.
	CreateOrUpdate(ctx context.Context, p *models.Project) error

	// DeleteByID removes a project from the cache. Absent ids are a no-op.
	DeleteByID(ctx context.Context, id string) error

	// ReplaceAll swaps the whole cached collection for the given one in a
	// single transaction. Used after a sync pass to install the merged
	// result.
	ReplaceAll(ctx context.Context, list []models.Project) error
}
