// Package ideas provides the local cache repository for ideas.
package ideas

import (
	"context"

	"github.com/dspolyakov/buildpad/internal/client/models"
)

// Repository describes CRUD and bulk operations on the cached idea
// collection.
type Repository interface {
	// GetAll returns all cached ideas.
	GetAll(ctx context.Context) ([]models.Idea, error)

	// GetByID returns an idea by id, or common.ErrNotFound.
	GetByID(ctx context.Context, id string) (*models.Idea, error)

	// CreateOrUpdate inserts a new idea or overwrites an existing one by id.
	CreateOrUpdate(ctx context.Context, i *models.Idea) error

	// DeleteByID removes an idea from the cache. Absent ids are a no-op.
	DeleteByID(ctx context.Context, id string) error

	// ReplaceAll swaps the whole cached collection for the given one in a
	// single transaction.
	ReplaceAll(ctx context.Context, list []models.Idea) error
}
