package repository

import (
	"context"

	"github.com/gokatarajesh/trivia-api/internal/db/models"
)

type categoryStore interface {
	ListCategories(ctx context.Context) ([]models.Category, error)
	GetCategory(ctx context.Context, id int64) (models.Category, error)
}

// CategoryRepository wraps backend queries for the read-only categories table.
type CategoryRepository struct {
	store categoryStore
}

func NewCategoryRepository(store categoryStore) *CategoryRepository {
	return &CategoryRepository{store: store}
}

// List returns all categories ordered by id.
func (r *CategoryRepository) List(ctx context.Context) ([]models.Category, error) {
	return r.store.ListCategories(ctx)
}

func (r *CategoryRepository) Get(ctx context.Context, id int64) (models.Category, error) {
	return r.store.GetCategory(ctx, id)
}
