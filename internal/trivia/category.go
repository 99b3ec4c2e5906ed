package trivia

import (
	"context"
	"fmt"

	"github.com/gokatarajesh/trivia-api/internal/db/models"
	"github.com/gokatarajesh/trivia-api/internal/logging"
)

// CategoryCache stores the category map (implemented by Redis-backed Cache).
// Get returns nil on a miss.
type CategoryCache interface {
	Get(ctx context.Context) (CategoryMap, error)
	Set(ctx context.Context, categories CategoryMap) error
}

type categoryRepository interface {
	List(ctx context.Context) ([]models.Category, error)
	Get(ctx context.Context, id int64) (models.Category, error)
}

// CategoryResolver builds the id→name map and derives the current category of a page.
type CategoryResolver struct {
	repo    categoryRepository
	cache   CategoryCache
	lenient bool
}

// NewCategoryResolver wires the resolver. cache may be nil. When lenient is set,
// single-question pages use their only question for the current category.
func NewCategoryResolver(repo categoryRepository, cache CategoryCache, lenient bool) *CategoryResolver {
	return &CategoryResolver{repo: repo, cache: cache, lenient: lenient}
}

// All returns every category keyed by id.
func (r *CategoryResolver) All(ctx context.Context) (CategoryMap, error) {
	if r.cache != nil {
		cached, err := r.cache.Get(ctx)
		if err == nil && cached != nil {
			return cached, nil
		}
		if err != nil {
			log := logging.FromContext(ctx)
			log.Warn().Err(err).Msg("category cache read failed")
		}
	}
	return r.Refresh(ctx)
}

// Refresh reloads the category map from the store and rewrites the cache.
func (r *CategoryResolver) Refresh(ctx context.Context) (CategoryMap, error) {
	rows, err := r.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	categories := make(CategoryMap, len(rows))
	for _, row := range rows {
		categories[int(row.ID)] = row.Type
	}

	if r.cache != nil {
		if err := r.cache.Set(ctx, categories); err != nil {
			log := logging.FromContext(ctx)
			log.Warn().Err(err).Msg("category cache write failed")
		}
	}
	return categories, nil
}

// Current returns the category map together with the name of the category of
// the page's second question. A page with fewer than two questions is
// ErrInvalidState unless the resolver is lenient and the page has exactly one.
// The name is nil when no category carries the question's category id.
func (r *CategoryResolver) Current(ctx context.Context, page []Question) (CategoryMap, *string, error) {
	idx := 1
	if len(page) < 2 {
		if !r.lenient || len(page) == 0 {
			return nil, nil, fmt.Errorf("%w: current category needs two questions, page has %d", ErrInvalidState, len(page))
		}
		idx = 0
	}

	categories, err := r.All(ctx)
	if err != nil {
		return nil, nil, err
	}
	name, ok := categories[page[idx].Category]
	if !ok {
		return categories, nil, nil
	}
	return categories, &name, nil
}
