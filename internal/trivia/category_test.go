package trivia

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gokatarajesh/trivia-api/internal/db/models"
	"github.com/gokatarajesh/trivia-api/internal/logging"
)

type stubCategoryRepo struct {
	rows  []models.Category
	err   error
	calls int
}

func (s *stubCategoryRepo) List(context.Context) ([]models.Category, error) {
	s.calls++
	return s.rows, s.err
}

func (s *stubCategoryRepo) Get(_ context.Context, id int64) (models.Category, error) {
	for _, c := range s.rows {
		if c.ID == id {
			return c, nil
		}
	}
	return models.Category{}, models.ErrNotFound
}

type memoryCache struct {
	mu      sync.Mutex
	stored  CategoryMap
	getErr  error
	setErr  error
	setHits int
}

func (m *memoryCache) Get(context.Context) (CategoryMap, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stored, m.getErr
}

func (m *memoryCache) Set(_ context.Context, categories CategoryMap) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.setHits++
	if m.setErr != nil {
		return m.setErr
	}
	m.stored = categories
	return nil
}

func (m *memoryCache) hits() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.setHits
}

func newStubCategoryRepo() *stubCategoryRepo {
	return &stubCategoryRepo{rows: append([]models.Category(nil), models.SeedCategories...)}
}

func TestCategoryResolverCurrentUsesSecondQuestion(t *testing.T) {
	resolver := NewCategoryResolver(newStubCategoryRepo(), nil, false)
	page := []Question{{ID: 1, Category: 1}, {ID: 2, Category: 4}, {ID: 3, Category: 6}}

	categories, current, err := resolver.Current(context.Background(), page)
	require.NoError(t, err)
	assert.Len(t, categories, 6)
	require.NotNil(t, current)
	assert.Equal(t, "History", *current)
}

func TestCategoryResolverCurrentShortPage(t *testing.T) {
	strict := NewCategoryResolver(newStubCategoryRepo(), nil, false)
	lenient := NewCategoryResolver(newStubCategoryRepo(), nil, true)
	ctx := context.Background()

	_, _, err := strict.Current(ctx, []Question{{ID: 1, Category: 2}})
	assert.ErrorIs(t, err, ErrInvalidState)

	_, _, err = strict.Current(ctx, nil)
	assert.ErrorIs(t, err, ErrInvalidState)

	_, current, err := lenient.Current(ctx, []Question{{ID: 1, Category: 2}})
	require.NoError(t, err)
	require.NotNil(t, current)
	assert.Equal(t, "Art", *current)

	_, _, err = lenient.Current(ctx, nil)
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestCategoryResolverCurrentUnknownCategory(t *testing.T) {
	resolver := NewCategoryResolver(newStubCategoryRepo(), nil, false)

	categories, current, err := resolver.Current(context.Background(), []Question{{Category: 1}, {Category: 42}})
	require.NoError(t, err)
	assert.Len(t, categories, 6)
	assert.Nil(t, current)
}

func TestCategoryResolverAllUsesCache(t *testing.T) {
	repo := newStubCategoryRepo()
	cache := &memoryCache{}
	resolver := NewCategoryResolver(repo, cache, false)
	ctx := context.Background()

	first, err := resolver.All(ctx)
	require.NoError(t, err)
	second, err := resolver.All(ctx)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, repo.calls)
	assert.Equal(t, 1, cache.setHits)
}

func TestCategoryResolverAllSurvivesCacheFailures(t *testing.T) {
	repo := newStubCategoryRepo()
	cache := &memoryCache{getErr: errors.New("redis down"), setErr: errors.New("redis down")}
	resolver := NewCategoryResolver(repo, cache, false)

	categories, err := resolver.All(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Sports", categories[6])
	assert.Equal(t, 1, repo.calls)
}

func TestCategoryResolverLogsCacheFailures(t *testing.T) {
	var buf bytes.Buffer
	ctx := logging.IntoContext(context.Background(), zerolog.New(&buf))
	cache := &memoryCache{getErr: errors.New("redis down"), setErr: errors.New("redis down")}
	resolver := NewCategoryResolver(newStubCategoryRepo(), cache, false)

	_, err := resolver.All(ctx)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "category cache read failed")
	assert.Contains(t, buf.String(), "category cache write failed")
	assert.Contains(t, buf.String(), `"level":"warn"`)
}

func TestCategoryResolverAllStoreError(t *testing.T) {
	repo := &stubCategoryRepo{err: errors.New("boom")}
	resolver := NewCategoryResolver(repo, nil, false)

	_, err := resolver.All(context.Background())
	assert.Error(t, err)
}
