package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/gokatarajesh/trivia-api/internal/db/models"
)

type mockCategoryStore struct {
	mock.Mock
}

func (m *mockCategoryStore) ListCategories(ctx context.Context) ([]models.Category, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Category), args.Error(1)
}

func (m *mockCategoryStore) GetCategory(ctx context.Context, id int64) (models.Category, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(models.Category), args.Error(1)
}

func TestCategoryRepository_List(t *testing.T) {
	store := new(mockCategoryStore)
	repo := NewCategoryRepository(store)

	expect := []models.Category{{ID: 1, Type: "Science"}, {ID: 2, Type: "Art"}}
	store.On("ListCategories", mock.Anything).Return(expect, nil)

	got, err := repo.List(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, expect, got)
	store.AssertExpectations(t)
}

func TestCategoryRepository_GetMissing(t *testing.T) {
	store := new(mockCategoryStore)
	repo := NewCategoryRepository(store)

	store.On("GetCategory", mock.Anything, int64(99)).Return(models.Category{}, models.ErrNotFound)

	_, err := repo.Get(context.Background(), 99)
	assert.ErrorIs(t, err, models.ErrNotFound)
	store.AssertExpectations(t)
}
