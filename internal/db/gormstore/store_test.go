package gormstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gokatarajesh/trivia-api/internal/db/models"
)

func newSeededStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	seeded, err := store.Seed(context.Background())
	require.NoError(t, err)
	require.True(t, seeded)
	return store
}

func TestSeedIsIdempotent(t *testing.T) {
	store := newSeededStore(t)

	seeded, err := store.Seed(context.Background())
	require.NoError(t, err)
	assert.False(t, seeded)

	n, err := store.CountQuestions(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(len(models.SeedQuestions)), n)
}

func TestListCategoriesOrdered(t *testing.T) {
	store := newSeededStore(t)

	cats, err := store.ListCategories(context.Background())
	require.NoError(t, err)
	require.Len(t, cats, 6)
	assert.Equal(t, "Science", cats[0].Type)
	assert.Equal(t, "Sports", cats[5].Type)
}

func TestGetCategory(t *testing.T) {
	store := newSeededStore(t)
	ctx := context.Background()

	c, err := store.GetCategory(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, "Geography", c.Type)

	_, err = store.GetCategory(ctx, 42)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestListQuestionsSearchIsCaseInsensitive(t *testing.T) {
	store := newSeededStore(t)

	rows, err := store.ListQuestions(context.Background(), models.QuestionFilter{Search: "WHO"})
	require.NoError(t, err)

	var ids []int64
	for _, r := range rows {
		ids = append(ids, r.ID)
	}
	assert.Equal(t, []int64{5, 12, 21}, ids)
}

func TestListQuestionsSearchEscapesWildcards(t *testing.T) {
	store := newSeededStore(t)

	rows, err := store.ListQuestions(context.Background(), models.QuestionFilter{Search: "%"})
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestListQuestionsSearchFoldsNonASCII(t *testing.T) {
	store := newSeededStore(t)
	ctx := context.Background()

	for _, text := range []string{"Élan vital?", "Éclair recipe?", "Where is Zürich?"} {
		_, err := store.InsertQuestion(ctx, models.InsertQuestionParams{Question: text, Answer: "A", CategoryID: 1, Difficulty: 1})
		require.NoError(t, err)
	}

	for _, term := range []string{"É", "é"} {
		rows, err := store.ListQuestions(ctx, models.QuestionFilter{Search: term})
		require.NoError(t, err)
		assert.Len(t, rows, 2, term)
	}

	rows, err := store.ListQuestions(ctx, models.QuestionFilter{Search: "ZÜRICH"})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Where is Zürich?", rows[0].Question)
}

func TestListQuestionsByCategoryOrder(t *testing.T) {
	store := newSeededStore(t)
	ctx := context.Background()

	rows, err := store.ListQuestions(ctx, models.QuestionFilter{OrderBy: models.OrderByCategory})
	require.NoError(t, err)
	require.Len(t, rows, len(models.SeedQuestions))
	for i := 1; i < len(rows); i++ {
		assert.LessOrEqual(t, rows[i-1].CategoryID, rows[i].CategoryID)
	}

	cat := int64(2)
	art, err := store.ListQuestions(ctx, models.QuestionFilter{CategoryID: &cat})
	require.NoError(t, err)
	assert.Len(t, art, 4)
	for _, r := range art {
		assert.Equal(t, cat, r.CategoryID)
	}
}

func TestInsertAndDeleteQuestion(t *testing.T) {
	store := newSeededStore(t)
	ctx := context.Background()

	created, err := store.InsertQuestion(ctx, models.InsertQuestionParams{
		Question: "Q", Answer: "A", CategoryID: 2, Difficulty: 2,
	})
	require.NoError(t, err)
	assert.Greater(t, created.ID, int64(23))

	require.NoError(t, store.DeleteQuestion(ctx, created.ID))
	assert.ErrorIs(t, store.DeleteQuestion(ctx, created.ID), models.ErrNotFound)
}
