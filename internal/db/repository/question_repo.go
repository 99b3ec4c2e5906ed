package repository

import (
	"context"

	"github.com/gokatarajesh/trivia-api/internal/db/models"
)

type questionStore interface {
	ListQuestions(ctx context.Context, filter models.QuestionFilter) ([]models.Question, error)
	CountQuestions(ctx context.Context) (int64, error)
	InsertQuestion(ctx context.Context, arg models.InsertQuestionParams) (models.Question, error)
	DeleteQuestion(ctx context.Context, id int64) error
}

// QuestionRepository wraps backend queries for question access.
type QuestionRepository struct {
	store questionStore
}

func NewQuestionRepository(store questionStore) *QuestionRepository {
	return &QuestionRepository{store: store}
}

// List returns every question matching filter in the requested order.
func (r *QuestionRepository) List(ctx context.Context, filter models.QuestionFilter) ([]models.Question, error) {
	return r.store.ListQuestions(ctx, filter)
}

// ListByCategory returns the questions of one category ordered by id.
func (r *QuestionRepository) ListByCategory(ctx context.Context, categoryID int64) ([]models.Question, error) {
	return r.store.ListQuestions(ctx, models.QuestionFilter{CategoryID: &categoryID})
}

// Search returns questions whose text contains term, ignoring case, ordered by id.
func (r *QuestionRepository) Search(ctx context.Context, term string) ([]models.Question, error) {
	return r.store.ListQuestions(ctx, models.QuestionFilter{Search: term})
}

func (r *QuestionRepository) Count(ctx context.Context) (int64, error) {
	return r.store.CountQuestions(ctx)
}

func (r *QuestionRepository) Insert(ctx context.Context, params models.InsertQuestionParams) (models.Question, error) {
	return r.store.InsertQuestion(ctx, params)
}

// Delete removes a question; models.ErrNotFound when the id is absent.
func (r *QuestionRepository) Delete(ctx context.Context, id int64) error {
	return r.store.DeleteQuestion(ctx, id)
}
