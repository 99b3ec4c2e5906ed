package trivia

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"strings"

	"github.com/gokatarajesh/trivia-api/internal/db/models"
)

type questionRepository interface {
	List(ctx context.Context, filter models.QuestionFilter) ([]models.Question, error)
	ListByCategory(ctx context.Context, categoryID int64) ([]models.Question, error)
	Search(ctx context.Context, term string) ([]models.Question, error)
	Count(ctx context.Context) (int64, error)
	Insert(ctx context.Context, params models.InsertQuestionParams) (models.Question, error)
	Delete(ctx context.Context, id int64) error
}

// Service implements the trivia operations on top of the repositories.
type Service struct {
	questions  questionRepository
	categories categoryRepository
	resolver   *CategoryResolver
	metrics    *Metrics
	intn       func(n int) int
}

type ServiceOptions struct {
	Cache                  CategoryCache
	Metrics                *Metrics
	LenientCurrentCategory bool

	// Rand overrides the quiz draw; it must return a value in [0, n).
	Rand func(n int) int
}

func NewService(questions questionRepository, categories categoryRepository, opts ServiceOptions) *Service {
	intn := opts.Rand
	if intn == nil {
		intn = rand.IntN
	}
	return &Service{
		questions:  questions,
		categories: categories,
		resolver:   NewCategoryResolver(categories, opts.Cache, opts.LenientCurrentCategory),
		metrics:    opts.Metrics,
		intn:       intn,
	}
}

// Categories returns every category keyed by id.
func (s *Service) Categories(ctx context.Context) (CategoryMap, error) {
	return s.resolver.All(ctx)
}

// ListQuestions returns one page of all questions ordered by category. An empty
// page is ErrNotFound.
func (s *Service) ListQuestions(ctx context.Context, page int) (QuestionList, error) {
	rows, err := s.questions.List(ctx, models.QuestionFilter{OrderBy: models.OrderByCategory})
	if err != nil {
		return QuestionList{}, fmt.Errorf("list questions: %w", err)
	}
	all := toDomainList(rows)
	current := Paginate(page, all)
	if len(current) == 0 {
		return QuestionList{}, fmt.Errorf("%w: page %d is empty", ErrNotFound, page)
	}

	categories, currentCategory, err := s.resolver.Current(ctx, current)
	if err != nil {
		return QuestionList{}, err
	}
	return QuestionList{
		Questions:       current,
		Total:           len(all),
		Categories:      categories,
		CurrentCategory: currentCategory,
	}, nil
}

// DeleteQuestion removes a question and returns the refreshed listing ordered by id.
func (s *Service) DeleteQuestion(ctx context.Context, id, page int) (QuestionMutation, error) {
	if err := s.questions.Delete(ctx, int64(id)); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return QuestionMutation{}, fmt.Errorf("%w: question %d", ErrNotFound, id)
		}
		return QuestionMutation{}, fmt.Errorf("delete question %d: %w", id, err)
	}
	s.metrics.observeDelete()

	mutation, err := s.refresh(ctx, page)
	if err != nil {
		return QuestionMutation{}, err
	}
	mutation.ID = id
	return mutation, nil
}

// CreateQuestion validates and stores a question and returns the refreshed
// listing ordered by id. Empty text fields are ErrBadRequest; a difficulty
// outside [1, MaxInt32] or a failed insert is ErrUnprocessable.
func (s *Service) CreateQuestion(ctx context.Context, in CreateQuestionInput, page int) (QuestionMutation, error) {
	if strings.TrimSpace(in.Question) == "" || strings.TrimSpace(in.Answer) == "" {
		return QuestionMutation{}, fmt.Errorf("%w: question and answer are required", ErrBadRequest)
	}
	if in.Difficulty < 1 || in.Difficulty > math.MaxInt32 {
		return QuestionMutation{}, fmt.Errorf("%w: difficulty out of range, got %d", ErrUnprocessable, in.Difficulty)
	}

	created, err := s.questions.Insert(ctx, models.InsertQuestionParams{
		Question:   in.Question,
		Answer:     in.Answer,
		CategoryID: int64(in.Category),
		Difficulty: int32(in.Difficulty),
	})
	if err != nil {
		return QuestionMutation{}, fmt.Errorf("%w: insert question: %w", ErrUnprocessable, err)
	}
	s.metrics.observeCreate()

	mutation, err := s.refresh(ctx, page)
	if err != nil {
		return QuestionMutation{}, fmt.Errorf("%w: %w", ErrUnprocessable, err)
	}
	mutation.ID = int(created.ID)
	return mutation, nil
}

func (s *Service) refresh(ctx context.Context, page int) (QuestionMutation, error) {
	rows, err := s.questions.List(ctx, models.QuestionFilter{OrderBy: models.OrderByID})
	if err != nil {
		return QuestionMutation{}, fmt.Errorf("list questions: %w", err)
	}
	total, err := s.questions.Count(ctx)
	if err != nil {
		return QuestionMutation{}, fmt.Errorf("count questions: %w", err)
	}
	return QuestionMutation{
		Questions: Paginate(page, toDomainList(rows)),
		Total:     int(total),
	}, nil
}

// SearchQuestions returns one page of questions containing term, ignoring case.
// An empty term is ErrUnprocessable and no match at all is ErrNotFound. A page
// past the end is returned empty with no current category.
func (s *Service) SearchQuestions(ctx context.Context, term string, page int) (SearchResult, error) {
	if strings.TrimSpace(term) == "" {
		return SearchResult{}, fmt.Errorf("%w: empty search term", ErrUnprocessable)
	}
	rows, err := s.questions.Search(ctx, term)
	if err != nil {
		return SearchResult{}, fmt.Errorf("%w: search questions: %w", ErrUnprocessable, err)
	}
	if len(rows) == 0 {
		return SearchResult{}, fmt.Errorf("%w: no question matches %q", ErrNotFound, term)
	}

	current := Paginate(page, toDomainList(rows))
	if len(current) == 0 {
		return SearchResult{Questions: current, Total: len(rows)}, nil
	}
	_, currentCategory, err := s.resolver.Current(ctx, current)
	if err != nil {
		return SearchResult{}, err
	}
	return SearchResult{
		Questions:       current,
		Total:           len(rows),
		CurrentCategory: currentCategory,
	}, nil
}

// QuestionsByCategory returns one page of a category's questions ordered by id.
// An unknown category is ErrBadRequest; an empty page is not an error.
func (s *Service) QuestionsByCategory(ctx context.Context, categoryID, page int) (CategoryQuestions, error) {
	category, err := s.categories.Get(ctx, int64(categoryID))
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return CategoryQuestions{}, fmt.Errorf("%w: unknown category %d", ErrBadRequest, categoryID)
		}
		return CategoryQuestions{}, fmt.Errorf("get category %d: %w", categoryID, err)
	}

	rows, err := s.questions.ListByCategory(ctx, category.ID)
	if err != nil {
		return CategoryQuestions{}, fmt.Errorf("list category %d: %w", categoryID, err)
	}
	return CategoryQuestions{
		Questions:       Paginate(page, toDomainList(rows)),
		Total:           len(rows),
		CurrentCategory: category.Type,
	}, nil
}

// NextQuizQuestion draws a random question of the requested category (or of
// every category for AllCategories) that is not in req.PreviousIDs. It returns
// nil without error once every candidate has been played.
func (s *Service) NextQuizQuestion(ctx context.Context, req QuizRequest) (*Question, error) {
	filter := models.QuestionFilter{OrderBy: models.OrderByID}
	if req.CategoryID != AllCategories {
		id := int64(req.CategoryID)
		filter.CategoryID = &id
	}

	rows, err := s.questions.List(ctx, filter)
	if err != nil {
		s.metrics.observeDraw(DrawFailed)
		return nil, fmt.Errorf("%w: quiz candidates: %w", ErrUnprocessable, err)
	}

	next, ok := PickQuizQuestion(toDomainList(rows), req.PreviousIDs, s.intn)
	if !ok {
		s.metrics.observeDraw(DrawExhausted)
		return nil, nil
	}
	s.metrics.observeDraw(DrawQuestion)
	return &next, nil
}
