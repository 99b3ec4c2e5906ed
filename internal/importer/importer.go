// Package importer loads questions from the Open Trivia DB into the local store.
package importer

import (
	"context"
	"errors"
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/gokatarajesh/trivia-api/internal/db/models"
	"github.com/gokatarajesh/trivia-api/internal/logging"
)

// ErrRateLimited is returned when OpenTDB refuses a request for coming too soon.
var ErrRateLimited = errors.New("opentdb rate limit")

// SourceCategories maps local category ids onto OpenTDB category ids.
var SourceCategories = map[int64]int{
	1: 17, // Science & Nature
	2: 25, // Art
	3: 22, // Geography
	4: 23, // History
	5: 11, // Entertainment: Film
	6: 21, // Sports
}

var difficulties = map[string]int32{
	"easy":   1,
	"medium": 3,
	"hard":   5,
}

type fetcher interface {
	Fetch(ctx context.Context, req FetchRequest) ([]OpenTDBQuestion, error)
}

type questionRepository interface {
	Search(ctx context.Context, term string) ([]models.Question, error)
	Insert(ctx context.Context, params models.InsertQuestionParams) (models.Question, error)
}

// Options controls one import run.
type Options struct {
	// Amount is the number of questions requested per category.
	Amount int
	// Categories lists local category ids; empty means every mapped category.
	Categories []int64
	// Difficulty is easy, medium or hard; empty fetches all three.
	Difficulty string
	// Pause separates consecutive OpenTDB requests.
	Pause time.Duration
}

// Report counts what a run did.
type Report struct {
	Fetched    int
	Imported   int
	Duplicates int
	Skipped    int
}

// Importer copies OpenTDB questions into the question store.
type Importer struct {
	source    fetcher
	questions questionRepository
}

func New(source fetcher, questions questionRepository) *Importer {
	return &Importer{source: source, questions: questions}
}

// Run fetches opts.Amount questions for each requested category and inserts
// those whose text is not stored yet.
func (im *Importer) Run(ctx context.Context, opts Options) (Report, error) {
	log := logging.FromContext(ctx)
	if opts.Amount < 1 || opts.Amount > 50 {
		return Report{}, fmt.Errorf("amount must be between 1 and 50, got %d", opts.Amount)
	}
	if opts.Difficulty != "" {
		if _, ok := difficulties[opts.Difficulty]; !ok {
			return Report{}, fmt.Errorf("unknown difficulty %q", opts.Difficulty)
		}
	}

	categories := opts.Categories
	if len(categories) == 0 {
		for id := int64(1); id <= int64(len(SourceCategories)); id++ {
			categories = append(categories, id)
		}
	}

	var report Report
	for i, categoryID := range categories {
		source, ok := SourceCategories[categoryID]
		if !ok {
			return report, fmt.Errorf("category %d has no OpenTDB source", categoryID)
		}
		if i > 0 {
			if err := sleep(ctx, opts.Pause); err != nil {
				return report, err
			}
		}

		results, err := im.source.Fetch(ctx, FetchRequest{Amount: opts.Amount, Category: source, Difficulty: opts.Difficulty})
		if err != nil {
			return report, fmt.Errorf("fetch category %d: %w", categoryID, err)
		}
		report.Fetched += len(results)

		for _, result := range results {
			params, ok := convert(result, categoryID)
			if !ok {
				report.Skipped++
				continue
			}
			exists, err := im.exists(ctx, params.Question)
			if err != nil {
				return report, err
			}
			if exists {
				report.Duplicates++
				continue
			}
			if _, err := im.questions.Insert(ctx, params); err != nil {
				return report, fmt.Errorf("insert question: %w", err)
			}
			report.Imported++
		}
		log.Info().
			Int64("category", categoryID).
			Int("fetched", len(results)).
			Msg("category imported")
	}
	return report, nil
}

func (im *Importer) exists(ctx context.Context, text string) (bool, error) {
	matches, err := im.questions.Search(ctx, text)
	if err != nil {
		return false, fmt.Errorf("look up question: %w", err)
	}
	for _, m := range matches {
		if strings.EqualFold(m.Question, text) {
			return true, nil
		}
	}
	return false, nil
}

func convert(q OpenTDBQuestion, categoryID int64) (models.InsertQuestionParams, bool) {
	difficulty, ok := difficulties[q.Difficulty]
	if !ok {
		return models.InsertQuestionParams{}, false
	}
	text := strings.TrimSpace(html.UnescapeString(q.Question))
	answer := strings.TrimSpace(html.UnescapeString(q.CorrectAnswer))
	if text == "" || answer == "" {
		return models.InsertQuestionParams{}, false
	}
	return models.InsertQuestionParams{
		Question:   text,
		Answer:     answer,
		CategoryID: categoryID,
		Difficulty: difficulty,
	}, true
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
