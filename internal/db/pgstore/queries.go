// Package pgstore implements the trivia store on PostgreSQL through pgx.
package pgstore

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/gokatarajesh/trivia-api/internal/db/models"
)

// DBTX is satisfied by *pgxpool.Pool, *pgx.Conn and pgx.Tx.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Queries runs the trivia statements against a DBTX.
type Queries struct {
	db DBTX
}

func New(db DBTX) *Queries {
	return &Queries{db: db}
}

// WithTx returns a copy bound to the given transaction.
func (q *Queries) WithTx(tx pgx.Tx) *Queries {
	return &Queries{db: tx}
}

const listCategories = `SELECT id, type FROM categories ORDER BY id`

func (q *Queries) ListCategories(ctx context.Context) ([]models.Category, error) {
	rows, err := q.db.Query(ctx, listCategories)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Category, error) {
		var c models.Category
		err := row.Scan(&c.ID, &c.Type)
		return c, err
	})
}

const getCategory = `SELECT id, type FROM categories WHERE id = $1`

func (q *Queries) GetCategory(ctx context.Context, id int64) (models.Category, error) {
	var c models.Category
	err := q.db.QueryRow(ctx, getCategory, id).Scan(&c.ID, &c.Type)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.Category{}, models.ErrNotFound
	}
	return c, err
}

const questionColumns = `id, question, answer, category, difficulty`

func (q *Queries) ListQuestions(ctx context.Context, filter models.QuestionFilter) ([]models.Question, error) {
	var (
		where []string
		args  []any
	)
	if filter.CategoryID != nil {
		args = append(args, *filter.CategoryID)
		where = append(where, fmt.Sprintf("category = $%d", len(args)))
	}
	if filter.Search != "" {
		args = append(args, models.LikePattern(filter.Search))
		where = append(where, fmt.Sprintf(`question ILIKE $%d ESCAPE '\'`, len(args)))
	}

	var sb strings.Builder
	sb.WriteString("SELECT " + questionColumns + " FROM questions")
	if len(where) > 0 {
		sb.WriteString(" WHERE " + strings.Join(where, " AND "))
	}
	switch filter.OrderBy {
	case models.OrderByCategory:
		sb.WriteString(" ORDER BY category, id")
	default:
		sb.WriteString(" ORDER BY id")
	}

	rows, err := q.db.Query(ctx, sb.String(), args...)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, scanQuestion)
}

const countQuestions = `SELECT COUNT(*) FROM questions`

func (q *Queries) CountQuestions(ctx context.Context) (int64, error) {
	var n int64
	err := q.db.QueryRow(ctx, countQuestions).Scan(&n)
	return n, err
}

const insertQuestion = `INSERT INTO questions (question, answer, category, difficulty)
VALUES ($1, $2, $3, $4)
RETURNING ` + questionColumns

func (q *Queries) InsertQuestion(ctx context.Context, arg models.InsertQuestionParams) (models.Question, error) {
	rows, err := q.db.Query(ctx, insertQuestion, arg.Question, arg.Answer, arg.CategoryID, arg.Difficulty)
	if err != nil {
		return models.Question{}, err
	}
	return pgx.CollectExactlyOneRow(rows, scanQuestion)
}

const deleteQuestion = `DELETE FROM questions WHERE id = $1`

func (q *Queries) DeleteQuestion(ctx context.Context, id int64) error {
	tag, err := q.db.Exec(ctx, deleteQuestion, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}

func scanQuestion(row pgx.CollectableRow) (models.Question, error) {
	var m models.Question
	err := row.Scan(&m.ID, &m.Question, &m.Answer, &m.CategoryID, &m.Difficulty)
	return m, err
}
