// Package models holds the persisted row shapes shared by every store backend.
package models

import (
	"errors"
	"strings"
)

// Category is a row of the categories table. Categories are read-only through the API.
type Category struct {
	ID   int64  `gorm:"primaryKey"`
	Type string `gorm:"column:type;not null"`
}

// TableName pins the table name used by gorm.
func (Category) TableName() string { return "categories" }

// Question is a row of the questions table. CategoryID is not a foreign key.
type Question struct {
	ID         int64  `gorm:"primaryKey;autoIncrement"`
	Question   string `gorm:"column:question;type:text;not null"`
	Answer     string `gorm:"column:answer;type:text;not null"`
	CategoryID int64  `gorm:"column:category;not null;index"`
	Difficulty int32  `gorm:"column:difficulty;not null"`
}

// TableName pins the table name used by gorm.
func (Question) TableName() string { return "questions" }

// QuestionOrder selects the sort column for question scans.
type QuestionOrder int

const (
	OrderByID QuestionOrder = iota
	OrderByCategory
)

// QuestionFilter narrows a question scan. Zero values mean "no constraint".
type QuestionFilter struct {
	CategoryID *int64
	Search     string
	OrderBy    QuestionOrder
}

// InsertQuestionParams carries the fields of a new question.
type InsertQuestionParams struct {
	Question   string
	Answer     string
	CategoryID int64
	Difficulty int32
}

// ErrNotFound is returned by every backend when a row lookup or delete matches nothing.
var ErrNotFound = errors.New("record not found")

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// LikePattern wraps a lower-cased search term for a LIKE ... ESCAPE '\' substring match.
func LikePattern(term string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(term)) + "%"
}

// ContainsFold reports whether text contains term, ignoring Unicode case.
func ContainsFold(text, term string) bool {
	return strings.Contains(strings.ToLower(text), strings.ToLower(term))
}
