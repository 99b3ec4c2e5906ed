// Package gormstore implements the trivia store with gorm, backed by SQLite for
// local development and tests.
package gormstore

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/gokatarajesh/trivia-api/internal/db/models"
)

// Store runs the trivia queries through gorm.
type Store struct {
	db *gorm.DB
}

// Open connects to the SQLite database at path (":memory:" is accepted) and
// migrates the schema.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		path = "trivia.db"
	}
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	// A single connection keeps ":memory:" databases shared across requests.
	sqlDB.SetMaxOpenConns(1)

	store := &Store{db: db}
	if err := store.AutoMigrate(); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}
	return store, nil
}

// NewFromDB wraps an existing gorm handle.
func NewFromDB(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) AutoMigrate() error {
	if err := s.db.AutoMigrate(&models.Category{}, &models.Question{}); err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}
	return nil
}

// Seed inserts the bundled data set when the categories table is empty.
func (s *Store) Seed(ctx context.Context) (bool, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Category{}).Count(&count).Error; err != nil {
		return false, err
	}
	if count > 0 {
		return false, nil
	}
	categories := append([]models.Category(nil), models.SeedCategories...)
	questions := append([]models.Question(nil), models.SeedQuestions...)
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&categories).Error; err != nil {
			return err
		}
		return tx.Create(&questions).Error
	})
	if err != nil {
		return false, fmt.Errorf("seed: %w", err)
	}
	return true, nil
}

func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (s *Store) ListCategories(ctx context.Context) ([]models.Category, error) {
	var out []models.Category
	err := s.db.WithContext(ctx).Order("id").Find(&out).Error
	return out, err
}

func (s *Store) GetCategory(ctx context.Context, id int64) (models.Category, error) {
	var c models.Category
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Category{}, models.ErrNotFound
	}
	return c, err
}

func (s *Store) ListQuestions(ctx context.Context, filter models.QuestionFilter) ([]models.Question, error) {
	tx := s.db.WithContext(ctx).Model(&models.Question{})
	if filter.CategoryID != nil {
		tx = tx.Where("category = ?", *filter.CategoryID)
	}
	switch filter.OrderBy {
	case models.OrderByCategory:
		tx = tx.Order("category").Order("id")
	default:
		tx = tx.Order("id")
	}

	var out []models.Question
	if err := tx.Find(&out).Error; err != nil {
		return nil, err
	}
	// SQLite's LOWER and LIKE only fold ASCII, so substring search runs here.
	if filter.Search != "" {
		matches := out[:0]
		for _, q := range out {
			if models.ContainsFold(q.Question, filter.Search) {
				matches = append(matches, q)
			}
		}
		out = matches
	}
	return out, nil
}

func (s *Store) CountQuestions(ctx context.Context) (int64, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(&models.Question{}).Count(&n).Error
	return n, err
}

func (s *Store) InsertQuestion(ctx context.Context, arg models.InsertQuestionParams) (models.Question, error) {
	row := models.Question{
		Question:   arg.Question,
		Answer:     arg.Answer,
		CategoryID: arg.CategoryID,
		Difficulty: arg.Difficulty,
	}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return models.Question{}, err
	}
	return row, nil
}

func (s *Store) DeleteQuestion(ctx context.Context, id int64) error {
	res := s.db.WithContext(ctx).Delete(&models.Question{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return models.ErrNotFound
	}
	return nil
}
