package repository

import (
	"context"

	"quizmate/internal/models"
	"quizmate/internal/observability"

	"gorm.io/gorm"
)

// QuestionRepository defines persistence operations for the question bank.
type QuestionRepository interface {
	GetByCategory(ctx context.Context, category string, limit int) ([]models.Question, error)
	GetByIDs(ctx context.Context, ids []uint) ([]models.Question, error)
	Categories(ctx context.Context) ([]string, error)
	CreateBatch(ctx context.Context, questions []models.Question) error
}

type questionRepository struct {
	db *gorm.DB
}

// NewQuestionRepository creates a new question repository.
func NewQuestionRepository(db *gorm.DB) QuestionRepository {
	return &questionRepository{db: db}
}

func (r *questionRepository) GetByCategory(ctx context.Context, category string, limit int) ([]models.Question, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	defer observability.TrackQuery("select", "questions")()

	var questions []models.Question
	if err := r.db.WithContext(ctx).
		Where("category = ?", category).
		Limit(limit).
		Find(&questions).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return questions, nil
}

func (r *questionRepository) GetByIDs(ctx context.Context, ids []uint) ([]models.Question, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var questions []models.Question
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&questions).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return questions, nil
}

func (r *questionRepository) Categories(ctx context.Context) ([]string, error) {
	var categories []string
	if err := r.db.WithContext(ctx).
		Model(&models.Question{}).
		Distinct("category").
		Order("category ASC").
		Pluck("category", &categories).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return categories, nil
}

func (r *questionRepository) CreateBatch(ctx context.Context, questions []models.Question) error {
	if len(questions) == 0 {
		return nil
	}
	if err := r.db.WithContext(ctx).CreateInBatches(questions, 100).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}
