package postgres

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/classroom-apps/qa-service/internal/models"
	"github.com/classroom-apps/qa-service/internal/repositories"
)

type AnswerPostgreSQL struct {
	db *gorm.DB
}

func NewAnswerPostgreSQL(db *gorm.DB) repositories.AnswerRepository {
	return &AnswerPostgreSQL{db: db}
}

func (a *AnswerPostgreSQL) Create(ctx context.Context, answer *models.Answer) error {
	if err := a.db.WithContext(ctx).Create(answer).Error; err != nil {
		return fmt.Errorf("failed to create answer: %w", err)
	}
	return nil
}

func (a *AnswerPostgreSQL) GetByID(ctx context.Context, id uint) (*models.Answer, error) {
	var answer models.Answer
	if err := a.db.WithContext(ctx).First(&answer, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("answer %d: %w", id, repositories.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get answer: %w", err)
	}
	return &answer, nil
}

func (a *AnswerPostgreSQL) ListByQuestion(ctx context.Context, questionID uint) ([]*models.Answer, error) {
	var answers []*models.Answer
	if err := a.db.WithContext(ctx).
		Where("question_id = ?", questionID).
		Order("created_at DESC").
		Find(&answers).Error; err != nil {
		return nil, fmt.Errorf("failed to list answers: %w", err)
	}
	return answers, nil
}

func (a *AnswerPostgreSQL) Update(ctx context.Context, answer *models.Answer) error {
	result := a.db.WithContext(ctx).Model(answer).Update("answer", answer.Answer)
	if result.Error != nil {
		return fmt.Errorf("failed to update answer: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("answer %d: %w", answer.ID, repositories.ErrNotFound)
	}
	return nil
}

func (a *AnswerPostgreSQL) Delete(ctx context.Context, id uint) error {
	result := a.db.WithContext(ctx).Delete(&models.Answer{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete answer: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("answer %d: %w", id, repositories.ErrNotFound)
	}
	return nil
}
