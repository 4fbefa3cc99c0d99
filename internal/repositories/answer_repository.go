package repositories

import (
	"context"

	"github.com/classroom-apps/qa-service/internal/models"
)

// AnswerRepository persists answer rows.
type AnswerRepository interface {
	Create(ctx context.Context, answer *models.Answer) error
	GetByID(ctx context.Context, id uint) (*models.Answer, error)

	// ListByQuestion returns a question's answers ordered by creation time
	// descending.
	ListByQuestion(ctx context.Context, questionID uint) ([]*models.Answer, error)

	Update(ctx context.Context, answer *models.Answer) error
	Delete(ctx context.Context, id uint) error
}
