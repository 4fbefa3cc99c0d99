package repositories

import (
	"context"

	"github.com/classroom-apps/qa-service/internal/models"
)

// QuestionRepository persists question rows.
type QuestionRepository interface {
	Create(ctx context.Context, question *models.Question) error
	GetByID(ctx context.Context, id uint) (*models.Question, error)

	// List returns all questions ordered by creation time descending.
	List(ctx context.Context) ([]*models.Question, error)

	Update(ctx context.Context, question *models.Question) error
	Delete(ctx context.Context, id uint) error
	ExistsByID(ctx context.Context, id uint) (bool, error)
}
