package repositories

import (
	"context"

	"github.com/classroom-apps/qa-service/internal/models"
)

// UserRepository provides user rows. Users are created once and never
// updated or deleted; the role stored here is the source of truth for every
// authorization check.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)

	// GetByIDs is the batched lookup behind result enrichment. Ids that do
	// not resolve are simply absent from the result; that is not an error.
	GetByIDs(ctx context.Context, ids []uint) ([]*models.User, error)
}
