package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/classroom-apps/qa-service/internal/cache"
	"github.com/classroom-apps/qa-service/internal/models"
	"github.com/classroom-apps/qa-service/internal/repositories"
)

type UserPostgreSQL struct {
	db          *gorm.DB
	cacheHelper *cache.CacheHelper
}

func NewUserPostgreSQL(db *gorm.DB, redisClient *redis.Client) repositories.UserRepository {
	return &UserPostgreSQL{
		db:          db,
		cacheHelper: cache.NewCacheHelper(redisClient, cache.UserCacheConfig.Prefix),
	}
}

func (u *UserPostgreSQL) Create(ctx context.Context, user *models.User) error {
	if err := u.db.WithContext(ctx).Create(user).Error; err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// GetByID retrieves a user by ID with caching.
func (u *UserPostgreSQL) GetByID(ctx context.Context, id uint) (*models.User, error) {
	cacheKey := fmt.Sprintf("id:%d", id)
	var user models.User

	err := u.cacheHelper.CacheOrExecute(ctx, cacheKey, &user, cache.UserCacheConfig.TTL, func() (interface{}, error) {
		var dbUser models.User
		if err := u.db.WithContext(ctx).First(&dbUser, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("user %d: %w", id, repositories.ErrNotFound)
			}
			return nil, fmt.Errorf("failed to get user: %w", err)
		}
		return &dbUser, nil
	})
	if err != nil {
		return nil, err
	}

	return &user, nil
}

// GetByIDs fetches a batch of users, serving what it can from cache and
// hitting the database once for the rest. Ids with no row are silently
// absent from the result; the enrichment step treats those as missing users.
func (u *UserPostgreSQL) GetByIDs(ctx context.Context, ids []uint) ([]*models.User, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	users, missing := u.splitCacheHits(ctx, ids)

	if len(missing) > 0 {
		var dbUsers []*models.User
		if err := u.db.WithContext(ctx).Where("id IN ?", missing).Find(&dbUsers).Error; err != nil {
			return nil, fmt.Errorf("failed to get users by ids: %w", err)
		}

		items := make(map[string]interface{}, len(dbUsers))
		for _, user := range dbUsers {
			items[fmt.Sprintf("id:%d", user.ID)] = user
		}
		// Best-effort cache fill.
		_ = u.cacheHelper.SetMultiple(ctx, items, cache.UserCacheConfig.TTL)

		users = append(users, dbUsers...)
	}

	return users, nil
}

// splitCacheHits serves what it can from cache and returns the ids that
// still need a database read. The returned slice never shares memory with
// ids.
func (u *UserPostgreSQL) splitCacheHits(ctx context.Context, ids []uint) ([]*models.User, []uint) {
	keys := make([]string, len(ids))
	keyToID := make(map[string]uint, len(ids))
	for i, id := range ids {
		keys[i] = fmt.Sprintf("id:%d", id)
		keyToID[keys[i]] = id
	}

	missing := make([]uint, 0, len(ids))

	cached, err := u.cacheHelper.GetMultiple(ctx, keys)
	if err != nil || len(cached) == 0 {
		return nil, append(missing, ids...)
	}

	users := make([]*models.User, 0, len(cached))
	hit := make(map[uint]bool, len(cached))
	for key, raw := range cached {
		var user models.User
		if jsonErr := json.Unmarshal([]byte(raw), &user); jsonErr != nil {
			// Unreadable entry: drop it and refetch from the database.
			cache.SafeDelete(ctx, u.cacheHelper, key)
			continue
		}
		users = append(users, &user)
		hit[keyToID[key]] = true
	}
	for _, id := range ids {
		if !hit[id] {
			missing = append(missing, id)
		}
	}
	return users, missing
}
