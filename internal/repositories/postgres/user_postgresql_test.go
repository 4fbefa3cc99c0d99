package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/classroom-apps/qa-service/internal/cache"
	"github.com/classroom-apps/qa-service/internal/models"
)

func newCachedUserRepo(t *testing.T) (*UserPostgreSQL, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return &UserPostgreSQL{
		cacheHelper: cache.NewCacheHelper(client, cache.UserCacheConfig.Prefix),
	}, mr
}

func seedCachedUser(t *testing.T, mr *miniredis.Miniredis, user *models.User) {
	t.Helper()
	data, err := json.Marshal(user)
	if err != nil {
		t.Fatalf("marshal user: %v", err)
	}
	key := fmt.Sprintf("%sid:%d", cache.UserCacheConfig.Prefix, user.ID)
	if err := mr.Set(key, string(data)); err != nil {
		t.Fatalf("seed cache: %v", err)
	}
}

func TestSplitCacheHits(t *testing.T) {
	ctx := context.Background()

	t.Run("partitions hits from misses", func(t *testing.T) {
		repo, mr := newCachedUserRepo(t)
		seedCachedUser(t, mr, &models.User{ID: 1, Name: "Ms. Rivera", Role: models.RoleTeacher})

		ids := []uint{1, 2, 3}
		users, missing := repo.splitCacheHits(ctx, ids)

		if len(users) != 1 || users[0].ID != 1 {
			t.Fatalf("expected cached user 1, got %+v", users)
		}
		if len(missing) != 2 || missing[0] != 2 || missing[1] != 3 {
			t.Fatalf("expected misses [2 3], got %v", missing)
		}
	})

	t.Run("missing slice does not alias the input", func(t *testing.T) {
		repo, mr := newCachedUserRepo(t)
		seedCachedUser(t, mr, &models.User{ID: 1, Name: "Ms. Rivera", Role: models.RoleTeacher})

		ids := []uint{1, 2, 3}
		_, missing := repo.splitCacheHits(ctx, ids)

		for i := range missing {
			missing[i] = 999
		}
		if ids[0] != 1 || ids[1] != 2 || ids[2] != 3 {
			t.Fatalf("input slice was mutated through the returned misses: %v", ids)
		}
	})

	t.Run("corrupt entry is dropped and refetched", func(t *testing.T) {
		repo, mr := newCachedUserRepo(t)
		seedCachedUser(t, mr, &models.User{ID: 1, Name: "Ms. Rivera", Role: models.RoleTeacher})
		if err := mr.Set(cache.UserCacheConfig.Prefix+"id:2", "{not json"); err != nil {
			t.Fatalf("seed cache: %v", err)
		}

		users, missing := repo.splitCacheHits(ctx, []uint{1, 2})

		if len(users) != 1 || users[0].ID != 1 {
			t.Fatalf("expected only the readable user, got %+v", users)
		}
		if len(missing) != 1 || missing[0] != 2 {
			t.Fatalf("expected id 2 to fall through to the database, got %v", missing)
		}
		if mr.Exists(cache.UserCacheConfig.Prefix + "id:2") {
			t.Error("corrupt entry should have been deleted")
		}
	})

	t.Run("no cache means everything misses", func(t *testing.T) {
		repo := &UserPostgreSQL{cacheHelper: cache.NewCacheHelper(nil, cache.UserCacheConfig.Prefix)}

		ids := []uint{4, 5}
		users, missing := repo.splitCacheHits(ctx, ids)

		if users != nil {
			t.Errorf("expected no cached users, got %+v", users)
		}
		if len(missing) != 2 {
			t.Fatalf("expected all ids to miss, got %v", missing)
		}
		missing[0] = 999
		if ids[0] != 4 {
			t.Fatalf("input slice was mutated through the returned misses: %v", ids)
		}
	})
}
