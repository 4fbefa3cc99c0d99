package services

import (
	"context"
	"log/slog"

	"github.com/classroom-apps/qa-service/internal/events"
	"github.com/classroom-apps/qa-service/internal/models"
	"github.com/classroom-apps/qa-service/internal/repositories"
)

// fetchUserSummaries resolves the distinct set of user ids in one batched
// store call and returns a lookup map. Enrichment is best-effort: a failed
// lookup is logged and an empty map is returned so callers attach nil users
// instead of failing the request.
func fetchUserSummaries(ctx context.Context, users repositories.UserRepository, logger *slog.Logger, ids []uint) map[uint]*models.UserSummary {
	distinct := make([]uint, 0, len(ids))
	seen := make(map[uint]bool, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			distinct = append(distinct, id)
		}
	}
	if len(distinct) == 0 {
		return nil
	}

	rows, err := users.GetByIDs(ctx, distinct)
	if err != nil {
		logger.Warn("Failed to fetch users for enrichment, continuing without", "error", err, "user_ids", distinct)
		return nil
	}

	summaries := make(map[uint]*models.UserSummary, len(rows))
	for _, user := range rows {
		summaries[user.ID] = user.Summary()
	}
	return summaries
}

// publishEvent publishes a lifecycle event without letting a broker problem
// reach the caller.
func publishEvent(ctx context.Context, publisher events.EventPublisher, logger *slog.Logger, event *events.Event) {
	if publisher == nil {
		return
	}
	if err := publisher.Publish(ctx, event); err != nil {
		logger.Warn("Failed to publish event", "error", err, "event_type", event.Type, "entity_id", event.EntityID)
	}
}
