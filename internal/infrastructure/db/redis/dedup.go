package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/skillbridge/exchange-system/internal/core/domain"
)

const dedupTTL = 24 * time.Hour

// NotificationDedup suppresses duplicate outbound notifications backed by
// Redis. A transition that is replayed (client retry, double submit) would
// otherwise email the recipient twice.
// Key format: notify:<session_id>:<kind>
type NotificationDedup struct {
	client *redis.Client
}

// NewNotificationDedup creates a NotificationDedup wrapping the given client.
func NewNotificationDedup(client *redis.Client) *NotificationDedup {
	return &NotificationDedup{client: client}
}

// AlreadySent reports whether this notification was already delivered.
func (d *NotificationDedup) AlreadySent(ctx context.Context, n domain.Notification) (bool, error) {
	nn, err := d.client.Exists(ctx, d.key(n)).Result()
	if err != nil {
		return false, fmt.Errorf("notification dedup check: %w", err)
	}
	return nn > 0, nil
}

// Mark records that this notification has been delivered (expires after dedupTTL).
func (d *NotificationDedup) Mark(ctx context.Context, n domain.Notification) error {
	return d.client.Set(ctx, d.key(n), "1", dedupTTL).Err()
}

func (d *NotificationDedup) key(n domain.Notification) string {
	return fmt.Sprintf("notify:%s:%s", n.SessionID, n.Kind)
}
