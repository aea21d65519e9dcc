package ports

import (
	"context"

	"github.com/skillbridge/exchange-system/internal/core/domain"
)

// NotificationSink accepts notifications for asynchronous delivery. The
// session service enqueues after a transition commits and never waits for
// the outcome.
type NotificationSink interface {
	Enqueue(n domain.Notification)
}

// Notifier performs the actual outbound delivery of one notification.
type Notifier interface {
	Send(ctx context.Context, n domain.Notification) error
}
