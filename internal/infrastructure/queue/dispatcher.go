package queue

import (
	"context"
	"hash/fnv"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/skillbridge/exchange-system/internal/api/metrics"
	"github.com/skillbridge/exchange-system/internal/core/domain"
	"github.com/skillbridge/exchange-system/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// DedupGuard abstracts the Redis-backed duplicate-delivery check.
type DedupGuard interface {
	AlreadySent(ctx context.Context, n domain.Notification) (bool, error)
	Mark(ctx context.Context, n domain.Notification) error
}

// Dispatcher routes notifications to a fixed set of workers using consistent
// hashing on the session id, so notifications for one session are delivered
// in order. Delivery failures are logged and counted, never propagated.
type Dispatcher struct {
	workers  []chan domain.Notification
	notifier ports.Notifier
	dedup    DedupGuard
	log      zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, notifier ports.Notifier, dedup DedupGuard, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers:  make([]chan domain.Notification, numWorkers),
		notifier: notifier,
		dedup:    dedup,
		log:      log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.Notification, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue sends a notification to the worker responsible for its session.
// Non-blocking up to channelBuffer capacity.
func (d *Dispatcher) Enqueue(n domain.Notification) {
	idx := d.shardIndex(n.SessionID)
	d.workers[idx] <- n
	metrics.NotificationQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
}

// shardIndex maps a session id deterministically to a worker index.
func (d *Dispatcher) shardIndex(sessionID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(sessionID))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.Notification) {
	workerID := strconv.Itoa(id)
	for {
		select {
		case <-ctx.Done():
			return
		case n, ok := <-ch:
			if !ok {
				return
			}
			d.deliver(ctx, n)
			metrics.NotificationQueueDepth.WithLabelValues(workerID).Set(float64(len(ch)))
		}
	}
}

func (d *Dispatcher) deliver(ctx context.Context, n domain.Notification) {
	if sent, err := d.dedup.AlreadySent(ctx, n); err != nil {
		d.log.Warn().Err(err).Str("session_id", n.SessionID).Msg("dedup check failed, delivering anyway")
	} else if sent {
		d.log.Debug().Str("session_id", n.SessionID).Str("kind", string(n.Kind)).Msg("duplicate notification skipped")
		return
	}

	if err := d.notifier.Send(ctx, n); err != nil {
		metrics.NotificationsErrorsTotal.WithLabelValues(string(n.Kind)).Inc()
		d.log.Error().Err(err).
			Str("session_id", n.SessionID).
			Str("recipient_id", n.RecipientID).
			Str("kind", string(n.Kind)).
			Msg("notification delivery failed")
		return
	}

	if err := d.dedup.Mark(ctx, n); err != nil {
		d.log.Warn().Err(err).Str("session_id", n.SessionID).Msg("failed to set dedup key")
	}

	metrics.NotificationsSentTotal.WithLabelValues(string(n.Kind)).Inc()
	d.log.Info().
		Str("session_id", n.SessionID).
		Str("recipient_id", n.RecipientID).
		Str("kind", string(n.Kind)).
		Msg("notification delivered")
}
