package queue

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/skillbridge/exchange-system/internal/core/domain"
)

type recordingNotifier struct {
	mu        sync.Mutex
	delivered []domain.Notification
	sendErr   error
	signal    chan struct{}
}

func newRecordingNotifier() *recordingNotifier {
	return &recordingNotifier{signal: make(chan struct{}, 16)}
}

func (n *recordingNotifier) Send(_ context.Context, notification domain.Notification) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.sendErr != nil {
		n.signal <- struct{}{}
		return n.sendErr
	}
	n.delivered = append(n.delivered, notification)
	n.signal <- struct{}{}
	return nil
}

func (n *recordingNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.delivered)
}

type stubDedup struct {
	mu     sync.Mutex
	sent   map[string]bool
	marked []string
}

func newStubDedup() *stubDedup {
	return &stubDedup{sent: make(map[string]bool)}
}

func (d *stubDedup) key(n domain.Notification) string {
	return n.SessionID + ":" + string(n.Kind)
}

func (d *stubDedup) AlreadySent(_ context.Context, n domain.Notification) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.sent[d.key(n)], nil
}

func (d *stubDedup) Mark(_ context.Context, n domain.Notification) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.sent[d.key(n)] = true
	d.marked = append(d.marked, d.key(n))
	return nil
}

func waitFor(t *testing.T, signal <-chan struct{}, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		select {
		case <-signal:
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out waiting for delivery %d of %d", i+1, n)
		}
	}
}

func testNotification(sessionID string, kind domain.NotificationKind) domain.Notification {
	return domain.Notification{
		Kind:           kind,
		SessionID:      sessionID,
		RecipientID:    "student_1",
		RecipientEmail: "leo@campus.edu",
		SessionTitle:   "Intro to Go",
		EmittedAt:      time.Now().UTC(),
	}
}

func TestDispatcher_Delivers(t *testing.T) {
	notifier := newRecordingNotifier()
	dedup := newStubDedup()
	d := NewDispatcher(2, notifier, dedup, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	d.Enqueue(testNotification("sess_1", domain.NotifySessionCreated))
	waitFor(t, notifier.signal, 1)

	if notifier.count() != 1 {
		t.Fatalf("expected 1 delivery, got %d", notifier.count())
	}
	if len(dedup.marked) != 1 {
		t.Fatalf("successful delivery must be marked, got %d marks", len(dedup.marked))
	}
}

func TestDispatcher_SkipsAlreadySent(t *testing.T) {
	notifier := newRecordingNotifier()
	dedup := newStubDedup()
	dedup.sent["sess_1:"+string(domain.NotifySessionCreated)] = true

	d := NewDispatcher(1, notifier, dedup, zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	// The duplicate is silently dropped; the fresh one goes through. With a
	// single worker, ordering guarantees the duplicate was handled first.
	d.Enqueue(testNotification("sess_1", domain.NotifySessionCreated))
	d.Enqueue(testNotification("sess_2", domain.NotifySessionCreated))
	waitFor(t, notifier.signal, 1)

	if notifier.count() != 1 {
		t.Fatalf("expected only the fresh notification, got %d", notifier.count())
	}
	if notifier.delivered[0].SessionID != "sess_2" {
		t.Fatalf("wrong notification delivered: %s", notifier.delivered[0].SessionID)
	}
}

func TestDispatcher_DeliveryFailureNotMarked(t *testing.T) {
	notifier := newRecordingNotifier()
	notifier.sendErr = errors.New("smtp down")
	dedup := newStubDedup()

	d := NewDispatcher(1, notifier, dedup, zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	d.Enqueue(testNotification("sess_1", domain.NotifySessionCreated))
	waitFor(t, notifier.signal, 1)

	if len(dedup.marked) != 0 {
		t.Fatalf("failed delivery must not be marked as sent, got %d marks", len(dedup.marked))
	}
}

func TestDispatcher_ShardingIsStable(t *testing.T) {
	d := NewDispatcher(4, newRecordingNotifier(), newStubDedup(), zerolog.Nop())

	first := d.shardIndex("sess_42")
	for i := 0; i < 10; i++ {
		if got := d.shardIndex("sess_42"); got != first {
			t.Fatalf("shard index must be deterministic: got %d then %d", first, got)
		}
	}
	if first < 0 || first >= 4 {
		t.Fatalf("shard index out of range: %d", first)
	}
}

func TestDispatcher_DefaultWorkerCount(t *testing.T) {
	d := NewDispatcher(0, newRecordingNotifier(), newStubDedup(), zerolog.Nop())
	if len(d.workers) != defaultWorkers {
		t.Fatalf("expected %d workers, got %d", defaultWorkers, len(d.workers))
	}
}
