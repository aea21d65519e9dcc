// Package metrics defines and registers all custom Prometheus metrics for the
// skill-exchange API. It is the single source of truth for metric names,
// labels, and help strings.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "skillex"

// ── Matching metrics ──────────────────────────────────────────────────────────

// MatchesComputedTotal counts ranked-match queries that completed successfully.
// Label:
//   - category: the requested category filter, or "all" when none was given
var MatchesComputedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "matches_computed_total",
		Help:      "Total number of ranked-match queries served.",
	},
	[]string{"category"},
)

// MatchComputationDuration measures how long one ranked-match query takes,
// from directory lookup to sorted result.
var MatchComputationDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "match_computation_duration_seconds",
		Help:      "Duration of a full match discovery, scoring, and ranking pass.",
		Buckets:   prometheus.DefBuckets,
	},
)

// ── Session metrics ───────────────────────────────────────────────────────────

// SessionsCreatedTotal counts newly scheduled sessions.
// Label:
//   - session_type: "in-person", "online", or "hybrid"
var SessionsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sessions_created_total",
		Help:      "Total number of sessions created, by session type.",
	},
	[]string{"session_type"},
)

// SessionTransitionsTotal counts successful status transitions.
// Label:
//   - to_status: the status the session moved into
var SessionTransitionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_transitions_total",
		Help:      "Total number of session status transitions, by target status.",
	},
	[]string{"to_status"},
)

// SchedulingConflictsTotal counts create attempts rejected by the overlap check.
var SchedulingConflictsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "scheduling_conflicts_total",
		Help:      "Total number of session creations rejected due to a time conflict.",
	},
)

// ── Notification metrics ──────────────────────────────────────────────────────

// NotificationsSentTotal counts notifications delivered by the notifier.
// Label:
//   - kind: the transition that produced the notification
var NotificationsSentTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notifications_sent_total",
		Help:      "Total number of outbound notifications delivered.",
	},
	[]string{"kind"},
)

// NotificationsErrorsTotal counts notifications that failed delivery. These
// failures are logged and dropped, never retried.
var NotificationsErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notifications_errors_total",
		Help:      "Total number of outbound notifications that failed delivery.",
	},
	[]string{"kind"},
)

// NotificationQueueDepth tracks pending notifications per dispatcher worker.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var NotificationQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "notification_queue_depth",
		Help:      "Current number of notifications pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)
