// Package metrics defines and registers the custom Prometheus metrics of the
// project API. It is the single source of truth for metric names, labels, and
// help strings. Metrics register with the default registry on package init,
// which is what the /metrics endpoint serves.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "pm"

// ── Activity metrics ──────────────────────────────────────────────────────────

// ActivityPublishedTotal counts audit events accepted by the dispatcher.
// Labels:
//   - entity: "user", "client" or "project"
//   - action: "created", "updated", "deleted" or "blocked"
var ActivityPublishedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "activity_published_total",
		Help:      "Total number of activity events accepted for persistence.",
	},
	[]string{"entity", "action"},
)

// ActivityDroppedTotal counts events discarded because the worker channel was full.
var ActivityDroppedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "activity_dropped_total",
		Help:      "Total number of activity events dropped on a full queue.",
	},
	[]string{"entity"},
)

// ActivityErrorsTotal counts events that failed to persist.
var ActivityErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "activity_errors_total",
		Help:      "Total number of activity events that failed to persist.",
	},
	[]string{"entity"},
)

// ActivityQueueDepth tracks the number of events waiting in each worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var ActivityQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "activity_queue_depth",
		Help:      "Current number of activity events pending in each worker channel.",
	},
	[]string{"worker_id"},
)

// ActivityPersistDuration measures how long one insert into the audit collection takes.
var ActivityPersistDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "activity_persist_duration_seconds",
		Help:      "Duration of persisting one activity event.",
		Buckets:   prometheus.DefBuckets,
	},
)

// ── Idempotency metrics ───────────────────────────────────────────────────────

// IdempotencyLookupsTotal counts idempotency key lookups.
// Labels:
//   - backend: "redis" or "memory"
//   - result: "hit", "miss" or "error"
var IdempotencyLookupsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "idempotency_lookups_total",
		Help:      "Total number of idempotency key lookups, by backend and result.",
	},
	[]string{"backend", "result"},
)

// ── Domain metrics ────────────────────────────────────────────────────────────

// ProjectsCreatedTotal counts newly created projects.
// Label:
//   - status: initial project status
var ProjectsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "projects_created_total",
		Help:      "Total number of projects created, by initial status.",
	},
	[]string{"status"},
)

// ProjectsRejectedTotal counts creations refused because the client does not exist.
var ProjectsRejectedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "projects_rejected_missing_client_total",
		Help:      "Total number of project creations rejected for a missing client.",
	},
)

// LoginsTotal counts login attempts.
// Label:
//   - result: "success", "invalid_credentials", "blocked" or "error"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)
