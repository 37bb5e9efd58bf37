// Package metrics defines all custom Prometheus metrics for the user
// directory service. It is the single source of truth for metric names,
// labels, and help strings; metrics register themselves with the default
// registry at import time via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "directory"

// ── Session metrics ───────────────────────────────────────────────────────────

// AuthAttemptsTotal counts authentication attempts.
// Label:
//   - result: "success", "invalid_credentials", or "inactive"
var AuthAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_attempts_total",
		Help:      "Total number of authentication attempts, by result.",
	},
	[]string{"result"},
)

// SessionsActive tracks sessions issued minus sessions explicitly ended.
// Expired-but-never-revoked sessions drop off only via store TTL, so this is
// an upper bound.
var SessionsActive = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "sessions_active",
		Help:      "Number of sessions currently considered active.",
	},
)

// ── Directory metrics ─────────────────────────────────────────────────────────

// OpsTotal counts directory operations.
// Labels:
//   - op: "list", "get", "create", "update", or "delete"
//   - result: "ok", "forbidden", "not_found", "validation", or "invariant"
var OpsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "ops_total",
		Help:      "Total number of directory operations, by operation and result.",
	},
	[]string{"op", "result"},
)

// OpDuration measures how long a single directory operation takes.
// Label:
//   - op: same values as OpsTotal
var OpDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "op_duration_seconds",
		Help:      "Duration of directory operations from authorization to completion.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"op"},
)

// AuditQueueDepth tracks the number of audit entries waiting in each recorder
// worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var AuditQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "audit_queue_depth",
		Help:      "Current number of audit entries pending in each recorder worker channel.",
	},
	[]string{"worker_id"},
)
