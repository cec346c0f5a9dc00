// Package metrics defines all custom Prometheus metrics for the HR console.
// It is the single source of truth for metric names, labels, and help
// strings; metrics register themselves with the default registry via
// promauto at package load.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "hrconsole"

// Cache key-kind label values.
const (
	KeyKindList   = "list"
	KeyKindRecord = "record"
)

// ── Cache metrics ─────────────────────────────────────────────────────────────

// CacheReadsTotal counts cache reads.
// Labels:
//   - key: "list" or "record"
//   - result: "hit" (fresh value served), "stale" (last-known value served,
//     revalidation kicked), or "miss" (blocking fetch)
var CacheReadsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cache_reads_total",
		Help:      "Total number of employee cache reads, by key kind and result.",
	},
	[]string{"key", "result"},
)

// CacheInvalidationsTotal counts explicit stale-markings after mutations.
// Label:
//   - key: "list" or "record"
var CacheInvalidationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cache_invalidations_total",
		Help:      "Total number of cache entries marked stale after a successful mutation.",
	},
	[]string{"key"},
)

// ── Upstream metrics ──────────────────────────────────────────────────────────

// UpstreamRequestsTotal counts calls against the remote employee collection.
// Labels:
//   - operation: "list", "get", "create", "update", "delete", "ping"
//   - outcome: "ok", "not_found", or "error"
var UpstreamRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "upstream_requests_total",
		Help:      "Total number of requests issued to the remote employee collection.",
	},
	[]string{"operation", "outcome"},
)

// UpstreamRequestDuration measures the wall time of one remote call.
// Label:
//   - operation: same values as UpstreamRequestsTotal
var UpstreamRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "upstream_request_duration_seconds",
		Help:      "Duration of requests against the remote employee collection.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"operation"},
)

// ── Session metrics ───────────────────────────────────────────────────────────

// LoginAttemptsTotal counts credential checks.
// Label:
//   - result: "accepted" or "rejected"
var LoginAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "login_attempts_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)
