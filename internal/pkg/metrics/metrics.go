// Package metrics defines and registers the custom Prometheus metrics of the
// admin console. Metrics are registered with the default registry at package
// init through promauto, so importing the package is enough.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "admin_console"

// ── Remote API metrics ────────────────────────────────────────────────────────

// RemoteRequestsTotal counts calls made to the remote API.
// Labels:
//   - operation: login, get_states, get_cities, add_user, list_users, edit_user
//   - outcome: "ok", "status_error" or "transport_error"
var RemoteRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "remote_requests_total",
		Help:      "Total number of remote API calls, by operation and outcome.",
	},
	[]string{"operation", "outcome"},
)

// RemoteRequestDuration measures remote API round trips.
var RemoteRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "remote_request_duration_seconds",
		Help:      "Duration of remote API calls.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"operation"},
)

// ── User store metrics ────────────────────────────────────────────────────────

// StoreTransitionsTotal counts user store transitions.
// Labels:
//   - transition: "load" or "update"
//   - result: "ok", "error", or "miss" (update for an id not held locally)
var StoreTransitionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "store_transitions_total",
		Help:      "Total number of user store transitions, by kind and result.",
	},
	[]string{"transition", "result"},
)

// StoreRecords tracks how many user records the store currently holds.
var StoreRecords = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "store_records",
		Help:      "Number of user records currently held by the store.",
	},
)

// ── Audit metrics ─────────────────────────────────────────────────────────────

// AuditQueueDepth tracks pending audit entries per dispatcher worker.
var AuditQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "audit_queue_depth",
		Help:      "Current number of audit entries pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// AuditWritesTotal counts audit persistence attempts.
// Label:
//   - result: "ok", "error" or "dropped"
var AuditWritesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "audit_writes_total",
		Help:      "Total number of audit entries persisted, failed or dropped.",
	},
	[]string{"result"},
)
