// Package metrics defines and registers the Prometheus metrics of the store
// rating client. It is the single source of truth for metric names, labels
// and help strings.
//
// Metrics register with the default registry on import; the CLI can dump them
// to a node_exporter textfile on exit.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "storerating"

// ── Gateway metrics ───────────────────────────────────────────────────────────

// GatewayRequestsTotal counts completed gateway calls.
// Labels:
//   - method: HTTP method
//   - outcome: "ok" or a failure kind ("network", "auth-expired", "validation", "server")
var GatewayRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "gateway_requests_total",
		Help:      "Total number of API gateway calls, by method and outcome.",
	},
	[]string{"method", "outcome"},
)

// GatewayRequestDuration measures the round trip of a gateway call.
// Label:
//   - method: HTTP method
var GatewayRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "gateway_request_duration_seconds",
		Help:      "Duration of API gateway calls from send to classified outcome.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"method"},
)

// ── Session metrics ───────────────────────────────────────────────────────────

// SessionEventsTotal counts session lifecycle transitions.
// Label:
//   - event: "login", "logout", "restored", "restore_rejected", "expired"
var SessionEventsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_events_total",
		Help:      "Total number of session lifecycle events.",
	},
	[]string{"event"},
)

// ── Rating metrics ────────────────────────────────────────────────────────────

// RatingSubmissionsTotal counts star selections by decision and result.
// Labels:
//   - decision: "create", "update" or "noop"
//   - result: "ok", "failed" or "dropped"
var RatingSubmissionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "rating_submissions_total",
		Help:      "Total number of rating selections, by decision and result.",
	},
	[]string{"decision", "result"},
)
