// Package metrics defines and registers all custom Prometheus metrics for the
// Fixer web frontend. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics are registered with the default registry via promauto at package
// load; the /metrics endpoint is wired by the router.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "fixer_web"

// BackendRequestsTotal counts calls made to the marketplace backend.
// Labels:
//   - method: HTTP method of the outgoing request
//   - outcome: "ok", "error", "unauthorized", "timeout", "unreachable"
var BackendRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "backend_requests_total",
		Help:      "Total number of requests issued to the marketplace backend.",
	},
	[]string{"method", "outcome"},
)

// BackendRequestDuration measures backend round-trip time.
var BackendRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "backend_request_duration_seconds",
		Help:      "Duration of requests to the marketplace backend.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"method"},
)

// PollTicksTotal counts refresh iterations of view-bound poll loops.
// Label:
//   - stream: "conversation", "inbox", "notifications"
var PollTicksTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "poll_ticks_total",
		Help:      "Total number of poll loop iterations, labelled by stream.",
	},
	[]string{"stream"},
)

// LoginAttemptsTotal counts login attempts by result.
// Label:
//   - result: "success", "rejected", "unreachable", "timeout", "invalid_email"
var LoginAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "login_attempts_total",
		Help:      "Total number of login attempts, labelled by result.",
	},
	[]string{"result"},
)

// CheckoutsTotal counts completed simulated checkouts.
var CheckoutsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "checkouts_total",
		Help:      "Total number of completed simulated checkouts.",
	},
)
