// Package metrics defines and registers all custom Prometheus metrics for
// the storefront service. It is the single source of truth for metric
// names, labels, and help strings; registration happens at import time via
// promauto against the default registry.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "storefront"

// ── Remote API metrics ────────────────────────────────────────────────────────

// RemoteRequestsTotal counts calls to the upstream commerce API.
// Labels:
//   - op: logical operation (e.g. "cart.fetch", "auth.login")
//   - outcome: "ok" or the error taxonomy kind (e.g. "unauthorized", "network")
var RemoteRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "remote_requests_total",
		Help:      "Total number of upstream commerce API calls, by operation and outcome.",
	},
	[]string{"op", "outcome"},
)

// RemoteRequestDuration measures upstream call latency end-to-end.
var RemoteRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "remote_request_duration_seconds",
		Help:      "Duration of upstream commerce API calls.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"op"},
)

// ── Cart metrics ──────────────────────────────────────────────────────────────

// CartOpsTotal counts cart mutations issued through the synchronizer.
// Labels:
//   - op: "add", "update", "remove", "clear"
//   - result: "ok", "rejected" (gate/validation, no network call) or "error"
var CartOpsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cart_ops_total",
		Help:      "Total number of cart mutations, by operation and result.",
	},
	[]string{"op", "result"},
)

// ── Session metrics ───────────────────────────────────────────────────────────

// SessionEventsTotal counts session lifecycle events.
// Label:
//   - event: "login", "logout", "restored", "invalidated", "register"
var SessionEventsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_events_total",
		Help:      "Total number of session lifecycle events.",
	},
	[]string{"event"},
)

// ── Catalog metrics ───────────────────────────────────────────────────────────

// CatalogCacheTotal counts catalog cache lookups by result (hit/miss).
var CatalogCacheTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "catalog_cache_total",
		Help:      "Total number of catalog cache lookups, labelled by result (hit/miss).",
	},
	[]string{"result"},
)
