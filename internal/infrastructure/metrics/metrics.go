package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Pipeline and sync counters. Registered on the default registry so
// promhttp.Handler() picks them up without extra wiring.
var (
	MutationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "nyx_mutations_total",
		Help: "Mutation pipeline invocations by mode and outcome.",
	}, []string{"mode", "outcome"})

	SyncChangesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "nyx_sync_changes_total",
		Help: "Sync changes processed by outcome status.",
	}, []string{"status"})

	SuggestionDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "nyx_suggestion_duration_seconds",
		Help:    "Latency of external suggestion generator calls.",
		Buckets: prometheus.DefBuckets,
	})

	RequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "nyx_http_request_duration_seconds",
		Help:    "HTTP request latency by method, route and status.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})
)
