package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTPLatencyBuckets defines the histogram buckets for HTTP request duration
var HTTPLatencyBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: HTTPLatencyBuckets,
		},
		[]string{"method", "path"},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_in_flight",
			Help: "Number of HTTP requests currently being served",
		},
	)
)

// Core operation metrics
var (
	PublishTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "loot_publish_total",
			Help: "Total number of committed publish events",
		},
		[]string{"mode"},
	)

	MergeTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "item_merge_total",
			Help: "Total number of committed item merges",
		},
		[]string{"conflict"},
	)

	AllocationConflicts = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "allocation_conflicts_total",
			Help: "Total number of allocation attempts rejected as occupied",
		},
	)
)
