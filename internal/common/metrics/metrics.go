// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	CanvasOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "canvas_operations_total",
			Help: "Total number of canvas operations by outcome",
		},
		[]string{"operation", "status"},
	)

	CanvasBlocksInferred = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "canvas_blocks_inferred_total",
			Help: "Generated blocks whose content came from keyword matches rather than the fallback",
		},
		[]string{"block"},
	)

	CanvasStoreSize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "canvas_store_entries",
			Help: "Number of canvases currently held by the store",
		},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP request handling in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_in_flight",
			Help: "Number of HTTP requests currently being served",
		},
	)
)

// Operation outcome labels.
const (
	StatusSuccess  = "success"
	StatusNotFound = "not_found"
	StatusInvalid  = "invalid"
	StatusError    = "error"
)
