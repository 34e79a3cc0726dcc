package http

import (
	"edge-stats/internal/shared/metrics"
)

// POST /runs blocks for a whole snapshot, so latency buckets reach minutes.
var requestDurationBuckets = []float64{0.005, 0.025, 0.1, 0.5, 1, 5, 15, 60, 180, 600}

var (
	metricRequestsTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubHTTP,
			Name:      "requests_total",
		},
		[]string{"method", "route", "status", metrics.FieldErrorCode},
	)

	metricRequestDuration = metrics.NewHistogramVec(
		metrics.HistogramOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubHTTP,
			Name:      "request_duration_seconds",
			Buckets:   requestDurationBuckets,
		},
		[]string{"method", "route", "status"},
	)

	metricRequestsInFlight = metrics.NewGauge(
		metrics.GaugeOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubHTTP,
			Name:      "requests_in_flight",
		},
	)
)
