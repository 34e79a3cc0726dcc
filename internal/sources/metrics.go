package sources

import (
	"edge-stats/internal/shared/metrics"
)

var (
	metricQueryTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubSource,
			Name:      "query_total",
		},
		[]string{metrics.FieldQueryKind, metrics.FieldErrorCode},
	)

	metricQueryRetryTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubSource,
			Name:      "query_retry_total",
		},
		[]string{metrics.FieldQueryKind},
	)

	metricQueryLatency = metrics.NewHistogramVec(
		metrics.HistogramOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubSource,
			Name:      "query_latency",
			Buckets:   metrics.DefBuckets,
		},
		[]string{metrics.FieldQueryKind},
	)
)
