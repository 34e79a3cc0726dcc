package aggregators

import (
	"edge-stats/internal/shared/metrics"
)

var (
	// metricBucketProcessedTotal counts finished bucket records.
	//
	// The bucket_id label is the hour of day the bucket starts at, "hour-XX"
	// where XX is 00-23. Example: a bucket starting at 2025-12-28 18:00:00 UTC
	// has bucket_id = "hour-18".
	metricBucketProcessedTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubAggregation,
			Name:      "bucket_processed_total",
		},
		[]string{"bucket_id"},
	)

	// metricQueryDegradedTotal counts queries whose fields were zeroed.
	metricQueryDegradedTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubAggregation,
			Name:      "query_degraded_total",
		},
		[]string{metrics.FieldQueryKind, metrics.FieldErrorCode},
	)
)
