package windows

import (
	"edge-stats/internal/shared/metrics"
)

var (
	metricWindowRunTotal = metrics.NewCounter(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubWindow,
			Name:      "run_total",
		},
	)

	metricWindowRunDuration = metrics.NewHistogram(
		metrics.HistogramOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubWindow,
			Name:      "run_duration",
			Buckets:   []float64{1, 5, 15, 30, 60, 120, 300, 600, 1200},
		},
	)

	// metricBucketPanicTotal counts buckets replaced by an empty record after a panic.
	metricBucketPanicTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubWindow,
			Name:      "bucket_panic_total",
		},
		[]string{metrics.FieldErrorCode},
	)

	metricLastRunTimestamp = metrics.NewGauge(
		metrics.GaugeOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubWindow,
			Name:      "last_run_timestamp_seconds",
		},
	)
)
