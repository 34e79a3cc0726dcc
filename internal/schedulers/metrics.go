package schedulers

import (
	"edge-stats/internal/shared/metrics"
)

var (
	metricTriggeredTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubScheduler,
			Name:      "triggered_total",
		},
		[]string{metrics.FieldErrorCode},
	)

	metricSkippedTotal = metrics.NewCounter(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubScheduler,
			Name:      "skipped_total",
		},
	)
)
