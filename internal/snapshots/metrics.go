package snapshots

import (
	"edge-stats/internal/shared/metrics"
)

var (
	metricSnapshotTakenTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubSnapshot,
			Name:      "taken_total",
		},
		[]string{metrics.FieldErrorCode},
	)
)
