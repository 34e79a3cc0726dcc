package stores

import (
	"edge-stats/internal/shared/metrics"
)

var (
	metricReportWrittenTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubReport,
			Name:      "written_total",
		},
		[]string{"target"},
	)

	metricReportSizeBytes = metrics.NewGauge(
		metrics.GaugeOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubReport,
			Name:      "size_bytes",
		},
	)
)
