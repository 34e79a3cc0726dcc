package snapshots

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"edge-stats/internal/models"
	"edge-stats/internal/shared/loggers"
	"edge-stats/internal/shared/metrics"
	"edge-stats/internal/stores"
	"edge-stats/internal/windows"
)

// Result describes one completed snapshot.
type Result struct {
	RunID       string           `json:"runId"`
	GeneratedAt time.Time        `json:"generatedAt"`
	Window      models.TimeRange `json:"-"`
	Since       string           `json:"since"`
	Until       string           `json:"until"`
	Buckets     int              `json:"buckets"`
	LatestKey   string           `json:"latestKey"`
	ArchiveKey  string           `json:"archiveKey,omitempty"`
}

//go:generate mockgen -source=snapshot_service.go -destination=./mocks/snapshot_service_mock.go -package=mocks
type SnapshotService interface {
	// Take runs the window ending at now and writes the report. Only one
	// snapshot runs at a time; a concurrent call fails with a conflict.
	Take(ctx context.Context, now time.Time) (*Result, error)
	InProgress() bool
}

type snapshotService struct {
	orchestrator windows.Orchestrator
	reportStore  stores.ReportStore
	running      atomic.Bool
}

func NewSnapshotService(orchestrator windows.Orchestrator, reportStore stores.ReportStore) SnapshotService {
	return &snapshotService{
		orchestrator: orchestrator,
		reportStore:  reportStore,
	}
}

func (s *snapshotService) InProgress() bool {
	return s.running.Load()
}

func (s *snapshotService) Take(ctx context.Context, now time.Time) (*Result, error) {
	if !s.running.CompareAndSwap(false, true) {
		svcErr := errSnapshotInProgress()
		metricSnapshotTakenTotal.WithLabelValues(svcErr.Code).Inc()
		return nil, svcErr
	}
	defer s.running.Store(false)

	report := s.orchestrator.Run(ctx, now)

	putResult, err := s.reportStore.Put(ctx, report)
	if err != nil {
		if errors.Is(err, stores.ErrArchiveAlreadyExists) {
			svcErr := errSnapshotAlreadyArchived(err)
			metricSnapshotTakenTotal.WithLabelValues(svcErr.Code).Inc()
			return nil, svcErr
		}
		svcErr := errInternalReportStoreFailed(err)
		metricSnapshotTakenTotal.WithLabelValues(svcErr.Code).Inc()
		return nil, svcErr
	}

	loggers.Ctx(ctx).Info().
		Str(loggers.FieldRunID, report.RunID).
		Str("latest_key", putResult.LatestKey).
		Str("archive_key", putResult.ArchiveKey).
		Int64("size_bytes", putResult.Size).
		Msg("snapshot written")

	metricSnapshotTakenTotal.WithLabelValues(metrics.ValueNoError).Inc()
	return &Result{
		RunID:       report.RunID,
		GeneratedAt: report.GeneratedAt,
		Window:      report.Window,
		Since:       report.Window.FormatSince(),
		Until:       report.Window.FormatUntil(),
		Buckets:     len(report.Buckets),
		LatestKey:   putResult.LatestKey,
		ArchiveKey:  putResult.ArchiveKey,
	}, nil
}
