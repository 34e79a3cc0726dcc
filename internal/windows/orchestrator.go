package windows

import (
	"context"
	"fmt"
	"runtime/debug"
	"sync"
	"time"

	"edge-stats/internal/aggregators"
	"edge-stats/internal/models"
	"edge-stats/internal/shared/loggers"
	"edge-stats/internal/shared/svcerrors"
	"edge-stats/internal/shared/ulid"
)

// Options configures an Orchestrator.
type Options struct {
	// Workers bounds how many buckets are processed at once. 1 is sequential.
	Workers int
	// BucketCount is the number of hourly buckets; zero means DefaultBucketCount.
	BucketCount int
}

//go:generate mockgen -source=orchestrator.go -destination=./mocks/orchestrator_mock.go -package=mocks
type Orchestrator interface {
	// Run processes the lookback window ending at now truncated to the hour.
	// Buckets are ordered oldest first regardless of completion order.
	Run(ctx context.Context, now time.Time) *models.Report
}

type orchestrator struct {
	processor aggregators.BucketProcessor
	workers   int
	count     int
	logger    loggers.Logger
}

func NewOrchestrator(processor aggregators.BucketProcessor, opts Options, logger loggers.Logger) Orchestrator {
	workers := opts.Workers
	if workers < 1 {
		workers = 1
	}
	count := opts.BucketCount
	if count < 1 {
		count = DefaultBucketCount
	}
	return &orchestrator{
		processor: processor,
		workers:   workers,
		count:     count,
		logger:    logger,
	}
}

func (o *orchestrator) Run(ctx context.Context, now time.Time) *models.Report {
	start := time.Now()
	runID := ulid.NewULIDAt(now)
	ctx = o.logger.With().
		Str(loggers.FieldRunID, runID).
		Logger().WithContext(ctx)
	logger := loggers.Ctx(ctx)

	ranges := Buckets(now, o.count)
	window := models.TimeRange{Since: ranges[0].Since, Until: ranges[len(ranges)-1].Until}
	logger.Info().
		Str(loggers.FieldSince, window.FormatSince()).
		Str(loggers.FieldUntil, window.FormatUntil()).
		Int("buckets", len(ranges)).
		Int("workers", o.workers).
		Msg("window run started")

	records := make([]*models.BucketRecord, len(ranges))
	indexes := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < min(o.workers, len(ranges)); w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range indexes {
				// each worker writes only the slots it was handed
				records[i] = o.processBucket(ctx, ranges[i])
				logger.Info().
					Str(loggers.FieldBucketID, ranges[i].BucketID()).
					Msgf("processed bucket %d/%d", i+1, len(ranges))
			}
		}()
	}
	for i := range ranges {
		indexes <- i
	}
	close(indexes)
	wg.Wait()

	elapsed := time.Since(start)
	metricWindowRunTotal.Inc()
	metricWindowRunDuration.Observe(elapsed.Seconds())
	metricLastRunTimestamp.SetToCurrentTime()
	logger.Info().
		Int64(loggers.FieldDuration, elapsed.Milliseconds()).
		Msg("window run completed")

	return &models.Report{
		RunID:       runID,
		GeneratedAt: now.UTC(),
		Window:      window,
		Buckets:     records,
	}
}

// processBucket never returns nil; a panicking processor yields an empty record.
func (o *orchestrator) processBucket(ctx context.Context, r models.TimeRange) (record *models.BucketRecord) {
	defer func() {
		if rec := recover(); rec != nil {
			loggers.Ctx(ctx).Error().
				Bytes(loggers.FieldErrorStack, debug.Stack()).
				Str(loggers.FieldBucketID, r.BucketID()).
				Msgf("bucket panic recovered: %v", rec)

			var panicErr error
			if err, ok := rec.(error); ok {
				panicErr = err
			} else {
				panicErr = fmt.Errorf("%v", rec)
			}
			metricBucketPanicTotal.WithLabelValues(svcerrors.NewInternalErrorPanic(panicErr).Code).Inc()
			record = models.NewEmptyBucketRecord(r)
		}
	}()

	record = o.processor.Process(ctx, r)
	if record == nil {
		record = models.NewEmptyBucketRecord(r)
	}
	return record
}
