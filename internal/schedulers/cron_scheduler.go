package schedulers

import (
	"context"
	"net/http"
	"time"

	"edge-stats/internal/shared/loggers"
	"edge-stats/internal/shared/metrics"
	"edge-stats/internal/shared/svcerrors"
	"edge-stats/internal/shared/ulid"
	"edge-stats/internal/snapshots"

	"github.com/robfig/cron/v3"
)

// DefaultSchedule runs five minutes past every hour, once the previous hour is complete.
const DefaultSchedule = "5 * * * *"

//go:generate mockgen -source=cron_scheduler.go -destination=./mocks/cron_scheduler_mock.go -package=mocks
type Scheduler interface {
	Start(ctx context.Context)
	// Stop stops scheduling and waits for a running snapshot until ctx is done.
	Stop(ctx context.Context) error
	Next() time.Time
}

type cronScheduler struct {
	cron      *cron.Cron
	entryID   cron.EntryID
	spec      string
	snapshots snapshots.SnapshotService
	logger    loggers.Logger
	now       func() time.Time

	ctx context.Context
}

// NewCronScheduler parses spec with the standard 5-field parser. Overlapping
// triggers are skipped, never queued.
func NewCronScheduler(spec string, snapshotService snapshots.SnapshotService, logger loggers.Logger) (Scheduler, error) {
	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)
	if _, err := parser.Parse(spec); err != nil {
		return nil, errInvalidSchedule(spec, err)
	}

	cronLog := cronLogger{logger: logger}
	s := &cronScheduler{
		cron: cron.New(
			cron.WithParser(parser),
			cron.WithLocation(time.UTC),
			cron.WithChain(cron.Recover(cronLog), cron.SkipIfStillRunning(cronLog)),
			cron.WithLogger(cronLog),
		),
		spec:      spec,
		snapshots: snapshotService,
		logger:    logger,
		now:       time.Now,
		ctx:       context.Background(),
	}

	entryID, err := s.cron.AddFunc(spec, s.trigger)
	if err != nil {
		return nil, errInvalidSchedule(spec, err)
	}
	s.entryID = entryID

	return s, nil
}

func (s *cronScheduler) Start(ctx context.Context) {
	s.ctx = ctx
	s.cron.Start()
	s.logger.Info().
		Str("schedule", s.spec).
		Time("next_run", s.Next()).
		Msg("scheduler started")
}

func (s *cronScheduler) Stop(ctx context.Context) error {
	stopped := s.cron.Stop()
	select {
	case <-stopped.Done():
		s.logger.Info().Msg("scheduler stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *cronScheduler) Next() time.Time {
	entry := s.cron.Entry(s.entryID)
	if !entry.Next.IsZero() {
		return entry.Next
	}
	return entry.Schedule.Next(s.now().UTC())
}

func (s *cronScheduler) trigger() {
	ctx := s.logger.With().
		Str(loggers.FieldRequestID, ulid.NewULID()).
		Logger().WithContext(s.ctx)
	logger := loggers.Ctx(ctx)

	result, err := s.snapshots.Take(ctx, s.now())
	if err != nil {
		svcErr, ok := svcerrors.AsServiceError(err)
		if ok && svcErr.HttpStatusCode == http.StatusConflict {
			metricSkippedTotal.Inc()
			logger.Info().Str(loggers.FieldErrorCode, svcErr.Code).Msg("scheduled snapshot skipped")
			return
		}
		metricTriggeredTotal.WithLabelValues(svcerrors.CodeOf(err)).Inc()
		logger.Error().Err(err).Str(loggers.FieldErrorCode, svcerrors.CodeOf(err)).Msg("scheduled snapshot failed")
		return
	}

	metricTriggeredTotal.WithLabelValues(metrics.ValueNoError).Inc()
	logger.Info().
		Str(loggers.FieldRunID, result.RunID).
		Time("next_run", s.Next()).
		Msg("scheduled snapshot completed")
}

// cronLogger adapts the zerolog logger to cron.Logger.
type cronLogger struct {
	logger loggers.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Debug().Fields(keysAndValues).Msg("cron: " + msg)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.logger.Error().Err(err).Fields(keysAndValues).Msg("cron: " + msg)
}
