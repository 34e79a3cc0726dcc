package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"edge-stats/internal/aggregators"
	internalhttp "edge-stats/internal/http"
	"edge-stats/internal/models"
	"edge-stats/internal/schedulers"
	"edge-stats/internal/shared/configs"
	"edge-stats/internal/shared/filestorages"
	"edge-stats/internal/shared/loggers"
	"edge-stats/internal/snapshots"
	"edge-stats/internal/sources"
	"edge-stats/internal/stores"
	"edge-stats/internal/windows"
)

// WAFLookback is the trailing window used by CountMitigated.
const WAFLookback = 24 * time.Hour

// App holds all application dependencies and manages lifecycle.
type App struct {
	config    *configs.Config
	appLogger loggers.Logger
	server    *http.Server

	source          sources.MetricsSource
	snapshotService snapshots.SnapshotService
	scheduler       schedulers.Scheduler

	backgroundCtx    context.Context
	backgroundCancel context.CancelFunc
}

// New creates and initializes a new App instance. No network I/O happens here.
func New(config *configs.Config) (*App, error) {
	appLogger, err := loggers.New(config.Log.Level, config.Log.Format)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	appLogger = appLogger.With().
		Str(loggers.FieldApp, "edge-stats").
		Logger()

	// Initialize report storage
	fileStorage, err := filestorages.NewFileStorage(config.Report.RootDir)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}
	reportStore := stores.NewReportStore(fileStorage, stores.Options{
		FileName:         config.Report.FileName,
		IncludeDomains:   config.Report.IncludeDomains,
		IncludePlatforms: config.Report.IncludePlatforms,
		Archive:          config.Report.Archive,
	})

	// Initialize pipeline
	source := sources.NewMetricsSource(sources.Options{
		Endpoint: config.Source.Endpoint,
		APIToken: config.Source.APIToken,
		ZoneID:   config.Source.ZoneID,
		Timeout:  time.Duration(config.Source.Timeout) * time.Second,
	})
	processor := aggregators.NewBucketProcessor(source, aggregators.Options{
		IncludeDomains:   config.Report.IncludeDomains,
		IncludePlatforms: config.Report.IncludePlatforms,
		ParallelQueries:  config.Pipeline.ParallelQueries,
	})
	pipelineLogger := appLogger.With().Str(loggers.FieldComponent, "pipeline").Logger()
	orchestrator := windows.NewOrchestrator(processor, windows.Options{
		Workers: config.Pipeline.BucketWorkers,
	}, pipelineLogger)
	snapshotService := snapshots.NewSnapshotService(orchestrator, reportStore)

	// Initialize scheduler
	schedulerLogger := appLogger.With().Str(loggers.FieldComponent, "scheduler").Logger()
	scheduler, err := schedulers.NewCronScheduler(config.Schedule.Cron, snapshotService, schedulerLogger)
	if err != nil {
		return nil, err
	}

	// Initialize http router
	httpLogger := appLogger.With().Str(loggers.FieldComponent, "http").Logger()
	router := internalhttp.NewRouter(snapshotService, reportStore, httpLogger)

	// Create HTTP server
	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", config.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: time.Duration(config.Server.ReadHeaderTimeout) * time.Second,
		ReadTimeout:       time.Duration(config.Server.ReadTimeout) * time.Second,
		WriteTimeout:      time.Duration(config.Server.WriteTimeout) * time.Second,
		IdleTimeout:       time.Duration(config.Server.IdleTimeout) * time.Second,
	}

	return &App{
		config:          config,
		appLogger:       appLogger,
		server:          server,
		source:          source,
		snapshotService: snapshotService,
		scheduler:       scheduler,
	}, nil
}

// RunOnce takes one snapshot of the window ending at now and writes the report.
func (app *App) RunOnce(ctx context.Context, now time.Time) (*snapshots.Result, error) {
	ctx = app.appLogger.WithContext(ctx)

	result, err := app.snapshotService.Take(ctx, now)
	if err != nil {
		return nil, err
	}

	app.appLogger.Info().
		Str(loggers.FieldRunID, result.RunID).
		Str(loggers.FieldSince, result.Since).
		Str(loggers.FieldUntil, result.Until).
		Int("buckets", result.Buckets).
		Msgf("report saved to %s", result.LatestKey)
	return result, nil
}

// CountMitigated returns the number of mitigated requests in the trailing
// WAFLookback ending at now. Unlike the per-bucket pipeline, a failed query
// is returned to the caller.
func (app *App) CountMitigated(ctx context.Context, now time.Time) (int, error) {
	r, err := models.NewTimeRange(now.Add(-WAFLookback), now)
	if err != nil {
		return 0, err
	}

	events, err := app.source.QueryFirewall(app.appLogger.WithContext(ctx), r)
	if err != nil {
		return 0, err
	}
	return len(events), nil
}

// Start starts the scheduler and the HTTP server in a blocking manner.
func (app *App) Start() error {
	app.appLogger.Info().
		Msgf("Starting edge-stats service on port %d (log_level=%s, report_root_dir=%s, schedule=%q)",
			app.config.Server.Port,
			app.config.Log.Level,
			app.config.Report.RootDir,
			app.config.Schedule.Cron)

	// start background scheduler
	app.backgroundCtx, app.backgroundCancel = context.WithCancel(app.appLogger.WithContext(context.Background()))
	app.scheduler.Start(app.backgroundCtx)

	return app.server.ListenAndServe()
}

// Shutdown gracefully shuts down the application.
func (app *App) Shutdown(ctx context.Context) error {
	// 1) Shutdown server
	app.appLogger.Info().Msg("Shutting down server...")
	if err := app.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	app.appLogger.Info().Msg("Server stopped")

	// 2) Stop scheduling and wait for a running snapshot
	if err := app.scheduler.Stop(ctx); err != nil {
		return fmt.Errorf("scheduler shutdown failed: %w", err)
	}

	// 3) Cancel background context
	if app.backgroundCancel != nil {
		app.backgroundCancel()
		app.appLogger.Info().Msg("Background scheduler cancelled")
	}

	return nil
}
