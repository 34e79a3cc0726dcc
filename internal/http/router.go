package http

import (
	"net/http"

	"edge-stats/internal/shared/loggers"
	"edge-stats/internal/shared/metrics"
	"edge-stats/internal/snapshots"
	"edge-stats/internal/stores"

	"github.com/go-chi/chi/v5"
)

// NewRouter creates and configures the HTTP router.
func NewRouter(snapshotService snapshots.SnapshotService, reportStore stores.ReportStore, httpLogger loggers.Logger) http.Handler {
	router := chi.NewRouter()
	setupMiddleware(router, httpLogger)

	// Routes
	router.Get("/healthz", errorHandlingAdapter(NewHealthHandler(snapshotService)))
	router.Get("/metrics", metrics.PromHTTP.Handler().ServeHTTP)
	router.Route("/reports", func(r chi.Router) {
		r.Get("/latest", errorHandlingAdapter(NewLatestReportHandler(reportStore)))
		r.Get("/archive", errorHandlingAdapter(NewArchiveListHandler(reportStore)))
	})
	router.Post("/runs", errorHandlingAdapter(NewRunHandler(snapshotService)))

	return router
}
