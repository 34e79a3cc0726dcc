package http

import (
	"fmt"
	"net/http"
	"runtime/debug"
	"strconv"
	"time"

	"edge-stats/internal/shared/loggers"
	"edge-stats/internal/shared/svcerrors"
	"edge-stats/internal/shared/ulid"

	"github.com/go-chi/chi/v5"
)

func setupMiddleware(router *chi.Mux, httpLogger loggers.Logger) {
	router.Use(mwRequestID(httpLogger))
	router.Use(mwAppResponseWriter)
	router.Use(mwPrometheus)
	router.Use(mwRequestCompletionLog)
	router.Use(mwRecoverer)
}

// mwAppResponseWriter wraps the writer once so every later middleware sees the same appResponseWriter.
func mwAppResponseWriter(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(newAppResponseWriter(w, r.ProtoMajor), r)
	})
}

// mwRequestID reuses the caller's x-request-id or mints one, echoes it on the
// response and puts a request-scoped logger in the context.
func mwRequestID(httpLogger loggers.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := requestID(r)
			if id == "" {
				id = ulid.NewULID()
				setRequestID(r, id)
			}
			w.Header().Set(headerRequestID, id)

			ctx := httpLogger.With().
				Str(loggers.FieldRequestID, id).
				Logger().WithContext(r.Context())

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// mwPrometheus records request metrics by route pattern, never by raw path.
func mwPrometheus(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		metricRequestsInFlight.Inc()
		defer metricRequestsInFlight.Dec()

		start := time.Now()
		next.ServeHTTP(w, r)

		route := chi.RouteContext(r.Context()).RoutePattern()
		if route == "" {
			route = "unmatched"
		}
		status, errorCode := responseOutcome(w)
		statusLabel := strconv.Itoa(status)

		metricRequestsTotal.WithLabelValues(r.Method, route, statusLabel, errorCode).Inc()
		metricRequestDuration.WithLabelValues(r.Method, route, statusLabel).Observe(time.Since(start).Seconds())
	})
}

// mwRequestCompletionLog logs one line per request, tagged with the run id
// when the handler took a snapshot. Server errors are logged at warn.
func mwRequestCompletionLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		defer func() {
			status, errorCode := responseOutcome(w)
			logger := loggers.Ctx(r.Context())

			event := logger.Info()
			if status >= http.StatusInternalServerError {
				event = logger.Warn()
			}
			if appWriter, ok := w.(*appResponseWriter); ok && appWriter.RunID() != "" {
				event = event.Str(loggers.FieldRunID, appWriter.RunID())
			}
			if errorCode != "" {
				event = event.Str(loggers.FieldErrorCode, errorCode)
			}
			event.
				Str(loggers.FieldHttpMethod, r.Method).
				Str(loggers.FieldHttpPath, r.URL.Path).
				Int(loggers.FieldHttpStatus, status).
				Int64(loggers.FieldDuration, time.Since(start).Milliseconds()).
				Msg("request completed")
		}()

		next.ServeHTTP(w, r)
	})
}

// mwRecoverer turns a handler panic into a SYS_9000 response. When the
// handler already wrote its status, only the log line is emitted.
func mwRecoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			p := recover()
			if p == nil {
				return
			}
			if p == http.ErrAbortHandler {
				panic(p)
			}

			loggers.Ctx(r.Context()).Error().
				Bytes(loggers.FieldErrorStack, debug.Stack()).
				Msgf("http panic recovered: %v", p)

			panicErr, ok := p.(error)
			if !ok {
				panicErr = fmt.Errorf("%v", p)
			}
			svcErr := svcerrors.NewInternalErrorPanic(panicErr)

			if appWriter, ok := w.(*appResponseWriter); ok && appWriter.Status() != 0 {
				appWriter.SetServiceError(svcErr)
				return
			}
			writeErrorResponse(w, r, svcErr)
		}()

		next.ServeHTTP(w, r)
	})
}

// responseOutcome reads the status and error code recorded by appResponseWriter.
func responseOutcome(w http.ResponseWriter) (int, string) {
	appWriter, ok := w.(*appResponseWriter)
	if !ok {
		return http.StatusOK, ""
	}
	return appWriter.StatusOrDefault(), appWriter.ErrorCode()
}
