package http

import (
	"net/http"

	"edge-stats/internal/shared/svcerrors"

	"github.com/go-chi/chi/v5/middleware"
)

// appResponseWriter wraps the http.ResponseWriter and carries what handlers
// report back to the middleware chain: the service error and the run id.
type appResponseWriter struct {
	middleware.WrapResponseWriter
	svcError *svcerrors.ServiceError
	runID    string
}

func newAppResponseWriter(w http.ResponseWriter, protoMajor int) *appResponseWriter {
	return &appResponseWriter{
		WrapResponseWriter: middleware.NewWrapResponseWriter(w, protoMajor),
	}
}

func (w *appResponseWriter) SetServiceError(svcError *svcerrors.ServiceError) {
	w.svcError = svcError
}

func (w *appResponseWriter) ErrorCode() string {
	if w.svcError != nil {
		return w.svcError.Code
	}
	return ""
}

func (w *appResponseWriter) SetRunID(runID string) {
	w.runID = runID
}

func (w *appResponseWriter) RunID() string {
	return w.runID
}

// StatusOrDefault returns the written status, or 200 when the handler never
// called WriteHeader.
func (w *appResponseWriter) StatusOrDefault() int {
	if status := w.Status(); status != 0 {
		return status
	}
	return http.StatusOK
}
