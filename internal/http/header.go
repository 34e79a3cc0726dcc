package http

import (
	"net/http"
	"strings"
)

const (
	headerRequestID   = "x-request-id"
	headerContentType = "content-type"
	headerRunID       = "x-run-id"

	contentTypeJSON = "application/json"
)

func requestID(r *http.Request) string {
	return strings.TrimSpace(r.Header.Get(headerRequestID))
}

func setRequestID(r *http.Request, requestID string) {
	r.Header.Set(headerRequestID, requestID)
}

// setRunID exposes the run id to the client and to the completion log.
func setRunID(w http.ResponseWriter, runID string) {
	w.Header().Set(headerRunID, runID)
	if appWriter, ok := w.(*appResponseWriter); ok {
		appWriter.SetRunID(runID)
	}
}
