package http

import (
	"errors"
	"net/http"

	"edge-stats/internal/stores"
)

type latestReportHandler struct {
	reportStore stores.ReportStore
}

func NewLatestReportHandler(reportStore stores.ReportStore) AppHttpHandler {
	return &latestReportHandler{reportStore: reportStore}
}

// Handle processes GET /reports/latest. The body is the report file as written.
func (h *latestReportHandler) Handle(w http.ResponseWriter, r *http.Request) error {
	data, err := h.reportStore.GetLatest(r.Context())
	if err != nil {
		if errors.Is(err, stores.ErrReportNotFound) {
			return errReportNotFound(err)
		}
		return err
	}

	w.Header().Set(headerContentType, contentTypeJSON)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
	return nil
}

type archiveListResponse struct {
	Reports []string `json:"reports"`
}

type archiveListHandler struct {
	reportStore stores.ReportStore
}

func NewArchiveListHandler(reportStore stores.ReportStore) AppHttpHandler {
	return &archiveListHandler{reportStore: reportStore}
}

// Handle processes GET /reports/archive.
func (h *archiveListHandler) Handle(w http.ResponseWriter, r *http.Request) error {
	keys, err := h.reportStore.ListArchive(r.Context())
	if err != nil {
		return err
	}

	writeJSON(w, http.StatusOK, archiveListResponse{Reports: keys})
	return nil
}
