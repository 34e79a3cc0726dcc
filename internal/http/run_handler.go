package http

import (
	"context"
	"net/http"
	"time"

	"edge-stats/internal/snapshots"
)

type runHandler struct {
	snapshotService snapshots.SnapshotService
	now             func() time.Time
}

func NewRunHandler(snapshotService snapshots.SnapshotService) AppHttpHandler {
	return &runHandler{snapshotService: snapshotService, now: time.Now}
}

// Handle processes POST /runs. The snapshot runs synchronously and is not
// cancelled when the client goes away, so a disconnect never writes a
// half-degraded report.
func (h *runHandler) Handle(w http.ResponseWriter, r *http.Request) error {
	ctx := context.WithoutCancel(r.Context())

	result, err := h.snapshotService.Take(ctx, h.now())
	if err != nil {
		return err
	}

	setRunID(w, result.RunID)
	writeJSON(w, http.StatusCreated, result)
	return nil
}

type healthResponse struct {
	Status             string `json:"status"`
	SnapshotInProgress bool   `json:"snapshotInProgress"`
}

type healthHandler struct {
	snapshotService snapshots.SnapshotService
}

func NewHealthHandler(snapshotService snapshots.SnapshotService) AppHttpHandler {
	return &healthHandler{snapshotService: snapshotService}
}

// Handle processes GET /healthz.
func (h *healthHandler) Handle(w http.ResponseWriter, r *http.Request) error {
	writeJSON(w, http.StatusOK, healthResponse{
		Status:             "ok",
		SnapshotInProgress: h.snapshotService.InProgress(),
	})
	return nil
}
