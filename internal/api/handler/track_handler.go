package handler

import (
	"net/http"

	"leettrack/internal/app/service"
	"leettrack/internal/app/worker"
	"leettrack/internal/common"

	"github.com/go-chi/chi/v5"
)

type TrackHandler struct {
	tracker     *service.TrackerService
	trackWorker *worker.TrackWorker
}

func NewTrackHandler(tracker *service.TrackerService, trackWorker *worker.TrackWorker) *TrackHandler {
	return &TrackHandler{tracker: tracker, trackWorker: trackWorker}
}

func (h *TrackHandler) RegisterRoutes(r chi.Router) {
	r.Get("/track", h.track)
	r.Get("/background-track", h.backgroundTrack)
}

// track runs the full aggregation before responding. The connection stays
// open for the whole batch.
func (h *TrackHandler) track(w http.ResponseWriter, r *http.Request) {
	report, err := h.tracker.Track(r.Context())
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, report)
}

// backgroundTrack acknowledges immediately; the queued run executes with the
// same semantics but the caller never sees the report.
func (h *TrackHandler) backgroundTrack(w http.ResponseWriter, r *http.Request) {
	if _, err := h.trackWorker.Enqueue(r.Context()); err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithMessage(w, http.StatusAccepted, "Processing started")
}
