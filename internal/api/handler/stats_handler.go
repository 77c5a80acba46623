package handler

import (
	"net/http"

	"leettrack/internal/app/service"
	"leettrack/internal/common"

	"github.com/go-chi/chi/v5"
)

type StatsHandler struct {
	statsService *service.StatsService
}

func NewStatsHandler(statsService *service.StatsService) *StatsHandler {
	return &StatsHandler{statsService: statsService}
}

func (h *StatsHandler) RegisterRoutes(r chi.Router) {
	r.Get("/refresh-total", h.refreshTotals)
	r.Get("/refresh-contests", h.refreshContests)
}

func (h *StatsHandler) refreshTotals(w http.ResponseWriter, r *http.Request) {
	results, err := h.statsService.RefreshTotals(r.Context())
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, map[string]any{"results": results})
}

func (h *StatsHandler) refreshContests(w http.ResponseWriter, r *http.Request) {
	results, err := h.statsService.RefreshContests(r.Context())
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, map[string]any{"results": results})
}
