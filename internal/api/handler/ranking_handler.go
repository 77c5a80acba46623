package handler

import (
	"net/http"

	"leettrack/internal/app/service"
	"leettrack/internal/common"

	"github.com/go-chi/chi/v5"
)

type RankingHandler struct {
	rankingService *service.RankingService
	statsService   *service.StatsService
}

func NewRankingHandler(rankingService *service.RankingService, statsService *service.StatsService) *RankingHandler {
	return &RankingHandler{rankingService: rankingService, statsService: statsService}
}

func (h *RankingHandler) RegisterRoutes(r chi.Router) {
	r.Get("/ranking", h.ranking)
	r.Get("/total-leaderboard", h.totalLeaderboard)
	r.Get("/contest-leaderboard", h.contestLeaderboard)
}

func (h *RankingHandler) ranking(w http.ResponseWriter, r *http.Request) {
	period := r.URL.Query().Get("type")
	entries, err := h.rankingService.Ranking(r.Context(), period)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, entries)
}

func (h *RankingHandler) totalLeaderboard(w http.ResponseWriter, r *http.Request) {
	standings, err := h.statsService.TotalLeaderboard(r.Context())
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, standings)
}

func (h *RankingHandler) contestLeaderboard(w http.ResponseWriter, r *http.Request) {
	standings, err := h.statsService.ContestLeaderboard(r.Context())
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, standings)
}
