package api

import (
	"net/http"

	"leettrack/internal/api/handler"
	"leettrack/internal/app/service"
	"leettrack/internal/app/worker"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
)

func NewRouter(
	userService *service.UserService,
	trackerService *service.TrackerService,
	rankingService *service.RankingService,
	statsService *service.StatsService,
	trackWorker *worker.TrackWorker,
) http.Handler {
	r := chi.NewRouter()

	// Base Middlewares
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	// No timeout middleware: a synchronous /track run is bounded only by
	// upstream latency across the whole user batch.

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	userHandler := handler.NewUserHandler(userService)
	userHandler.RegisterRoutes(r)

	trackHandler := handler.NewTrackHandler(trackerService, trackWorker)
	trackHandler.RegisterRoutes(r)

	rankingHandler := handler.NewRankingHandler(rankingService, statsService)
	rankingHandler.RegisterRoutes(r)

	statsHandler := handler.NewStatsHandler(statsService)
	statsHandler.RegisterRoutes(r)

	return r
}
