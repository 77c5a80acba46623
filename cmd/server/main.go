package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"leettrack/internal/api"
	"leettrack/internal/app/service"
	"leettrack/internal/app/worker"
	"leettrack/internal/domain/repository"
	"leettrack/internal/leetcode"
	"leettrack/internal/platform/config"
	"leettrack/internal/platform/database"
	"leettrack/internal/platform/queue"

	"github.com/go-co-op/gocron/v2"
	"github.com/jonboulle/clockwork"
)

func main() {
	// 1. Load Configuration
	config.Load()
	fmt.Println("Configuration loaded.")

	// 2. Initialize Database
	database.Connect()
	defer database.Close()
	database.Migrate(context.Background())

	// 3. Initialize Redis
	queue.ConnectRedis()
	defer queue.CloseRedis()

	// 4. Initialize Repositories
	userRepo := repository.NewPgUserRepository(database.DB)
	summaryRepo := repository.NewPgSummaryRepository(database.DB)
	totalsRepo := repository.NewPgTotalStatsRepository(database.DB)
	contestRepo := repository.NewPgContestStatsRepository(database.DB)

	// 5. Initialize Services
	lc := leetcode.NewClient(config.AppConfig.LeetCodeAPIURL)
	clock := clockwork.NewRealClock()
	loc := config.AppConfig.TrackTimezone

	userService := service.NewUserService(userRepo, lc, clock, loc)
	trackerService := service.NewTrackerService(userRepo, summaryRepo, lc, clock, loc, config.AppConfig.TrackFanout)
	rankingService := service.NewRankingService(summaryRepo, clock, loc)
	statsService := service.NewStatsService(userRepo, totalsRepo, contestRepo, lc, clock)

	// 6. Initialize Track Worker (as a goroutine)
	trackWorker := worker.NewTrackWorker(queue.RDB, trackerService)
	workerCtx, workerCancel := context.WithCancel(context.Background())
	defer workerCancel()
	go trackWorker.Start(workerCtx)
	fmt.Println("Track worker started.")

	// 7. Optional periodic polling: enqueue a tracking run and refresh
	// lifetime totals on an interval.
	var scheduler gocron.Scheduler
	if config.AppConfig.SchedulerEnabled {
		var err error
		scheduler, err = gocron.NewScheduler()
		if err != nil {
			log.Fatalf("Could not create scheduler: %v", err)
		}

		interval := time.Duration(config.AppConfig.TrackIntervalMinutes) * time.Minute
		_, err = scheduler.NewJob(
			gocron.DurationJob(interval),
			gocron.NewTask(func() {
				if _, err := trackWorker.Enqueue(context.Background()); err != nil {
					log.Printf("ERROR: Scheduled track enqueue failed: %v", err)
				}
				if _, err := statsService.RefreshTotals(context.Background()); err != nil {
					log.Printf("ERROR: Scheduled totals refresh failed: %v", err)
				}
			}),
		)
		if err != nil {
			log.Fatalf("Could not schedule tracking job: %v", err)
		}
		scheduler.Start()
		log.Printf("Scheduler started, tracking every %s", interval)
	}

	// 8. Initialize Router & HTTP Server
	router := api.NewRouter(userService, trackerService, rankingService, statsService, trackWorker)

	server := &http.Server{
		Addr:        ":" + config.AppConfig.APIPort,
		Handler:     router,
		IdleTimeout: 120 * time.Second,
	}

	// 9. Graceful Shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on port %s", config.AppConfig.APIPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Could not listen on %s: %v\n", config.AppConfig.APIPort, err)
		}
	}()
	log.Println("Server started successfully.")

	<-stop

	log.Println("Shutting down server...")
	workerCancel()
	if scheduler != nil {
		if err := scheduler.Shutdown(); err != nil {
			log.Printf("Scheduler shutdown failed: %v", err)
		}
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server shutdown failed: %v", err)
	}

	log.Println("Server and worker stopped gracefully.")
}
