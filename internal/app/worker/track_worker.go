package worker

import (
	"context"
	"errors"
	"log"
	"time"

	"leettrack/internal/app/service"
	"leettrack/internal/platform/config"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// TrackWorker drains queued aggregation runs. Runs are fire-and-forget from
// the caller's point of view: the HTTP boundary (or the scheduler) enqueues a
// run ID and the worker executes it under a redis lock so two runs never
// overlap. A run that finds the lock held is dropped, not requeued — the
// in-flight run makes it redundant under last-write-wins.
type TrackWorker struct {
	rdb     *redis.Client
	tracker *service.TrackerService
}

func NewTrackWorker(rdb *redis.Client, tracker *service.TrackerService) *TrackWorker {
	return &TrackWorker{rdb: rdb, tracker: tracker}
}

// Enqueue pushes a new run onto the queue and returns its ID.
func (w *TrackWorker) Enqueue(ctx context.Context) (string, error) {
	runID := uuid.NewString()
	if err := w.rdb.LPush(ctx, config.AppConfig.TrackQueueName, runID).Err(); err != nil {
		return "", err
	}
	return runID, nil
}

func (w *TrackWorker) Start(ctx context.Context) {
	log.Println("Track worker started, listening to queue:", config.AppConfig.TrackQueueName)
	for {
		select {
		case <-ctx.Done():
			log.Println("Track worker stopping...")
			return
		default:
			popped, err := w.rdb.BRPop(ctx, 0*time.Second, config.AppConfig.TrackQueueName).Result()
			if err != nil {
				if errors.Is(err, redis.Nil) || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
					log.Printf("Worker BRPop exiting or timed out: %v", err)
					time.Sleep(1 * time.Second)
					continue
				}
				log.Printf("ERROR: Failed to BRPop from Redis queue '%s': %v", config.AppConfig.TrackQueueName, err)
				time.Sleep(5 * time.Second)
				continue
			}

			// popped is [queueName, value]
			if len(popped) < 2 || popped[1] == "" {
				log.Println("WARN: BRPop returned empty run ID.")
				continue
			}
			w.runWithLock(ctx, popped[1])
		}
	}
}

func (w *TrackWorker) runWithLock(ctx context.Context, runID string) {
	lockValue := uuid.NewString()
	lockTTL := time.Duration(config.AppConfig.TrackLockTTLSeconds) * time.Second

	ok, err := w.rdb.SetNX(ctx, config.AppConfig.TrackLockKey, lockValue, lockTTL).Result()
	if err != nil {
		log.Printf("ERROR: Failed to attempt lock acquisition for run %s: %v", runID, err)
		return
	}
	if !ok {
		log.Printf("INFO: Aggregation already in progress, dropping run %s.", runID)
		return
	}
	log.Printf("INFO: Acquired track lock for run %s", runID)

	defer func() {
		// Compare-and-delete so an expired lock taken over by another run
		// is left alone.
		script := redis.NewScript(`
            if redis.call("get", KEYS[1]) == ARGV[1] then
                return redis.call("del", KEYS[1])
            else
                return 0
            end
        `)
		deleted, err := script.Run(ctx, w.rdb, []string{config.AppConfig.TrackLockKey}, lockValue).Result()
		if err != nil {
			log.Printf("ERROR: Failed to release track lock (run %s): %v", runID, err)
		} else if deleted.(int64) != 1 {
			log.Printf("WARN: Did not release track lock for run %s; it may have expired.", runID)
		}
	}()

	report, err := w.tracker.Track(ctx)
	if err != nil {
		log.Printf("ERROR: Background run %s failed: %v", runID, err)
		return
	}

	failures := 0
	for _, r := range report.Results {
		if r.Error {
			failures++
		}
	}
	log.Printf("INFO: Background run %s done: date=%s users=%d failures=%d",
		runID, report.DateKey, len(report.Results), failures)
}
