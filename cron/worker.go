package cron

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/hibiken/asynq"

	"clinicdesk/config"
	providerRepo "clinicdesk/database/repository/provider"
	"clinicdesk/services/scheduling"
)

const TypeGridWarmup = "grid:warmup"

// GridWarmupPayload names one provider/day grid to materialize ahead of time.
type GridWarmupPayload struct {
	ProviderID string `json:"providerId"`
	Date       string `json:"date"`
}

// InitGridWarmupWorker runs the async worker in background and enqueues a
// warm-up sweep once a day. Warm-up is purely an optimization: a day that was
// never warmed is materialized lazily on first booking or availability call.
func InitGridWarmupWorker(engine scheduling.Engine, providers providerRepo.ProviderRepository) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisWorkerDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeGridWarmup, handleGridWarmupTask(engine))

	go func() {
		log.Println("[GridWarmup] starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[GridWarmup] attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[GridWarmup] max retry attempts reached, exiting")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second)
			} else {
				break
			}
		}
	}()

	go enqueueWarmupSweeps(asynq.NewClient(redisOpts), providers)
}

func handleGridWarmupTask(engine scheduling.Engine) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p GridWarmupPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			log.Printf("[GridWarmup] invalid payload: %v", err)
			return err
		}
		// EnsureGrid is idempotent, so asynq retries are safe.
		if err := engine.EnsureGrid(ctx, p.ProviderID, p.Date); err != nil {
			log.Printf("[GridWarmup] failed for %s %s: %v", p.ProviderID, p.Date, err)
			return err
		}
		return nil
	}
}

// enqueueWarmupSweeps fans one task out per active provider per day in the
// warm-up horizon, immediately on startup and then every 24h.
func enqueueWarmupSweeps(client *asynq.Client, providers providerRepo.ProviderRepository) {
	sweep := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		active, err := providers.ListActive(ctx)
		if err != nil {
			log.Printf("[GridWarmup] failed to list providers: %v", err)
			return
		}

		horizon := config.AppConfig.GridWarmupDays
		if horizon <= 0 {
			horizon = 7
		}
		today := time.Now().UTC()
		for _, prov := range active {
			for i := 0; i < horizon; i++ {
				payload, err := json.Marshal(GridWarmupPayload{
					ProviderID: prov.ID,
					Date:       today.AddDate(0, 0, i).Format("2006-01-02"),
				})
				if err != nil {
					continue
				}
				if _, err := client.Enqueue(asynq.NewTask(TypeGridWarmup, payload)); err != nil {
					log.Printf("[GridWarmup] enqueue failed for %s: %v", prov.ID, err)
				}
			}
		}
	}

	sweep()
	ticker := time.NewTicker(24 * time.Hour)
	defer ticker.Stop()
	for range ticker.C {
		sweep()
	}
}
