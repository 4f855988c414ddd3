package cron

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"barberhub/config"
	"barberhub/services/inquiry"
	"barberhub/services/metrics"

	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
)

const TypeMetricsRefresh = "metrics:refresh"

// MetricsRefreshInterval is how often the platform stats snapshot is rebuilt.
const MetricsRefreshInterval = 10 * time.Minute

// NewQueueClient returns the asynq client used to enqueue background tasks.
func NewQueueClient() *asynq.Client {
	return asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	})
}

// InitWorker runs the async worker in background.
func InitWorker(metricsSvc metrics.MetricsService) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
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
	mux.HandleFunc(inquiry.TypeInquiryNotify, handleInquiryNotify)
	mux.HandleFunc(TypeMetricsRefresh, handleMetricsRefresh(metricsSvc))

	// Start Redis health monitor
	go monitorRedisConnection()

	// Periodically enqueue the snapshot refresh.
	go scheduleMetricsRefresh()

	// Start async worker with retry logic
	go func() {
		log.Println("[Worker] 🚀 Starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[Worker] ❌ Attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[Worker] Max retry attempts reached. Exiting.")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second) // Exponential backoff
			} else {
				break
			}
		}
	}()
}

func handleInquiryNotify(ctx context.Context, task *asynq.Task) error {
	var p inquiry.NotifyPayload
	if err := json.Unmarshal(task.Payload(), &p); err != nil {
		log.Printf("[InquiryNotify] Invalid payload: %v", err)
		return err
	}

	// Operator notification currently means a structured log entry that the
	// ops alerting picks up. TODO: send email once the mail relay lands.
	log.Printf("[InquiryNotify] 📥 New lead %s: %s <%s> for %q", p.InquiryID, p.ContactName, p.Email, p.BusinessName)
	return nil
}

func handleMetricsRefresh(metricsSvc metrics.MetricsService) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		if err := metricsSvc.RefreshSnapshot(ctx); err != nil {
			log.Printf("[MetricsRefresh] Failed to refresh snapshot: %v", err)
			return err
		}
		return nil
	}
}

func scheduleMetricsRefresh() {
	client := NewQueueClient()
	for {
		if _, err := client.Enqueue(asynq.NewTask(TypeMetricsRefresh, nil)); err != nil {
			log.Printf("[MetricsRefresh] Failed to enqueue refresh: %v", err)
		}
		time.Sleep(MetricsRefreshInterval)
	}
}

// monitorRedisConnection pings Redis periodically to detect failures at runtime.
func monitorRedisConnection() {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	})

	ctx := context.Background()

	for {
		if err := client.Ping(ctx).Err(); err != nil {
			log.Printf("[Worker] ⚠️ Redis connection lost: %v", err)
		}
		time.Sleep(10 * time.Second)
	}
}
