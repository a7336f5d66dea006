package cron

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"pawhub/config"
	"pawhub/services/admin"
	"pawhub/services/booking"
	"pawhub/services/tasks"

	"github.com/hibiken/asynq"
)

func redisOpts() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPass,
		DB:       config.AppConfig.RedisQueueDB,
	}
}

// InitMaintenanceWorker runs the async worker and its schedule in background.
// The worker owns the two recurring jobs: the booking lifecycle sweep and the
// heuristic fraud scan.
func InitMaintenanceWorker(bookingSvc booking.BookingService, adminSvc admin.AdminService) {
	srv := asynq.NewServer(
		redisOpts(),
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeBookingSweep, handleBookingSweep(bookingSvc))
	mux.HandleFunc(tasks.TypeFraudScan, handleFraudScan(adminSvc))

	go func() {
		log.Println("[MaintenanceWorker] starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[MaintenanceWorker] attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[MaintenanceWorker] max retry attempts reached, exiting")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second)
			} else {
				break
			}
		}
	}()

	go runSchedule()
}

// runSchedule registers the recurring jobs: a sweep every fifteen minutes and
// a fraud scan once a day.
func runSchedule() {
	scheduler := asynq.NewScheduler(redisOpts(), &asynq.SchedulerOpts{Location: time.Local})

	sweepTask, err := tasks.NewBookingSweepTask(time.Now())
	if err != nil {
		log.Printf("[MaintenanceWorker] failed to build sweep task: %v", err)
		return
	}
	if _, err := scheduler.Register("@every 15m", sweepTask); err != nil {
		log.Printf("[MaintenanceWorker] failed to register sweep: %v", err)
	}
	if _, err := scheduler.Register("@every 24h", tasks.NewFraudScanTask()); err != nil {
		log.Printf("[MaintenanceWorker] failed to register fraud scan: %v", err)
	}

	if err := scheduler.Run(); err != nil {
		log.Printf("[MaintenanceWorker] scheduler stopped: %v", err)
	}
}

func handleBookingSweep(bookingSvc booking.BookingService) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p tasks.SweepPayload
		if len(task.Payload()) > 0 {
			if err := json.Unmarshal(task.Payload(), &p); err != nil {
				log.Printf("[BookingSweep] invalid payload: %v", err)
				return err
			}
		}

		// Scheduled tasks carry the registration time; always sweep at now.
		moved, expired, err := bookingSvc.Sweep(time.Now())
		if err != nil {
			log.Printf("[BookingSweep] sweep failed: %v", err)
			return err
		}
		log.Printf("[BookingSweep] moved %d to awaiting confirmation, expired %d", moved, expired)
		return nil
	}
}

func handleFraudScan(adminSvc admin.AdminService) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		report, err := adminSvc.RunAnalysis()
		if err != nil {
			log.Printf("[FraudScan] analysis failed: %v", err)
			return err
		}
		log.Printf("[FraudScan] analyzed %d providers (%d flagged), %d users (%d flagged)",
			report.Providers.Analyzed, report.Providers.Flagged,
			report.Users.Analyzed, report.Users.Flagged)
		return nil
	}
}
