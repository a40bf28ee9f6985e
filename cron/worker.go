package cron

import (
	"context"
	"time"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"webcraft/services/notification"
	"webcraft/services/tasks"
)

// InitReminderWorker runs the reminder worker in the background. The
// returned server must be shut down by the caller.
func InitReminderWorker(redisOpts asynq.RedisClientOpt, notifSvc notification.NotificationService, logger *zap.Logger) *asynq.Server {
	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
			Logger: logger.Sugar(),
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeConsultationReminder, handleReminderTask(notifSvc, logger))

	go func() {
		logger.Info("Starting reminder worker")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			err := srv.Start(mux)
			if err == nil {
				return
			}
			logger.Error("Reminder worker failed to start",
				zap.Int("attempt", attempts),
				zap.Int("maxAttempts", maxAttempts),
				zap.Error(err),
			)
			if attempts == maxAttempts {
				logger.Fatal("Reminder worker: max retry attempts reached")
			}
			time.Sleep(time.Duration(attempts*2) * time.Second)
		}
	}()
	return srv
}

func handleReminderTask(notifSvc notification.NotificationService, logger *zap.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		p, err := tasks.ParseConsultationReminder(task)
		if err != nil {
			logger.Error("Dropping reminder with invalid payload", zap.Error(err))
			return asynq.SkipRetry
		}

		logger.Info("Sending consultation reminder",
			zap.String("bookingId", p.BookingID),
			zap.Time("startsAt", p.StartsAt),
		)
		if err := notifSvc.SendReminder(ctx, p); err != nil {
			logger.Error("Failed to send reminder", zap.String("bookingId", p.BookingID), zap.Error(err))
			return err
		}
		return nil
	}
}
