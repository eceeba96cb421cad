package cron

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"twinmind/config"
	scheduleRepo "twinmind/database/repository/schedule"
	"twinmind/models"
	"twinmind/services/tasks"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// InitReminderWorker runs the async reminder worker in background.
func InitReminderWorker(repo scheduleRepo.ScheduleRepository, logger *zap.Logger) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderQueueDB,
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
	mux.HandleFunc(tasks.TypeSendReminder, handleReminderTask(repo, logger))

	// Start async worker with retry logic.
	go func() {
		logger.Info("starting reminder worker")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				logger.Error("reminder worker failed to start",
					zap.Int("attempt", attempts), zap.Int("maxAttempts", maxAttempts), zap.Error(err))

				if attempts == maxAttempts {
					log.Fatal("reminder worker: max retry attempts reached, exiting")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second) // Exponential backoff
			} else {
				break
			}
		}
	}()
}

func handleReminderTask(repo scheduleRepo.ScheduleRepository, logger *zap.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p models.ReminderPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			logger.Error("invalid reminder payload", zap.Error(err))
			return err
		}

		logger.Info("reminder due",
			zap.String("eventId", p.EventID),
			zap.String("description", p.Description),
			zap.String("slotStart", p.SlotStart))

		// The event may have been cancelled since the reminder was queued.
		if _, err := repo.GetEventByID(ctx, p.EventID); err != nil {
			logger.Info("skipping reminder for missing event", zap.String("eventId", p.EventID))
			return nil
		}

		n := models.Notification{
			EventID:   p.EventID,
			Title:     "Upcoming: " + p.Description,
			Body:      "Starts at " + p.SlotStart,
			CreatedAt: time.Now(),
		}
		if err := repo.CreateNotification(ctx, n); err != nil {
			logger.Error("failed to record notification", zap.Error(err))
			return err
		}
		return nil
	}
}
