package cron

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"innroutes/config"
	"innroutes/models"
	"innroutes/services/notification"

	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
)

const (
	TypeOTPDeliver   = "otp:deliver"
	TypeReminderSend = "reminder:send"
)

// InitWorker runs the async task worker in background.
func InitWorker(notifSvc notification.NotificationService) {
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
				"critical": 3,
				"default":  1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeOTPDeliver, handleOTPDeliverTask(notifSvc))
	mux.HandleFunc(TypeReminderSend, handleReminderTask(notifSvc))

	// Start Redis health monitor
	go monitorRedisConnection()

	// Start async worker with retry logic
	go func() {
		log.Println("[Worker] Starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[Worker] Attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

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

// handleOTPDeliverTask pushes the login code to the requesting device.
// Without a device token the code is only logged, which is the dev-mode
// delivery channel.
func handleOTPDeliverTask(notifSvc notification.NotificationService) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p models.OTPDeliveryPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			log.Printf("[OTPHandler] Invalid payload: %v", err)
			return err
		}

		log.Printf("[OTPHandler] Delivering login code to %s via %s", p.Contact, p.Method)

		if p.FCMToken == "" {
			log.Printf("[OTPHandler] No device token for %s, code: %s", p.Contact, p.Code)
			return nil
		}

		data := map[string]string{
			"type":     "otp",
			"deviceId": p.DeviceID,
		}
		if err := notifSvc.SendTokenPush(ctx, p.FCMToken, "Your login code",
			"Your verification code is "+p.Code, data); err != nil {
			log.Printf("[OTPHandler] Failed to push code: %v", err)
			return err
		}
		return nil
	}
}

func handleReminderTask(notifSvc notification.NotificationService) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p models.ReminderPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			log.Printf("[ReminderHandler] Invalid payload: %v", err)
			return err
		}

		log.Printf("[ReminderHandler] Triggering reminder for user %s, trip %s: %s", p.UserID, p.TripID, p.Title)

		data := map[string]string{
			"type":     "trip_reminder",
			"tripId":   p.TripID,
			"fireDate": p.FireDate,
		}

		if err := notifSvc.SendUserPush(ctx, p.UserID, p.Title, p.Body, data); err != nil {
			log.Printf("[ReminderHandler] Failed to send notification: %v", err)
			return err
		}
		return nil
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
			log.Printf("[Worker] Redis connection lost: %v", err)
		}
		time.Sleep(10 * time.Second)
	}
}
