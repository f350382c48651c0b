package tasks

import (
	"context"
	"time"

	"innroutes/config"
	"innroutes/models"
	"innroutes/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// NewAsynqClient builds the task-queue client from app config.
func NewAsynqClient() *asynq.Client {
	return asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	})
}

// OTPDelivery adapts the queue into an OTP delivery callback.
func OTPDelivery(client *asynq.Client) func(ctx context.Context, payload models.OTPDeliveryPayload) error {
	return func(ctx context.Context, payload models.OTPDeliveryPayload) error {
		task, opts, err := NewOTPDeliveryTask(payload)
		if err != nil {
			return err
		}
		info, err := client.EnqueueContext(ctx, task, opts...)
		if err != nil {
			return err
		}
		utils.GetLogger().Debug("enqueued otp delivery task", zap.String("taskId", info.ID))
		return nil
	}
}

// TripReminder adapts the queue into a trip reminder scheduler.
func TripReminder(client *asynq.Client) func(ctx context.Context, payload models.ReminderPayload, at time.Time) error {
	return func(ctx context.Context, payload models.ReminderPayload, at time.Time) error {
		task, opts, err := NewReminderTask(payload, at)
		if err != nil {
			return err
		}
		if _, err := client.EnqueueContext(ctx, task, opts...); err != nil {
			return err
		}
		return nil
	}
}
