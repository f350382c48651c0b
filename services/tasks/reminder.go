package tasks

import (
	"encoding/json"
	"time"

	"innroutes/cron"
	"innroutes/models"

	"github.com/hibiken/asynq"
)

func NewReminderTask(payload models.ReminderPayload, fireAt time.Time) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(cron.TypeReminderSend, b)
	opts := []asynq.Option{asynq.ProcessAt(fireAt)}

	return task, opts, nil
}

func NewOTPDeliveryTask(payload models.OTPDeliveryPayload) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(cron.TypeOTPDeliver, b)
	// Login codes are time-sensitive; drop them after two tries.
	opts := []asynq.Option{asynq.Queue("critical"), asynq.MaxRetry(2), asynq.Timeout(30 * time.Second)}

	return task, opts, nil
}
