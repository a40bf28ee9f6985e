package tasks

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"

	"webcraft/models"
)

const TypeConsultationReminder = "consultation:reminder"

func NewConsultationReminderTask(payload models.ConsultationReminder, fireAt time.Time) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeConsultationReminder, b)
	opts := []asynq.Option{asynq.ProcessAt(fireAt), asynq.MaxRetry(3)}
	if payload.BookingID != "" {
		// one reminder per booking, even if a request is replayed
		opts = append(opts, asynq.TaskID("reminder:"+payload.BookingID))
	}
	return task, opts, nil
}

// ParseConsultationReminder decodes the payload of a reminder task.
func ParseConsultationReminder(task *asynq.Task) (models.ConsultationReminder, error) {
	var p models.ConsultationReminder
	if err := json.Unmarshal(task.Payload(), &p); err != nil {
		return p, fmt.Errorf("invalid reminder payload: %w", err)
	}
	return p, nil
}

// AsynqReminderScheduler enqueues reminders on the asynq queue.
type AsynqReminderScheduler struct {
	client *asynq.Client
}

func NewAsynqReminderScheduler(client *asynq.Client) *AsynqReminderScheduler {
	return &AsynqReminderScheduler{client: client}
}

func (s *AsynqReminderScheduler) ScheduleReminder(ctx context.Context, r models.ConsultationReminder, fireAt time.Time) error {
	task, opts, err := NewConsultationReminderTask(r, fireAt)
	if err != nil {
		return err
	}
	if _, err := s.client.EnqueueContext(ctx, task, opts...); err != nil {
		return fmt.Errorf("failed to enqueue reminder for %s: %w", r.BookingID, err)
	}
	return nil
}
