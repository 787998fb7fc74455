package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/rasd-app/rasd-api/internal/models"
	"github.com/rasd-app/rasd-api/pkg/config"
	"github.com/rasd-app/rasd-api/pkg/jobs"
)

type messageWriter interface {
	Create(ctx context.Context, msg *models.Message) error
}

// ReminderDispatcher hands reminder messages to the internal messaging store
// through a background queue: the HTTP path returns as soon as the message is
// enqueued, delivery is fire-and-forget.
type ReminderDispatcher struct {
	queue  *jobs.Queue
	logger *zap.Logger
}

// NewReminderDispatcher builds a dispatcher writing through the given store.
func NewReminderDispatcher(store messageWriter, cfg config.RemindersConfig, logger *zap.Logger) *ReminderDispatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	d := &ReminderDispatcher{logger: logger}
	d.queue = jobs.NewQueue("reminders", func(ctx context.Context, job jobs.Job) error {
		msg, ok := job.Payload.(models.Message)
		if !ok {
			return fmt.Errorf("unexpected reminder payload %T", job.Payload)
		}
		return store.Create(ctx, &msg)
	}, jobs.QueueConfig{Workers: cfg.Workers, MaxRetries: cfg.MaxRetries, Logger: logger})
	return d
}

// Start begins queue consumption.
func (d *ReminderDispatcher) Start(ctx context.Context) {
	d.queue.Start(ctx)
}

// Stop drains the queue workers.
func (d *ReminderDispatcher) Stop() {
	d.queue.Stop()
}

// Dispatch enqueues one reminder message.
func (d *ReminderDispatcher) Dispatch(ctx context.Context, msg models.Message) error {
	return d.queue.Enqueue(jobs.Job{
		ID:      uuid.NewString(),
		Type:    "reminder",
		Payload: msg,
	})
}
