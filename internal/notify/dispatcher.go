package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/carson-networks/budget-tracker/internal/metrics"
	"github.com/carson-networks/budget-tracker/internal/storage/sqlconfig"
)

const dispatchBatchSize = 100

// Dispatcher publishes reminders that have come due and marks them notified.
type Dispatcher struct {
	reminders sqlconfig.IReminderTable
	publisher Publisher
	metrics   *metrics.Metrics
	logger    *logrus.Logger
}

func NewDispatcher(reminders sqlconfig.IReminderTable, publisher Publisher, m *metrics.Metrics, logger *logrus.Logger) *Dispatcher {
	return &Dispatcher{
		reminders: reminders,
		publisher: publisher,
		metrics:   m,
		logger:    logger,
	}
}

// DispatchDue publishes every unnotified reminder dated on or before asOf.
// A reminder that fails to publish stays pending for the next run.
func (d *Dispatcher) DispatchDue(ctx context.Context, asOf time.Time) (int, error) {
	published := 0
	for {
		due, err := d.reminders.ListDue(ctx, asOf, dispatchBatchSize)
		if err != nil {
			return published, fmt.Errorf("list due reminders: %w", err)
		}

		batchPublished := 0
		for _, reminder := range due {
			if err := d.publisher.PublishReminderDue(ctx, NewReminderDueMessage(reminder, asOf)); err != nil {
				d.metrics.RemindersPublished.WithLabelValues("failed").Inc()
				d.logger.WithError(err).WithField("reminderID", reminder.ID).Error("Dispatcher.DispatchDue.publish")
				continue
			}
			if err := d.reminders.MarkNotified(ctx, reminder.ID, asOf); err != nil {
				return published, fmt.Errorf("mark reminder %s notified: %w", reminder.ID, err)
			}
			d.metrics.RemindersPublished.WithLabelValues("published").Inc()
			batchPublished++
		}
		published += batchPublished

		// a short batch is the last one; a batch with only failures would repeat forever
		if len(due) < dispatchBatchSize || batchPublished == 0 {
			return published, nil
		}
	}
}

// LogPublisher writes messages to the log when no broker is configured.
type LogPublisher struct {
	Logger *logrus.Logger
}

func (p LogPublisher) PublishReminderDue(_ context.Context, msg *ReminderDueMessage) error {
	p.Logger.WithFields(logrus.Fields{
		"reminderID":    msg.ReminderID,
		"transactionID": msg.TransactionID,
		"reminderDate":  msg.ReminderDate,
	}).Info("notify.LogPublisher.reminderDue")
	return nil
}
