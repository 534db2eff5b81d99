package actions

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/budget-tracker/internal/storage"
	"github.com/carson-networks/budget-tracker/internal/storage/sqlconfig"
)

// ReminderSettings asks for a reminder DaysBefore days ahead of the transaction date.
type ReminderSettings struct {
	DaysBefore   int
	PushEnabled  bool
	EmailEnabled bool
}

// CreateTransaction inserts one transaction and, when requested, its reminder.
// A failed reminder does not fail the action; it is reported in ReminderErr.
type CreateTransaction struct {
	Create   *sqlconfig.TransactionCreate
	Reminder *ReminderSettings

	ID          uuid.UUID
	ReminderID  uuid.UUID
	ReminderErr error
	IAction
}

func (c *CreateTransaction) Perform(ctx context.Context, w *storage.Writer) error {
	id, err := w.Transactions.Insert(ctx, c.Create)
	if err != nil {
		return err
	}
	c.ID = id

	if c.Reminder == nil {
		return nil
	}

	c.ReminderErr = w.Savepoint(ctx, "reminder", func() error {
		c.ReminderID, err = w.Reminders.Insert(ctx, &sqlconfig.ReminderCreate{
			UserID:        c.Create.UserID,
			TransactionID: id,
			ReminderDate:  ReminderDate(c.Create.Date, c.Reminder.DaysBefore),
			PushEnabled:   c.Reminder.PushEnabled,
			EmailEnabled:  c.Reminder.EmailEnabled,
		})
		return err
	})

	return nil
}

// ReminderDate is the day a reminder fires for a transaction on date.
func ReminderDate(date time.Time, daysBefore int) time.Time {
	return date.AddDate(0, 0, -daysBefore)
}
