package service

import (
	"context"
	"fmt"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/budget-tracker/internal/auth"
	"github.com/carson-networks/budget-tracker/internal/recurrence"
	"github.com/carson-networks/budget-tracker/internal/storage/sqlconfig"
)

const (
	DefaultUpcomingDays = 7
	maxUpcomingDays     = 365
)

type Reminder struct {
	ID              uuid.UUID
	TransactionID   uuid.UUID
	ReminderDate    time.Time
	PushEnabled     bool
	EmailEnabled    bool
	Notified        bool
	Amount          decimal.Decimal
	Type            sqlconfig.TransactionType
	Category        string
	TransactionDate time.Time
}

type ReminderService struct {
	*deps
}

// UpcomingReminders lists the caller's reminders dated from today through today+days.
func (s *ReminderService) UpcomingReminders(ctx context.Context, days int) ([]Reminder, error) {
	userID, err := auth.UserID(ctx)
	if err != nil {
		return nil, err
	}
	if days < 0 || days > maxUpcomingDays {
		return nil, fmt.Errorf("%w: days must be between 0 and %d", ErrValidation, maxUpcomingDays)
	}

	from := recurrence.Day(s.today())
	rows, err := s.storage.Reminders.ListUpcoming(ctx, userID, from, from.AddDate(0, 0, days))
	if err != nil {
		return nil, err
	}

	reminders := make([]Reminder, len(rows))
	for i, row := range rows {
		reminders[i] = Reminder{
			ID:              row.ID,
			TransactionID:   row.TransactionID,
			ReminderDate:    row.ReminderDate,
			PushEnabled:     row.PushEnabled,
			EmailEnabled:    row.EmailEnabled,
			Notified:        row.NotifiedAt != nil,
			Amount:          row.Amount,
			Type:            row.Type,
			Category:        row.Category,
			TransactionDate: row.TransactionDate,
		}
	}
	return reminders, nil
}
