package sqlconfig

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
)

// Reminder is a reminder row joined with the transaction it points at.
type Reminder struct {
	ID              uuid.UUID       `db:"id"`
	UserID          uuid.UUID       `db:"user_id"`
	TransactionID   uuid.UUID       `db:"transaction_id"`
	ReminderDate    time.Time       `db:"reminder_date"`
	PushEnabled     bool            `db:"push_enabled"`
	EmailEnabled    bool            `db:"email_enabled"`
	NotifiedAt      *time.Time      `db:"notified_at"`
	CreatedAt       time.Time       `db:"created_at"`
	Amount          decimal.Decimal `db:"amount"`
	Type            TransactionType `db:"type"`
	Category        string          `db:"category"`
	TransactionDate time.Time       `db:"transaction_date"`
}

type ReminderCreate struct {
	UserID        uuid.UUID
	TransactionID uuid.UUID
	ReminderDate  time.Time
	PushEnabled   bool
	EmailEnabled  bool
}

// IReminderTable defines the interface for reminder storage operations.
//
//go:generate mockery --name IReminderTable --output mock_IReminderTable.go
type IReminderTable interface {
	Insert(ctx context.Context, create *ReminderCreate) (uuid.UUID, error)
	// ListUpcoming returns the user's reminders dated within [from, to], earliest first.
	ListUpcoming(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]*Reminder, error)
	// ListDue returns reminders of every user dated on or before asOf that were never notified.
	ListDue(ctx context.Context, asOf time.Time, limit int) ([]*Reminder, error)
	MarkNotified(ctx context.Context, id uuid.UUID, at time.Time) error
}
