package notify

import (
	"encoding/json"
	"time"

	"github.com/carson-networks/budget-tracker/internal/storage/sqlconfig"
)

// ReminderDueMessage tells a notifier that a transaction reminder is due.
type ReminderDueMessage struct {
	ReminderID      string    `json:"reminderID"`
	UserID          string    `json:"userID"`
	TransactionID   string    `json:"transactionID"`
	ReminderDate    string    `json:"reminderDate"`
	TransactionDate string    `json:"transactionDate"`
	Amount          string    `json:"amount"`
	Type            string    `json:"type"`
	Category        string    `json:"category"`
	Push            bool      `json:"push"`
	Email           bool      `json:"email"`
	Timestamp       time.Time `json:"timestamp"`
}

func NewReminderDueMessage(r *sqlconfig.Reminder, at time.Time) *ReminderDueMessage {
	return &ReminderDueMessage{
		ReminderID:      r.ID.String(),
		UserID:          r.UserID.String(),
		TransactionID:   r.TransactionID.String(),
		ReminderDate:    r.ReminderDate.Format(time.DateOnly),
		TransactionDate: r.TransactionDate.Format(time.DateOnly),
		Amount:          r.Amount.String(),
		Type:            string(r.Type),
		Category:        r.Category,
		Push:            r.PushEnabled,
		Email:           r.EmailEnabled,
		Timestamp:       at,
	}
}

func (m *ReminderDueMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func ReminderDueMessageFromJSON(data []byte) (*ReminderDueMessage, error) {
	var msg ReminderDueMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
