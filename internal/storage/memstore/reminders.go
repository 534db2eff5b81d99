package memstore

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/budget-tracker/internal/storage/sqlconfig"
)

var _ sqlconfig.IReminderTable = (*RemindersTable)(nil)

type RemindersTable struct {
	mu           sync.RWMutex
	rows         map[uuid.UUID]*sqlconfig.Reminder
	transactions *TransactionsTable
	now          func() time.Time
}

// NewRemindersTable returns a reminder table joined against transactions.
// Deleting a transaction removes its reminders.
func NewRemindersTable(transactions *TransactionsTable) *RemindersTable {
	r := &RemindersTable{
		rows:         make(map[uuid.UUID]*sqlconfig.Reminder),
		transactions: transactions,
		now:          time.Now,
	}
	transactions.mu.Lock()
	transactions.onDelete = r.deleteForTransaction
	transactions.mu.Unlock()
	return r
}

func (r *RemindersTable) Insert(_ context.Context, create *sqlconfig.ReminderCreate) (uuid.UUID, error) {
	if _, ok := r.transactions.find(create.TransactionID); !ok {
		return uuid.Nil, sqlconfig.ErrNotFound
	}
	id, err := uuid.NewV4()
	if err != nil {
		return uuid.Nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.rows[id] = &sqlconfig.Reminder{
		ID:            id,
		UserID:        create.UserID,
		TransactionID: create.TransactionID,
		ReminderDate:  truncateDay(create.ReminderDate),
		PushEnabled:   create.PushEnabled,
		EmailEnabled:  create.EmailEnabled,
		CreatedAt:     r.now(),
	}
	return id, nil
}

func (r *RemindersTable) ListUpcoming(_ context.Context, userID uuid.UUID, from, to time.Time) ([]*sqlconfig.Reminder, error) {
	from, to = truncateDay(from), truncateDay(to)
	return r.collect(func(row *sqlconfig.Reminder) bool {
		return row.UserID == userID && !row.ReminderDate.Before(from) && !row.ReminderDate.After(to)
	}, 0), nil
}

func (r *RemindersTable) ListDue(_ context.Context, asOf time.Time, limit int) ([]*sqlconfig.Reminder, error) {
	asOf = truncateDay(asOf)
	return r.collect(func(row *sqlconfig.Reminder) bool {
		return row.NotifiedAt == nil && !row.ReminderDate.After(asOf)
	}, limit), nil
}

func (r *RemindersTable) MarkNotified(_ context.Context, id uuid.UUID, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	row, ok := r.rows[id]
	if !ok {
		return sqlconfig.ErrNotFound
	}
	row.NotifiedAt = &at
	return nil
}

func (r *RemindersTable) collect(keep func(*sqlconfig.Reminder) bool, limit int) []*sqlconfig.Reminder {
	r.mu.RLock()
	var result []*sqlconfig.Reminder
	for _, row := range r.rows {
		if keep(row) {
			clone := *row
			result = append(result, &clone)
		}
	}
	r.mu.RUnlock()

	sort.Slice(result, func(i, j int) bool {
		if !result[i].ReminderDate.Equal(result[j].ReminderDate) {
			return result[i].ReminderDate.Before(result[j].ReminderDate)
		}
		return result[i].ID.String() < result[j].ID.String()
	})
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}

	for _, row := range result {
		if tx, ok := r.transactions.find(row.TransactionID); ok {
			row.Amount = tx.Amount
			row.Type = tx.Type
			row.Category = tx.Category
			row.TransactionDate = tx.Date
		}
	}
	return result
}

func (r *RemindersTable) deleteForTransaction(transactionID uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, row := range r.rows {
		if row.TransactionID == transactionID {
			delete(r.rows, id)
		}
	}
}
