package storage

import (
	"context"
	"errors"

	"github.com/stephenafamo/bob"

	"github.com/carson-networks/budget-tracker/internal/storage/sqlconfig"
)

// Writer scopes the tables of one operator action to a single database
// transaction. On the memory backend tx is nil and every write applies
// immediately.
type Writer struct {
	tx           bob.Transaction
	Transactions sqlconfig.ITransactionTable
	Reminders    sqlconfig.IReminderTable
}

func NewWriter(tx bob.Transaction, transactions sqlconfig.ITransactionTable, reminders sqlconfig.IReminderTable) *Writer {
	return &Writer{
		tx:           tx,
		Transactions: transactions,
		Reminders:    reminders,
	}
}

func (w *Writer) Commit(ctx context.Context) error {
	if w.tx == nil {
		return nil
	}
	return w.tx.Commit(ctx)
}

func (w *Writer) Rollback(ctx context.Context) error {
	if w.tx == nil {
		return nil
	}
	return w.tx.Rollback(ctx)
}

// Savepoint runs fn under a named savepoint. When fn fails only its own
// statements are rolled back and the rest of the transaction stays usable.
func (w *Writer) Savepoint(ctx context.Context, name string, fn func() error) error {
	if w.tx == nil {
		return fn()
	}

	if _, err := w.tx.ExecContext(ctx, "SAVEPOINT "+name); err != nil {
		return err
	}
	if err := fn(); err != nil {
		if _, rbErr := w.tx.ExecContext(ctx, "ROLLBACK TO SAVEPOINT "+name); rbErr != nil {
			return errors.Join(err, rbErr)
		}
		return err
	}
	_, err := w.tx.ExecContext(ctx, "RELEASE SAVEPOINT "+name)
	return err
}
