package operator

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stephenafamo/scan"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/budget-tracker/internal/metrics"
	"github.com/carson-networks/budget-tracker/internal/operator/actions"
	"github.com/carson-networks/budget-tracker/internal/storage"
	"github.com/carson-networks/budget-tracker/internal/storage/sqlconfig"
)

func newDelegator(t *testing.T, store *storage.Storage) *OperatorDelegator {
	t.Helper()
	d := NewOperatorDelegator(store, metrics.New(), 2)
	d.Start()
	t.Cleanup(d.Stop)
	return d
}

func rentCreate(userID uuid.UUID) *sqlconfig.TransactionCreate {
	return &sqlconfig.TransactionCreate{
		UserID:        userID,
		Amount:        decimal.RequireFromString("100"),
		Type:          sqlconfig.TransactionTypeExpense,
		Category:      "rent",
		Date:          time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
		PaymentMethod: sqlconfig.PaymentMethodBank,
	}
}

func TestProcess_CreateWithReminder(t *testing.T) {
	store := storage.NewMemoryStorage()
	d := newDelegator(t, store)
	userID := uuid.Must(uuid.NewV4())

	action := &actions.CreateTransaction{
		Create:   rentCreate(userID),
		Reminder: &actions.ReminderSettings{DaysBefore: 3, PushEnabled: true},
	}
	require.NoError(t, d.Process(context.Background(), action))
	assert.NotEqual(t, uuid.Nil, action.ID)
	assert.NoError(t, action.ReminderErr)

	reminders, err := store.Reminders.ListUpcoming(context.Background(), userID,
		time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Len(t, reminders, 1)
	assert.Equal(t, time.Date(2024, 1, 29, 0, 0, 0, 0, time.UTC), reminders[0].ReminderDate)
	assert.Equal(t, action.ID, reminders[0].TransactionID)
}

func TestProcess_ReminderFailureKeepsTransaction(t *testing.T) {
	transactions := sqlconfig.NewMockITransactionTable(t)
	reminders := sqlconfig.NewMockIReminderTable(t)
	store := &storage.Storage{Transactions: transactions, Reminders: reminders}
	d := newDelegator(t, store)

	txID := uuid.Must(uuid.NewV4())
	transactions.EXPECT().Insert(mock.Anything, mock.Anything).Return(txID, nil)
	reminders.EXPECT().Insert(mock.Anything, mock.Anything).Return(uuid.Nil, errors.New("reminder table locked"))

	action := &actions.CreateTransaction{
		Create:   rentCreate(uuid.Must(uuid.NewV4())),
		Reminder: &actions.ReminderSettings{DaysBefore: 1},
	}
	err := d.Process(context.Background(), action)

	assert.NoError(t, err)
	assert.Equal(t, txID, action.ID)
	assert.EqualError(t, action.ReminderErr, "reminder table locked")
}

func TestProcess_PropagatesStoreError(t *testing.T) {
	transactions := sqlconfig.NewMockITransactionTable(t)
	d := newDelegator(t, &storage.Storage{Transactions: transactions})

	transactions.EXPECT().Delete(mock.Anything, mock.Anything, mock.Anything).Return(sqlconfig.ErrNotFound)

	err := d.Process(context.Background(), &actions.DeleteTransaction{
		UserID: uuid.Must(uuid.NewV4()),
		ID:     uuid.Must(uuid.NewV4()),
	})
	assert.ErrorIs(t, err, sqlconfig.ErrNotFound)
}

func TestProcess_CancelledContext(t *testing.T) {
	d := newDelegator(t, storage.NewMemoryStorage())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := d.Process(ctx, &actions.CreateTransaction{Create: rentCreate(uuid.Must(uuid.NewV4()))})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestReminderDate(t *testing.T) {
	assert.Equal(t,
		time.Date(2024, 2, 28, 0, 0, 0, 0, time.UTC),
		actions.ReminderDate(time.Date(2024, 3, 6, 0, 0, 0, 0, time.UTC), 7))
	assert.Equal(t,
		time.Date(2024, 3, 6, 0, 0, 0, 0, time.UTC),
		actions.ReminderDate(time.Date(2024, 3, 6, 0, 0, 0, 0, time.UTC), 0))
}

type mockTx struct {
	mock.Mock
}

func (m *mockTx) QueryContext(_ context.Context, query string, _ ...any) (scan.Rows, error) {
	return nil, m.Called(query).Error(0)
}

func (m *mockTx) ExecContext(_ context.Context, query string, _ ...any) (sql.Result, error) {
	return nil, m.Called(query).Error(0)
}

func (m *mockTx) Commit(context.Context) error {
	return m.Called().Error(0)
}

func (m *mockTx) Rollback(context.Context) error {
	return m.Called().Error(0)
}

// runOnce performs a single action through an operator bound to w.
func runOnce(w *storage.Writer, writeErr error, action actions.IAction) error {
	op := &Operator{
		write: func(context.Context) (*storage.Writer, error) {
			if writeErr != nil {
				return nil, writeErr
			}
			return w, nil
		},
	}
	item := ActionItem{
		ctx:      context.Background(),
		action:   action,
		response: make(chan ActionItemResponse, 1),
	}
	op.processItem(item)
	return (<-item.response).err
}

func TestProcessItem_CommitsOnSuccess(t *testing.T) {
	tx := new(mockTx)
	transactions := sqlconfig.NewMockITransactionTable(t)
	transactions.EXPECT().Delete(mock.Anything, mock.Anything, mock.Anything).Return(nil)
	tx.On("Commit").Return(nil).Once()

	err := runOnce(storage.NewWriter(tx, transactions, nil), nil, &actions.DeleteTransaction{
		UserID: uuid.Must(uuid.NewV4()),
		ID:     uuid.Must(uuid.NewV4()),
	})

	require.NoError(t, err)
	tx.AssertExpectations(t)
	tx.AssertNotCalled(t, "Rollback")
}

func TestProcessItem_RollsBackOnActionError(t *testing.T) {
	tx := new(mockTx)
	transactions := sqlconfig.NewMockITransactionTable(t)
	transactions.EXPECT().Update(mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(sqlconfig.ErrNotFound)
	tx.On("Rollback").Return(nil).Once()

	err := runOnce(storage.NewWriter(tx, transactions, nil), nil, &actions.UpdateTransaction{
		UserID: uuid.Must(uuid.NewV4()),
		ID:     uuid.Must(uuid.NewV4()),
		Update: &sqlconfig.TransactionUpdate{},
	})

	assert.ErrorIs(t, err, sqlconfig.ErrNotFound)
	tx.AssertExpectations(t)
	tx.AssertNotCalled(t, "Commit")
}

func TestProcessItem_ReminderFailureRollsBackToSavepoint(t *testing.T) {
	tx := new(mockTx)
	transactions := sqlconfig.NewMockITransactionTable(t)
	reminders := sqlconfig.NewMockIReminderTable(t)
	txID := uuid.Must(uuid.NewV4())

	transactions.EXPECT().Insert(mock.Anything, mock.Anything).Return(txID, nil)
	reminders.EXPECT().Insert(mock.Anything, mock.Anything).Return(uuid.Nil, errors.New("foreign key violation"))
	tx.On("ExecContext", "SAVEPOINT reminder").Return(nil).Once()
	tx.On("ExecContext", "ROLLBACK TO SAVEPOINT reminder").Return(nil).Once()
	tx.On("Commit").Return(nil).Once()

	action := &actions.CreateTransaction{
		Create:   rentCreate(uuid.Must(uuid.NewV4())),
		Reminder: &actions.ReminderSettings{DaysBefore: 2},
	}
	err := runOnce(storage.NewWriter(tx, transactions, reminders), nil, action)

	require.NoError(t, err)
	assert.Equal(t, txID, action.ID)
	assert.EqualError(t, action.ReminderErr, "foreign key violation")
	tx.AssertExpectations(t)
}

func TestProcessItem_CommitErrorIsReturned(t *testing.T) {
	tx := new(mockTx)
	transactions := sqlconfig.NewMockITransactionTable(t)
	transactions.EXPECT().Delete(mock.Anything, mock.Anything, mock.Anything).Return(nil)
	tx.On("Commit").Return(errors.New("serialization failure")).Once()

	err := runOnce(storage.NewWriter(tx, transactions, nil), nil, &actions.DeleteTransaction{
		UserID: uuid.Must(uuid.NewV4()),
		ID:     uuid.Must(uuid.NewV4()),
	})

	assert.EqualError(t, err, "serialization failure")
}

func TestProcessItem_BeginErrorSkipsAction(t *testing.T) {
	transactions := sqlconfig.NewMockITransactionTable(t)

	err := runOnce(nil, errors.New("begin: too many connections"), &actions.DeleteTransaction{
		UserID: uuid.Must(uuid.NewV4()),
		ID:     uuid.Must(uuid.NewV4()),
	})

	assert.EqualError(t, err, "begin: too many connections")
	transactions.AssertNotCalled(t, "Delete")
}
