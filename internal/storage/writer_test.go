package storage

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/stephenafamo/scan"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/budget-tracker/internal/storage/sqlconfig"
)

type mockTx struct {
	mock.Mock
}

func (m *mockTx) QueryContext(_ context.Context, query string, _ ...any) (scan.Rows, error) {
	args := m.Called(query)
	return nil, args.Error(0)
}

func (m *mockTx) ExecContext(_ context.Context, query string, _ ...any) (sql.Result, error) {
	args := m.Called(query)
	return nil, args.Error(0)
}

func (m *mockTx) Commit(context.Context) error {
	return m.Called().Error(0)
}

func (m *mockTx) Rollback(context.Context) error {
	return m.Called().Error(0)
}

func TestWriter_SavepointReleasedOnSuccess(t *testing.T) {
	tx := new(mockTx)
	tx.On("ExecContext", "SAVEPOINT reminder").Return(nil).Once()
	tx.On("ExecContext", "RELEASE SAVEPOINT reminder").Return(nil).Once()
	w := NewWriter(tx, nil, nil)

	ran := false
	err := w.Savepoint(context.Background(), "reminder", func() error {
		ran = true
		return nil
	})

	require.NoError(t, err)
	assert.True(t, ran)
	tx.AssertExpectations(t)
}

func TestWriter_SavepointRolledBackOnFailure(t *testing.T) {
	tx := new(mockTx)
	tx.On("ExecContext", "SAVEPOINT reminder").Return(nil).Once()
	tx.On("ExecContext", "ROLLBACK TO SAVEPOINT reminder").Return(nil).Once()
	w := NewWriter(tx, nil, nil)

	err := w.Savepoint(context.Background(), "reminder", func() error {
		return errors.New("foreign key violation")
	})

	assert.EqualError(t, err, "foreign key violation")
	tx.AssertExpectations(t)
	tx.AssertNotCalled(t, "ExecContext", "RELEASE SAVEPOINT reminder")
}

func TestWriter_SavepointRollbackFailureIsReported(t *testing.T) {
	insertErr := errors.New("foreign key violation")
	rollbackErr := errors.New("connection reset")
	tx := new(mockTx)
	tx.On("ExecContext", "SAVEPOINT reminder").Return(nil).Once()
	tx.On("ExecContext", "ROLLBACK TO SAVEPOINT reminder").Return(rollbackErr).Once()
	w := NewWriter(tx, nil, nil)

	err := w.Savepoint(context.Background(), "reminder", func() error { return insertErr })

	assert.ErrorIs(t, err, insertErr)
	assert.ErrorIs(t, err, rollbackErr)
}

func TestWriter_CommitAndRollbackReachTransaction(t *testing.T) {
	tx := new(mockTx)
	tx.On("Commit").Return(nil).Once()
	tx.On("Rollback").Return(sql.ErrTxDone).Once()
	w := NewWriter(tx, nil, nil)

	assert.NoError(t, w.Commit(context.Background()))
	assert.ErrorIs(t, w.Rollback(context.Background()), sql.ErrTxDone)
	tx.AssertExpectations(t)
}

func TestStorage_WriteOnMemoryBackend(t *testing.T) {
	store := NewMemoryStorage()

	w, err := store.Write(context.Background())

	require.NoError(t, err)
	assert.Same(t, store.Transactions, w.Transactions)
	assert.Same(t, store.Reminders, w.Reminders)
	assert.NoError(t, w.Commit(context.Background()))
	assert.NoError(t, w.Rollback(context.Background()))

	failed := errors.New("boom")
	assert.Equal(t, failed, w.Savepoint(context.Background(), "reminder", func() error { return failed }))
}

func TestStorage_WriteUsesTablesWithoutDB(t *testing.T) {
	transactions := sqlconfig.NewMockITransactionTable(t)
	store := &Storage{Transactions: transactions}

	w, err := store.Write(context.Background())

	require.NoError(t, err)
	assert.Same(t, transactions, w.Transactions)
}
