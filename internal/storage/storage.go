package storage

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
	"github.com/stephenafamo/bob"

	"github.com/carson-networks/budget-tracker/internal/config"
	"github.com/carson-networks/budget-tracker/internal/storage/memstore"
	"github.com/carson-networks/budget-tracker/internal/storage/sqlconfig"
)

type Storage struct {
	DB           *sql.DB
	Transactions sqlconfig.ITransactionTable
	Reminders    sqlconfig.IReminderTable
}

// NewStorage opens the backend selected by STORAGE_BACKEND.
func NewStorage(env *config.Config) (*Storage, error) {
	if env.StorageBackend == config.StorageBackendMemory {
		return NewMemoryStorage(), nil
	}
	return NewPostgresStorage(env)
}

func NewPostgresStorage(env *config.Config) (*Storage, error) {
	db, err := sql.Open("postgres", env.PostgresConnectionString())
	if err != nil {
		return nil, fmt.Errorf("sql.Open: %w", err)
	}

	return &Storage{
		DB:           db,
		Transactions: sqlconfig.NewTransactionsTable(bob.NewDB(db)),
		Reminders:    sqlconfig.NewRemindersTable(bob.NewDB(db)),
	}, nil
}

func NewMemoryStorage() *Storage {
	transactions := memstore.NewTransactionsTable()
	return &Storage{
		Transactions: transactions,
		Reminders:    memstore.NewRemindersTable(transactions),
	}
}

func (s *Storage) Close() error {
	if s.DB == nil {
		return nil
	}
	return s.DB.Close()
}

// Write opens a Writer for one action. Postgres writes share one transaction
// that the caller must Commit or Rollback.
func (s *Storage) Write(ctx context.Context) (*Writer, error) {
	if s.DB == nil {
		return NewWriter(nil, s.Transactions, s.Reminders), nil
	}

	tx, err := bob.NewDB(s.DB).BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin: %w", err)
	}
	return NewWriter(tx, sqlconfig.NewTransactionsTable(tx), sqlconfig.NewRemindersTable(tx)), nil
}
