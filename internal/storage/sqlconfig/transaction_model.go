package sqlconfig

import (
	"context"
	"errors"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
)

// ErrNotFound is returned when a row does not exist or belongs to another user.
var ErrNotFound = errors.New("record not found")

// Transaction represents a transaction record.
type Transaction struct {
	ID                 uuid.UUID       `db:"id"`
	UserID             uuid.UUID       `db:"user_id"`
	Amount             decimal.Decimal `db:"amount"`
	Type               TransactionType `db:"type"`
	Category           string          `db:"category"`
	Description        string          `db:"description"`
	Date               time.Time       `db:"date"`
	IsRegular          bool            `db:"is_regular"`
	RegularPeriod      *RegularPeriod  `db:"regular_period"`
	RecurringStartDate *time.Time      `db:"recurring_start_date"`
	RecurringEndDate   *time.Time      `db:"recurring_end_date"`
	PaymentMethod      PaymentMethod   `db:"payment_method"`
	CreatedAt          time.Time       `db:"created_at"`
}

// TransactionCreate is the input for creating a new transaction.
type TransactionCreate struct {
	UserID             uuid.UUID
	Amount             decimal.Decimal
	Type               TransactionType
	Category           string
	Description        string
	Date               time.Time
	IsRegular          bool
	RegularPeriod      *RegularPeriod
	RecurringStartDate *time.Time
	RecurringEndDate   *time.Time
	PaymentMethod      PaymentMethod
}

// TransactionUpdate overwrites every mutable column of a transaction.
type TransactionUpdate struct {
	Amount             decimal.Decimal
	Type               TransactionType
	Category           string
	Description        string
	Date               time.Time
	IsRegular          bool
	RegularPeriod      *RegularPeriod
	RecurringStartDate *time.Time
	RecurringEndDate   *time.Time
	PaymentMethod      PaymentMethod
}

// TransactionFilter specifies filters for listing and aggregating transactions.
// UserID is mandatory; every other nil or empty field places no restriction.
// Dates are inclusive calendar days.
type TransactionFilter struct {
	UserID        uuid.UUID
	StartDate     *time.Time
	EndDate       *time.Time
	Type          *TransactionType
	Categories    []string
	IsRegular     *bool
	RegularPeriod *RegularPeriod
	Search        string
	SortBy        SortField
	SortOrder     SortOrder
	Limit         int
	Offset        int
}

// TransactionTotal is one group of the server-side aggregation.
type TransactionTotal struct {
	Type          TransactionType `db:"type"`
	IsRegular     bool            `db:"is_regular"`
	RegularPeriod *RegularPeriod  `db:"regular_period"`
	Category      string          `db:"category"`
	Total         decimal.Decimal `db:"total"`
	Count         int64           `db:"count"`
}

// ITransactionTable defines the interface for transaction storage operations.
// List fetches up to Limit+1 rows so callers can tell whether another page exists.
//
//go:generate mockery --name ITransactionTable --output mock_ITransactionTable.go
type ITransactionTable interface {
	FindByID(ctx context.Context, userID, id uuid.UUID) (*Transaction, error)
	Insert(ctx context.Context, create *TransactionCreate) (uuid.UUID, error)
	List(ctx context.Context, filter *TransactionFilter) ([]*Transaction, error)
	Aggregate(ctx context.Context, filter *TransactionFilter) ([]*TransactionTotal, error)
	Update(ctx context.Context, userID, id uuid.UUID, update *TransactionUpdate) error
	Delete(ctx context.Context, userID, id uuid.UUID) error
}
