package service

import (
	"fmt"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/budget-tracker/internal/filter"
	"github.com/carson-networks/budget-tracker/internal/recurrence"
	"github.com/carson-networks/budget-tracker/internal/storage/sqlconfig"
)

const (
	maxDescriptionLength = 200
	amountScale          = 2
)

// maxAmount is the first value that no longer fits the NUMERIC(14,2) amount column.
var maxAmount = decimal.New(1, 12)

// Transaction represents a transaction in the service layer.
// RegularPeriod and the recurring dates are only set when IsRegular is true.
type Transaction struct {
	ID                 uuid.UUID
	Amount             decimal.Decimal
	Type               sqlconfig.TransactionType
	Category           string
	Description        string
	Date               time.Time
	IsRegular          bool
	RegularPeriod      sqlconfig.RegularPeriod
	RecurringStartDate *time.Time
	RecurringEndDate   *time.Time
	PaymentMethod      sqlconfig.PaymentMethod
	CreatedAt          time.Time
}

// Validate checks the record invariants shared by create, update and series templates.
func (t *Transaction) Validate() error {
	if !t.Amount.IsPositive() {
		return fmt.Errorf("%w: amount must be greater than zero", ErrValidation)
	}
	if !t.Amount.Equal(t.Amount.Truncate(amountScale)) {
		return fmt.Errorf("%w: amount has more than %d decimal places", ErrValidation, amountScale)
	}
	if t.Amount.GreaterThanOrEqual(maxAmount) {
		return fmt.Errorf("%w: amount must be less than %s", ErrValidation, maxAmount)
	}
	if !t.Type.Valid() {
		return fmt.Errorf("%w: unknown type %q", ErrValidation, t.Type)
	}
	if !validCategory(t.Type, t.Category) {
		return fmt.Errorf("%w: category %q is not a %s category", ErrValidation, t.Category, t.Type)
	}
	if len([]rune(t.Description)) > maxDescriptionLength {
		return fmt.Errorf("%w: description is longer than %d characters", ErrValidation, maxDescriptionLength)
	}
	if t.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrValidation)
	}
	if !t.PaymentMethod.Valid() {
		return fmt.Errorf("%w: unknown payment method %q", ErrValidation, t.PaymentMethod)
	}

	if !t.IsRegular {
		if t.RegularPeriod != "" || t.RecurringStartDate != nil || t.RecurringEndDate != nil {
			return fmt.Errorf("%w: one-time transactions cannot carry a period or recurring dates", ErrValidation)
		}
		return nil
	}

	if !t.RegularPeriod.Valid() {
		return fmt.Errorf("%w: regular transactions need a period, got %q", ErrValidation, t.RegularPeriod)
	}
	if t.RecurringStartDate == nil || t.RecurringEndDate == nil {
		return fmt.Errorf("%w: regular transactions need recurring start and end dates", ErrValidation)
	}
	if recurrence.Day(*t.RecurringStartDate).After(recurrence.Day(*t.RecurringEndDate)) {
		return fmt.Errorf("%w: recurring start date is after end date", ErrValidation)
	}
	return nil
}

func (t *Transaction) toCreate(userID uuid.UUID) *sqlconfig.TransactionCreate {
	return &sqlconfig.TransactionCreate{
		UserID:             userID,
		Amount:             t.Amount,
		Type:               t.Type,
		Category:           t.Category,
		Description:        t.Description,
		Date:               recurrence.Day(t.Date),
		IsRegular:          t.IsRegular,
		RegularPeriod:      periodPtr(t.RegularPeriod),
		RecurringStartDate: dayPtr(t.RecurringStartDate),
		RecurringEndDate:   dayPtr(t.RecurringEndDate),
		PaymentMethod:      t.PaymentMethod,
	}
}

func (t *Transaction) toUpdate() *sqlconfig.TransactionUpdate {
	return &sqlconfig.TransactionUpdate{
		Amount:             t.Amount,
		Type:               t.Type,
		Category:           t.Category,
		Description:        t.Description,
		Date:               recurrence.Day(t.Date),
		IsRegular:          t.IsRegular,
		RegularPeriod:      periodPtr(t.RegularPeriod),
		RecurringStartDate: dayPtr(t.RecurringStartDate),
		RecurringEndDate:   dayPtr(t.RecurringEndDate),
		PaymentMethod:      t.PaymentMethod,
	}
}

func fromStorage(row *sqlconfig.Transaction) Transaction {
	tx := Transaction{
		ID:                 row.ID,
		Amount:             row.Amount,
		Type:               row.Type,
		Category:           row.Category,
		Description:        row.Description,
		Date:               row.Date,
		IsRegular:          row.IsRegular,
		RecurringStartDate: row.RecurringStartDate,
		RecurringEndDate:   row.RecurringEndDate,
		PaymentMethod:      row.PaymentMethod,
		CreatedAt:          row.CreatedAt,
	}
	if row.RegularPeriod != nil {
		tx.RegularPeriod = *row.RegularPeriod
	}
	return tx
}

// ReminderRequest asks for a reminder per created transaction. A nil
// DaysBefore uses the configured default.
type ReminderRequest struct {
	DaysBefore   *int
	PushEnabled  bool
	EmailEnabled bool
}

// SeriesRequest describes a recurring series. The template's date and
// regular fields are replaced per occurrence.
type SeriesRequest struct {
	Template  Transaction
	Period    sqlconfig.RegularPeriod
	StartDate time.Time
	EndDate   time.Time
	Reminder  *ReminderRequest
}

// SeriesResult lists what a series run persisted, in date order.
type SeriesResult struct {
	IDs              []uuid.UUID
	Dates            []time.Time
	Total            int
	ReminderFailures int
	FailedDate       *time.Time
}

// ListRequest selects one page of transactions.
type ListRequest struct {
	Selection filter.Selection
	Type      sqlconfig.TransactionType
	Search    string
	SortBy    sqlconfig.SortField
	SortOrder sqlconfig.SortOrder
	Page      int
	PageSize  int
}

type TransactionPage struct {
	Transactions []Transaction
	Page         int
	PageSize     int
	HasMore      bool
}

func periodPtr(p sqlconfig.RegularPeriod) *sqlconfig.RegularPeriod {
	if p == "" {
		return nil
	}
	return &p
}

func dayPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	day := recurrence.Day(*t)
	return &day
}
