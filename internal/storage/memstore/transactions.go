// Package memstore keeps transactions and reminders in process memory.
// It honours the same contracts as the Postgres tables and backs local runs
// and end-to-end tests.
package memstore

import (
	"context"
	"slices"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/budget-tracker/internal/storage/sqlconfig"
)

var _ sqlconfig.ITransactionTable = (*TransactionsTable)(nil)

type TransactionsTable struct {
	mu    sync.RWMutex
	rows  map[uuid.UUID]*sqlconfig.Transaction
	order []uuid.UUID
	now   func() time.Time

	// onDelete lets the reminder table drop rows pointing at a deleted transaction.
	onDelete func(id uuid.UUID)
}

func NewTransactionsTable() *TransactionsTable {
	return &TransactionsTable{
		rows: make(map[uuid.UUID]*sqlconfig.Transaction),
		now:  time.Now,
	}
}

func (t *TransactionsTable) FindByID(_ context.Context, userID, id uuid.UUID) (*sqlconfig.Transaction, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	row, ok := t.rows[id]
	if !ok || row.UserID != userID {
		return nil, sqlconfig.ErrNotFound
	}
	clone := *row
	return &clone, nil
}

func (t *TransactionsTable) Insert(_ context.Context, create *sqlconfig.TransactionCreate) (uuid.UUID, error) {
	id, err := uuid.NewV4()
	if err != nil {
		return uuid.Nil, err
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	t.rows[id] = &sqlconfig.Transaction{
		ID:                 id,
		UserID:             create.UserID,
		Amount:             create.Amount,
		Type:               create.Type,
		Category:           create.Category,
		Description:        create.Description,
		Date:               truncateDay(create.Date),
		IsRegular:          create.IsRegular,
		RegularPeriod:      create.RegularPeriod,
		RecurringStartDate: truncateDayPtr(create.RecurringStartDate),
		RecurringEndDate:   truncateDayPtr(create.RecurringEndDate),
		PaymentMethod:      create.PaymentMethod,
		CreatedAt:          t.now(),
	}
	t.order = append(t.order, id)
	return id, nil
}

func (t *TransactionsTable) List(_ context.Context, filter *sqlconfig.TransactionFilter) ([]*sqlconfig.Transaction, error) {
	matched := t.matching(filter)
	sortTransactions(matched, filter.SortBy, filter.SortOrder)

	if filter.Offset > 0 {
		if filter.Offset >= len(matched) {
			return []*sqlconfig.Transaction{}, nil
		}
		matched = matched[filter.Offset:]
	}
	if filter.Limit > 0 && len(matched) > filter.Limit+1 {
		matched = matched[:filter.Limit+1]
	}
	return matched, nil
}

type totalKey struct {
	txType    sqlconfig.TransactionType
	isRegular bool
	period    sqlconfig.RegularPeriod
	category  string
}

func (t *TransactionsTable) Aggregate(_ context.Context, filter *sqlconfig.TransactionFilter) ([]*sqlconfig.TransactionTotal, error) {
	groups := make(map[totalKey]*sqlconfig.TransactionTotal)
	var keys []totalKey

	for _, row := range t.matching(filter) {
		key := totalKey{txType: row.Type, isRegular: row.IsRegular, category: row.Category}
		if row.RegularPeriod != nil {
			key.period = *row.RegularPeriod
		}
		total, ok := groups[key]
		if !ok {
			total = &sqlconfig.TransactionTotal{
				Type:          row.Type,
				IsRegular:     row.IsRegular,
				RegularPeriod: row.RegularPeriod,
				Category:      row.Category,
				Total:         decimal.Zero,
			}
			groups[key] = total
			keys = append(keys, key)
		}
		total.Total = total.Total.Add(row.Amount)
		total.Count++
	}

	result := make([]*sqlconfig.TransactionTotal, len(keys))
	for i, key := range keys {
		result[i] = groups[key]
	}
	return result, nil
}

func (t *TransactionsTable) Update(_ context.Context, userID, id uuid.UUID, update *sqlconfig.TransactionUpdate) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	row, ok := t.rows[id]
	if !ok || row.UserID != userID {
		return sqlconfig.ErrNotFound
	}
	row.Amount = update.Amount
	row.Type = update.Type
	row.Category = update.Category
	row.Description = update.Description
	row.Date = truncateDay(update.Date)
	row.IsRegular = update.IsRegular
	row.RegularPeriod = update.RegularPeriod
	row.RecurringStartDate = truncateDayPtr(update.RecurringStartDate)
	row.RecurringEndDate = truncateDayPtr(update.RecurringEndDate)
	row.PaymentMethod = update.PaymentMethod
	return nil
}

func (t *TransactionsTable) Delete(_ context.Context, userID, id uuid.UUID) error {
	t.mu.Lock()
	row, ok := t.rows[id]
	if !ok || row.UserID != userID {
		t.mu.Unlock()
		return sqlconfig.ErrNotFound
	}
	delete(t.rows, id)
	for i, existing := range t.order {
		if existing == id {
			t.order = append(t.order[:i], t.order[i+1:]...)
			break
		}
	}
	onDelete := t.onDelete
	t.mu.Unlock()

	if onDelete != nil {
		onDelete(id)
	}
	return nil
}

func (t *TransactionsTable) find(id uuid.UUID) (sqlconfig.Transaction, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	row, ok := t.rows[id]
	if !ok {
		return sqlconfig.Transaction{}, false
	}
	return *row, true
}

func (t *TransactionsTable) matching(filter *sqlconfig.TransactionFilter) []*sqlconfig.Transaction {
	t.mu.RLock()
	defer t.mu.RUnlock()

	var matched []*sqlconfig.Transaction
	for _, id := range t.order {
		row := t.rows[id]
		if matches(filter, row) {
			clone := *row
			matched = append(matched, &clone)
		}
	}
	return matched
}

func matches(filter *sqlconfig.TransactionFilter, row *sqlconfig.Transaction) bool {
	if row.UserID != filter.UserID {
		return false
	}
	if filter.StartDate != nil && row.Date.Before(truncateDay(*filter.StartDate)) {
		return false
	}
	if filter.EndDate != nil && row.Date.After(truncateDay(*filter.EndDate)) {
		return false
	}
	if filter.Type != nil && row.Type != *filter.Type {
		return false
	}
	if len(filter.Categories) > 0 && !slices.Contains(filter.Categories, row.Category) {
		return false
	}
	if filter.IsRegular != nil && row.IsRegular != *filter.IsRegular {
		return false
	}
	if filter.RegularPeriod != nil && (row.RegularPeriod == nil || *row.RegularPeriod != *filter.RegularPeriod) {
		return false
	}
	if filter.Search != "" && !strings.Contains(strings.ToLower(row.Category), strings.ToLower(filter.Search)) {
		return false
	}
	return true
}

func sortTransactions(rows []*sqlconfig.Transaction, by sqlconfig.SortField, order sqlconfig.SortOrder) {
	compare := func(a, b *sqlconfig.Transaction) int {
		var c int
		switch by {
		case sqlconfig.SortByAmount:
			c = a.Amount.Cmp(b.Amount)
		case sqlconfig.SortByCreatedAt:
			c = a.CreatedAt.Compare(b.CreatedAt)
		default:
			c = a.Date.Compare(b.Date)
		}
		if c == 0 {
			c = a.CreatedAt.Compare(b.CreatedAt)
		}
		if c == 0 {
			c = strings.Compare(a.ID.String(), b.ID.String())
		}
		return c
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if order == sqlconfig.SortAsc {
			return compare(rows[i], rows[j]) < 0
		}
		return compare(rows[i], rows[j]) > 0
	})
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func truncateDayPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	day := truncateDay(*t)
	return &day
}
