package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/carson-networks/budget-tracker/internal/auth"
	"github.com/carson-networks/budget-tracker/internal/filter"
	"github.com/carson-networks/budget-tracker/internal/storage/sqlconfig"
)

// Summary aggregates the transactions matched by a filter selection.
// TotalBalance is always TotalIncome minus TotalExpenses.
type Summary struct {
	TotalIncome             decimal.Decimal
	TotalExpenses           decimal.Decimal
	RegularExpenses         decimal.Decimal
	TotalBalance            decimal.Decimal
	RegularExpensesByPeriod map[sqlconfig.RegularPeriod]decimal.Decimal
	ByCategory              []CategoryTotal
	TransactionCount        int64
}

type CategoryTotal struct {
	Type     sqlconfig.TransactionType
	Category string
	Amount   decimal.Decimal
	Count    int64
}

type SummaryService struct {
	*deps
}

// GetSummary totals the caller's transactions matching selection.
func (s *SummaryService) GetSummary(ctx context.Context, selection filter.Selection) (*Summary, error) {
	userID, err := auth.UserID(ctx)
	if err != nil {
		return nil, err
	}
	if err := validateCategories(selection.Categories()); err != nil {
		return nil, err
	}

	rows, err := s.storage.Transactions.Aggregate(ctx, selection.Filter(userID, s.today()))
	if err != nil {
		return nil, err
	}
	return summarize(rows), nil
}

// GetMonthSummary totals every transaction dated in the given calendar month.
func (s *SummaryService) GetMonthSummary(ctx context.Context, year int, month time.Month) (*Summary, error) {
	if month < time.January || month > time.December {
		return nil, fmt.Errorf("%w: month must be between 1 and 12", ErrValidation)
	}
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, -1)

	selection, err := filter.New(
		filter.DateRange{Mode: filter.DateCustom, Start: start, End: end},
		filter.Regularity{Mode: filter.RegularityAll},
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrValidation, err)
	}
	return s.GetSummary(ctx, selection)
}

func summarize(rows []*sqlconfig.TransactionTotal) *Summary {
	summary := &Summary{
		TotalIncome:             decimal.Zero,
		TotalExpenses:           decimal.Zero,
		RegularExpenses:         decimal.Zero,
		RegularExpensesByPeriod: make(map[sqlconfig.RegularPeriod]decimal.Decimal),
	}

	type categoryKey struct {
		txType   sqlconfig.TransactionType
		category string
	}
	categories := make(map[categoryKey]*CategoryTotal)

	for _, row := range rows {
		summary.TransactionCount += row.Count

		switch row.Type {
		case sqlconfig.TransactionTypeIncome:
			summary.TotalIncome = summary.TotalIncome.Add(row.Total)
		case sqlconfig.TransactionTypeExpense:
			summary.TotalExpenses = summary.TotalExpenses.Add(row.Total)
			if row.IsRegular {
				summary.RegularExpenses = summary.RegularExpenses.Add(row.Total)
				if row.RegularPeriod != nil {
					period := *row.RegularPeriod
					summary.RegularExpensesByPeriod[period] = summary.RegularExpensesByPeriod[period].Add(row.Total)
				}
			}
		default:
			continue
		}

		key := categoryKey{txType: row.Type, category: row.Category}
		total, ok := categories[key]
		if !ok {
			total = &CategoryTotal{Type: row.Type, Category: row.Category, Amount: decimal.Zero}
			categories[key] = total
		}
		total.Amount = total.Amount.Add(row.Total)
		total.Count += row.Count
	}

	summary.TotalBalance = summary.TotalIncome.Sub(summary.TotalExpenses)

	summary.ByCategory = make([]CategoryTotal, 0, len(categories))
	for _, total := range categories {
		summary.ByCategory = append(summary.ByCategory, *total)
	}
	sort.Slice(summary.ByCategory, func(i, j int) bool {
		a, b := summary.ByCategory[i], summary.ByCategory[j]
		if c := a.Amount.Cmp(b.Amount); c != 0 {
			return c > 0
		}
		if a.Type != b.Type {
			return a.Type < b.Type
		}
		return a.Category < b.Category
	})

	return summary
}
