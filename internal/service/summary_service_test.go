package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/budget-tracker/internal/auth"
	"github.com/carson-networks/budget-tracker/internal/filter"
	"github.com/carson-networks/budget-tracker/internal/storage/sqlconfig"
)

func seedJanuary(t *testing.T, svc *Service, ctx context.Context) {
	t.Helper()

	salary := Transaction{
		Amount:        decimal.RequireFromString("1000"),
		Type:          sqlconfig.TransactionTypeIncome,
		Category:      "salary",
		Date:          day(2024, 1, 5),
		PaymentMethod: sqlconfig.PaymentMethodBank,
	}
	_, err := svc.Transaction.CreateTransaction(ctx, salary, nil)
	require.NoError(t, err)

	_, err = svc.Transaction.CreateRecurring(ctx, SeriesRequest{
		Template: Transaction{
			Amount:        decimal.RequireFromString("200"),
			Type:          sqlconfig.TransactionTypeExpense,
			Category:      "rent",
			PaymentMethod: sqlconfig.PaymentMethodBank,
		},
		Period:    sqlconfig.RegularPeriodMonthly,
		StartDate: day(2024, 1, 1),
		EndDate:   day(2024, 3, 1),
	})
	require.NoError(t, err)

	groceries := Transaction{
		Amount:        decimal.RequireFromString("50"),
		Type:          sqlconfig.TransactionTypeExpense,
		Category:      "grocery",
		Date:          day(2024, 1, 20),
		PaymentMethod: sqlconfig.PaymentMethodCash,
	}
	_, err = svc.Transaction.CreateTransaction(ctx, groceries, nil)
	require.NoError(t, err)
}

func TestGetSummary_January(t *testing.T) {
	svc, _ := newMemoryService(t)
	ctx, _ := userContext()
	seedJanuary(t, svc, ctx)

	summary, err := svc.Summary.GetSummary(ctx, filter.Default())

	require.NoError(t, err)
	assert.Equal(t, "1000", summary.TotalIncome.String())
	assert.Equal(t, "250", summary.TotalExpenses.String())
	assert.Equal(t, "200", summary.RegularExpenses.String())
	assert.Equal(t, "750", summary.TotalBalance.String())
	assert.Equal(t, int64(3), summary.TransactionCount)
	assert.Equal(t, "200", summary.RegularExpensesByPeriod[sqlconfig.RegularPeriodMonthly].String())

	require.Len(t, summary.ByCategory, 3)
	assert.Equal(t, "salary", summary.ByCategory[0].Category)
	assert.Equal(t, "rent", summary.ByCategory[1].Category)
	assert.Equal(t, "grocery", summary.ByCategory[2].Category)
}

func TestGetSummary_RegularOnly(t *testing.T) {
	svc, _ := newMemoryService(t)
	ctx, _ := userContext()
	seedJanuary(t, svc, ctx)

	selection := filter.Default().
		WithDate(filter.DateRange{Mode: filter.DateAll}).
		WithRegularity(filter.Regularity{Mode: filter.RegularityRegular})

	summary, err := svc.Summary.GetSummary(ctx, selection)

	require.NoError(t, err)
	assert.True(t, summary.TotalIncome.IsZero())
	assert.Equal(t, "600", summary.TotalExpenses.String())
	assert.Equal(t, "600", summary.RegularExpenses.String())
	assert.Equal(t, "-600", summary.TotalBalance.String())
}

func TestGetSummary_CategoryRestriction(t *testing.T) {
	svc, _ := newMemoryService(t)
	ctx, _ := userContext()
	seedJanuary(t, svc, ctx)

	summary, err := svc.Summary.GetSummary(ctx, filter.Default().WithCategories([]string{"grocery"}))

	require.NoError(t, err)
	assert.Equal(t, "50", summary.TotalExpenses.String())
	assert.True(t, summary.RegularExpenses.IsZero())
	assert.Equal(t, "-50", summary.TotalBalance.String())
}

func TestGetSummary_EmptyCategoriesMatchNoRestriction(t *testing.T) {
	svc, _ := newMemoryService(t)
	ctx, _ := userContext()
	seedJanuary(t, svc, ctx)

	unrestricted, err := svc.Summary.GetSummary(ctx, filter.Default().WithCategories(nil))
	require.NoError(t, err)
	empty, err := svc.Summary.GetSummary(ctx, filter.Default().WithCategories([]string{}))
	require.NoError(t, err)

	assert.Equal(t, "750", unrestricted.TotalBalance.String())
	assert.Equal(t, unrestricted.TotalIncome.String(), empty.TotalIncome.String())
	assert.Equal(t, unrestricted.TotalExpenses.String(), empty.TotalExpenses.String())
	assert.Equal(t, unrestricted.RegularExpenses.String(), empty.RegularExpenses.String())
	assert.Equal(t, unrestricted.TotalBalance.String(), empty.TotalBalance.String())
	assert.Equal(t, unrestricted.TransactionCount, empty.TransactionCount)
}

func TestGetSummary_Empty(t *testing.T) {
	svc, transactions, _ := newMockService(t)
	ctx, _ := userContext()

	transactions.EXPECT().Aggregate(mock.Anything, mock.Anything).Return(nil, nil)

	summary, err := svc.Summary.GetSummary(ctx, filter.Default())

	require.NoError(t, err)
	assert.True(t, summary.TotalIncome.IsZero())
	assert.True(t, summary.TotalBalance.IsZero())
	assert.Empty(t, summary.ByCategory)
}

func TestGetSummary_StorageError(t *testing.T) {
	svc, transactions, _ := newMockService(t)
	ctx, _ := userContext()

	transactions.EXPECT().Aggregate(mock.Anything, mock.Anything).Return(nil, errors.New("timeout"))

	_, err := svc.Summary.GetSummary(ctx, filter.Default())

	assert.EqualError(t, err, "timeout")
}

func TestGetSummary_Unauthenticated(t *testing.T) {
	svc, _, _ := newMockService(t)

	_, err := svc.Summary.GetSummary(context.Background(), filter.Default())

	assert.ErrorIs(t, err, auth.ErrUnauthenticated)
}

func TestGetMonthSummary(t *testing.T) {
	svc, _ := newMemoryService(t)
	ctx, _ := userContext()
	seedJanuary(t, svc, ctx)

	summary, err := svc.Summary.GetMonthSummary(ctx, 2024, time.February)

	require.NoError(t, err)
	assert.Equal(t, "200", summary.TotalExpenses.String())
	assert.Equal(t, int64(1), summary.TransactionCount)

	_, err = svc.Summary.GetMonthSummary(ctx, 2024, 13)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestSummarize_DecimalPrecision(t *testing.T) {
	monthly := sqlconfig.RegularPeriodMonthly
	rows := []*sqlconfig.TransactionTotal{
		{Type: sqlconfig.TransactionTypeIncome, Category: "salary", Total: decimal.RequireFromString("0.1"), Count: 1},
		{Type: sqlconfig.TransactionTypeIncome, Category: "gifts", Total: decimal.RequireFromString("0.2"), Count: 1},
		{Type: sqlconfig.TransactionTypeExpense, Category: "phone", IsRegular: true, RegularPeriod: &monthly, Total: decimal.RequireFromString("0.3"), Count: 1},
	}

	summary := summarize(rows)

	assert.Equal(t, "0.3", summary.TotalIncome.String())
	assert.True(t, summary.TotalBalance.IsZero())
	assert.Equal(t, "0.3", summary.RegularExpenses.String())
}

// -- Reminder and dashboard tests --

func TestUpcomingReminders(t *testing.T) {
	svc, _ := newMemoryService(t)
	ctx, _ := userContext()
	days := 2

	_, err := svc.Transaction.CreateRecurring(ctx, SeriesRequest{
		Template:  rent(),
		Period:    sqlconfig.RegularPeriodWeekly,
		StartDate: day(2024, 1, 10),
		EndDate:   day(2024, 2, 10),
		Reminder:  &ReminderRequest{DaysBefore: &days, PushEnabled: true},
	})
	require.NoError(t, err)

	reminders, err := svc.Reminder.UpcomingReminders(ctx, DefaultUpcomingDays)

	require.NoError(t, err)
	require.Len(t, reminders, 2)
	assert.Equal(t, day(2024, 1, 15), reminders[0].ReminderDate)
	assert.Equal(t, day(2024, 1, 17), reminders[0].TransactionDate)
	assert.Equal(t, day(2024, 1, 22), reminders[1].ReminderDate)
	assert.Equal(t, "rent", reminders[0].Category)
	assert.False(t, reminders[0].Notified)

	_, err = svc.Reminder.UpcomingReminders(ctx, 400)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestGetDashboard(t *testing.T) {
	svc, _ := newMemoryService(t)
	ctx, _ := userContext()
	seedJanuary(t, svc, ctx)

	dashboard, err := svc.Dashboard.GetDashboard(ctx)

	require.NoError(t, err)
	assert.Equal(t, "750", dashboard.Summary.TotalBalance.String())
	require.Len(t, dashboard.RecentTransactions, 5)
	assert.Equal(t, day(2024, 3, 1), dashboard.RecentTransactions[0].Date)
	assert.Empty(t, dashboard.UpcomingReminders)
}

func TestGetDashboard_FailsWhenAnyPartFails(t *testing.T) {
	svc, transactions, reminders := newMockService(t)
	ctx, _ := userContext()

	transactions.EXPECT().Aggregate(mock.Anything, mock.Anything).Return(nil, nil).Maybe()
	transactions.EXPECT().List(mock.Anything, mock.Anything).Return(nil, errors.New("timeout")).Maybe()
	reminders.EXPECT().ListUpcoming(mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil, nil).Maybe()

	dashboard, err := svc.Dashboard.GetDashboard(ctx)

	assert.EqualError(t, err, "timeout")
	assert.Nil(t, dashboard)
}
