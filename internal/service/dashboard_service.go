package service

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/carson-networks/budget-tracker/internal/filter"
	"github.com/carson-networks/budget-tracker/internal/storage/sqlconfig"
)

const dashboardRecentCount = 5

type Dashboard struct {
	Summary            *Summary
	RecentTransactions []Transaction
	UpcomingReminders  []Reminder
}

type DashboardService struct {
	transactions *TransactionService
	summary      *SummaryService
	reminders    *ReminderService
}

// GetDashboard loads this month's summary, the latest transactions and the
// week's reminders concurrently. Any failure fails the whole call.
func (s *DashboardService) GetDashboard(ctx context.Context) (*Dashboard, error) {
	dashboard := &Dashboard{}
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		summary, err := s.summary.GetSummary(gctx, filter.Default())
		if err != nil {
			return err
		}
		dashboard.Summary = summary
		return nil
	})

	g.Go(func() error {
		page, err := s.transactions.ListTransactions(gctx, ListRequest{
			Selection: filter.Default().WithDate(filter.DateRange{Mode: filter.DateAll}),
			SortBy:    sqlconfig.SortByDate,
			SortOrder: sqlconfig.SortDesc,
			Page:      1,
			PageSize:  dashboardRecentCount,
		})
		if err != nil {
			return err
		}
		dashboard.RecentTransactions = page.Transactions
		return nil
	})

	g.Go(func() error {
		reminders, err := s.reminders.UpcomingReminders(gctx, DefaultUpcomingDays)
		if err != nil {
			return err
		}
		dashboard.UpcomingReminders = reminders
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return dashboard, nil
}
