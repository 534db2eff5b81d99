package service

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/carson-networks/budget-tracker/internal/metrics"
	"github.com/carson-networks/budget-tracker/internal/operator/actions"
	"github.com/carson-networks/budget-tracker/internal/storage"
)

// ActionProcessor runs write actions; operator.OperatorDelegator is the production implementation.
type ActionProcessor interface {
	Process(ctx context.Context, action actions.IAction) error
}

type Options struct {
	// Location decides which calendar day "today" is.
	Location           *time.Location
	ReminderDaysBefore int
	MaxOccurrences     int
	Now                func() time.Time
}

type deps struct {
	storage  *storage.Storage
	operator ActionProcessor
	metrics  *metrics.Metrics
	logger   *logrus.Logger
	opts     Options
}

func (d *deps) today() time.Time {
	current := d.opts.Now()
	if d.opts.Location != nil {
		current = current.In(d.opts.Location)
	}
	return current
}

// Service holds all business logic services.
type Service struct {
	Transaction *TransactionService
	Summary     *SummaryService
	Reminder    *ReminderService
	Dashboard   *DashboardService
}

// NewService creates a new Service with the given storage.
func NewService(store *storage.Storage, op ActionProcessor, m *metrics.Metrics, logger *logrus.Logger, opts Options) *Service {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	d := &deps{
		storage:  store,
		operator: op,
		metrics:  m,
		logger:   logger,
		opts:     opts,
	}

	transactions := &TransactionService{deps: d}
	summary := &SummaryService{deps: d}
	reminders := &ReminderService{deps: d}
	return &Service{
		Transaction: transactions,
		Summary:     summary,
		Reminder:    reminders,
		Dashboard: &DashboardService{
			transactions: transactions,
			summary:      summary,
			reminders:    reminders,
		},
	}
}
