package service

import (
	"context"
	"fmt"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/gofrs/uuid/v5"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/budget-tracker/internal/auth"
	"github.com/carson-networks/budget-tracker/internal/operator/actions"
	"github.com/carson-networks/budget-tracker/internal/recurrence"
	"github.com/carson-networks/budget-tracker/internal/storage/sqlconfig"
)

const (
	defaultPageSize      = 10
	maxPageSize          = 100
	maxReminderDaysAhead = 365
)

// TransactionService handles transaction business logic.
type TransactionService struct {
	*deps
}

// CreateTransaction validates and stores a single transaction, plus its reminder when requested.
func (s *TransactionService) CreateTransaction(ctx context.Context, tx Transaction, reminder *ReminderRequest) (uuid.UUID, error) {
	userID, err := auth.UserID(ctx)
	if err != nil {
		return uuid.Nil, err
	}
	if err := tx.Validate(); err != nil {
		return uuid.Nil, err
	}
	settings, err := s.reminderSettings(reminder)
	if err != nil {
		return uuid.Nil, err
	}

	action := &actions.CreateTransaction{
		Create:   tx.toCreate(userID),
		Reminder: settings,
	}
	if err := s.operator.Process(ctx, action); err != nil {
		return uuid.Nil, err
	}
	s.metrics.TransactionsCreated.WithLabelValues(string(tx.Type)).Inc()
	s.recordReminder(action)

	return action.ID, nil
}

// CreateRecurring expands a series and stores each occurrence in date order, one at a time.
// The run is not atomic: when an occurrence fails, the earlier ones stay stored, the
// returned result lists them, and the error wraps ErrPartialSeries.
func (s *TransactionService) CreateRecurring(ctx context.Context, req SeriesRequest) (*SeriesResult, error) {
	userID, err := auth.UserID(ctx)
	if err != nil {
		return nil, err
	}

	expander, err := recurrence.NewExpander(recurrence.Period(req.Period), req.StartDate, req.EndDate, s.opts.MaxOccurrences)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrValidation, err)
	}

	start, end := recurrence.Day(req.StartDate), recurrence.Day(req.EndDate)
	template := req.Template
	template.Date = start
	template.IsRegular = true
	template.RegularPeriod = req.Period
	template.RecurringStartDate = &start
	template.RecurringEndDate = &end
	if err := template.Validate(); err != nil {
		return nil, err
	}
	settings, err := s.reminderSettings(req.Reminder)
	if err != nil {
		return nil, err
	}

	// Once started, the series runs to completion even if the caller goes away.
	ctx = context.WithoutCancel(ctx)

	result := &SeriesResult{Total: expander.Len()}
	for date := range expander.All() {
		occurrence := template
		occurrence.Date = date

		action := &actions.CreateTransaction{
			Create:   occurrence.toCreate(userID),
			Reminder: settings,
		}
		if err := s.operator.Process(ctx, action); err != nil {
			s.metrics.SeriesOccurrences.WithLabelValues("failed").Inc()
			failed := date
			result.FailedDate = &failed
			s.logger.WithError(err).WithFields(logrus.Fields{
				"created": len(result.IDs),
				"total":   result.Total,
				"date":    date.Format(time.DateOnly),
			}).Error("TransactionService.CreateRecurring.occurrence")
			return result, fmt.Errorf("%w: created %d of %d occurrences, failed on %s: %w",
				ErrPartialSeries, len(result.IDs), result.Total, date.Format(time.DateOnly), err)
		}

		s.metrics.SeriesOccurrences.WithLabelValues("created").Inc()
		s.metrics.TransactionsCreated.WithLabelValues(string(template.Type)).Inc()
		if !s.recordReminder(action) {
			result.ReminderFailures++
		}
		result.IDs = append(result.IDs, action.ID)
		result.Dates = append(result.Dates, date)
	}

	return result, nil
}

// PreviewRecurring returns the dates a series would be created on.
func (s *TransactionService) PreviewRecurring(period sqlconfig.RegularPeriod, start, end time.Time) ([]time.Time, error) {
	dates, err := recurrence.Dates(recurrence.Period(period), start, end, s.opts.MaxOccurrences)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrValidation, err)
	}
	return dates, nil
}

func (s *TransactionService) GetTransaction(ctx context.Context, id uuid.UUID) (*Transaction, error) {
	userID, err := auth.UserID(ctx)
	if err != nil {
		return nil, err
	}

	row, err := s.storage.Transactions.FindByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	tx := fromStorage(row)
	return &tx, nil
}

// UpdateTransaction overwrites every field of an existing transaction.
func (s *TransactionService) UpdateTransaction(ctx context.Context, id uuid.UUID, tx Transaction) error {
	userID, err := auth.UserID(ctx)
	if err != nil {
		return err
	}
	if err := tx.Validate(); err != nil {
		return err
	}

	return s.operator.Process(ctx, &actions.UpdateTransaction{
		UserID: userID,
		ID:     id,
		Update: tx.toUpdate(),
	})
}

// DeleteTransaction removes one transaction; other occurrences of its series are untouched.
func (s *TransactionService) DeleteTransaction(ctx context.Context, id uuid.UUID) error {
	userID, err := auth.UserID(ctx)
	if err != nil {
		return err
	}

	return s.operator.Process(ctx, &actions.DeleteTransaction{
		UserID: userID,
		ID:     id,
	})
}

// ListTransactions returns one page of the caller's transactions matching req.
func (s *TransactionService) ListTransactions(ctx context.Context, req ListRequest) (*TransactionPage, error) {
	userID, err := auth.UserID(ctx)
	if err != nil {
		return nil, err
	}
	if err := validateListRequest(req); err != nil {
		return nil, err
	}

	page := max(req.Page, 1)
	pageSize := req.PageSize
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	pageSize = min(pageSize, maxPageSize)

	f := req.Selection.Filter(userID, s.today())
	if req.Type != "" {
		txType := req.Type
		f.Type = &txType
	}
	f.Search = req.Search
	f.SortBy = req.SortBy
	f.SortOrder = req.SortOrder
	f.Limit = pageSize
	f.Offset = (page - 1) * pageSize

	if s.logger.IsLevelEnabled(logrus.DebugLevel) {
		s.logger.WithField("filter", spew.Sdump(f)).Debug("TransactionService.ListTransactions")
	}

	rows, err := s.storage.Transactions.List(ctx, f)
	if err != nil {
		return nil, err
	}

	result := &TransactionPage{
		Page:     page,
		PageSize: pageSize,
	}
	if len(rows) > pageSize {
		rows = rows[:pageSize]
		result.HasMore = true
	}

	result.Transactions = make([]Transaction, len(rows))
	for i, row := range rows {
		result.Transactions[i] = fromStorage(row)
	}
	return result, nil
}

func validateListRequest(req ListRequest) error {
	if req.Type != "" && !req.Type.Valid() {
		return fmt.Errorf("%w: unknown type %q", ErrValidation, req.Type)
	}
	switch req.SortBy {
	case "", sqlconfig.SortByDate, sqlconfig.SortByAmount, sqlconfig.SortByCreatedAt:
	default:
		return fmt.Errorf("%w: cannot sort by %q", ErrValidation, req.SortBy)
	}
	switch req.SortOrder {
	case "", sqlconfig.SortAsc, sqlconfig.SortDesc:
	default:
		return fmt.Errorf("%w: unknown sort order %q", ErrValidation, req.SortOrder)
	}
	return validateCategories(req.Selection.Categories())
}

func validateCategories(categories []string) error {
	for _, c := range categories {
		if !knownCategory(c) {
			return fmt.Errorf("%w: unknown category %q", ErrValidation, c)
		}
	}
	return nil
}

func (s *TransactionService) reminderSettings(req *ReminderRequest) (*actions.ReminderSettings, error) {
	if req == nil {
		return nil, nil
	}
	days := s.opts.ReminderDaysBefore
	if req.DaysBefore != nil {
		days = *req.DaysBefore
	}
	if days < 0 || days > maxReminderDaysAhead {
		return nil, fmt.Errorf("%w: reminder days before must be between 0 and %d", ErrValidation, maxReminderDaysAhead)
	}
	return &actions.ReminderSettings{
		DaysBefore:   days,
		PushEnabled:  req.PushEnabled,
		EmailEnabled: req.EmailEnabled,
	}, nil
}

// recordReminder reports false when a requested reminder could not be stored.
func (s *TransactionService) recordReminder(action *actions.CreateTransaction) bool {
	if action.Reminder == nil {
		return true
	}
	if action.ReminderErr != nil {
		s.metrics.RemindersCreated.WithLabelValues("failed").Inc()
		s.logger.WithError(action.ReminderErr).
			WithField("transactionID", action.ID).
			Warn("TransactionService.reminder")
		return false
	}
	s.metrics.RemindersCreated.WithLabelValues("created").Inc()
	return true
}
