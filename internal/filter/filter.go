// Package filter holds the user's transaction filter selection and resolves it
// into a store predicate.
package filter

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/jinzhu/now"

	"github.com/carson-networks/budget-tracker/internal/storage/sqlconfig"
)

var ErrInvalidFilter = errors.New("invalid filter")

type DateMode string

const (
	DateAll          DateMode = "all"
	DateCurrentMonth DateMode = "current_month"
	DateLastMonth    DateMode = "last_month"
	DateNextMonth    DateMode = "next_month"
	DateCurrentYear  DateMode = "current_year"
	DateLastYear     DateMode = "last_year"
	DateCustom       DateMode = "custom"
)

type RegularityMode string

const (
	RegularityAll     RegularityMode = "all"
	RegularityRegular RegularityMode = "regular"
	RegularityOneTime RegularityMode = "one_time"
)

// DateRange selects transactions by date. Start and End only apply to DateCustom.
type DateRange struct {
	Mode  DateMode
	Start time.Time
	End   time.Time
}

// Regularity selects recurring or one-off transactions. Period optionally
// narrows RegularityRegular to a single period.
type Regularity struct {
	Mode   RegularityMode
	Period sqlconfig.RegularPeriod
}

// Selection is an immutable filter value. The zero value is not valid; start
// from Default or New and derive changes with the With methods.
type Selection struct {
	date       DateRange
	regularity Regularity
	categories []string
}

// Default is the selection a user starts with: this month, every regularity, every category.
func Default() Selection {
	return Selection{
		date:       DateRange{Mode: DateCurrentMonth},
		regularity: Regularity{Mode: RegularityAll},
	}
}

func New(date DateRange, regularity Regularity, categories []string) (Selection, error) {
	return Default().
		WithDate(date).
		WithRegularity(regularity).
		WithCategories(categories).
		validated()
}

func (s Selection) WithDate(date DateRange) Selection {
	s.date = date
	return s
}

func (s Selection) WithRegularity(regularity Regularity) Selection {
	s.regularity = regularity
	return s
}

func (s Selection) WithCategories(categories []string) Selection {
	s.categories = slices.Clone(categories)
	return s
}

// Reset returns the default selection.
func (s Selection) Reset() Selection {
	return Default()
}

func (s Selection) Date() DateRange {
	return s.date
}

func (s Selection) Regularity() Regularity {
	return s.regularity
}

func (s Selection) Categories() []string {
	return slices.Clone(s.categories)
}

func (s Selection) validated() (Selection, error) {
	switch s.date.Mode {
	case DateAll, DateCurrentMonth, DateLastMonth, DateNextMonth, DateCurrentYear, DateLastYear:
	case DateCustom:
		if s.date.Start.IsZero() || s.date.End.IsZero() {
			return Selection{}, fmt.Errorf("%w: custom date range needs both start and end", ErrInvalidFilter)
		}
		if day(s.date.Start).After(day(s.date.End)) {
			return Selection{}, fmt.Errorf("%w: start date is after end date", ErrInvalidFilter)
		}
	default:
		return Selection{}, fmt.Errorf("%w: unknown date mode %q", ErrInvalidFilter, s.date.Mode)
	}

	switch s.regularity.Mode {
	case RegularityAll, RegularityOneTime:
		if s.regularity.Period != "" {
			return Selection{}, fmt.Errorf("%w: period only applies to regular transactions", ErrInvalidFilter)
		}
	case RegularityRegular:
		if s.regularity.Period != "" && !s.regularity.Period.Valid() {
			return Selection{}, fmt.Errorf("%w: unknown period %q", ErrInvalidFilter, s.regularity.Period)
		}
	default:
		return Selection{}, fmt.Errorf("%w: unknown regularity %q", ErrInvalidFilter, s.regularity.Mode)
	}

	return s, nil
}

// Bounds resolves the date selection against the current instant. Both results
// are nil for DateAll; otherwise both are inclusive calendar days.
func (s Selection) Bounds(current time.Time) (start, end *time.Time) {
	var from, to time.Time
	month := now.With(current).BeginningOfMonth()
	year := now.With(current).BeginningOfYear()

	switch s.date.Mode {
	case DateAll:
		return nil, nil
	case DateCurrentMonth:
		from, to = month, now.With(month).EndOfMonth()
	case DateLastMonth:
		prev := month.AddDate(0, -1, 0)
		from, to = prev, now.With(prev).EndOfMonth()
	case DateNextMonth:
		next := month.AddDate(0, 1, 0)
		from, to = next, now.With(next).EndOfMonth()
	case DateCurrentYear:
		from, to = year, now.With(year).EndOfYear()
	case DateLastYear:
		prev := year.AddDate(-1, 0, 0)
		from, to = prev, now.With(prev).EndOfYear()
	case DateCustom:
		from, to = s.date.Start, s.date.End
	default:
		return nil, nil
	}

	from, to = day(from), day(to)
	return &from, &to
}

// Filter builds the store predicate for userID. Paging, sorting and type are left for the caller.
func (s Selection) Filter(userID uuid.UUID, current time.Time) *sqlconfig.TransactionFilter {
	f := &sqlconfig.TransactionFilter{
		UserID:     userID,
		Categories: slices.Clone(s.categories),
	}
	f.StartDate, f.EndDate = s.Bounds(current)

	switch s.regularity.Mode {
	case RegularityRegular:
		regular := true
		f.IsRegular = &regular
		if s.regularity.Period != "" {
			period := s.regularity.Period
			f.RegularPeriod = &period
		}
	case RegularityOneTime:
		regular := false
		f.IsRegular = &regular
	}

	return f
}

func day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
