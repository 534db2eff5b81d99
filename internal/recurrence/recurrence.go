// Package recurrence expands a recurring schedule into its concrete occurrence dates.
//
// Stepping is cumulative: each occurrence is the previous one moved forward by a
// single period using time.AddDate, so month and year steps that land past the
// end of a month roll over into the next one (2024-01-31 + 1 month = 2024-03-02,
// 2024-02-29 + 1 year = 2025-03-01). Both bounds are inclusive.
package recurrence

import (
	"errors"
	"fmt"
	"iter"
	"time"
)

// ErrInvalidSeries is returned for a schedule that cannot be expanded.
var ErrInvalidSeries = errors.New("invalid recurring series")

type Period string

const (
	Weekly    Period = "weekly"
	Monthly   Period = "monthly"
	Quarterly Period = "quarterly"
	Yearly    Period = "yearly"
)

func (p Period) Valid() bool {
	switch p {
	case Weekly, Monthly, Quarterly, Yearly:
		return true
	}
	return false
}

// Step returns the date one period after d.
func Step(p Period, d time.Time) time.Time {
	switch p {
	case Weekly:
		return d.AddDate(0, 0, 7)
	case Monthly:
		return d.AddDate(0, 1, 0)
	case Quarterly:
		return d.AddDate(0, 3, 0)
	case Yearly:
		return d.AddDate(1, 0, 0)
	}
	return d
}

// Day truncates t to midnight UTC of its calendar date.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Expander is a single-use cursor over the occurrences of a schedule.
type Expander struct {
	period Period
	end    time.Time
	next   time.Time
	count  int
}

// NewExpander validates the schedule and returns a cursor positioned at start.
// maxOccurrences caps the schedule length; zero or less disables the cap.
func NewExpander(period Period, start, end time.Time, maxOccurrences int) (*Expander, error) {
	if !period.Valid() {
		return nil, fmt.Errorf("%w: unknown period %q", ErrInvalidSeries, period)
	}
	if start.IsZero() || end.IsZero() {
		return nil, fmt.Errorf("%w: start and end dates are required", ErrInvalidSeries)
	}
	start, end = Day(start), Day(end)
	if start.After(end) {
		return nil, fmt.Errorf("%w: start %s is after end %s",
			ErrInvalidSeries, start.Format(time.DateOnly), end.Format(time.DateOnly))
	}

	count := 0
	for d := start; !d.After(end); d = Step(period, d) {
		count++
		if maxOccurrences > 0 && count > maxOccurrences {
			return nil, fmt.Errorf("%w: schedule exceeds %d occurrences", ErrInvalidSeries, maxOccurrences)
		}
	}

	return &Expander{
		period: period,
		end:    end,
		next:   start,
		count:  count,
	}, nil
}

// Len is the total number of occurrences in the schedule.
func (e *Expander) Len() int {
	return e.count
}

// Next returns the following occurrence, or false once the schedule is exhausted.
func (e *Expander) Next() (time.Time, bool) {
	if e.next.After(e.end) {
		return time.Time{}, false
	}
	current := e.next
	e.next = Step(e.period, current)
	return current, true
}

// All yields the remaining occurrences.
func (e *Expander) All() iter.Seq[time.Time] {
	return func(yield func(time.Time) bool) {
		for {
			d, ok := e.Next()
			if !ok || !yield(d) {
				return
			}
		}
	}
}

// Dates returns the full schedule.
func Dates(period Period, start, end time.Time, maxOccurrences int) ([]time.Time, error) {
	e, err := NewExpander(period, start, end, maxOccurrences)
	if err != nil {
		return nil, err
	}
	dates := make([]time.Time, 0, e.Len())
	for d := range e.All() {
		dates = append(dates, d)
	}
	return dates, nil
}
