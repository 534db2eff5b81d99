// Package selection turns filter query parameters into a filter.Selection.
package selection

import (
	"fmt"
	"time"

	"github.com/carson-networks/budget-tracker/internal/filter"
	"github.com/carson-networks/budget-tracker/internal/storage/sqlconfig"
)

// Params is embedded into the inputs of every filtered endpoint.
type Params struct {
	DateFilter string   `query:"dateFilter" enum:"all,current_month,last_month,next_month,current_year,last_year,custom" default:"current_month" doc:"Date range mode"`
	StartDate  string   `query:"startDate" format:"date" doc:"First day of a custom range (YYYY-MM-DD)"`
	EndDate    string   `query:"endDate" format:"date" doc:"Last day of a custom range (YYYY-MM-DD)"`
	Regularity string   `query:"regularity" enum:"all,regular,one_time" default:"all" doc:"Recurring or one-off transactions"`
	Period     string   `query:"period" enum:"weekly,monthly,quarterly,yearly" doc:"Narrows regularity=regular to one period"`
	Categories []string `query:"categories" doc:"Categories to include, all when empty"`
}

func (p Params) Selection() (filter.Selection, error) {
	date := filter.DateRange{Mode: filter.DateMode(p.DateFilter)}
	if date.Mode == "" {
		date.Mode = filter.DateCurrentMonth
	}
	if date.Mode == filter.DateCustom {
		var err error
		if date.Start, err = parseDate("startDate", p.StartDate); err != nil {
			return filter.Selection{}, err
		}
		if date.End, err = parseDate("endDate", p.EndDate); err != nil {
			return filter.Selection{}, err
		}
	}

	regularity := filter.Regularity{
		Mode:   filter.RegularityMode(p.Regularity),
		Period: sqlconfig.RegularPeriod(p.Period),
	}
	if regularity.Mode == "" {
		regularity.Mode = filter.RegularityAll
	}

	return filter.New(date, regularity, p.Categories)
}

func parseDate(name, value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, fmt.Errorf("%w: %s is required for a custom range", filter.ErrInvalidFilter, name)
	}
	parsed, err := time.Parse(time.DateOnly, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %s: %w", filter.ErrInvalidFilter, name, err)
	}
	return parsed, nil
}
