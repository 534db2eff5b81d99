package selection

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/budget-tracker/internal/filter"
	"github.com/carson-networks/budget-tracker/internal/storage/sqlconfig"
)

func TestParams_Defaults(t *testing.T) {
	s, err := Params{}.Selection()

	require.NoError(t, err)
	assert.Equal(t, filter.DateCurrentMonth, s.Date().Mode)
	assert.Equal(t, filter.RegularityAll, s.Regularity().Mode)
	assert.Empty(t, s.Categories())
}

func TestParams_Custom(t *testing.T) {
	s, err := Params{
		DateFilter: "custom",
		StartDate:  "2024-01-01",
		EndDate:    "2024-01-31",
		Regularity: "regular",
		Period:     "monthly",
		Categories: []string{"rent", "water"},
	}.Selection()

	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), s.Date().Start)
	assert.Equal(t, time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC), s.Date().End)
	assert.Equal(t, sqlconfig.RegularPeriodMonthly, s.Regularity().Period)
	assert.Equal(t, []string{"rent", "water"}, s.Categories())
}

func TestParams_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		params Params
	}{
		{"custom without start", Params{DateFilter: "custom", EndDate: "2024-01-31"}},
		{"custom bad date", Params{DateFilter: "custom", StartDate: "01/01/2024", EndDate: "2024-01-31"}},
		{"custom reversed", Params{DateFilter: "custom", StartDate: "2024-02-01", EndDate: "2024-01-31"}},
		{"period without regular", Params{Regularity: "one_time", Period: "weekly"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.params.Selection()

			assert.ErrorIs(t, err, filter.ErrInvalidFilter)
		})
	}
}
