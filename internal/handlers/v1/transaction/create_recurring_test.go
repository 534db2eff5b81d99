package transaction

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/gofrs/uuid/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/budget-tracker/internal/service"
	"github.com/carson-networks/budget-tracker/internal/storage/sqlconfig"
)

type mockSeriesCreator struct {
	mock.Mock
}

func (m *mockSeriesCreator) CreateRecurring(ctx context.Context, req service.SeriesRequest) (*service.SeriesResult, error) {
	args := m.Called(ctx, req)
	result, _ := args.Get(0).(*service.SeriesResult)
	return result, args.Error(1)
}

func (m *mockSeriesCreator) PreviewRecurring(period sqlconfig.RegularPeriod, start, end time.Time) ([]time.Time, error) {
	args := m.Called(period, start, end)
	dates, _ := args.Get(0).([]time.Time)
	return dates, args.Error(1)
}

func newRecurringTestAPI(t *testing.T, svc seriesCreator) humatest.TestAPI {
	t.Helper()
	_, api := humatest.New(t)
	NewRecurringHandler(svc).Register(api)
	return api
}

func rentSeriesBody() CreateRecurringBody {
	return CreateRecurringBody{
		ScheduleBody: ScheduleBody{
			Period:    "monthly",
			StartDate: "2024-01-01",
			EndDate:   "2024-04-01",
		},
		Amount:        "100",
		Type:          "expense",
		Category:      "rent",
		PaymentMethod: "bank",
	}
}

func monthlyDates() []time.Time {
	return []time.Time{
		time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestHTTP_CreateRecurring_Success(t *testing.T) {
	ids := []uuid.UUID{uuid.Must(uuid.NewV4()), uuid.Must(uuid.NewV4()), uuid.Must(uuid.NewV4()), uuid.Must(uuid.NewV4())}

	mockSvc := new(mockSeriesCreator)
	mockSvc.On("CreateRecurring", mock.Anything, mock.MatchedBy(func(req service.SeriesRequest) bool {
		return req.Period == sqlconfig.RegularPeriodMonthly &&
			req.StartDate.Equal(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)) &&
			req.EndDate.Equal(time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)) &&
			req.Template.Category == "rent" &&
			req.Reminder == nil
	})).Return(&service.SeriesResult{IDs: ids, Dates: monthlyDates(), Total: 4}, nil)

	resp := newRecurringTestAPI(t, mockSvc).Post("/v1/transaction/recurring", rentSeriesBody())

	assert.Equal(t, http.StatusCreated, resp.Code)
	var body CreateRecurringResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, 4, body.Total)
	assert.Len(t, body.IDs, 4)
	assert.Equal(t, []string{"2024-01-01", "2024-02-01", "2024-03-01", "2024-04-01"}, body.Dates)
	mockSvc.AssertExpectations(t)
}

func TestHTTP_CreateRecurring_PartialFailure(t *testing.T) {
	failed := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	first, second := uuid.Must(uuid.NewV4()), uuid.Must(uuid.NewV4())
	mockSvc := new(mockSeriesCreator)
	mockSvc.On("CreateRecurring", mock.Anything, mock.Anything).Return(
		&service.SeriesResult{IDs: []uuid.UUID{first, second}, Total: 4, FailedDate: &failed},
		fmt.Errorf("%w: created 2 of 4 occurrences, failed on 2024-03-01: disk full", service.ErrPartialSeries),
	)

	resp := newRecurringTestAPI(t, mockSvc).Post("/v1/transaction/recurring", rentSeriesBody())

	assert.Equal(t, http.StatusInternalServerError, resp.Code)

	var body struct {
		Detail string `json:"detail"`
		Errors []struct {
			Location string `json:"location"`
			Value    any    `json:"value"`
		} `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.Contains(t, body.Detail, "created 2 of 4")
	require.Len(t, body.Errors, 2)
	assert.Equal(t, "body.ids", body.Errors[0].Location)
	assert.Equal(t, []any{first.String(), second.String()}, body.Errors[0].Value)
	assert.Equal(t, "body.failedDate", body.Errors[1].Location)
	assert.Equal(t, "2024-03-01", body.Errors[1].Value)
}

func TestHTTP_CreateRecurring_InvalidSeries(t *testing.T) {
	mockSvc := new(mockSeriesCreator)
	mockSvc.On("CreateRecurring", mock.Anything, mock.Anything).
		Return(nil, fmt.Errorf("%w: start date is after end date", service.ErrValidation))

	body := rentSeriesBody()
	body.StartDate = "2024-05-01"
	resp := newRecurringTestAPI(t, mockSvc).Post("/v1/transaction/recurring", body)

	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestHTTP_CreateRecurring_UnknownPeriod(t *testing.T) {
	mockSvc := new(mockSeriesCreator)

	body := rentSeriesBody()
	body.Period = "daily"
	resp := newRecurringTestAPI(t, mockSvc).Post("/v1/transaction/recurring", body)

	assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
	mockSvc.AssertNotCalled(t, "CreateRecurring")
}

func TestHTTP_PreviewRecurring(t *testing.T) {
	mockSvc := new(mockSeriesCreator)
	mockSvc.On("PreviewRecurring", sqlconfig.RegularPeriodMonthly,
		time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC),
	).Return(monthlyDates(), nil)

	resp := newRecurringTestAPI(t, mockSvc).Post("/v1/transaction/recurring/preview", ScheduleBody{
		Period:    "monthly",
		StartDate: "2024-01-01",
		EndDate:   "2024-04-01",
	})

	assert.Equal(t, http.StatusOK, resp.Code)
	var body PreviewRecurringResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, 4, body.Count)
	assert.Equal(t, "2024-04-01", body.Dates[3])
	mockSvc.AssertNotCalled(t, "CreateRecurring")
}
