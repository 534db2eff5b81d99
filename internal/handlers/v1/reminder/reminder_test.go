package reminder

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/budget-tracker/internal/auth"
	"github.com/carson-networks/budget-tracker/internal/service"
	"github.com/carson-networks/budget-tracker/internal/storage/sqlconfig"
)

type mockReminderLister struct {
	mock.Mock
}

func (m *mockReminderLister) UpcomingReminders(ctx context.Context, days int) ([]service.Reminder, error) {
	args := m.Called(ctx, days)
	reminders, _ := args.Get(0).([]service.Reminder)
	return reminders, args.Error(1)
}

func newTestAPI(t *testing.T, svc reminderLister) humatest.TestAPI {
	t.Helper()
	_, api := humatest.New(t)
	NewHandler(svc).Register(api)
	return api
}

func TestHTTP_Upcoming_DefaultDays(t *testing.T) {
	mockSvc := new(mockReminderLister)
	mockSvc.On("UpcomingReminders", mock.Anything, 7).Return([]service.Reminder{{
		ID:              uuid.Must(uuid.NewV4()),
		TransactionID:   uuid.Must(uuid.NewV4()),
		ReminderDate:    time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC),
		PushEnabled:     true,
		Amount:          decimal.RequireFromString("100"),
		Type:            sqlconfig.TransactionTypeExpense,
		Category:        "rent",
		TransactionDate: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
	}}, nil)

	resp := newTestAPI(t, mockSvc).Get("/v1/reminder/upcoming")

	assert.Equal(t, http.StatusOK, resp.Code)
	var body struct {
		Reminders []Reminder `json:"reminders"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Len(t, body.Reminders, 1)
	assert.Equal(t, "2024-01-31", body.Reminders[0].ReminderDate)
	assert.Equal(t, "2024-02-01", body.Reminders[0].TransactionDate)
	assert.Equal(t, "rent", body.Reminders[0].Category)
	mockSvc.AssertExpectations(t)
}

func TestHTTP_Upcoming_TooManyDays(t *testing.T) {
	mockSvc := new(mockReminderLister)

	resp := newTestAPI(t, mockSvc).Get("/v1/reminder/upcoming?days=1000")

	assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
	mockSvc.AssertNotCalled(t, "UpcomingReminders")
}

func TestHTTP_Upcoming_Errors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"unauthenticated", auth.ErrUnauthenticated, http.StatusUnauthorized},
		{"transient", errors.New("timeout"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := new(mockReminderLister)
			mockSvc.On("UpcomingReminders", mock.Anything, 3).Return(nil, tt.err)

			resp := newTestAPI(t, mockSvc).Get("/v1/reminder/upcoming?days=3")

			assert.Equal(t, tt.status, resp.Code)
		})
	}
}
