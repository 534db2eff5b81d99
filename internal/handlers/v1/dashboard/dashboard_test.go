package dashboard

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

	"github.com/carson-networks/budget-tracker/internal/service"
	"github.com/carson-networks/budget-tracker/internal/storage/sqlconfig"
)

type mockDashboardLoader struct {
	mock.Mock
}

func (m *mockDashboardLoader) GetDashboard(ctx context.Context) (*service.Dashboard, error) {
	args := m.Called(ctx)
	d, _ := args.Get(0).(*service.Dashboard)
	return d, args.Error(1)
}

func newTestAPI(t *testing.T, svc dashboardLoader) humatest.TestAPI {
	t.Helper()
	_, api := humatest.New(t)
	NewHandler(svc).Register(api)
	return api
}

func TestHTTP_Dashboard(t *testing.T) {
	mockSvc := new(mockDashboardLoader)
	mockSvc.On("GetDashboard", mock.Anything).Return(&service.Dashboard{
		Summary: &service.Summary{
			TotalIncome:   decimal.RequireFromString("1000"),
			TotalExpenses: decimal.RequireFromString("250"),
			TotalBalance:  decimal.RequireFromString("750"),
		},
		RecentTransactions: []service.Transaction{{
			ID:            uuid.Must(uuid.NewV4()),
			Amount:        decimal.RequireFromString("50"),
			Type:          sqlconfig.TransactionTypeExpense,
			Category:      "grocery",
			Date:          time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC),
			PaymentMethod: sqlconfig.PaymentMethodCash,
		}},
	}, nil)

	resp := newTestAPI(t, mockSvc).Get("/v1/dashboard")

	assert.Equal(t, http.StatusOK, resp.Code)
	var body Dashboard
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "750", body.Summary.Balance)
	require.Len(t, body.RecentTransactions, 1)
	assert.Equal(t, "grocery", body.RecentTransactions[0].Category)
	assert.Empty(t, body.UpcomingReminders)
}

func TestHTTP_Dashboard_Error(t *testing.T) {
	mockSvc := new(mockDashboardLoader)
	mockSvc.On("GetDashboard", mock.Anything).Return(nil, errors.New("timeout"))

	resp := newTestAPI(t, mockSvc).Get("/v1/dashboard")

	assert.Equal(t, http.StatusInternalServerError, resp.Code)
}
