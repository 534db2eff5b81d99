package dashboard

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/budget-tracker/internal/handlers/v1/httperr"
	"github.com/carson-networks/budget-tracker/internal/handlers/v1/reminder"
	"github.com/carson-networks/budget-tracker/internal/handlers/v1/summary"
	"github.com/carson-networks/budget-tracker/internal/handlers/v1/transaction"
	"github.com/carson-networks/budget-tracker/internal/logging"
	"github.com/carson-networks/budget-tracker/internal/service"
)

type Dashboard struct {
	Summary            summary.Summary           `json:"summary" doc:"Current month summary"`
	RecentTransactions []transaction.Transaction `json:"recentTransactions" doc:"Latest transactions by date"`
	UpcomingReminders  []reminder.Reminder       `json:"upcomingReminders" doc:"Reminders due in the next week"`
}

type DashboardOutput struct {
	Body Dashboard
}

type dashboardLoader interface {
	GetDashboard(ctx context.Context) (*service.Dashboard, error)
}

// Handler handles GET /v1/dashboard.
type Handler struct {
	DashboardService dashboardLoader
}

func NewHandler(svc dashboardLoader) *Handler {
	return &Handler{DashboardService: svc}
}

func (h *Handler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "get-dashboard",
		Method:      http.MethodGet,
		Path:        "/v1/dashboard",
		Summary:     "Get dashboard",
		Description: "Current month summary, the five latest transactions and the week's reminders.",
		Tags:        []string{"Summary"},
	}, h.handle)
}

func (h *Handler) handle(ctx context.Context, _ *struct{}) (*DashboardOutput, error) {
	var stopTimer func()
	if logData := logging.GetLogData(ctx); logData != nil {
		stopTimer = logData.AddTiming("dashboardMs")
	}
	d, err := h.DashboardService.GetDashboard(ctx)
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		return nil, httperr.From(err, "failed to load dashboard")
	}

	resp := Dashboard{
		Summary:            summary.FromService(d.Summary),
		RecentTransactions: make([]transaction.Transaction, len(d.RecentTransactions)),
		UpcomingReminders:  reminder.FromService(d.UpcomingReminders),
	}
	for i, tx := range d.RecentTransactions {
		resp.RecentTransactions[i] = transaction.FromService(tx)
	}
	return &DashboardOutput{Body: resp}, nil
}
