package summary

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/budget-tracker/internal/filter"
	"github.com/carson-networks/budget-tracker/internal/handlers/v1/httperr"
	"github.com/carson-networks/budget-tracker/internal/handlers/v1/selection"
	"github.com/carson-networks/budget-tracker/internal/logging"
	"github.com/carson-networks/budget-tracker/internal/service"
)

// Summary is the API form of service.Summary. Amounts are decimal strings.
type Summary struct {
	TotalIncome             string            `json:"totalIncome" doc:"Sum of income"`
	TotalExpenses           string            `json:"totalExpenses" doc:"Sum of expenses"`
	RegularExpenses         string            `json:"regularExpenses" doc:"Sum of recurring expenses"`
	Balance                 string            `json:"balance" doc:"totalIncome minus totalExpenses"`
	RegularExpensesByPeriod map[string]string `json:"regularExpensesByPeriod" doc:"Recurring expenses per period"`
	ByCategory              []CategoryTotal   `json:"byCategory" doc:"Totals per category, largest first"`
	TransactionCount        int64             `json:"transactionCount" doc:"Number of matching transactions"`
}

type CategoryTotal struct {
	Type     string `json:"type"`
	Category string `json:"category"`
	Amount   string `json:"amount"`
	Count    int64  `json:"count"`
}

// FromService converts a service summary into its API form.
func FromService(s *service.Summary) Summary {
	resp := Summary{
		TotalIncome:             s.TotalIncome.String(),
		TotalExpenses:           s.TotalExpenses.String(),
		RegularExpenses:         s.RegularExpenses.String(),
		Balance:                 s.TotalBalance.String(),
		RegularExpensesByPeriod: make(map[string]string, len(s.RegularExpensesByPeriod)),
		ByCategory:              make([]CategoryTotal, len(s.ByCategory)),
		TransactionCount:        s.TransactionCount,
	}
	for period, amount := range s.RegularExpensesByPeriod {
		resp.RegularExpensesByPeriod[string(period)] = amount.String()
	}
	for i, c := range s.ByCategory {
		resp.ByCategory[i] = CategoryTotal{
			Type:     string(c.Type),
			Category: c.Category,
			Amount:   c.Amount.String(),
			Count:    c.Count,
		}
	}
	return resp
}

type SummaryInput struct {
	selection.Params
}

type MonthSummaryInput struct {
	Year  int `query:"year" required:"true" minimum:"1970" maximum:"9999" doc:"Calendar year"`
	Month int `query:"month" required:"true" minimum:"1" maximum:"12" doc:"Calendar month"`
}

type SummaryOutput struct {
	Body Summary
}

type summarizer interface {
	GetSummary(ctx context.Context, selection filter.Selection) (*service.Summary, error)
	GetMonthSummary(ctx context.Context, year int, month time.Month) (*service.Summary, error)
}

// Handler handles GET /v1/summary and GET /v1/summary/month.
type Handler struct {
	SummaryService summarizer
}

func NewHandler(svc summarizer) *Handler {
	return &Handler{SummaryService: svc}
}

func (h *Handler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "get-summary",
		Method:      http.MethodGet,
		Path:        "/v1/summary",
		Summary:     "Get summary",
		Description: "Totals income, expenses and recurring expenses for the transactions matching the filter.",
		Tags:        []string{"Summary"},
	}, h.handleSummary)

	huma.Register(api, huma.Operation{
		OperationID: "get-month-summary",
		Method:      http.MethodGet,
		Path:        "/v1/summary/month",
		Summary:     "Get month summary",
		Description: "Totals every transaction in one calendar month.",
		Tags:        []string{"Summary"},
	}, h.handleMonth)
}

func (h *Handler) handleSummary(ctx context.Context, input *SummaryInput) (*SummaryOutput, error) {
	sel, err := input.Params.Selection()
	if err != nil {
		return nil, httperr.From(err, "invalid filter")
	}

	var stopTimer func()
	logData := logging.GetLogData(ctx)
	if logData != nil {
		stopTimer = logData.AddTiming("summaryMs")
	}
	s, err := h.SummaryService.GetSummary(ctx, sel)
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		return nil, httperr.From(err, "failed to summarize transactions")
	}
	return &SummaryOutput{Body: FromService(s)}, nil
}

func (h *Handler) handleMonth(ctx context.Context, input *MonthSummaryInput) (*SummaryOutput, error) {
	s, err := h.SummaryService.GetMonthSummary(ctx, input.Year, time.Month(input.Month))
	if err != nil {
		return nil, httperr.From(err, "failed to summarize month")
	}
	return &SummaryOutput{Body: FromService(s)}, nil
}
