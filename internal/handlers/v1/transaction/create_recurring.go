package transaction

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/budget-tracker/internal/handlers/v1/httperr"
	"github.com/carson-networks/budget-tracker/internal/logging"
	"github.com/carson-networks/budget-tracker/internal/service"
	"github.com/carson-networks/budget-tracker/internal/storage/sqlconfig"
)

// ScheduleBody describes when a series runs.
type ScheduleBody struct {
	Period    string `json:"period" required:"true" enum:"weekly,monthly,quarterly,yearly" doc:"Step between occurrences"`
	StartDate string `json:"startDate" required:"true" format:"date" doc:"First occurrence (YYYY-MM-DD)"`
	EndDate   string `json:"endDate" required:"true" format:"date" doc:"Last possible occurrence, inclusive (YYYY-MM-DD)"`
}

// CreateRecurringBody is the request body for creating a recurring series.
type CreateRecurringBody struct {
	ScheduleBody
	Amount        string        `json:"amount" required:"true" doc:"Decimal amount greater than zero"`
	Type          string        `json:"type" required:"true" enum:"income,expense" doc:"Transaction type"`
	Category      string        `json:"category" required:"true" minLength:"1" doc:"Category id for the type"`
	Description   string        `json:"description,omitempty" maxLength:"200" doc:"Free text description"`
	PaymentMethod string        `json:"paymentMethod" required:"true" enum:"credit_card,bank,cash" doc:"Payment method"`
	Reminder      *ReminderBody `json:"reminder,omitempty" doc:"Create a reminder for every occurrence"`
}

type CreateRecurringInput struct {
	Body CreateRecurringBody
}

type CreateRecurringResponse struct {
	IDs              []string `json:"ids" doc:"Created transaction UUIDs in date order"`
	Dates            []string `json:"dates" doc:"Occurrence dates in order"`
	Total            int      `json:"total" doc:"Number of occurrences in the series"`
	ReminderFailures int      `json:"reminderFailures" doc:"Occurrences whose reminder could not be stored"`
}

type CreateRecurringOutput struct {
	Body CreateRecurringResponse
}

type PreviewRecurringInput struct {
	Body ScheduleBody
}

type PreviewRecurringResponse struct {
	Dates []string `json:"dates" doc:"Occurrence dates in order"`
	Count int      `json:"count" doc:"Number of occurrences"`
}

type PreviewRecurringOutput struct {
	Body PreviewRecurringResponse
}

type seriesCreator interface {
	CreateRecurring(ctx context.Context, req service.SeriesRequest) (*service.SeriesResult, error)
	PreviewRecurring(period sqlconfig.RegularPeriod, start, end time.Time) ([]time.Time, error)
}

// RecurringHandler handles POST /v1/transaction/recurring and its preview.
type RecurringHandler struct {
	TransactionService seriesCreator
}

func NewRecurringHandler(svc seriesCreator) *RecurringHandler {
	return &RecurringHandler{TransactionService: svc}
}

func (h *RecurringHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID:   "create-recurring-transaction",
		Method:        http.MethodPost,
		Path:          "/v1/transaction/recurring",
		Summary:       "Create recurring transaction",
		Description:   "Stores one transaction per occurrence of the schedule. Occurrences created before a failure are kept.",
		Tags:          []string{"Transactions"},
		DefaultStatus: http.StatusCreated,
	}, h.handleCreate)

	huma.Register(api, huma.Operation{
		OperationID: "preview-recurring-transaction",
		Method:      http.MethodPost,
		Path:        "/v1/transaction/recurring/preview",
		Summary:     "Preview recurring transaction",
		Description: "Returns the dates a recurring series would be created on without storing anything.",
		Tags:        []string{"Transactions"},
	}, h.handlePreview)
}

func (b *ScheduleBody) parse() (sqlconfig.RegularPeriod, time.Time, time.Time, error) {
	start, err := parseDate("startDate", b.StartDate)
	if err != nil {
		return "", time.Time{}, time.Time{}, err
	}
	end, err := parseDate("endDate", b.EndDate)
	if err != nil {
		return "", time.Time{}, time.Time{}, err
	}
	return sqlconfig.RegularPeriod(b.Period), start, end, nil
}

func (h *RecurringHandler) handleCreate(ctx context.Context, input *CreateRecurringInput) (*CreateRecurringOutput, error) {
	period, start, end, err := input.Body.parse()
	if err != nil {
		return nil, err
	}
	amount, err := decimal.NewFromString(input.Body.Amount)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid amount", err)
	}

	result, err := h.TransactionService.CreateRecurring(ctx, service.SeriesRequest{
		Template: service.Transaction{
			Amount:        amount,
			Type:          sqlconfig.TransactionType(input.Body.Type),
			Category:      input.Body.Category,
			Description:   input.Body.Description,
			PaymentMethod: sqlconfig.PaymentMethod(input.Body.PaymentMethod),
		},
		Period:    period,
		StartDate: start,
		EndDate:   end,
		Reminder:  input.Body.Reminder.toService(),
	})

	logData := logging.GetLogData(ctx)
	if logData != nil && result != nil {
		logData.AddData("occurrencesCreated", len(result.IDs))
		logData.AddData("occurrencesTotal", result.Total)
	}
	if err != nil {
		if errors.Is(err, service.ErrPartialSeries) && result != nil {
			if logData != nil {
				logData.AddData("partialSeries", true)
			}
			return nil, partialSeriesError(err, result)
		}
		return nil, httperr.From(err, "failed to create recurring transaction")
	}

	return &CreateRecurringOutput{Body: CreateRecurringResponse{
		IDs:              idStrings(result.IDs),
		Dates:            formatDates(result.Dates),
		Total:            result.Total,
		ReminderFailures: result.ReminderFailures,
	}}, nil
}

// partialSeriesError lists the occurrences stored before the failure so the
// client can keep or delete them.
func partialSeriesError(err error, result *service.SeriesResult) error {
	details := []error{&huma.ErrorDetail{
		Message:  "created before the failure",
		Location: "body.ids",
		Value:    idStrings(result.IDs),
	}}
	if result.FailedDate != nil {
		details = append(details, &huma.ErrorDetail{
			Message:  "first occurrence not created",
			Location: "body.failedDate",
			Value:    result.FailedDate.Format(time.DateOnly),
		})
	}
	return huma.NewError(http.StatusInternalServerError, err.Error(), details...)
}

func idStrings(ids []uuid.UUID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}

func (h *RecurringHandler) handlePreview(_ context.Context, input *PreviewRecurringInput) (*PreviewRecurringOutput, error) {
	period, start, end, err := input.Body.parse()
	if err != nil {
		return nil, err
	}

	dates, err := h.TransactionService.PreviewRecurring(period, start, end)
	if err != nil {
		return nil, httperr.From(err, "failed to preview recurring transaction")
	}
	return &PreviewRecurringOutput{Body: PreviewRecurringResponse{
		Dates: formatDates(dates),
		Count: len(dates),
	}}, nil
}

func formatDates(dates []time.Time) []string {
	formatted := make([]string, len(dates))
	for i, d := range dates {
		formatted[i] = d.Format(time.DateOnly)
	}
	return formatted
}
