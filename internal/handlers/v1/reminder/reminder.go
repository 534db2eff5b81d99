package reminder

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/budget-tracker/internal/handlers/v1/httperr"
	"github.com/carson-networks/budget-tracker/internal/service"
)

type Reminder struct {
	ID              string `json:"id" doc:"Reminder UUID"`
	TransactionID   string `json:"transactionID" doc:"Transaction UUID"`
	ReminderDate    string `json:"reminderDate" doc:"Day the reminder fires (YYYY-MM-DD)"`
	PushEnabled     bool   `json:"pushEnabled"`
	EmailEnabled    bool   `json:"emailEnabled"`
	Notified        bool   `json:"notified" doc:"Already handed to the notifier"`
	Amount          string `json:"amount" doc:"Transaction amount"`
	Type            string `json:"type" doc:"Transaction type"`
	Category        string `json:"category" doc:"Transaction category"`
	TransactionDate string `json:"transactionDate" doc:"Transaction date (YYYY-MM-DD)"`
}

func FromService(reminders []service.Reminder) []Reminder {
	resp := make([]Reminder, len(reminders))
	for i, r := range reminders {
		resp[i] = Reminder{
			ID:              r.ID.String(),
			TransactionID:   r.TransactionID.String(),
			ReminderDate:    r.ReminderDate.Format(time.DateOnly),
			PushEnabled:     r.PushEnabled,
			EmailEnabled:    r.EmailEnabled,
			Notified:        r.Notified,
			Amount:          r.Amount.String(),
			Type:            string(r.Type),
			Category:        r.Category,
			TransactionDate: r.TransactionDate.Format(time.DateOnly),
		}
	}
	return resp
}

type UpcomingInput struct {
	Days int `query:"days" minimum:"0" maximum:"365" default:"7" doc:"How many days ahead to look"`
}

type UpcomingOutput struct {
	Body struct {
		Reminders []Reminder `json:"reminders"`
	}
}

type reminderLister interface {
	UpcomingReminders(ctx context.Context, days int) ([]service.Reminder, error)
}

// Handler handles GET /v1/reminder/upcoming.
type Handler struct {
	ReminderService reminderLister
}

func NewHandler(svc reminderLister) *Handler {
	return &Handler{ReminderService: svc}
}

func (h *Handler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "list-upcoming-reminders",
		Method:      http.MethodGet,
		Path:        "/v1/reminder/upcoming",
		Summary:     "List upcoming reminders",
		Tags:        []string{"Reminders"},
	}, h.handle)
}

func (h *Handler) handle(ctx context.Context, input *UpcomingInput) (*UpcomingOutput, error) {
	reminders, err := h.ReminderService.UpcomingReminders(ctx, input.Days)
	if err != nil {
		return nil, httperr.From(err, "failed to list reminders")
	}

	out := &UpcomingOutput{}
	out.Body.Reminders = FromService(reminders)
	return out, nil
}
