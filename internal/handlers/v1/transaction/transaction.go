package transaction

import (
	"fmt"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/budget-tracker/internal/service"
	"github.com/carson-networks/budget-tracker/internal/storage/sqlconfig"
)

// Transaction is the API response model for a transaction.
// It is used only for responses, not for request bodies.
type Transaction struct {
	ID                 string `json:"id" doc:"Transaction UUID"`
	Amount             string `json:"amount" doc:"Decimal amount"`
	Type               string `json:"type" doc:"income or expense"`
	Category           string `json:"category" doc:"Category id"`
	Description        string `json:"description,omitempty" doc:"Free text description"`
	Date               string `json:"date" doc:"Transaction date (YYYY-MM-DD)"`
	IsRegular          bool   `json:"isRegular" doc:"Part of a recurring series"`
	RegularPeriod      string `json:"regularPeriod,omitempty" doc:"Series period"`
	RecurringStartDate string `json:"recurringStartDate,omitempty" doc:"First day of the series"`
	RecurringEndDate   string `json:"recurringEndDate,omitempty" doc:"Last day of the series"`
	PaymentMethod      string `json:"paymentMethod" doc:"credit_card, bank or cash"`
	CreatedAt          string `json:"createdAt" doc:"RFC3339 creation time"`
}

// TransactionBody is the request body for creating or overwriting a transaction.
type TransactionBody struct {
	Amount             string `json:"amount" required:"true" doc:"Decimal amount greater than zero"`
	Type               string `json:"type" required:"true" enum:"income,expense" doc:"Transaction type"`
	Category           string `json:"category" required:"true" minLength:"1" doc:"Category id for the type"`
	Description        string `json:"description,omitempty" maxLength:"200" doc:"Free text description"`
	Date               string `json:"date" required:"true" format:"date" doc:"Transaction date (YYYY-MM-DD)"`
	IsRegular          bool   `json:"isRegular,omitempty" doc:"Part of a recurring series"`
	RegularPeriod      string `json:"regularPeriod,omitempty" enum:"weekly,monthly,quarterly,yearly" doc:"Series period, only for regular transactions"`
	RecurringStartDate string `json:"recurringStartDate,omitempty" format:"date" doc:"First day of the series"`
	RecurringEndDate   string `json:"recurringEndDate,omitempty" format:"date" doc:"Last day of the series"`
	PaymentMethod      string `json:"paymentMethod" required:"true" enum:"credit_card,bank,cash" doc:"Payment method"`
}

// ReminderBody asks for a reminder per created transaction.
type ReminderBody struct {
	DaysBefore   *int `json:"daysBefore,omitempty" minimum:"0" maximum:"365" doc:"Days before the transaction date, server default when absent"`
	PushEnabled  bool `json:"pushEnabled,omitempty" doc:"Send a push notification"`
	EmailEnabled bool `json:"emailEnabled,omitempty" doc:"Send an email"`
}

func (r *ReminderBody) toService() *service.ReminderRequest {
	if r == nil {
		return nil
	}
	return &service.ReminderRequest{
		DaysBefore:   r.DaysBefore,
		PushEnabled:  r.PushEnabled,
		EmailEnabled: r.EmailEnabled,
	}
}

func (b *TransactionBody) toService() (service.Transaction, error) {
	amount, err := decimal.NewFromString(b.Amount)
	if err != nil {
		return service.Transaction{}, huma.NewError(http.StatusBadRequest, "invalid amount", err)
	}
	date, err := parseDate("date", b.Date)
	if err != nil {
		return service.Transaction{}, err
	}

	tx := service.Transaction{
		Amount:        amount,
		Type:          sqlconfig.TransactionType(b.Type),
		Category:      b.Category,
		Description:   b.Description,
		Date:          date,
		IsRegular:     b.IsRegular,
		RegularPeriod: sqlconfig.RegularPeriod(b.RegularPeriod),
		PaymentMethod: sqlconfig.PaymentMethod(b.PaymentMethod),
	}
	if tx.RecurringStartDate, err = parseOptionalDate("recurringStartDate", b.RecurringStartDate); err != nil {
		return service.Transaction{}, err
	}
	if tx.RecurringEndDate, err = parseOptionalDate("recurringEndDate", b.RecurringEndDate); err != nil {
		return service.Transaction{}, err
	}
	return tx, nil
}

// FromService converts a service transaction into its API form.
func FromService(tx service.Transaction) Transaction {
	resp := Transaction{
		ID:            tx.ID.String(),
		Amount:        tx.Amount.String(),
		Type:          string(tx.Type),
		Category:      tx.Category,
		Description:   tx.Description,
		Date:          tx.Date.Format(time.DateOnly),
		IsRegular:     tx.IsRegular,
		RegularPeriod: string(tx.RegularPeriod),
		PaymentMethod: string(tx.PaymentMethod),
		CreatedAt:     tx.CreatedAt.Format(time.RFC3339),
	}
	if tx.RecurringStartDate != nil {
		resp.RecurringStartDate = tx.RecurringStartDate.Format(time.DateOnly)
	}
	if tx.RecurringEndDate != nil {
		resp.RecurringEndDate = tx.RecurringEndDate.Format(time.DateOnly)
	}
	return resp
}

func parseDate(name, value string) (time.Time, error) {
	parsed, err := time.Parse(time.DateOnly, value)
	if err != nil {
		return time.Time{}, huma.NewError(http.StatusBadRequest, fmt.Sprintf("invalid %s", name), err)
	}
	return parsed, nil
}

func parseOptionalDate(name, value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	parsed, err := parseDate(name, value)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}
