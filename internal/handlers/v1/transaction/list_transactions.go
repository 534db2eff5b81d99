package transaction

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/budget-tracker/internal/handlers/v1/httperr"
	"github.com/carson-networks/budget-tracker/internal/handlers/v1/selection"
	"github.com/carson-networks/budget-tracker/internal/logging"
	"github.com/carson-networks/budget-tracker/internal/service"
	"github.com/carson-networks/budget-tracker/internal/storage/sqlconfig"
)

// ListTransactionsInput is the Huma input for listing transactions.
type ListTransactionsInput struct {
	selection.Params
	Type      string `query:"type" enum:"income,expense" doc:"Only transactions of this type"`
	Search    string `query:"q" maxLength:"100" doc:"Case-insensitive category search"`
	SortBy    string `query:"sortBy" enum:"date,amount,created_at" default:"date" doc:"Sort column"`
	SortOrder string `query:"sortOrder" enum:"asc,desc" default:"desc" doc:"Sort direction"`
	Page      int    `query:"page" minimum:"1" default:"1" doc:"1-based page number"`
	PageSize  int    `query:"pageSize" minimum:"1" maximum:"100" default:"10" doc:"Transactions per page"`
}

// ListTransactionsResponseBody is the response body for listing transactions.
type ListTransactionsResponseBody struct {
	Transactions []Transaction `json:"transactions" doc:"Page of transactions"`
	Page         int           `json:"page" doc:"Page number returned"`
	PageSize     int           `json:"pageSize" doc:"Page size used"`
	HasMore      bool          `json:"hasMore" doc:"True when a later page has transactions"`
}

// ListTransactionsOutput is the Huma output for listing transactions.
type ListTransactionsOutput struct {
	Body ListTransactionsResponseBody
}

// transactionLister is the interface for listing transactions.
type transactionLister interface {
	ListTransactions(ctx context.Context, req service.ListRequest) (*service.TransactionPage, error)
}

// ListTransactionsHandler handles GET /v1/transaction.
type ListTransactionsHandler struct {
	TransactionService transactionLister
}

// NewListTransactionsHandler creates a new ListTransactionsHandler.
func NewListTransactionsHandler(svc transactionLister) *ListTransactionsHandler {
	return &ListTransactionsHandler{TransactionService: svc}
}

// Register registers the list transactions endpoint with the Huma API.
func (h *ListTransactionsHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "list-transactions",
		Method:      http.MethodGet,
		Path:        "/v1/transaction",
		Summary:     "List transactions",
		Description: "Returns one page of the caller's transactions matching the filter.",
		Tags:        []string{"Transactions"},
	}, h.handle)
}

// parseListTransactionsInput parses and validates the API input.
func parseListTransactionsInput(input *ListTransactionsInput) (service.ListRequest, error) {
	sel, err := input.Params.Selection()
	if err != nil {
		return service.ListRequest{}, httperr.From(err, "invalid filter")
	}
	return service.ListRequest{
		Selection: sel,
		Type:      sqlconfig.TransactionType(input.Type),
		Search:    input.Search,
		SortBy:    sqlconfig.SortField(input.SortBy),
		SortOrder: sqlconfig.SortOrder(input.SortOrder),
		Page:      input.Page,
		PageSize:  input.PageSize,
	}, nil
}

func (h *ListTransactionsHandler) handle(ctx context.Context, input *ListTransactionsInput) (*ListTransactionsOutput, error) {
	logData := logging.GetLogData(ctx)
	req, err := parseListTransactionsInput(input)
	if err != nil {
		return nil, err
	}

	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming("listTransactionsMs")
	}
	page, err := h.TransactionService.ListTransactions(ctx, req)
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		return nil, httperr.From(err, "failed to list transactions")
	}

	if logData != nil {
		logData.AddData("transactionCount", len(page.Transactions))
	}

	resp := ListTransactionsResponseBody{
		Transactions: make([]Transaction, len(page.Transactions)),
		Page:         page.Page,
		PageSize:     page.PageSize,
		HasMore:      page.HasMore,
	}
	for i, tx := range page.Transactions {
		resp.Transactions[i] = FromService(tx)
	}

	return &ListTransactionsOutput{Body: resp}, nil
}
