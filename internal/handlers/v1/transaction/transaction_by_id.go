package transaction

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/budget-tracker/internal/handlers/v1/httperr"
	"github.com/carson-networks/budget-tracker/internal/service"
)

type TransactionIDInput struct {
	ID string `path:"id" format:"uuid" doc:"Transaction UUID"`
}

type UpdateTransactionInput struct {
	ID   string `path:"id" format:"uuid" doc:"Transaction UUID"`
	Body TransactionBody
}

type TransactionOutput struct {
	Body Transaction
}

type transactionStore interface {
	GetTransaction(ctx context.Context, id uuid.UUID) (*service.Transaction, error)
	UpdateTransaction(ctx context.Context, id uuid.UUID, tx service.Transaction) error
	DeleteTransaction(ctx context.Context, id uuid.UUID) error
}

// TransactionHandler handles GET, PUT and DELETE on /v1/transaction/{id}.
type TransactionHandler struct {
	TransactionService transactionStore
}

func NewTransactionHandler(svc transactionStore) *TransactionHandler {
	return &TransactionHandler{TransactionService: svc}
}

func (h *TransactionHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "get-transaction",
		Method:      http.MethodGet,
		Path:        "/v1/transaction/{id}",
		Summary:     "Get transaction",
		Tags:        []string{"Transactions"},
	}, h.handleGet)

	huma.Register(api, huma.Operation{
		OperationID: "update-transaction",
		Method:      http.MethodPut,
		Path:        "/v1/transaction/{id}",
		Summary:     "Update transaction",
		Description: "Overwrites every field of the transaction. Other occurrences of its series are untouched.",
		Tags:        []string{"Transactions"},
	}, h.handleUpdate)

	huma.Register(api, huma.Operation{
		OperationID:   "delete-transaction",
		Method:        http.MethodDelete,
		Path:          "/v1/transaction/{id}",
		Summary:       "Delete transaction",
		Description:   "Deletes one transaction and its reminders.",
		Tags:          []string{"Transactions"},
		DefaultStatus: http.StatusNoContent,
	}, h.handleDelete)
}

func parseID(value string) (uuid.UUID, error) {
	id, err := uuid.FromString(value)
	if err != nil {
		return uuid.Nil, huma.NewError(http.StatusBadRequest, "invalid id", err)
	}
	return id, nil
}

func (h *TransactionHandler) handleGet(ctx context.Context, input *TransactionIDInput) (*TransactionOutput, error) {
	id, err := parseID(input.ID)
	if err != nil {
		return nil, err
	}

	tx, err := h.TransactionService.GetTransaction(ctx, id)
	if err != nil {
		return nil, httperr.From(err, "failed to get transaction")
	}
	return &TransactionOutput{Body: FromService(*tx)}, nil
}

func (h *TransactionHandler) handleUpdate(ctx context.Context, input *UpdateTransactionInput) (*TransactionOutput, error) {
	id, err := parseID(input.ID)
	if err != nil {
		return nil, err
	}
	tx, err := input.Body.toService()
	if err != nil {
		return nil, err
	}

	if err := h.TransactionService.UpdateTransaction(ctx, id, tx); err != nil {
		return nil, httperr.From(err, "failed to update transaction")
	}

	updated, err := h.TransactionService.GetTransaction(ctx, id)
	if err != nil {
		return nil, httperr.From(err, "failed to get transaction")
	}
	return &TransactionOutput{Body: FromService(*updated)}, nil
}

func (h *TransactionHandler) handleDelete(ctx context.Context, input *TransactionIDInput) (*struct{}, error) {
	id, err := parseID(input.ID)
	if err != nil {
		return nil, err
	}

	if err := h.TransactionService.DeleteTransaction(ctx, id); err != nil {
		return nil, httperr.From(err, "failed to delete transaction")
	}
	return nil, nil
}
