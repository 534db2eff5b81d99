package actions

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/budget-tracker/internal/storage"
	"github.com/carson-networks/budget-tracker/internal/storage/sqlconfig"
)

type UpdateTransaction struct {
	UserID uuid.UUID
	ID     uuid.UUID
	Update *sqlconfig.TransactionUpdate
	IAction
}

func (u *UpdateTransaction) Perform(ctx context.Context, w *storage.Writer) error {
	return w.Transactions.Update(ctx, u.UserID, u.ID, u.Update)
}

type DeleteTransaction struct {
	UserID uuid.UUID
	ID     uuid.UUID
	IAction
}

func (d *DeleteTransaction) Perform(ctx context.Context, w *storage.Writer) error {
	return w.Transactions.Delete(ctx, d.UserID, d.ID)
}
