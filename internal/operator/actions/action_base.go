package actions

import (
	"context"

	"github.com/carson-networks/budget-tracker/internal/storage"
)

// IAction is a unit of write work executed by an operator worker. Every
// write goes through w so that it commits or rolls back as one.
type IAction interface {
	Perform(ctx context.Context, w *storage.Writer) error
}
