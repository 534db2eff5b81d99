// Package httperr maps service errors onto huma status errors.
package httperr

import (
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/budget-tracker/internal/auth"
	"github.com/carson-networks/budget-tracker/internal/filter"
	"github.com/carson-networks/budget-tracker/internal/recurrence"
	"github.com/carson-networks/budget-tracker/internal/service"
)

// From converts err into a huma error. msg is used for errors the caller
// cannot fix; validation errors carry their own message.
func From(err error, msg string) error {
	switch {
	case errors.Is(err, auth.ErrUnauthenticated):
		return huma.NewError(http.StatusUnauthorized, err.Error())
	case errors.Is(err, service.ErrValidation),
		errors.Is(err, filter.ErrInvalidFilter),
		errors.Is(err, recurrence.ErrInvalidSeries):
		return huma.NewError(http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrNotFound):
		return huma.NewError(http.StatusNotFound, "transaction not found")
	case errors.Is(err, service.ErrPartialSeries):
		return huma.NewError(http.StatusInternalServerError, err.Error())
	default:
		return huma.NewError(http.StatusInternalServerError, msg, err)
	}
}
