package service

import (
	"errors"

	"github.com/carson-networks/budget-tracker/internal/storage/sqlconfig"
)

var (
	// ErrValidation marks input rejected before any store call.
	ErrValidation = errors.New("validation failed")
	// ErrNotFound is returned for missing transactions and for those owned by another user.
	ErrNotFound = sqlconfig.ErrNotFound
	// ErrPartialSeries means a recurring series stopped part way; earlier occurrences stay persisted.
	ErrPartialSeries = errors.New("recurring series partially created")
)
