package repository

import (
	"errors"

	apperrors "github.com/Cinemaker123/nutrition-tracker/internal/errors"
)

// ErrNotFound is returned when a delete targets an id that does not exist
var ErrNotFound = errors.New("record not found")

func notFound(what string) error {
	return apperrors.NewNotFoundError(ErrNotFound, what)
}
