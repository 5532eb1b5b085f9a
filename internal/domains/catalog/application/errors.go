package application

import (
	"errors"
	"fmt"

	"github.com/agrodata/ordenes-api/internal/domains/catalog/domain"
	"github.com/agrodata/ordenes-api/internal/domains/catalog/ports"
	"github.com/agrodata/ordenes-api/internal/shared/pagination"
	"github.com/agrodata/ordenes-api/internal/shared/storage"
)

// ErrInvalidInput signals the request violated a catalog invariant.
var ErrInvalidInput = errors.New("invalid product input")

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrEmptySKU) ||
		errors.Is(err, domain.ErrEmptyInternalCode) ||
		errors.Is(err, domain.ErrEmptyName) ||
		errors.Is(err, domain.ErrNegativePrice) ||
		errors.Is(err, domain.ErrNegativeStock) ||
		errors.Is(err, domain.ErrInvalidQuantity) ||
		errors.Is(err, pagination.ErrInvalidPage) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	var insufficient *ports.InsufficientStockError
	if errors.Is(err, ports.ErrNotFound) ||
		errors.Is(err, ports.ErrConflict) ||
		errors.As(err, &insufficient) {
		return err
	}
	return fmt.Errorf("%w: %w", storage.ErrUnavailable, err)
}
