package application

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	catalogports "github.com/agrodata/ordenes-api/internal/domains/catalog/ports"
	"github.com/agrodata/ordenes-api/internal/domains/orders/domain"
	"github.com/agrodata/ordenes-api/internal/domains/orders/ports"
	"github.com/agrodata/ordenes-api/internal/shared/pagination"
	"github.com/agrodata/ordenes-api/internal/shared/storage"
)

// ErrInvalidInput signals the request violated an order invariant.
var ErrInvalidInput = errors.New("invalid order input")

// UnknownProductError reports an order line referencing a product that does
// not exist in the catalog.
type UnknownProductError struct {
	ProductID uuid.UUID
}

func (e *UnknownProductError) Error() string {
	return fmt.Sprintf("unknown product %s", e.ProductID)
}

func mapError(err error) error {
	if err == nil {
		return nil
	}
	var transition *domain.InvalidTransitionError
	if errors.Is(err, domain.ErrMissingCustomer) ||
		errors.Is(err, domain.ErrShortAddress) ||
		errors.Is(err, domain.ErrNoItems) ||
		errors.Is(err, domain.ErrInvalidQuantity) ||
		errors.Is(err, domain.ErrInvalidStatus) ||
		errors.Is(err, pagination.ErrInvalidPage) ||
		errors.As(err, &transition) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	var unknown *UnknownProductError
	var insufficient *catalogports.InsufficientStockError
	if errors.Is(err, ports.ErrNotFound) ||
		errors.Is(err, storage.ErrUnavailable) ||
		errors.As(err, &unknown) ||
		errors.As(err, &insufficient) {
		return err
	}
	return fmt.Errorf("%w: %w", storage.ErrUnavailable, err)
}
