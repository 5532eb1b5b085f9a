package ports

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/agrodata/ordenes-api/internal/domains/catalog/domain"
	"github.com/agrodata/ordenes-api/internal/shared/pagination"
)

var (
	ErrNotFound = errors.New("product not found")
	ErrConflict = errors.New("product sku or internal code already in use")
)

// InsufficientStockError reports a reservation that exceeded available stock.
type InsufficientStockError struct {
	ProductID uuid.UUID
	Requested int
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %s: requested %d, available %d",
		e.ProductID, e.Requested, e.Available)
}

// SearchFilter narrows a product search. Term matches name or description
// case-insensitively; price bounds are inclusive.
type SearchFilter struct {
	Term     string
	MinPrice *decimal.Decimal
	MaxPrice *decimal.Decimal
}

// Repository persists products. ReserveStock is the atomic check-and-decrement
// the order ledger depends on; it must never leave a window between the stock
// check and the write.
type Repository interface {
	Create(ctx context.Context, product *domain.Product) (*domain.Product, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*domain.Product, error)
	Search(ctx context.Context, filter SearchFilter, page pagination.Page) ([]*domain.Product, int64, error)
	Save(ctx context.Context, product *domain.Product) (*domain.Product, error)
	ReserveStock(ctx context.Context, id uuid.UUID, quantity int) error
}
