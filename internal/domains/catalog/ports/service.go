package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/agrodata/ordenes-api/internal/domains/catalog/domain"
	"github.com/agrodata/ordenes-api/internal/shared/pagination"
)

// CreateProductInput carries the fields required to register a product.
type CreateProductInput struct {
	SKU           string
	InternalCode  string
	Name          string
	Description   string
	UnitPrice     decimal.Decimal
	StockQuantity int
}

// UpdateProductInput carries a partial update; nil fields are untouched.
type UpdateProductInput struct {
	ID            uuid.UUID
	Description   *string
	UnitPrice     *decimal.Decimal
	StockQuantity *int
}

// SearchProductsInput combines filter and page for a catalog search.
type SearchProductsInput struct {
	Filter SearchFilter
	Page   pagination.Page
}

// Service exposes catalog use cases to adapters and to the order ledger.
type Service interface {
	CreateProduct(ctx context.Context, input CreateProductInput) (*domain.Product, error)
	GetProduct(ctx context.Context, id uuid.UUID) (*domain.Product, error)
	SearchProducts(ctx context.Context, input SearchProductsInput) (*pagination.Result[*domain.Product], error)
	UpdateProduct(ctx context.Context, input UpdateProductInput) (*domain.Product, error)
	ProductsByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*domain.Product, error)
	ReserveStock(ctx context.Context, id uuid.UUID, quantity int) error
}
