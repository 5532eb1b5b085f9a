package ports

import (
	"context"

	"github.com/google/uuid"

	catalogdomain "github.com/agrodata/ordenes-api/internal/domains/catalog/domain"
	"github.com/agrodata/ordenes-api/internal/domains/orders/domain"
	"github.com/agrodata/ordenes-api/internal/shared/pagination"
)

// OrderItemInput is one requested line of a new order.
type OrderItemInput struct {
	ProductID uuid.UUID
	Quantity  int
}

// CreateOrderInput carries the fields required to place an order.
type CreateOrderInput struct {
	CustomerID      uuid.UUID
	ShippingAddress string
	BillingAddress  string
	Notes           string
	Items           []OrderItemInput
}

// ListOrdersInput combines filters and page for an order listing. Status is
// the raw string from the caller; the service validates it.
type ListOrdersInput struct {
	Status     string
	CustomerID *uuid.UUID
	Page       pagination.Page
}

// Service exposes order ledger use cases to adapters.
type Service interface {
	CreateOrder(ctx context.Context, input CreateOrderInput) (*domain.Order, error)
	GetOrder(ctx context.Context, id uuid.UUID) (*domain.Order, error)
	ListOrders(ctx context.Context, input ListOrdersInput) (*pagination.Result[*domain.Order], error)
	UpdateOrderStatus(ctx context.Context, id uuid.UUID, newStatus string) (*domain.Order, error)
}

// ProductCatalog is what the order ledger needs from the catalog: batch
// resolution for price snapshots and the atomic stock reservation.
type ProductCatalog interface {
	ProductsByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*catalogdomain.Product, error)
	ReserveStock(ctx context.Context, id uuid.UUID, quantity int) error
}
