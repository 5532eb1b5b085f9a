package ports

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/agrodata/ordenes-api/internal/domains/orders/domain"
	"github.com/agrodata/ordenes-api/internal/shared/pagination"
)

var ErrNotFound = errors.New("order not found")

// ListFilter narrows an order listing; nil fields match everything.
type ListFilter struct {
	Status     *domain.Status
	CustomerID *uuid.UUID
}

// Repository persists orders and their items.
type Repository interface {
	// Create inserts the order and its items. It joins an ambient transaction
	// carried in the context so the insert commits atomically with the stock
	// reservations made alongside it.
	Create(ctx context.Context, order *domain.Order) (*domain.Order, error)
	// GetByID loads the order with its items; item display names are resolved
	// from the current product rows.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Order, error)
	// List returns one page of order summaries (no items) plus the total count.
	List(ctx context.Context, filter ListFilter, page pagination.Page) ([]*domain.Order, int64, error)
	// UpdateStatus persists a transition conditionally on the current status.
	// If the row's status no longer equals from, it reports an
	// InvalidTransitionError carrying the actual current status.
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to domain.Status) error
}
