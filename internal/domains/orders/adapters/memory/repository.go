package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	catalogports "github.com/agrodata/ordenes-api/internal/domains/catalog/ports"
	"github.com/agrodata/ordenes-api/internal/domains/orders/domain"
	"github.com/agrodata/ordenes-api/internal/domains/orders/ports"
	"github.com/agrodata/ordenes-api/internal/shared/pagination"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory order persistence adapter. Item display names
// are resolved against the catalog repository at read time, mirroring the
// Postgres adapter's join.
type Repository struct {
	mu       sync.RWMutex
	orders   map[uuid.UUID]*domain.Order
	products catalogports.Repository
}

func NewRepository(products catalogports.Repository) *Repository {
	return &Repository{
		orders:   map[uuid.UUID]*domain.Order{},
		products: products,
	}
}

func (r *Repository) Create(_ context.Context, order *domain.Order) (*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := cloneOrder(order)
	r.orders[clone.ID] = clone
	result := cloneOrder(clone)
	return result, nil
}

func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	r.mu.RLock()
	order, ok := r.orders[id]
	if !ok {
		r.mu.RUnlock()
		return nil, ports.ErrNotFound
	}
	clone := cloneOrder(order)
	r.mu.RUnlock()

	r.resolveNames(ctx, clone)
	return clone, nil
}

func (r *Repository) List(_ context.Context, filter ports.ListFilter, page pagination.Page) ([]*domain.Order, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := make([]*domain.Order, 0, len(r.orders))
	for _, order := range r.orders {
		if filter.Status != nil && order.Status != *filter.Status {
			continue
		}
		if filter.CustomerID != nil && order.CustomerID != *filter.CustomerID {
			continue
		}
		summary := cloneOrder(order)
		summary.Items = nil
		matched = append(matched, summary)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].OrderDate.After(matched[j].OrderDate) })

	total := int64(len(matched))
	start := page.Offset()
	if start >= len(matched) {
		return []*domain.Order{}, total, nil
	}
	end := start + page.Size
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

func (r *Repository) UpdateStatus(_ context.Context, id uuid.UUID, from, to domain.Status) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	order, ok := r.orders[id]
	if !ok {
		return ports.ErrNotFound
	}
	if order.Status != from {
		return &domain.InvalidTransitionError{From: order.Status, To: to}
	}
	order.Status = to
	return nil
}

// Snapshot captures the order table for memory transactions.
func (r *Repository) Snapshot() func() {
	r.mu.Lock()
	defer r.mu.Unlock()
	saved := make(map[uuid.UUID]*domain.Order, len(r.orders))
	for id, order := range r.orders {
		saved[id] = cloneOrder(order)
	}
	return func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		r.orders = saved
	}
}

func (r *Repository) resolveNames(ctx context.Context, order *domain.Order) {
	if r.products == nil {
		return
	}
	ids := make([]uuid.UUID, 0, len(order.Items))
	for _, item := range order.Items {
		ids = append(ids, item.ProductID)
	}
	products, err := r.products.GetByIDs(ctx, ids)
	if err != nil {
		return
	}
	for i := range order.Items {
		if product, ok := products[order.Items[i].ProductID]; ok {
			order.Items[i].ProductName = product.Name
		} else {
			order.Items[i].ProductName = domain.UnavailableProductName
		}
	}
}

func cloneOrder(order *domain.Order) *domain.Order {
	clone := *order
	if order.Items != nil {
		clone.Items = make([]domain.Item, len(order.Items))
		copy(clone.Items, order.Items)
	}
	return &clone
}
