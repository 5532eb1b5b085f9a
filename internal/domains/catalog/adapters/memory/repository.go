package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/agrodata/ordenes-api/internal/domains/catalog/domain"
	"github.com/agrodata/ordenes-api/internal/domains/catalog/ports"
	"github.com/agrodata/ordenes-api/internal/shared/pagination"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory product persistence adapter. It backs unit tests
// and the no-database fallback, and participates in memory transactions via
// Snapshot.
type Repository struct {
	mu       sync.RWMutex
	products map[uuid.UUID]*domain.Product
}

func NewRepository() *Repository {
	return &Repository{products: map[uuid.UUID]*domain.Product{}}
}

func (r *Repository) Create(_ context.Context, product *domain.Product) (*domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.products {
		if existing.SKU == product.SKU || existing.InternalCode == product.InternalCode {
			return nil, ports.ErrConflict
		}
	}
	clone := *product
	r.products[clone.ID] = &clone
	result := clone
	return &result, nil
}

func (r *Repository) GetByID(_ context.Context, id uuid.UUID) (*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	product, ok := r.products[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	clone := *product
	return &clone, nil
}

func (r *Repository) GetByIDs(_ context.Context, ids []uuid.UUID) (map[uuid.UUID]*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	result := make(map[uuid.UUID]*domain.Product, len(ids))
	for _, id := range ids {
		if product, ok := r.products[id]; ok {
			clone := *product
			result[id] = &clone
		}
	}
	return result, nil
}

func (r *Repository) Search(_ context.Context, filter ports.SearchFilter, page pagination.Page) ([]*domain.Product, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := make([]*domain.Product, 0, len(r.products))
	for _, product := range r.products {
		if matches(product, filter) {
			clone := *product
			matched = append(matched, &clone)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].SKU < matched[j].SKU })

	total := int64(len(matched))
	start := page.Offset()
	if start >= len(matched) {
		return []*domain.Product{}, total, nil
	}
	end := start + page.Size
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

func (r *Repository) Save(_ context.Context, product *domain.Product) (*domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.products[product.ID]; !ok {
		return nil, ports.ErrNotFound
	}
	clone := *product
	r.products[clone.ID] = &clone
	result := clone
	return &result, nil
}

func (r *Repository) ReserveStock(_ context.Context, id uuid.UUID, quantity int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	product, ok := r.products[id]
	if !ok {
		return ports.ErrNotFound
	}
	if product.StockQuantity < quantity {
		return &ports.InsufficientStockError{
			ProductID: id,
			Requested: quantity,
			Available: product.StockQuantity,
		}
	}
	product.StockQuantity -= quantity
	return nil
}

// Snapshot captures the product table for memory transactions.
func (r *Repository) Snapshot() func() {
	r.mu.Lock()
	defer r.mu.Unlock()
	saved := make(map[uuid.UUID]*domain.Product, len(r.products))
	for id, product := range r.products {
		clone := *product
		saved[id] = &clone
	}
	return func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		r.products = saved
	}
}

func matches(product *domain.Product, filter ports.SearchFilter) bool {
	if term := strings.ToLower(strings.TrimSpace(filter.Term)); term != "" {
		name := strings.ToLower(product.Name)
		description := strings.ToLower(product.Description)
		if !strings.Contains(name, term) && !strings.Contains(description, term) {
			return false
		}
	}
	if filter.MinPrice != nil && product.UnitPrice.LessThan(*filter.MinPrice) {
		return false
	}
	if filter.MaxPrice != nil && product.UnitPrice.GreaterThan(*filter.MaxPrice) {
		return false
	}
	return true
}
