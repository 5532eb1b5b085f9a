package application

import (
	"context"

	"github.com/google/uuid"

	"github.com/agrodata/ordenes-api/internal/domains/catalog/domain"
	"github.com/agrodata/ordenes-api/internal/domains/catalog/ports"
	"github.com/agrodata/ordenes-api/internal/shared/pagination"
)

// Service orchestrates the catalog bounded context use cases.
type Service struct {
	repo ports.Repository
}

// NewService wires the catalog service with its repository.
func NewService(repo ports.Repository) *Service {
	return &Service{repo: repo}
}

// CreateProduct registers a product with a fresh identity. SKU and internal
// code must be unique across the catalog.
func (s *Service) CreateProduct(ctx context.Context, input ports.CreateProductInput) (*domain.Product, error) {
	product, err := domain.NewProduct(
		input.SKU,
		input.InternalCode,
		input.Name,
		input.Description,
		input.UnitPrice,
		input.StockQuantity,
	)
	if err != nil {
		return nil, mapError(err)
	}
	saved, err := s.repo.Create(ctx, product)
	if err != nil {
		return nil, mapError(err)
	}
	return saved, nil
}

// GetProduct loads a single product.
func (s *Service) GetProduct(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, mapError(err)
	}
	return product, nil
}

// SearchProducts returns one page of products matching the filter plus the
// total count of the filtered set.
func (s *Service) SearchProducts(ctx context.Context, input ports.SearchProductsInput) (*pagination.Result[*domain.Product], error) {
	if err := input.Page.Validate(); err != nil {
		return nil, mapError(err)
	}
	items, total, err := s.repo.Search(ctx, input.Filter, input.Page)
	if err != nil {
		return nil, mapError(err)
	}
	return pagination.NewResult(input.Page, total, items), nil
}

// UpdateProduct applies a partial update; absent fields keep their stored value.
func (s *Service) UpdateProduct(ctx context.Context, input ports.UpdateProductInput) (*domain.Product, error) {
	product, err := s.repo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, mapError(err)
	}
	update := domain.Update{
		Description:   input.Description,
		UnitPrice:     input.UnitPrice,
		StockQuantity: input.StockQuantity,
	}
	if err := product.ApplyUpdate(update); err != nil {
		return nil, mapError(err)
	}
	saved, err := s.repo.Save(ctx, product)
	if err != nil {
		return nil, mapError(err)
	}
	return saved, nil
}

// ProductsByIDs resolves products in one batch lookup; missing ids are simply
// absent from the result map.
func (s *Service) ProductsByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*domain.Product, error) {
	products, err := s.repo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, mapError(err)
	}
	return products, nil
}

// ReserveStock atomically decrements a product's stock if enough is available.
func (s *Service) ReserveStock(ctx context.Context, id uuid.UUID, quantity int) error {
	if quantity <= 0 {
		return mapError(domain.ErrInvalidQuantity)
	}
	return mapError(s.repo.ReserveStock(ctx, id, quantity))
}

var _ ports.Service = (*Service)(nil)
