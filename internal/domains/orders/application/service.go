package application

import (
	"context"

	"github.com/google/uuid"

	catalogports "github.com/agrodata/ordenes-api/internal/domains/catalog/ports"
	"github.com/agrodata/ordenes-api/internal/domains/orders/domain"
	"github.com/agrodata/ordenes-api/internal/domains/orders/ports"
	"github.com/agrodata/ordenes-api/internal/shared/pagination"
	"github.com/agrodata/ordenes-api/internal/shared/storage"
)

// Service orchestrates the order ledger use cases: order creation with a
// point-in-time price/stock snapshot, retrieval, and status transitions.
type Service struct {
	repo    ports.Repository
	catalog ports.ProductCatalog
	tx      storage.TxManager
}

// NewService wires the ledger with its repository, the catalog it reserves
// stock through, and the transaction manager spanning both.
func NewService(repo ports.Repository, catalog ports.ProductCatalog, tx storage.TxManager) *Service {
	return &Service{repo: repo, catalog: catalog, tx: tx}
}

// CreateOrder places an order as one atomic unit of work: every referenced
// product is resolved in one batch, validated in input order (first failure
// wins), prices are snapshotted, stock is reserved per line, and the order is
// inserted — all inside a single transaction. On any failure nothing commits.
//
// Duplicate product ids in the item list stay as separate lines; a cumulative
// shortage across duplicates is caught by the conditional reservation.
func (s *Service) CreateOrder(ctx context.Context, input ports.CreateOrderInput) (*domain.Order, error) {
	if err := validateItems(input.Items); err != nil {
		return nil, mapError(err)
	}

	var created *domain.Order
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		products, err := s.catalog.ProductsByIDs(ctx, distinctProductIDs(input.Items))
		if err != nil {
			return err
		}

		lines := make([]domain.Line, 0, len(input.Items))
		for _, item := range input.Items {
			product, ok := products[item.ProductID]
			if !ok {
				return &UnknownProductError{ProductID: item.ProductID}
			}
			if product.StockQuantity < item.Quantity {
				return &catalogports.InsufficientStockError{
					ProductID: item.ProductID,
					Requested: item.Quantity,
					Available: product.StockQuantity,
				}
			}
			lines = append(lines, domain.Line{
				ProductID:   product.ID,
				ProductName: product.Name,
				Quantity:    item.Quantity,
				UnitPrice:   product.UnitPrice,
			})
		}

		order, err := domain.NewOrder(
			input.CustomerID,
			input.ShippingAddress,
			input.BillingAddress,
			input.Notes,
			lines,
		)
		if err != nil {
			return err
		}

		for _, item := range order.Items {
			if err := s.catalog.ReserveStock(ctx, item.ProductID, item.Quantity); err != nil {
				return err
			}
		}

		created, err = s.repo.Create(ctx, order)
		return err
	})
	if err != nil {
		return nil, mapError(err)
	}
	return created, nil
}

// GetOrder loads an order with its items.
func (s *Service) GetOrder(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	order, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, mapError(err)
	}
	return order, nil
}

// ListOrders returns one page of order summaries. Filters are conjunctive; an
// unknown status value fails the call.
func (s *Service) ListOrders(ctx context.Context, input ports.ListOrdersInput) (*pagination.Result[*domain.Order], error) {
	if err := input.Page.Validate(); err != nil {
		return nil, mapError(err)
	}
	filter := ports.ListFilter{CustomerID: input.CustomerID}
	if input.Status != "" {
		status, err := domain.ParseStatus(input.Status)
		if err != nil {
			return nil, mapError(err)
		}
		filter.Status = &status
	}
	orders, total, err := s.repo.List(ctx, filter, input.Page)
	if err != nil {
		return nil, mapError(err)
	}
	return pagination.NewResult(input.Page, total, orders), nil
}

// UpdateOrderStatus moves an order along the status graph. Cancelling does not
// restock reserved quantities; stock decremented at creation stays decremented.
func (s *Service) UpdateOrderStatus(ctx context.Context, id uuid.UUID, newStatus string) (*domain.Order, error) {
	next, err := domain.ParseStatus(newStatus)
	if err != nil {
		return nil, mapError(err)
	}
	order, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, mapError(err)
	}
	current := order.Status
	if err := order.TransitionTo(next); err != nil {
		return nil, mapError(err)
	}
	if err := s.repo.UpdateStatus(ctx, id, current, next); err != nil {
		return nil, mapError(err)
	}
	return order, nil
}

func validateItems(items []ports.OrderItemInput) error {
	if len(items) == 0 {
		return domain.ErrNoItems
	}
	for _, item := range items {
		if item.Quantity < 1 {
			return domain.ErrInvalidQuantity
		}
	}
	return nil
}

func distinctProductIDs(items []ports.OrderItemInput) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(items))
	ids := make([]uuid.UUID, 0, len(items))
	for _, item := range items {
		if _, ok := seen[item.ProductID]; ok {
			continue
		}
		seen[item.ProductID] = struct{}{}
		ids = append(ids, item.ProductID)
	}
	return ids
}

var _ ports.Service = (*Service)(nil)
