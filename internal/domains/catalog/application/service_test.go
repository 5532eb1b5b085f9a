package application_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agrodata/ordenes-api/internal/domains/catalog/adapters/memory"
	"github.com/agrodata/ordenes-api/internal/domains/catalog/application"
	"github.com/agrodata/ordenes-api/internal/domains/catalog/domain"
	"github.com/agrodata/ordenes-api/internal/domains/catalog/ports"
	"github.com/agrodata/ordenes-api/internal/shared/pagination"
)

func price(raw string) decimal.Decimal {
	return decimal.RequireFromString(raw)
}

func newService(t *testing.T) *application.Service {
	t.Helper()
	return application.NewService(memory.NewRepository())
}

func createProduct(t *testing.T, service *application.Service, sku, code, name, unitPrice string, stock int) *domain.Product {
	t.Helper()
	product, err := service.CreateProduct(context.Background(), ports.CreateProductInput{
		SKU:           sku,
		InternalCode:  code,
		Name:          name,
		UnitPrice:     price(unitPrice),
		StockQuantity: stock,
	})
	require.NoError(t, err)
	return product
}

func TestCreateProduct(t *testing.T) {
	service := newService(t)

	product := createProduct(t, service, "VERD-001", "LTG-001", "Lechuga Romana", "50.005", 120)

	assert.NotEqual(t, uuid.Nil, product.ID)
	assert.Equal(t, "VERD-001", product.SKU)
	assert.True(t, product.UnitPrice.Equal(price("50.01")), "price rounds to cents, got %s", product.UnitPrice)

	loaded, err := service.GetProduct(context.Background(), product.ID)
	require.NoError(t, err)
	assert.Equal(t, product.ID, loaded.ID)
}

func TestCreateProductValidation(t *testing.T) {
	service := newService(t)
	ctx := context.Background()

	_, err := service.CreateProduct(ctx, ports.CreateProductInput{
		SKU: "  ", InternalCode: "C-1", Name: "x", UnitPrice: price("1.00"),
	})
	assert.ErrorIs(t, err, application.ErrInvalidInput)

	_, err = service.CreateProduct(ctx, ports.CreateProductInput{
		SKU: "S-1", InternalCode: "C-1", Name: "x", UnitPrice: price("-1.00"),
	})
	assert.ErrorIs(t, err, application.ErrInvalidInput)

	_, err = service.CreateProduct(ctx, ports.CreateProductInput{
		SKU: "S-1", InternalCode: "C-1", Name: "x", UnitPrice: price("1.00"), StockQuantity: -5,
	})
	assert.ErrorIs(t, err, application.ErrInvalidInput)
}

func TestCreateProductDuplicateIdentifier(t *testing.T) {
	service := newService(t)
	createProduct(t, service, "VERD-001", "LTG-001", "Lechuga Romana", "50.00", 120)

	_, err := service.CreateProduct(context.Background(), ports.CreateProductInput{
		SKU:          "VERD-001",
		InternalCode: "OTRO-001",
		Name:         "Otra Lechuga",
		UnitPrice:    price("10.00"),
	})
	require.ErrorIs(t, err, ports.ErrConflict)

	// The failed insert leaves the catalog unchanged.
	result, err := service.SearchProducts(context.Background(), ports.SearchProductsInput{
		Page: pagination.Page{Number: 1, Size: 10},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), result.TotalItems)
}

func TestGetProductNotFound(t *testing.T) {
	service := newService(t)
	_, err := service.GetProduct(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ports.ErrNotFound)
}

func TestSearchProducts(t *testing.T) {
	service := newService(t)
	createProduct(t, service, "VERD-001", "LTG-001", "Lechuga Romana", "50.00", 120)
	createProduct(t, service, "VERD-002", "TMT-001", "Tomate Saladette", "60.00", 200)
	createProduct(t, service, "VERD-003", "ZNH-001", "Zanahoria", "40.00", 150)
	createProduct(t, service, "FRUT-001", "NAR-001", "Naranja Valencia", "45.00", 180)
	createProduct(t, service, "FRUT-002", "MZN-001", "Manzana Gala", "55.00", 90)
	ctx := context.Background()

	t.Run("price band is inclusive on both ends", func(t *testing.T) {
		minPrice, maxPrice := price("40.00"), price("55.00")
		result, err := service.SearchProducts(ctx, ports.SearchProductsInput{
			Filter: ports.SearchFilter{MinPrice: &minPrice, MaxPrice: &maxPrice},
			Page:   pagination.Page{Number: 1, Size: 10},
		})
		require.NoError(t, err)
		assert.Equal(t, int64(4), result.TotalItems)
		require.Len(t, result.Items, 4)
		for _, product := range result.Items {
			assert.False(t, product.UnitPrice.LessThan(minPrice))
			assert.False(t, product.UnitPrice.GreaterThan(maxPrice))
		}
	})

	t.Run("term matches name case-insensitively", func(t *testing.T) {
		result, err := service.SearchProducts(ctx, ports.SearchProductsInput{
			Filter: ports.SearchFilter{Term: "lechuga"},
			Page:   pagination.Page{Number: 1, Size: 10},
		})
		require.NoError(t, err)
		require.Len(t, result.Items, 1)
		assert.Equal(t, "VERD-001", result.Items[0].SKU)
	})

	t.Run("filters are conjunctive", func(t *testing.T) {
		maxPrice := price("50.00")
		result, err := service.SearchProducts(ctx, ports.SearchProductsInput{
			Filter: ports.SearchFilter{Term: "tomate", MaxPrice: &maxPrice},
			Page:   pagination.Page{Number: 1, Size: 10},
		})
		require.NoError(t, err)
		assert.Equal(t, int64(0), result.TotalItems)
		assert.Empty(t, result.Items)
	})

	t.Run("page past the end is empty with the full count", func(t *testing.T) {
		result, err := service.SearchProducts(ctx, ports.SearchProductsInput{
			Page: pagination.Page{Number: 3, Size: 3},
		})
		require.NoError(t, err)
		assert.Equal(t, int64(5), result.TotalItems)
		assert.Empty(t, result.Items)
	})

	t.Run("invalid page is rejected", func(t *testing.T) {
		_, err := service.SearchProducts(ctx, ports.SearchProductsInput{
			Page: pagination.Page{Number: 0, Size: 10},
		})
		assert.ErrorIs(t, err, application.ErrInvalidInput)
	})
}

func TestUpdateProductPartial(t *testing.T) {
	service := newService(t)
	product := createProduct(t, service, "VERD-001", "LTG-001", "Lechuga Romana", "50.00", 120)
	ctx := context.Background()

	newPrice := price("52.50")
	updated, err := service.UpdateProduct(ctx, ports.UpdateProductInput{
		ID:        product.ID,
		UnitPrice: &newPrice,
	})
	require.NoError(t, err)
	assert.True(t, updated.UnitPrice.Equal(newPrice))
	assert.Equal(t, 120, updated.StockQuantity, "absent fields keep their value")
	assert.Equal(t, "VERD-001", updated.SKU)

	negative := -1
	_, err = service.UpdateProduct(ctx, ports.UpdateProductInput{ID: product.ID, StockQuantity: &negative})
	assert.ErrorIs(t, err, application.ErrInvalidInput)

	_, err = service.UpdateProduct(ctx, ports.UpdateProductInput{ID: uuid.New(), UnitPrice: &newPrice})
	assert.ErrorIs(t, err, ports.ErrNotFound)
}

func TestReserveStock(t *testing.T) {
	service := newService(t)
	product := createProduct(t, service, "VERD-001", "LTG-001", "Lechuga Romana", "50.00", 10)
	ctx := context.Background()

	require.NoError(t, service.ReserveStock(ctx, product.ID, 4))

	loaded, err := service.GetProduct(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, 6, loaded.StockQuantity)

	var insufficient *ports.InsufficientStockError
	err = service.ReserveStock(ctx, product.ID, 7)
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, product.ID, insufficient.ProductID)
	assert.Equal(t, 7, insufficient.Requested)
	assert.Equal(t, 6, insufficient.Available)

	// A rejected reservation changes nothing.
	loaded, err = service.GetProduct(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, 6, loaded.StockQuantity)

	assert.ErrorIs(t, service.ReserveStock(ctx, product.ID, 0), application.ErrInvalidInput)
	assert.ErrorIs(t, service.ReserveStock(ctx, uuid.New(), 1), ports.ErrNotFound)
}
