//go:build integration
// +build integration

// To enable gopls support for this file, add the following to your VSCode settings.json:
// "gopls": {
//   "buildFlags": ["-tags=integration"]
// }

package postgres_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	catalogpostgres "github.com/agrodata/ordenes-api/internal/domains/catalog/adapters/persistence/postgres"
	"github.com/agrodata/ordenes-api/internal/domains/catalog/domain"
	"github.com/agrodata/ordenes-api/internal/domains/catalog/ports"
	"github.com/agrodata/ordenes-api/internal/platform/migrations"
	platformpostgres "github.com/agrodata/ordenes-api/internal/platform/postgres"
	"github.com/agrodata/ordenes-api/internal/shared/pagination"
)

func setupPostgresContainer(t *testing.T) (*gorm.DB, func()) {
	ctx := context.Background()

	pgContainer, err := tcpostgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:15-alpine"),
		tcpostgres.WithDatabase("ordenes_test"),
		tcpostgres.WithUsername("test"),
		tcpostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	err = migrations.Run(db)
	require.NoError(t, err)

	cleanup := func() {
		sqlDB, _ := db.DB()
		if sqlDB != nil {
			sqlDB.Close()
		}
		pgContainer.Terminate(ctx)
	}

	return db, cleanup
}

func mustProduct(t *testing.T, sku, code, name, unitPrice string, stock int) *domain.Product {
	t.Helper()
	product, err := domain.NewProduct(sku, code, name, "", decimal.RequireFromString(unitPrice), stock)
	require.NoError(t, err)
	return product
}

func TestPostgresRepository_CreateAndGetByID(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupPostgresContainer(t)
	defer cleanup()

	repo := catalogpostgres.NewRepository(db)
	ctx := context.Background()

	product := mustProduct(t, "VERD-001", "LTG-001", "Lechuga Romana", "50.00", 120)
	saved, err := repo.Create(ctx, product)
	require.NoError(t, err)
	assert.Equal(t, product.ID, saved.ID)

	retrieved, err := repo.GetByID(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, "Lechuga Romana", retrieved.Name)
	assert.True(t, retrieved.UnitPrice.Equal(decimal.RequireFromString("50.00")))
	assert.Equal(t, 120, retrieved.StockQuantity)

	_, err = repo.GetByID(ctx, uuid.New())
	assert.ErrorIs(t, err, ports.ErrNotFound)
}

func TestPostgresRepository_CreateDuplicate(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupPostgresContainer(t)
	defer cleanup()

	repo := catalogpostgres.NewRepository(db)
	ctx := context.Background()

	_, err := repo.Create(ctx, mustProduct(t, "VERD-001", "LTG-001", "Lechuga Romana", "50.00", 120))
	require.NoError(t, err)

	_, err = repo.Create(ctx, mustProduct(t, "VERD-001", "OTRO-001", "Otra Lechuga", "10.00", 5))
	assert.ErrorIs(t, err, ports.ErrConflict)

	_, err = repo.Create(ctx, mustProduct(t, "OTRO-001", "LTG-001", "Otra Lechuga", "10.00", 5))
	assert.ErrorIs(t, err, ports.ErrConflict)
}

func TestPostgresRepository_Search(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupPostgresContainer(t)
	defer cleanup()

	repo := catalogpostgres.NewRepository(db)
	ctx := context.Background()

	seed := []struct {
		sku, code, name, price string
	}{
		{"VERD-001", "LTG-001", "Lechuga Romana", "50.00"},
		{"VERD-002", "TMT-001", "Tomate Saladette", "60.00"},
		{"VERD-003", "ZNH-001", "Zanahoria", "40.00"},
		{"FRUT-001", "NAR-001", "Naranja Valencia", "45.00"},
		{"FRUT-002", "MZN-001", "Manzana Gala", "55.00"},
	}
	for _, p := range seed {
		_, err := repo.Create(ctx, mustProduct(t, p.sku, p.code, p.name, p.price, 10))
		require.NoError(t, err)
	}
	page := pagination.Page{Number: 1, Size: 10}

	minPrice := decimal.RequireFromString("40.00")
	maxPrice := decimal.RequireFromString("55.00")
	products, total, err := repo.Search(ctx, ports.SearchFilter{MinPrice: &minPrice, MaxPrice: &maxPrice}, page)
	require.NoError(t, err)
	assert.Equal(t, int64(4), total)
	assert.Len(t, products, 4)

	products, total, err = repo.Search(ctx, ports.SearchFilter{Term: "lechuga"}, page)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, products, 1)
	assert.Equal(t, "VERD-001", products[0].SKU)

	products, total, err = repo.Search(ctx, ports.SearchFilter{}, pagination.Page{Number: 2, Size: 3})
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	assert.Len(t, products, 2)
}

func TestPostgresRepository_Save(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupPostgresContainer(t)
	defer cleanup()

	repo := catalogpostgres.NewRepository(db)
	ctx := context.Background()

	product, err := repo.Create(ctx, mustProduct(t, "VERD-001", "LTG-001", "Lechuga Romana", "50.00", 120))
	require.NoError(t, err)

	product.UnitPrice = decimal.RequireFromString("52.50")
	product.StockQuantity = 80
	updated, err := repo.Save(ctx, product)
	require.NoError(t, err)
	assert.True(t, updated.UnitPrice.Equal(decimal.RequireFromString("52.50")))
	assert.Equal(t, 80, updated.StockQuantity)
	assert.Equal(t, "VERD-001", updated.SKU, "sku is immutable")

	missing := *product
	missing.ID = uuid.New()
	_, err = repo.Save(ctx, &missing)
	assert.ErrorIs(t, err, ports.ErrNotFound)
}

func TestPostgresRepository_ReserveStock(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupPostgresContainer(t)
	defer cleanup()

	repo := catalogpostgres.NewRepository(db)
	ctx := context.Background()

	product, err := repo.Create(ctx, mustProduct(t, "VERD-003", "ZNH-001", "Zanahoria", "40.00", 5))
	require.NoError(t, err)

	require.NoError(t, repo.ReserveStock(ctx, product.ID, 3))

	var insufficient *ports.InsufficientStockError
	err = repo.ReserveStock(ctx, product.ID, 3)
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, 3, insufficient.Requested)
	assert.Equal(t, 2, insufficient.Available)

	assert.ErrorIs(t, repo.ReserveStock(ctx, uuid.New(), 1), ports.ErrNotFound)
}

func TestPostgresRepository_ReserveStockConcurrentLastUnit(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupPostgresContainer(t)
	defer cleanup()

	repo := catalogpostgres.NewRepository(db)
	ctx := context.Background()

	product, err := repo.Create(ctx, mustProduct(t, "FRUT-002", "MZN-001", "Manzana Gala", "55.00", 1))
	require.NoError(t, err)

	const attempts = 8
	results := make([]error, attempts)
	var wg sync.WaitGroup
	wg.Add(attempts)
	for i := 0; i < attempts; i++ {
		go func(i int) {
			defer wg.Done()
			results[i] = repo.ReserveStock(ctx, product.ID, 1)
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range results {
		if err == nil {
			succeeded++
			continue
		}
		var insufficient *ports.InsufficientStockError
		require.ErrorAs(t, err, &insufficient)
	}
	assert.Equal(t, 1, succeeded, "exactly one reservation wins the last unit")

	final, err := repo.GetByID(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, final.StockQuantity)
}

func TestPostgresTxManager_RollbackRestoresStock(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupPostgresContainer(t)
	defer cleanup()

	repo := catalogpostgres.NewRepository(db)
	tx := platformpostgres.NewTxManager(db)
	ctx := context.Background()

	product, err := repo.Create(ctx, mustProduct(t, "VERD-001", "LTG-001", "Lechuga Romana", "50.00", 10))
	require.NoError(t, err)

	boom := errors.New("boom")
	err = tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := repo.ReserveStock(ctx, product.ID, 4); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	final, err := repo.GetByID(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, final.StockQuantity, "rolled back reservation leaves stock untouched")
}
