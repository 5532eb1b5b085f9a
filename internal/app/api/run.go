// Package api boots the HTTP process: configuration, observability,
// repositories, services, and the gin router.
package api

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	catalogmemory "github.com/agrodata/ordenes-api/internal/domains/catalog/adapters/memory"
	catalogobs "github.com/agrodata/ordenes-api/internal/domains/catalog/adapters/observability"
	catalogpostgres "github.com/agrodata/ordenes-api/internal/domains/catalog/adapters/persistence/postgres"
	catalogapp "github.com/agrodata/ordenes-api/internal/domains/catalog/application"
	catalogports "github.com/agrodata/ordenes-api/internal/domains/catalog/ports"
	ordersmemory "github.com/agrodata/ordenes-api/internal/domains/orders/adapters/memory"
	ordersobs "github.com/agrodata/ordenes-api/internal/domains/orders/adapters/observability"
	orderspostgres "github.com/agrodata/ordenes-api/internal/domains/orders/adapters/persistence/postgres"
	ordersapp "github.com/agrodata/ordenes-api/internal/domains/orders/application"
	ordersports "github.com/agrodata/ordenes-api/internal/domains/orders/ports"
	"github.com/agrodata/ordenes-api/internal/httpapi"
	"github.com/agrodata/ordenes-api/internal/platform/migrations"
	platformobservability "github.com/agrodata/ordenes-api/internal/platform/observability"
	platformpostgres "github.com/agrodata/ordenes-api/internal/platform/postgres"
	"github.com/agrodata/ordenes-api/internal/platform/seed"
	"github.com/agrodata/ordenes-api/internal/shared/storage"
)

// Run boots the orders API with observability, repositories, and transport
// wired.
func Run(ctx context.Context) error {
	const serviceName = "ordenes-api"

	cfg, err := LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	instruments, shutdown, err := platformobservability.Init(ctx, serviceName)
	if err != nil {
		return fmt.Errorf("failed to initialize observability: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	catalogRepo, ordersRepo, txManager, cleanup := buildRepositories(ctx, cfg, logger)
	defer cleanup()

	catalogService := catalogobs.New(
		catalogapp.NewService(catalogRepo),
		catalogobs.WithLogger(logger),
		catalogobs.WithTracer(instruments.Tracer("internal.catalog.application")),
		catalogobs.WithMeter(instruments.Meter("internal.catalog.application")),
	)
	ordersService := ordersobs.New(
		ordersapp.NewService(ordersRepo, catalogService, txManager),
		ordersobs.WithLogger(logger),
		ordersobs.WithTracer(instruments.Tracer("internal.orders.application")),
		ordersobs.WithMeter(instruments.Meter("internal.orders.application")),
	)

	if cfg.SeedDemoData {
		if err := seed.Catalog(ctx, catalogService, logger); err != nil {
			return fmt.Errorf("failed to seed demo catalog: %w", err)
		}
	}

	router := httpapi.NewRouter(httpapi.Handlers{
		Products: httpapi.NewProductsAPI(catalogService),
		Orders:   httpapi.NewOrdersAPI(ordersService),
	})
	router.Use(otelgin.Middleware(serviceName))

	addr := ":" + cfg.Port
	logger.Info("orders API listening", slog.String("addr", addr))
	if err := router.Run(addr); err != nil {
		logger.Error("orders API server exited", slog.String("addr", addr), slog.String("error", err.Error()))
		return err
	}
	return nil
}

// buildRepositories wires the Postgres adapters when a DSN is configured and
// reachable, falling back to the in-memory adapters otherwise. Both paths
// share one transaction manager so order placement stays atomic.
func buildRepositories(ctx context.Context, cfg Config, logger *slog.Logger) (catalogports.Repository, ordersports.Repository, storage.TxManager, func()) {
	if cfg.PostgresDSN == "" {
		logger.Warn("POSTGRES_DSN not set, falling back to in-memory repositories")
		return buildMemoryRepositories()
	}
	db, err := platformpostgres.Connect(ctx, cfg.PostgresDSN)
	if err != nil {
		logger.Warn("failed to connect to postgres, falling back to memory", slog.String("error", err.Error()))
		return buildMemoryRepositories()
	}
	if err := migrations.Run(db); err != nil {
		logger.Warn("failed to run migrations, falling back to memory", slog.String("error", err.Error()))
		return buildMemoryRepositories()
	}
	sqlDB, err := db.DB()
	if err != nil {
		logger.Warn("failed to unwrap postgres connection, falling back to memory", slog.String("error", err.Error()))
		return buildMemoryRepositories()
	}
	logger.Info("repositories configured with postgres")
	return catalogpostgres.NewRepository(db), orderspostgres.NewRepository(db),
		platformpostgres.NewTxManager(db), func() { _ = sqlDB.Close() }
}

func buildMemoryRepositories() (catalogports.Repository, ordersports.Repository, storage.TxManager, func()) {
	catalogRepo := catalogmemory.NewRepository()
	ordersRepo := ordersmemory.NewRepository(catalogRepo)
	return catalogRepo, ordersRepo, storage.NewMemoryTxManager(catalogRepo, ordersRepo), func() {}
}
