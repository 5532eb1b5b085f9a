// Package seed loads a small demo catalog so a fresh deployment has products
// to order against.
package seed

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	catalogports "github.com/agrodata/ordenes-api/internal/domains/catalog/ports"
	"github.com/agrodata/ordenes-api/internal/shared/pagination"
)

type demoProduct struct {
	sku          string
	internalCode string
	name         string
	description  string
	unitPrice    string
	stock        int
}

var demoCatalog = []demoProduct{
	{sku: "VERD-001", internalCode: "LTG-001", name: "Lechuga Romana", description: "Lechuga romana fresca, pieza", unitPrice: "50.00", stock: 120},
	{sku: "VERD-002", internalCode: "TMT-001", name: "Tomate Saladette", description: "Tomate saladette por kilo", unitPrice: "60.00", stock: 200},
	{sku: "VERD-003", internalCode: "ZNH-001", name: "Zanahoria", description: "Zanahoria por kilo", unitPrice: "40.00", stock: 150},
	{sku: "FRUT-001", internalCode: "NAR-001", name: "Naranja Valencia", description: "Naranja valencia por kilo", unitPrice: "45.00", stock: 180},
	{sku: "FRUT-002", internalCode: "MZN-001", name: "Manzana Gala", description: "Manzana gala por kilo", unitPrice: "55.00", stock: 90},
}

// Catalog inserts the demo products when the catalog is empty. Products that
// already exist are left untouched.
func Catalog(ctx context.Context, service catalogports.Service, logger *slog.Logger) error {
	existing, err := service.SearchProducts(ctx, catalogports.SearchProductsInput{
		Page: pagination.Page{Number: pagination.DefaultNumber, Size: 1},
	})
	if err != nil {
		return fmt.Errorf("seed: probing catalog: %w", err)
	}
	if existing.TotalItems > 0 {
		if logger != nil {
			logger.LogAttrs(ctx, slog.LevelInfo, "catalog already populated, skipping seed",
				slog.Int64("catalog.total_items", existing.TotalItems))
		}
		return nil
	}

	for _, item := range demoCatalog {
		price, err := decimal.NewFromString(item.unitPrice)
		if err != nil {
			return fmt.Errorf("seed: bad price for %s: %w", item.sku, err)
		}
		_, err = service.CreateProduct(ctx, catalogports.CreateProductInput{
			SKU:           item.sku,
			InternalCode:  item.internalCode,
			Name:          item.name,
			Description:   item.description,
			UnitPrice:     price,
			StockQuantity: item.stock,
		})
		if err != nil && !errors.Is(err, catalogports.ErrConflict) {
			return fmt.Errorf("seed: creating %s: %w", item.sku, err)
		}
	}
	if logger != nil {
		logger.LogAttrs(ctx, slog.LevelInfo, "demo catalog seeded",
			slog.Int("catalog.seeded_products", len(demoCatalog)))
	}
	return nil
}
