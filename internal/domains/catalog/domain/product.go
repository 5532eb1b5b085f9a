package domain

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrEmptySKU          = errors.New("sku must not be empty")
	ErrEmptyInternalCode = errors.New("internal code must not be empty")
	ErrEmptyName         = errors.New("product name must not be empty")
	ErrNegativePrice     = errors.New("unit price must not be negative")
	ErrNegativeStock     = errors.New("stock quantity must not be negative")
	ErrInvalidQuantity   = errors.New("quantity must be greater than zero")
)

// Product is the catalog aggregate: sole owner of identity, pricing, and stock.
type Product struct {
	ID            uuid.UUID
	SKU           string
	InternalCode  string
	Name          string
	Description   string
	UnitPrice     decimal.Decimal
	StockQuantity int
}

// NewProduct validates and constructs a product with a fresh identity.
func NewProduct(sku, internalCode, name, description string, unitPrice decimal.Decimal, stockQuantity int) (*Product, error) {
	product := &Product{
		ID:            uuid.New(),
		SKU:           strings.TrimSpace(sku),
		InternalCode:  strings.TrimSpace(internalCode),
		Name:          strings.TrimSpace(name),
		Description:   description,
		UnitPrice:     unitPrice.Round(2),
		StockQuantity: stockQuantity,
	}
	if err := product.Validate(); err != nil {
		return nil, err
	}
	return product, nil
}

// Validate enforces invariants on the aggregate.
func (p *Product) Validate() error {
	if p.SKU == "" {
		return ErrEmptySKU
	}
	if p.InternalCode == "" {
		return ErrEmptyInternalCode
	}
	if p.Name == "" {
		return ErrEmptyName
	}
	if p.UnitPrice.IsNegative() {
		return ErrNegativePrice
	}
	if p.StockQuantity < 0 {
		return ErrNegativeStock
	}
	return nil
}

// Update carries the optional fields of a partial product update. Nil fields
// leave the stored value untouched.
type Update struct {
	Description   *string
	UnitPrice     *decimal.Decimal
	StockQuantity *int
}

// ApplyUpdate overwrites only the fields present in the update.
func (p *Product) ApplyUpdate(update Update) error {
	if update.Description != nil {
		p.Description = *update.Description
	}
	if update.UnitPrice != nil {
		p.UnitPrice = update.UnitPrice.Round(2)
	}
	if update.StockQuantity != nil {
		p.StockQuantity = *update.StockQuantity
	}
	return p.Validate()
}
