package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProduct(t *testing.T) {
	product, err := NewProduct(" VERD-001 ", "LTG-001", "  Lechuga Romana ", "fresca",
		decimal.RequireFromString("50.005"), 120)
	require.NoError(t, err)

	assert.Equal(t, "VERD-001", product.SKU, "identifiers are trimmed")
	assert.Equal(t, "Lechuga Romana", product.Name)
	assert.True(t, product.UnitPrice.Equal(decimal.RequireFromString("50.01")), "price rounds to cents")
	assert.Equal(t, 120, product.StockQuantity)
}

func TestNewProductValidation(t *testing.T) {
	price := decimal.RequireFromString("10.00")

	tests := []struct {
		name    string
		sku     string
		code    string
		pname   string
		price   decimal.Decimal
		stock   int
		wantErr error
	}{
		{"blank sku", "  ", "C-1", "x", price, 0, ErrEmptySKU},
		{"blank internal code", "S-1", "", "x", price, 0, ErrEmptyInternalCode},
		{"blank name", "S-1", "C-1", " ", price, 0, ErrEmptyName},
		{"negative price", "S-1", "C-1", "x", decimal.RequireFromString("-0.01"), 0, ErrNegativePrice},
		{"negative stock", "S-1", "C-1", "x", price, -1, ErrNegativeStock},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewProduct(tc.sku, tc.code, tc.pname, "", tc.price, tc.stock)
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}

	t.Run("zero price and zero stock are allowed", func(t *testing.T) {
		_, err := NewProduct("S-1", "C-1", "x", "", decimal.Zero, 0)
		assert.NoError(t, err)
	})
}

func TestApplyUpdate(t *testing.T) {
	product, err := NewProduct("S-1", "C-1", "Zanahoria", "por kilo", decimal.RequireFromString("40.00"), 150)
	require.NoError(t, err)

	newPrice := decimal.RequireFromString("42.505")
	require.NoError(t, product.ApplyUpdate(Update{UnitPrice: &newPrice}))
	assert.True(t, product.UnitPrice.Equal(decimal.RequireFromString("42.51")))
	assert.Equal(t, "por kilo", product.Description, "absent fields keep their value")
	assert.Equal(t, 150, product.StockQuantity)

	empty := ""
	zero := 0
	require.NoError(t, product.ApplyUpdate(Update{Description: &empty, StockQuantity: &zero}))
	assert.Empty(t, product.Description)
	assert.Equal(t, 0, product.StockQuantity)

	negative := -1
	assert.ErrorIs(t, product.ApplyUpdate(Update{StockQuantity: &negative}), ErrNegativeStock)
}
