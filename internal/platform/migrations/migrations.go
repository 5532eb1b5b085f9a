package migrations

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Run applies the schema for the catalog and orders bounded contexts.
// Intended to replace adapter-level automigrate.
func Run(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	return db.AutoMigrate(
		&productRecord{},
		&orderRecord{},
		&orderItemRecord{},
	)
}

// Product schema mirrors the catalog Postgres adapter.
type productRecord struct {
	ProductID     uuid.UUID       `gorm:"primaryKey;column:product_id;type:uuid"`
	SKU           string          `gorm:"column:sku;uniqueIndex"`
	InternalCode  string          `gorm:"column:internal_code;uniqueIndex"`
	Name          string          `gorm:"column:name"`
	Description   *string         `gorm:"column:description"`
	UnitPrice     decimal.Decimal `gorm:"column:current_unit_price;type:decimal(18,2)"`
	StockQuantity int             `gorm:"column:stock_quantity"`
	CreatedAt     time.Time       `gorm:"column:created_at"`
	UpdatedAt     time.Time       `gorm:"column:updated_at"`
}

func (productRecord) TableName() string { return "products" }

// Order schema mirrors the orders Postgres adapter.
type orderRecord struct {
	OrderID         uuid.UUID       `gorm:"primaryKey;column:order_id;type:uuid"`
	CustomerID      uuid.UUID       `gorm:"column:customer_id;type:uuid;index:idx_orders_customer_status"`
	OrderDate       time.Time       `gorm:"column:order_date;index"`
	OrderStatus     string          `gorm:"column:order_status;type:varchar(32);index:idx_orders_customer_status"`
	TotalAmount     decimal.Decimal `gorm:"column:total_amount;type:decimal(18,2)"`
	ShippingAddress string          `gorm:"column:shipping_address"`
	BillingAddress  string          `gorm:"column:billing_address"`
	Notes           *string         `gorm:"column:notes"`
	CreatedAt       time.Time       `gorm:"column:created_at"`
	UpdatedAt       time.Time       `gorm:"column:updated_at"`
}

func (orderRecord) TableName() string { return "orders" }

// Order item schema mirrors the orders Postgres adapter. Items belong to
// exactly one order; product_id is a read-only reference.
type orderItemRecord struct {
	OrderItemID uuid.UUID       `gorm:"primaryKey;column:order_item_id;type:uuid"`
	OrderID     uuid.UUID       `gorm:"column:order_id;type:uuid;index"`
	ProductID   uuid.UUID       `gorm:"column:product_id;type:uuid;index"`
	Position    int             `gorm:"column:position"`
	Quantity    int             `gorm:"column:quantity"`
	UnitPrice   decimal.Decimal `gorm:"column:unit_price;type:decimal(18,2)"`
	Subtotal    decimal.Decimal `gorm:"column:subtotal;type:decimal(18,2)"`
}

func (orderItemRecord) TableName() string { return "order_items" }
