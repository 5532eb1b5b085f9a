package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/agrodata/ordenes-api/internal/domains/orders/domain"
	"github.com/agrodata/ordenes-api/internal/domains/orders/ports"
	platformpostgres "github.com/agrodata/ordenes-api/internal/platform/postgres"
	"github.com/agrodata/ordenes-api/internal/shared/pagination"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists orders and their items in PostgreSQL using GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed order repository. Caller manages DB lifecycle.
func NewRepository(db *gorm.DB) *Repository {
	repo := &Repository{db: db}
	if db != nil {
		_ = db.AutoMigrate(&orderRecord{}, &orderItemRecord{})
	}
	return repo
}

// orderRecord maps the order aggregate to a relational table.
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

// orderItemRecord maps one order line. Position preserves insertion order for
// display; unit_price and subtotal are frozen at creation.
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

// itemRow is the read projection joining items with the current product name.
type itemRow struct {
	orderItemRecord
	ProductName *string `gorm:"column:product_name"`
}

// Create inserts the order and its items, joining the ambient transaction.
func (r *Repository) Create(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	db := platformpostgres.DB(ctx, r.db)

	record := toOrderRecord(order)
	if err := db.Create(&record).Error; err != nil {
		return nil, err
	}
	items := make([]orderItemRecord, 0, len(order.Items))
	for i, item := range order.Items {
		items = append(items, orderItemRecord{
			OrderItemID: item.ID,
			OrderID:     item.OrderID,
			ProductID:   item.ProductID,
			Position:    i,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			Subtotal:    item.Subtotal,
		})
	}
	if err := db.Create(&items).Error; err != nil {
		return nil, err
	}
	return order, nil
}

// GetByID fetches an order with its items, resolving each item's display name
// from the current product row.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	db := platformpostgres.DB(ctx, r.db)

	var record orderRecord
	if err := db.First(&record, "order_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}

	var rows []itemRow
	err := db.Table("order_items").
		Select("order_items.*, products.name AS product_name").
		Joins("LEFT JOIN products ON products.product_id = order_items.product_id").
		Where("order_items.order_id = ?", id).
		Order("order_items.position").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	order := record.toDomain()
	order.Items = make([]domain.Item, 0, len(rows))
	for _, row := range rows {
		name := domain.UnavailableProductName
		if row.ProductName != nil {
			name = *row.ProductName
		}
		order.Items = append(order.Items, domain.Item{
			ID:          row.OrderItemID,
			OrderID:     row.OrderID,
			ProductID:   row.ProductID,
			ProductName: name,
			Quantity:    row.Quantity,
			UnitPrice:   row.UnitPrice,
			Subtotal:    row.Subtotal,
		})
	}
	return order, nil
}

// List returns one page of order summaries (no items) plus the total count of
// the filtered set.
func (r *Repository) List(ctx context.Context, filter ports.ListFilter, page pagination.Page) ([]*domain.Order, int64, error) {
	if err := r.ensureDB(); err != nil {
		return nil, 0, err
	}
	query := platformpostgres.DB(ctx, r.db).Model(&orderRecord{})
	if filter.Status != nil {
		query = query.Where("order_status = ?", string(*filter.Status))
	}
	if filter.CustomerID != nil {
		query = query.Where("customer_id = ?", *filter.CustomerID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var records []orderRecord
	if err := query.Order("order_date DESC").Offset(page.Offset()).Limit(page.Size).Find(&records).Error; err != nil {
		return nil, 0, err
	}
	orders := make([]*domain.Order, 0, len(records))
	for i := range records {
		orders = append(orders, records[i].toDomain())
	}
	return orders, total, nil
}

// UpdateStatus persists a transition conditionally on the current status so a
// concurrent transition cannot be silently overwritten.
func (r *Repository) UpdateStatus(ctx context.Context, id uuid.UUID, from, to domain.Status) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	db := platformpostgres.DB(ctx, r.db)
	result := db.Model(&orderRecord{}).
		Where("order_id = ? AND order_status = ?", id, string(from)).
		Updates(map[string]any{
			"order_status": string(to),
			"updated_at":   gorm.Expr("NOW()"),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		var record orderRecord
		if err := db.First(&record, "order_id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ports.ErrNotFound
			}
			return err
		}
		return &domain.InvalidTransitionError{From: domain.Status(record.OrderStatus), To: to}
	}
	return nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres order repository not configured")
	}
	return nil
}

func toOrderRecord(order *domain.Order) orderRecord {
	record := orderRecord{
		OrderID:         order.ID,
		CustomerID:      order.CustomerID,
		OrderDate:       order.OrderDate,
		OrderStatus:     string(order.Status),
		TotalAmount:     order.TotalAmount,
		ShippingAddress: order.ShippingAddress,
		BillingAddress:  order.BillingAddress,
	}
	if order.Notes != "" {
		notes := order.Notes
		record.Notes = &notes
	}
	return record
}

func (r orderRecord) toDomain() *domain.Order {
	order := &domain.Order{
		ID:              r.OrderID,
		CustomerID:      r.CustomerID,
		OrderDate:       r.OrderDate,
		Status:          domain.Status(r.OrderStatus),
		TotalAmount:     r.TotalAmount,
		ShippingAddress: r.ShippingAddress,
		BillingAddress:  r.BillingAddress,
	}
	if r.Notes != nil {
		order.Notes = *r.Notes
	}
	return order
}
