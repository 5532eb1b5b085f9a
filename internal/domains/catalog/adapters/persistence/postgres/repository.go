package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/agrodata/ordenes-api/internal/domains/catalog/domain"
	"github.com/agrodata/ordenes-api/internal/domains/catalog/ports"
	platformpostgres "github.com/agrodata/ordenes-api/internal/platform/postgres"
	"github.com/agrodata/ordenes-api/internal/shared/pagination"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists products in PostgreSQL using GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed catalog repository. Caller manages DB lifecycle.
func NewRepository(db *gorm.DB) *Repository {
	repo := &Repository{db: db}
	if db != nil {
		_ = db.AutoMigrate(&productRecord{})
	}
	return repo
}

// productRecord maps the product aggregate to a relational table.
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

// Create inserts a new product; duplicate SKU or internal code yields ErrConflict.
func (r *Repository) Create(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	record := toRecord(product)
	if err := platformpostgres.DB(ctx, r.db).Create(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ports.ErrConflict
		}
		return nil, err
	}
	return record.toDomain(), nil
}

// GetByID fetches a product by identifier.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record productRecord
	if err := platformpostgres.DB(ctx, r.db).First(&record, "product_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

// GetByIDs resolves products in one batch; missing ids are absent from the map.
func (r *Repository) GetByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*domain.Product, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return map[uuid.UUID]*domain.Product{}, nil
	}
	var records []productRecord
	if err := platformpostgres.DB(ctx, r.db).Where("product_id IN ?", ids).Find(&records).Error; err != nil {
		return nil, err
	}
	result := make(map[uuid.UUID]*domain.Product, len(records))
	for i := range records {
		result[records[i].ProductID] = records[i].toDomain()
	}
	return result, nil
}

// Search applies the filter, counts the filtered set, then returns one page.
func (r *Repository) Search(ctx context.Context, filter ports.SearchFilter, page pagination.Page) ([]*domain.Product, int64, error) {
	if err := r.ensureDB(); err != nil {
		return nil, 0, err
	}
	query := platformpostgres.DB(ctx, r.db).Model(&productRecord{})
	if filter.Term != "" {
		pattern := "%" + filter.Term + "%"
		query = query.Where("name ILIKE ? OR description ILIKE ?", pattern, pattern)
	}
	if filter.MinPrice != nil {
		query = query.Where("current_unit_price >= ?", *filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		query = query.Where("current_unit_price <= ?", *filter.MaxPrice)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var records []productRecord
	if err := query.Order("sku").Offset(page.Offset()).Limit(page.Size).Find(&records).Error; err != nil {
		return nil, 0, err
	}
	products := make([]*domain.Product, 0, len(records))
	for i := range records {
		products = append(products, records[i].toDomain())
	}
	return products, total, nil
}

// Save updates an existing product row.
func (r *Repository) Save(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	record := toRecord(product)
	result := platformpostgres.DB(ctx, r.db).Model(&productRecord{}).
		Where("product_id = ?", record.ProductID).
		Updates(map[string]any{
			"description":        record.Description,
			"current_unit_price": record.UnitPrice,
			"stock_quantity":     record.StockQuantity,
			"updated_at":         gorm.Expr("NOW()"),
		})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ports.ErrNotFound
	}
	return r.GetByID(ctx, record.ProductID)
}

// ReserveStock decrements stock in a single conditional update so there is no
// window between the stock check and the write.
func (r *Repository) ReserveStock(ctx context.Context, id uuid.UUID, quantity int) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	db := platformpostgres.DB(ctx, r.db)
	result := db.Model(&productRecord{}).
		Where("product_id = ? AND stock_quantity >= ?", id, quantity).
		Updates(map[string]any{
			"stock_quantity": gorm.Expr("stock_quantity - ?", quantity),
			"updated_at":     gorm.Expr("NOW()"),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		var record productRecord
		if err := db.First(&record, "product_id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ports.ErrNotFound
			}
			return err
		}
		return &ports.InsufficientStockError{
			ProductID: id,
			Requested: quantity,
			Available: record.StockQuantity,
		}
	}
	return nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres catalog repository not configured")
	}
	return nil
}

func toRecord(product *domain.Product) productRecord {
	record := productRecord{
		ProductID:     product.ID,
		SKU:           product.SKU,
		InternalCode:  product.InternalCode,
		Name:          product.Name,
		UnitPrice:     product.UnitPrice,
		StockQuantity: product.StockQuantity,
	}
	if product.Description != "" {
		description := product.Description
		record.Description = &description
	}
	return record
}

func (r productRecord) toDomain() *domain.Product {
	product := &domain.Product{
		ID:            r.ProductID,
		SKU:           r.SKU,
		InternalCode:  r.InternalCode,
		Name:          r.Name,
		UnitPrice:     r.UnitPrice,
		StockQuantity: r.StockQuantity,
	}
	if r.Description != nil {
		product.Description = *r.Description
	}
	return product
}
