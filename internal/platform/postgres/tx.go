package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/agrodata/ordenes-api/internal/shared/storage"
)

type txKey struct{}

// WithTx stores a transaction handle in the context so repositories join it.
func WithTx(ctx context.Context, tx *gorm.DB) context.Context {
	return context.WithValue(ctx, txKey{}, tx)
}

// DB returns the ambient transaction from the context, or the fallback handle
// when no transaction is open.
func DB(ctx context.Context, fallback *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok && tx != nil {
		return tx
	}
	return fallback.WithContext(ctx)
}

var _ storage.TxManager = (*TxManager)(nil)

// TxManager runs units of work inside one database transaction. Repositories
// called with the derived context share the transaction, so order creation can
// span product reservations and the order insert atomically.
type TxManager struct {
	db *gorm.DB
}

func NewTxManager(db *gorm.DB) *TxManager {
	return &TxManager{db: db}
}

func (m *TxManager) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(WithTx(ctx, tx))
	})
}
