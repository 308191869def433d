package repository

import (
	"context"

	"gorm.io/gorm"
)

// TxManager runs a function inside a single database transaction. Order
// placement relies on it so the stock decrement, ledger append, order insert
// and promo usage increment commit or roll back together.
type TxManager interface {
	InTransaction(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// GormTxManager implements TxManager on a GORM connection.
type GormTxManager struct {
	db *gorm.DB
}

// NewGormTxManager creates a new GormTxManager.
func NewGormTxManager(db *gorm.DB) *GormTxManager {
	return &GormTxManager{db: db}
}

// InTransaction wraps fn in db.Transaction with the request context.
func (m *GormTxManager) InTransaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return m.db.WithContext(ctx).Transaction(fn)
}
