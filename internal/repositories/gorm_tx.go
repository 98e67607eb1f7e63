package repositories

import (
	"context"

	"gorm.io/gorm"
)

type txKey struct{}

// GormTxManager implements TxManager on a GORM connection. The
// transaction handle is carried in the context so the GORM repositories
// join the same transaction.
type GormTxManager struct {
	db *gorm.DB
}

// NewGormTxManager creates a new GormTxManager.
func NewGormTxManager(db *gorm.DB) *GormTxManager {
	return &GormTxManager{db: db}
}

// WithTransaction runs fn inside a database transaction. Any error from
// fn rolls the whole transaction back.
func (m *GormTxManager) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txKey{}, tx))
	})
}

// gormDB returns the transaction handle carried in ctx, falling back to
// the repository's base connection.
func gormDB(ctx context.Context, base *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx
	}
	return base.WithContext(ctx)
}
