package mysql

import (
	"context"
	"fmt"

	"tgorders/domain/accesslevel"
	"tgorders/domain/goods"
	"tgorders/domain/market"
	"tgorders/domain/order"
	"tgorders/domain/shared"
	"tgorders/domain/user"
	"tgorders/infrastructure/persistence/retry"

	"gorm.io/gorm"
)

// UnitOfWork implements every context's unit of work with GORM.
//
// The transaction begins on the first repository call. Readers join it when it
// is open and use the pool otherwise. Commit and Rollback release it; a later
// repository call opens a new one.
type UnitOfWork struct {
	db          *gorm.DB
	tx          *gorm.DB
	retryConfig retry.Config
}

// NewUnitOfWork creates a new UnitOfWork instance
func NewUnitOfWork(db *gorm.DB) *UnitOfWork {
	return &UnitOfWork{db: db, retryConfig: retry.DefaultConfig}
}

// SetRetryConfig updates the retry configuration used when beginning.
func (u *UnitOfWork) SetRetryConfig(config retry.Config) {
	u.retryConfig = config
}

// begin returns the open transaction, beginning one when needed.
func (u *UnitOfWork) begin(ctx context.Context) (*gorm.DB, error) {
	if u.tx != nil {
		return u.tx.WithContext(ctx), nil
	}

	err := retry.ExecuteWithRetry(ctx, u.retryConfig, func(ctx context.Context) error {
		tx := u.db.WithContext(ctx).Begin()
		if tx.Error != nil {
			return tx.Error
		}
		u.tx = tx
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return u.tx, nil
}

// read returns the open transaction or the pool.
func (u *UnitOfWork) read(ctx context.Context) *gorm.DB {
	if u.tx != nil {
		return u.tx.WithContext(ctx)
	}
	return u.db.WithContext(ctx)
}

func (u *UnitOfWork) Commit(ctx context.Context) error {
	if u.tx == nil {
		return nil
	}
	tx := u.tx
	u.tx = nil
	if err := tx.Commit().Error; err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func (u *UnitOfWork) Rollback(ctx context.Context) error {
	if u.tx == nil {
		return nil
	}
	tx := u.tx
	u.tx = nil
	if err := tx.Rollback().Error; err != nil {
		return fmt.Errorf("failed to rollback transaction: %w", err)
	}
	return nil
}

func (u *UnitOfWork) Goods() goods.Repository               { return goodsRepository{u} }
func (u *UnitOfWork) GoodsReader() goods.Reader             { return goodsReader{u} }
func (u *UnitOfWork) Markets() market.Repository            { return marketRepository{u} }
func (u *UnitOfWork) MarketReader() market.Reader           { return marketReader{u} }
func (u *UnitOfWork) Users() user.Repository                { return userRepository{u} }
func (u *UnitOfWork) UserReader() user.Reader               { return userReader{u} }
func (u *UnitOfWork) AccessLevelReader() accesslevel.Reader { return accessLevelReader{u} }
func (u *UnitOfWork) Orders() order.Repository              { return orderRepository{u} }
func (u *UnitOfWork) OrderReader() order.Reader             { return orderReader{u} }

// Outbox writes events inside the unit of work's transaction.
func (u *UnitOfWork) Outbox() shared.OutboxRepository {
	return &OutboxRepository{conn: u.begin}
}

var (
	_ goods.UnitOfWork        = (*UnitOfWork)(nil)
	_ market.UnitOfWork       = (*UnitOfWork)(nil)
	_ user.UnitOfWork         = (*UnitOfWork)(nil)
	_ accesslevel.UnitOfWork  = (*UnitOfWork)(nil)
	_ order.UnitOfWork        = (*UnitOfWork)(nil)
	_ shared.OutboxUnitOfWork = (*UnitOfWork)(nil)
)
