package mysql

import (
	"context"
	"errors"
	"fmt"

	"tgorders/domain/market"
	"tgorders/infrastructure/persistence/mysql/po"

	"gorm.io/gorm"
)

func mapMarketError(err error, id, name string) error {
	v, ok := constraintViolation(err)
	switch {
	case !ok:
	case v.is(errDuplicateEntry, constraintPrimary), v.is(errDuplicateEntry, constraintMarketName):
		return market.NewMarketAlreadyExistsError(name)
	case v.is(errRowIsReferenced, constraintOrderMarket):
		return market.NewCantDeleteWithOrdersError(id)
	}
	return fmt.Errorf("market %s: %w", id, err)
}

func findMarket(db *gorm.DB, id string) (*market.Market, error) {
	var row po.MarketPO
	if err := db.First(&row, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, market.NewMarketNotExistsError(id)
		}
		return nil, fmt.Errorf("market %s: %w", id, err)
	}
	return row.ToDomain(), nil
}

type marketRepository struct{ uow *UnitOfWork }

func (r marketRepository) MarketByID(ctx context.Context, id string) (*market.Market, error) {
	db, err := r.uow.begin(ctx)
	if err != nil {
		return nil, err
	}
	return findMarket(db, id)
}

func (r marketRepository) AddMarket(ctx context.Context, m *market.Market) error {
	db, err := r.uow.begin(ctx)
	if err != nil {
		return err
	}
	if err := db.Create(po.FromMarketDomain(m)).Error; err != nil {
		return mapMarketError(err, m.ID(), m.Name())
	}
	return nil
}

func (r marketRepository) EditMarket(ctx context.Context, m *market.Market) error {
	db, err := r.uow.begin(ctx)
	if err != nil {
		return err
	}
	result := db.Model(&po.MarketPO{}).
		Where("id = ?", m.ID()).
		Select("name", "is_active").
		Updates(po.FromMarketDomain(m))
	if result.Error != nil {
		return mapMarketError(result.Error, m.ID(), m.Name())
	}
	if result.RowsAffected == 0 {
		return market.NewMarketNotExistsError(m.ID())
	}
	return nil
}

func (r marketRepository) DeleteMarket(ctx context.Context, id string) error {
	db, err := r.uow.begin(ctx)
	if err != nil {
		return err
	}
	result := db.Where("id = ?", id).Delete(&po.MarketPO{})
	if result.Error != nil {
		return mapMarketError(result.Error, id, "")
	}
	if result.RowsAffected == 0 {
		return market.NewMarketNotExistsError(id)
	}
	return nil
}

type marketReader struct{ uow *UnitOfWork }

func (r marketReader) AllMarkets(ctx context.Context, onlyActive bool) ([]*market.Market, error) {
	query := r.uow.read(ctx).Order("name")
	if onlyActive {
		query = query.Where("is_active = ?", true)
	}

	var rows []po.MarketPO
	if err := query.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("all markets: %w", err)
	}
	result := make([]*market.Market, len(rows))
	for i := range rows {
		result[i] = rows[i].ToDomain()
	}
	return result, nil
}

func (r marketReader) MarketByID(ctx context.Context, id string) (*market.Market, error) {
	return findMarket(r.uow.read(ctx), id)
}
