package market

import (
	"context"

	"tgorders/domain/shared"
)

type Repository interface {
	// MarketByID returns ErrMarketNotExists when absent.
	MarketByID(ctx context.Context, id string) (*Market, error)

	// AddMarket fails with ErrMarketAlreadyExists on id or name collision.
	AddMarket(ctx context.Context, m *Market) error

	EditMarket(ctx context.Context, m *Market) error

	// DeleteMarket fails with ErrMarketNotExists or ErrCantDeleteWithOrders.
	DeleteMarket(ctx context.Context, id string) error
}

// Reader lists markets ordered by name.
type Reader interface {
	AllMarkets(ctx context.Context, onlyActive bool) ([]*Market, error)
	MarketByID(ctx context.Context, id string) (*Market, error)
}

type UnitOfWork interface {
	shared.UnitOfWork
	Markets() Repository
	MarketReader() Reader
}
