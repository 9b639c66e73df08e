package order

import (
	"context"

	"tgorders/domain/shared"
)

type Repository interface {
	// CreateOrder inserts the draft with its lines and returns the reloaded order.
	// A line pointing at a missing goods fails with goods.ErrGoodsNotExists, one
	// pointing at a folder with ErrOrderLineGoodsHasIncorrectType.
	CreateOrder(ctx context.Context, draft *Draft) (*Order, error)

	// OrderByID returns ErrOrderNotExists when absent.
	OrderByID(ctx context.Context, id string) (*Order, error)

	// EditOrder stores the confirm status and the added messages.
	EditOrder(ctx context.Context, o *Order) error
}

// Reader lists orders newest first.
type Reader interface {
	AllOrders(ctx context.Context) ([]*Order, error)
	OrderByID(ctx context.Context, id string) (*Order, error)
	OrdersByCreator(ctx context.Context, creatorID int64) ([]*Order, error)
}

type UnitOfWork interface {
	shared.UnitOfWork
	Orders() Repository
	OrderReader() Reader
}
