package goods

import (
	"context"

	"tgorders/domain/shared"
)

// Repository loads and stores live aggregates inside the current unit of work.
type Repository interface {
	// GoodsByID returns the node linked in a Tree with its parent and direct
	// children, or ErrGoodsNotExists.
	GoodsByID(ctx context.Context, id string) (*Goods, error)

	// AddGoods fails with ErrGoodsAlreadyExists on id collision.
	AddGoods(ctx context.Context, g *Goods) error

	EditGoods(ctx context.Context, g *Goods) error

	// DeleteGoods fails with ErrGoodsNotExists, ErrCantDeleteWithChildren or
	// ErrCantDeleteWithOrders.
	DeleteGoods(ctx context.Context, id string) error
}

// Reader is the query side.
type Reader interface {
	// GoodsInFolder lists the direct children of parentID (nil for the root),
	// folders first then by name.
	GoodsInFolder(ctx context.Context, parentID *string, onlyActive bool) ([]*Goods, error)

	GoodsByID(ctx context.Context, id string) (*Goods, error)

	// ParentFolder returns nil, nil for a root node.
	ParentFolder(ctx context.Context, childID string) (*Goods, error)
}

type UnitOfWork interface {
	shared.UnitOfWork
	Goods() Repository
	GoodsReader() Reader
}
