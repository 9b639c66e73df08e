package memory

import (
	"context"
	"slices"

	"tgorders/domain/goods"
	"tgorders/domain/market"
	"tgorders/domain/order"
	"tgorders/domain/shared"
	"tgorders/domain/user"

	"github.com/google/uuid"
)

// orderFromRow resolves the creator, market and goods refs.
func orderFromRow(st *state, row orderRow) *order.Order {
	lines := make([]order.LineReconstructionDTO, len(row.Lines))
	for i, l := range row.Lines {
		g := st.goods[l.GoodsID]
		lines[i] = order.LineReconstructionDTO{
			ID:       l.ID,
			Goods:    order.GoodsRef{ID: l.GoodsID, Name: g.Name, SKU: g.SKU},
			Quantity: l.Quantity,
		}
	}
	creator := st.users[row.CreatorID]
	m := st.markets[row.MarketID]

	return order.RebuildFromDTO(order.ReconstructionDTO{
		ID:              row.ID,
		Lines:           lines,
		Creator:         order.UserRef{ID: row.CreatorID, Name: creator.Name},
		CreatedAt:       row.CreatedAt,
		RecipientMarket: order.MarketRef{ID: m.ID, Name: m.Name, IsActive: m.IsActive},
		Commentary:      row.Commentary,
		Confirmed:       row.Confirmed,
		Messages:        row.Messages,
	})
}

type orderRepository struct{ uow *UnitOfWork }

func (r orderRepository) CreateOrder(ctx context.Context, draft *order.Draft) (*order.Order, error) {
	st := r.uow.write()
	if _, exists := st.orders[draft.ID]; exists {
		return nil, order.NewOrderAlreadyExistsError(draft.ID)
	}
	if _, ok := st.users[draft.CreatorID]; !ok {
		return nil, user.NewUserNotExistsError(draft.CreatorID)
	}
	if _, ok := st.markets[draft.RecipientMarketID]; !ok {
		return nil, market.NewMarketNotExistsError(draft.RecipientMarketID)
	}

	lines := make([]lineRow, len(draft.Lines))
	for i, l := range draft.Lines {
		g, ok := st.goods[l.GoodsID]
		if !ok {
			return nil, goods.NewGoodsNotExistsError(l.GoodsID)
		}
		if g.Type != goods.TypeGoods {
			return nil, order.NewOrderLineGoodsHasIncorrectTypeError(i, l.GoodsID, string(g.Type))
		}
		lines[i] = lineRow{ID: uuid.NewString(), GoodsID: l.GoodsID, Quantity: l.Quantity}
	}

	row := orderRow{
		ID:         draft.ID,
		Lines:      lines,
		CreatorID:  draft.CreatorID,
		MarketID:   draft.RecipientMarketID,
		CreatedAt:  draft.CreatedAt,
		Commentary: draft.Commentary,
		Confirmed:  order.StatusNotProcessed,
	}
	st.orders[row.ID] = row
	return orderFromRow(st, row), nil
}

func (r orderRepository) OrderByID(ctx context.Context, id string) (*order.Order, error) {
	st := r.uow.read()
	row, ok := st.orders[id]
	if !ok {
		return nil, order.NewOrderNotExistsError(id)
	}
	return orderFromRow(st, row), nil
}

func (r orderRepository) EditOrder(ctx context.Context, o *order.Order) error {
	st := r.uow.write()
	row, ok := st.orders[o.ID()]
	if !ok {
		return order.NewOrderNotExistsError(o.ID())
	}
	row.Confirmed = o.Confirmed()
	row.Messages = append(slices.Clone(row.Messages), o.AddedMessages()...)
	st.orders[o.ID()] = row
	o.ClearDirtyTracking()
	return nil
}

type orderReader struct{ uow *UnitOfWork }

func (r orderReader) find(spec shared.Specification[*order.Order]) []*order.Order {
	st := r.uow.read()
	result := make([]*order.Order, 0)
	for _, row := range st.orders {
		o := orderFromRow(st, row)
		if spec == nil || spec.IsSatisfiedBy(o) {
			result = append(result, o)
		}
	}
	order.SortNewestFirst(result)
	return result
}

func (r orderReader) AllOrders(ctx context.Context) ([]*order.Order, error) {
	return r.find(nil), nil
}

func (r orderReader) OrderByID(ctx context.Context, id string) (*order.Order, error) {
	return orderRepository(r).OrderByID(ctx, id)
}

func (r orderReader) OrdersByCreator(ctx context.Context, creatorID int64) ([]*order.Order, error) {
	return r.find(order.NewByCreatorSpecification(creatorID)), nil
}
