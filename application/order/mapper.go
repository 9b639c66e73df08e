package order

import (
	"tgorders/domain/order"
)

func toDraftLines(lines []OrderLineRequest) []order.DraftLine {
	draft := make([]order.DraftLine, len(lines))
	for i, l := range lines {
		draft[i] = order.DraftLine{GoodsID: l.GoodsID, Quantity: l.Quantity}
	}
	return draft
}

func toOrderResponse(o *order.Order) *OrderResponse {
	lines := o.Lines()
	items := make([]OrderLineResponse, len(lines))
	for i, l := range lines {
		items[i] = OrderLineResponse{
			GoodsID:   l.Goods().ID,
			GoodsName: l.Goods().Name,
			SKU:       l.Goods().SKU,
			Quantity:  l.Quantity(),
		}
	}

	return &OrderResponse{
		ID:        o.ID(),
		Lines:     items,
		Creator:   UserRefResponse{ID: o.Creator().ID, Name: o.Creator().Name},
		CreatedAt: o.CreatedAt(),
		RecipientMarket: MarketRefResponse{
			ID:   o.RecipientMarket().ID,
			Name: o.RecipientMarket().Name,
		},
		Commentary: o.Commentary(),
		Confirmed:  string(o.Confirmed()),
	}
}

func toOrderResponses(orders []*order.Order) []*OrderResponse {
	responses := make([]*OrderResponse, len(orders))
	for i, o := range orders {
		responses[i] = toOrderResponse(o)
	}
	return responses
}
