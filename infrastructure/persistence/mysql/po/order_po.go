package po

import (
	"time"

	"tgorders/domain/goods"
	"tgorders/domain/order"
)

// OrderPO Order persistence object
// Note: Only used for database mapping, does not contain any business logic
// Defining GORM associations is prohibited here
type OrderPO struct {
	ID                string    `gorm:"primaryKey;size:36"`
	CreatorID         int64     `gorm:"index;not null"`
	RecipientMarketID string    `gorm:"size:36;index;not null"`
	CreatedAt         time.Time `gorm:"index;not null"`
	Commentary        string    `gorm:"type:text;not null"`
	Confirmed         string    `gorm:"size:16;not null;default:NOT_PROCESSED"`
}

// TableName Specify table name
func (OrderPO) TableName() string {
	return "orders"
}

// OrderLinePO references goods by (id, type); the type column is pinned to
// GOODS so a line can never point at a folder.
type OrderLinePO struct {
	ID        string `gorm:"primaryKey;size:36"`
	OrderID   string `gorm:"size:36;index;not null"`
	Position  int    `gorm:"not null"`
	GoodsID   string `gorm:"size:36;index;not null"`
	GoodsType string `gorm:"size:16;not null;default:GOODS"`
	Quantity  int    `gorm:"not null"`
}

func (OrderLinePO) TableName() string {
	return "order_line"
}

// OrderMessagePO is a bot message sent about an order.
type OrderMessagePO struct {
	ID        uint64 `gorm:"primaryKey;autoIncrement"`
	OrderID   string `gorm:"size:36;index;not null"`
	MessageID int    `gorm:"not null"`
	ChatID    int64  `gorm:"not null"`
}

func (OrderMessagePO) TableName() string {
	return "order_message"
}

// FromDraft Convert an insert request to persistence objects
func FromDraft(draft *order.Draft, lineID func() string) (*OrderPO, []OrderLinePO) {
	orderPO := &OrderPO{
		ID:                draft.ID,
		CreatorID:         draft.CreatorID,
		RecipientMarketID: draft.RecipientMarketID,
		CreatedAt:         draft.CreatedAt,
		Commentary:        draft.Commentary,
		Confirmed:         string(order.StatusNotProcessed),
	}

	lines := make([]OrderLinePO, len(draft.Lines))
	for i, l := range draft.Lines {
		lines[i] = OrderLinePO{
			ID:        lineID(),
			OrderID:   draft.ID,
			Position:  i,
			GoodsID:   l.GoodsID,
			GoodsType: string(goods.TypeGoods),
			Quantity:  l.Quantity,
		}
	}
	return orderPO, lines
}

func FromOrderMessages(orderID string, messages []order.OrderMessage) []OrderMessagePO {
	out := make([]OrderMessagePO, len(messages))
	for i, m := range messages {
		out[i] = OrderMessagePO{OrderID: orderID, MessageID: m.MessageID, ChatID: m.ChatID}
	}
	return out
}

// OrderRefs carries the rows an order points at, keyed by id.
type OrderRefs struct {
	Goods   map[string]GoodsPO
	Users   map[int64]UserPO
	Markets map[string]MarketPO
}

// ToDomain Convert persistence objects to the domain model
func (po *OrderPO) ToDomain(lines []OrderLinePO, messages []OrderMessagePO, refs OrderRefs) *order.Order {
	lineDTOs := make([]order.LineReconstructionDTO, len(lines))
	for i, l := range lines {
		g := refs.Goods[l.GoodsID]
		lineDTOs[i] = order.LineReconstructionDTO{
			ID:       l.ID,
			Goods:    order.GoodsRef{ID: l.GoodsID, Name: g.Name, SKU: g.SKU},
			Quantity: l.Quantity,
		}
	}
	msgs := make([]order.OrderMessage, len(messages))
	for i, m := range messages {
		msgs[i] = order.OrderMessage{MessageID: m.MessageID, ChatID: m.ChatID}
	}
	creator := refs.Users[po.CreatorID]
	m := refs.Markets[po.RecipientMarketID]

	return order.RebuildFromDTO(order.ReconstructionDTO{
		ID:              po.ID,
		Lines:           lineDTOs,
		Creator:         order.UserRef{ID: po.CreatorID, Name: creator.Name},
		CreatedAt:       po.CreatedAt,
		RecipientMarket: order.MarketRef{ID: po.RecipientMarketID, Name: m.Name, IsActive: m.IsActive},
		Commentary:      po.Commentary,
		Confirmed:       order.ConfirmedStatus(po.Confirmed),
		Messages:        msgs,
	})
}
