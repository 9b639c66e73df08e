package order

import "time"

// CreateOrderRequest is the input of AddOrder. CreatorID is the acting user
// and is never taken from the request body.
type CreateOrderRequest struct {
	Lines             []OrderLineRequest `json:"order_lines" validate:"dive"`
	CreatorID         int64              `json:"-" validate:"required"`
	RecipientMarketID string             `json:"recipient_market_id" validate:"required"`
	Commentary        string             `json:"commentary" validate:"max=1000"`
}

type OrderLineRequest struct {
	GoodsID  string `json:"goods_id" validate:"required"`
	Quantity int    `json:"quantity" validate:"gt=0"`
}

// ConfirmOrderRequest carries YES or NO.
type ConfirmOrderRequest struct {
	OrderID string `json:"-" validate:"required"`
	Status  string `json:"status" validate:"required,oneof=YES NO"`
}

type OrderMessageRequest struct {
	MessageID int   `json:"message_id" validate:"required"`
	ChatID    int64 `json:"chat_id" validate:"required"`
}

type OrderResponse struct {
	ID              string              `json:"id"`
	Lines           []OrderLineResponse `json:"order_lines"`
	Creator         UserRefResponse     `json:"creator"`
	CreatedAt       time.Time           `json:"created_at"`
	RecipientMarket MarketRefResponse   `json:"recipient_market"`
	Commentary      string              `json:"commentary"`
	Confirmed       string              `json:"confirmed"`
}

type OrderLineResponse struct {
	GoodsID   string  `json:"goods_id"`
	GoodsName string  `json:"goods_name"`
	SKU       *string `json:"sku"`
	Quantity  int     `json:"quantity"`
}

type UserRefResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type MarketRefResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
