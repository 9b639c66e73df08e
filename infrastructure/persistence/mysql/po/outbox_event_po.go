package po

import (
	"encoding/json"
	"time"

	"tgorders/domain/goods"
	"tgorders/domain/market"
	"tgorders/domain/order"
	"tgorders/domain/shared"
	"tgorders/domain/user"

	"github.com/google/uuid"
)

// OutboxEventPO Outbox event persistence object
// Implements transactional outbox pattern for reliable event publishing
type OutboxEventPO struct {
	ID          string    `gorm:"primaryKey;size:36"`
	AggregateID string    `gorm:"size:64;index;not null"`
	EventType   string    `gorm:"size:100;index;not null"` // e.g., "order.created"
	Payload     string    `gorm:"type:json;not null"`
	Status      string    `gorm:"size:20;default:PENDING;not null"` // PENDING, PROCESSING, PUBLISHED, FAILED
	RetryCount  int       `gorm:"default:0;not null"`
	CreatedAt   time.Time `gorm:"autoCreateTime;index"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`
}

// TableName Specify table name
func (OutboxEventPO) TableName() string {
	return "outbox_events"
}

// EventStatus Outbox event status enum
type EventStatus string

const (
	EventStatusPending    EventStatus = "PENDING"
	EventStatusProcessing EventStatus = "PROCESSING"
	EventStatusPublished  EventStatus = "PUBLISHED"
	EventStatusFailed     EventStatus = "FAILED"
)

// FromDomainEvent Convert domain event to outbox persistence object
func FromDomainEvent(event shared.DomainEvent) (*OutboxEventPO, error) {
	payload, err := serializeEventToJSON(event)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	return &OutboxEventPO{
		ID:          uuid.NewString(),
		AggregateID: event.GetAggregateID(),
		EventType:   event.EventName(),
		Payload:     payload,
		Status:      string(EventStatusPending),
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

type lineData struct {
	GoodsID  string  `json:"goods_id"`
	Name     string  `json:"name"`
	SKU      *string `json:"sku,omitempty"`
	Quantity int     `json:"quantity"`
}

func orderData(data map[string]any, o order.Snapshot) {
	lines := make([]lineData, len(o.Lines))
	for i, l := range o.Lines {
		lines[i] = lineData{GoodsID: l.Goods.ID, Name: l.Goods.Name, SKU: l.Goods.SKU, Quantity: l.Quantity}
	}
	data["order_id"] = o.ID
	data["creator_id"] = o.Creator.ID
	data["recipient_market_id"] = o.RecipientMarket.ID
	data["commentary"] = o.Commentary
	data["confirmed"] = string(o.Confirmed)
	data["lines"] = lines
}

func serializeEventToJSON(event shared.DomainEvent) (string, error) {
	eventData := map[string]any{
		"event_name":   event.EventName(),
		"aggregate_id": event.GetAggregateID(),
		"occurred_on":  event.OccurredOn(),
	}

	switch e := event.(type) {
	case *goods.GoodsCreatedEvent:
		eventData["name"] = e.Name()
		eventData["type"] = string(e.Type())
		eventData["sku"] = e.SKU()
		eventData["parent_id"] = e.ParentID()
	case *market.MarketCreatedEvent:
		eventData["name"] = e.Name()
	case *user.UserCreatedEvent:
		eventData["user_id"] = e.UserID()
		eventData["name"] = e.Name()
		eventData["access_level_ids"] = e.AccessLevelIDs()
	case *order.OrderCreatedEvent:
		orderData(eventData, e.Order())
	case *order.OrderConfirmStatusChangedEvent:
		orderData(eventData, e.Order())
		eventData["confirmed_by"] = e.ConfirmedBy().ID
	}

	data, err := json.Marshal(eventData)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// ToEventData Extract event data from outbox PO
func (po *OutboxEventPO) ToEventData() (map[string]any, error) {
	var data map[string]any
	if err := json.Unmarshal([]byte(po.Payload), &data); err != nil {
		return nil, err
	}
	return data, nil
}
