package order

import "time"

const (
	EventOrderCreated              = "order.created"
	EventOrderConfirmStatusChanged = "order.confirm_status_changed"
)

type OrderCreatedEvent struct {
	order      Snapshot
	occurredOn time.Time
}

func NewOrderCreatedEvent(order Snapshot) *OrderCreatedEvent {
	return &OrderCreatedEvent{order: order, occurredOn: time.Now()}
}

func (e *OrderCreatedEvent) EventName() string      { return EventOrderCreated }
func (e *OrderCreatedEvent) OccurredOn() time.Time  { return e.occurredOn }
func (e *OrderCreatedEvent) GetAggregateID() string { return e.order.ID }
func (e *OrderCreatedEvent) Order() Snapshot        { return e.order }

type OrderConfirmStatusChangedEvent struct {
	order       Snapshot
	confirmedBy UserRef
	occurredOn  time.Time
}

func NewOrderConfirmStatusChangedEvent(order Snapshot, confirmedBy UserRef) *OrderConfirmStatusChangedEvent {
	return &OrderConfirmStatusChangedEvent{order: order, confirmedBy: confirmedBy, occurredOn: time.Now()}
}

func (e *OrderConfirmStatusChangedEvent) EventName() string      { return EventOrderConfirmStatusChanged }
func (e *OrderConfirmStatusChangedEvent) OccurredOn() time.Time  { return e.occurredOn }
func (e *OrderConfirmStatusChangedEvent) GetAggregateID() string { return e.order.ID }
func (e *OrderConfirmStatusChangedEvent) Order() Snapshot        { return e.order }
func (e *OrderConfirmStatusChangedEvent) ConfirmedBy() UserRef   { return e.confirmedBy }
