package market

import "time"

const EventMarketCreated = "market.created"

type MarketCreatedEvent struct {
	marketID   string
	name       string
	occurredOn time.Time
}

func NewMarketCreatedEvent(marketID, name string) *MarketCreatedEvent {
	return &MarketCreatedEvent{marketID: marketID, name: name, occurredOn: time.Now()}
}

func (e *MarketCreatedEvent) EventName() string      { return EventMarketCreated }
func (e *MarketCreatedEvent) OccurredOn() time.Time  { return e.occurredOn }
func (e *MarketCreatedEvent) GetAggregateID() string { return e.marketID }
func (e *MarketCreatedEvent) Name() string           { return e.name }
