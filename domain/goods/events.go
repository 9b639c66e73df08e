package goods

import "time"

const EventGoodsCreated = "goods.created"

type GoodsCreatedEvent struct {
	goodsID    string
	name       string
	goodsType  GoodsType
	sku        *string
	parentID   *string
	occurredOn time.Time
}

func NewGoodsCreatedEvent(goodsID, name string, goodsType GoodsType, sku, parentID *string) *GoodsCreatedEvent {
	return &GoodsCreatedEvent{
		goodsID:    goodsID,
		name:       name,
		goodsType:  goodsType,
		sku:        copySKU(sku),
		parentID:   copySKU(parentID),
		occurredOn: time.Now(),
	}
}

func (e *GoodsCreatedEvent) EventName() string      { return EventGoodsCreated }
func (e *GoodsCreatedEvent) OccurredOn() time.Time  { return e.occurredOn }
func (e *GoodsCreatedEvent) GetAggregateID() string { return e.goodsID }
func (e *GoodsCreatedEvent) Name() string           { return e.name }
func (e *GoodsCreatedEvent) Type() GoodsType        { return e.goodsType }
func (e *GoodsCreatedEvent) SKU() *string           { return e.sku }
func (e *GoodsCreatedEvent) ParentID() *string      { return e.parentID }
