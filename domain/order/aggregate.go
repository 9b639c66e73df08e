/*
Package order is the ordering context.

An Order is created from a Draft by the repository, which inserts it with its
lines and reloads it so the creator, market and goods refs are resolved. The
use case then calls Create to record OrderCreatedEvent.

Confirmation is single-shot: NOT_PROCESSED moves to YES or NO once.
*/
package order

import (
	"fmt"
	"strings"
	"time"

	"tgorders/domain/shared"

	"github.com/google/uuid"
)

// ConfirmedStatus of an order
type ConfirmedStatus string

const (
	StatusYes          ConfirmedStatus = "YES"
	StatusNo           ConfirmedStatus = "NO"
	StatusNotProcessed ConfirmedStatus = "NOT_PROCESSED"
)

func ParseConfirmedStatus(s string) (ConfirmedStatus, error) {
	switch st := ConfirmedStatus(strings.ToUpper(s)); st {
	case StatusYes, StatusNo, StatusNotProcessed:
		return st, nil
	}
	return "", shared.NewValidationError("order", "confirmed", "unknown confirm status "+s)
}

// ============================================================================
// Refs to other aggregates, resolved when the order is read
// ============================================================================

type UserRef struct {
	ID   int64
	Name string
}

type MarketRef struct {
	ID       string
	Name     string
	IsActive bool
}

type GoodsRef struct {
	ID   string
	Name string
	SKU  *string
}

// OrderLine entity inside the aggregate
type OrderLine struct {
	id       string
	goods    GoodsRef
	quantity int
}

func (l OrderLine) ID() string      { return l.id }
func (l OrderLine) Goods() GoodsRef { return l.goods }
func (l OrderLine) Quantity() int   { return l.quantity }

// OrderMessage is a bot message sent about the order; its keyboard is cleared
// once the order is confirmed.
type OrderMessage struct {
	MessageID int
	ChatID    int64
}

// ============================================================================
// Draft
// ============================================================================

type DraftLine struct {
	GoodsID  string
	Quantity int
}

// Draft is the insert request for a new order.
type Draft struct {
	ID                string
	Lines             []DraftLine
	CreatorID         int64
	RecipientMarketID string
	Commentary        string
	CreatedAt         time.Time
}

func NewDraft(creatorID int64, marketID, commentary string, lines []DraftLine) (*Draft, error) {
	if len(lines) == 0 {
		return nil, NewEmptyOrderLinesError()
	}
	for i, line := range lines {
		if line.Quantity <= 0 {
			return nil, NewInvalidQuantityError(i, line.Quantity)
		}
		if line.GoodsID == "" {
			return nil, shared.NewValidationError("order", "order_lines", fmt.Sprintf("line %d: goods id is required", i))
		}
	}
	if marketID == "" {
		return nil, shared.NewValidationError("order", "recipient_market_id", "recipient market is required")
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate order ID: %w", err)
	}

	copied := make([]DraftLine, len(lines))
	copy(copied, lines)

	return &Draft{
		ID:                id.String(),
		Lines:             copied,
		CreatorID:         creatorID,
		RecipientMarketID: marketID,
		Commentary:        commentary,
		CreatedAt:         time.Now(),
	}, nil
}

// ============================================================================
// Order aggregate root
// ============================================================================

type Order struct {
	id              string
	lines           []OrderLine
	creator         UserRef
	createdAt       time.Time
	recipientMarket MarketRef
	commentary      string
	confirmed       ConfirmedStatus
	messages        []OrderMessage

	// messages appended since load
	addedMessages []OrderMessage

	shared.EventLog
}

// Create records OrderCreatedEvent on a freshly inserted order.
func (o *Order) Create() {
	o.Record(NewOrderCreatedEvent(o.Snapshot()))
}

// ChangeConfirmStatus moves NOT_PROCESSED to YES or NO.
func (o *Order) ChangeConfirmStatus(status ConfirmedStatus, confirmedBy UserRef) error {
	if status != StatusYes && status != StatusNo {
		return shared.NewValidationError("order", "confirmed", "order can only be confirmed with YES or NO")
	}
	if o.confirmed != StatusNotProcessed {
		return NewOrderAlreadyConfirmedError(o.id)
	}

	o.confirmed = status
	o.Record(NewOrderConfirmStatusChangedEvent(o.Snapshot(), confirmedBy))
	return nil
}

func (o *Order) AddOrderMessage(msg OrderMessage) {
	o.messages = append(o.messages, msg)
	o.addedMessages = append(o.addedMessages, msg)
}

// ============================================================================
// Getters
// ============================================================================

func (o *Order) ID() string                 { return o.id }
func (o *Order) AggregateID() string        { return o.id }
func (o *Order) Creator() UserRef           { return o.creator }
func (o *Order) CreatedAt() time.Time       { return o.createdAt }
func (o *Order) RecipientMarket() MarketRef { return o.recipientMarket }
func (o *Order) Commentary() string         { return o.commentary }
func (o *Order) Confirmed() ConfirmedStatus { return o.confirmed }

func (o *Order) Lines() []OrderLine {
	lines := make([]OrderLine, len(o.lines))
	copy(lines, o.lines)
	return lines
}

func (o *Order) Messages() []OrderMessage {
	msgs := make([]OrderMessage, len(o.messages))
	copy(msgs, o.messages)
	return msgs
}

// ============================================================================
// Dirty tracking, for repositories
// ============================================================================

func (o *Order) AddedMessages() []OrderMessage {
	msgs := make([]OrderMessage, len(o.addedMessages))
	copy(msgs, o.addedMessages)
	return msgs
}

func (o *Order) ClearDirtyTracking() {
	o.addedMessages = nil
}

// ============================================================================
// Snapshot
// ============================================================================

type LineSnapshot struct {
	ID       string
	Goods    GoodsRef
	Quantity int
}

// Snapshot is an immutable copy of the order carried by events.
type Snapshot struct {
	ID              string
	Lines           []LineSnapshot
	Creator         UserRef
	CreatedAt       time.Time
	RecipientMarket MarketRef
	Commentary      string
	Confirmed       ConfirmedStatus
	Messages        []OrderMessage
}

func (o *Order) Snapshot() Snapshot {
	lines := make([]LineSnapshot, len(o.lines))
	for i, l := range o.lines {
		lines[i] = LineSnapshot{ID: l.id, Goods: l.goods, Quantity: l.quantity}
	}
	return Snapshot{
		ID:              o.id,
		Lines:           lines,
		Creator:         o.creator,
		CreatedAt:       o.createdAt,
		RecipientMarket: o.recipientMarket,
		Commentary:      o.commentary,
		Confirmed:       o.confirmed,
		Messages:        o.Messages(),
	}
}

// ============================================================================
// Reconstruction
// ============================================================================

type LineReconstructionDTO struct {
	ID       string
	Goods    GoodsRef
	Quantity int
}

type ReconstructionDTO struct {
	ID              string
	Lines           []LineReconstructionDTO
	Creator         UserRef
	CreatedAt       time.Time
	RecipientMarket MarketRef
	Commentary      string
	Confirmed       ConfirmedStatus
	Messages        []OrderMessage
}

func RebuildFromDTO(dto ReconstructionDTO) *Order {
	lines := make([]OrderLine, len(dto.Lines))
	for i, l := range dto.Lines {
		lines[i] = OrderLine{id: l.ID, goods: l.Goods, quantity: l.Quantity}
	}
	msgs := make([]OrderMessage, len(dto.Messages))
	copy(msgs, dto.Messages)

	confirmed := dto.Confirmed
	if confirmed == "" {
		confirmed = StatusNotProcessed
	}

	return &Order{
		id:              dto.ID,
		lines:           lines,
		creator:         dto.Creator,
		createdAt:       dto.CreatedAt,
		recipientMarket: dto.RecipientMarket,
		commentary:      dto.Commentary,
		confirmed:       confirmed,
		messages:        msgs,
		EventLog:        shared.NewEventLog(),
	}
}

var _ shared.AggregateRoot = (*Order)(nil)
