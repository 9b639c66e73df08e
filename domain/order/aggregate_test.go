package order

import (
	"testing"
	"time"

	"tgorders/domain/shared"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestOrder(creatorID int64) *Order {
	return RebuildFromDTO(ReconstructionDTO{
		ID: "o-1",
		Lines: []LineReconstructionDTO{
			{ID: "l-1", Goods: GoodsRef{ID: "g-1", Name: "Cola"}, Quantity: 2},
		},
		Creator:         UserRef{ID: creatorID, Name: "Alice"},
		CreatedAt:       time.Now(),
		RecipientMarket: MarketRef{ID: "m-1", Name: "Central", IsActive: true},
		Commentary:      "asap",
	})
}

func TestChangeConfirmStatus_SingleShot(t *testing.T) {
	o := newTestOrder(1)
	o.Create()
	require.Equal(t, StatusNotProcessed, o.Confirmed())

	confirmer := UserRef{ID: 2, Name: "Bob"}
	require.NoError(t, o.ChangeConfirmStatus(StatusYes, confirmer))
	assert.Equal(t, StatusYes, o.Confirmed())

	err := o.ChangeConfirmStatus(StatusNo, confirmer)
	assert.ErrorIs(t, err, ErrOrderAlreadyConfirmed)
	assert.ErrorIs(t, err, shared.ErrForbidden)
	assert.Equal(t, StatusYes, o.Confirmed())

	assert.ErrorIs(t, o.ChangeConfirmStatus(StatusYes, confirmer), ErrOrderAlreadyConfirmed)

	events := o.Events()
	require.Len(t, events, 2)
	assert.Equal(t, EventOrderCreated, events[0].EventName())
	changed, ok := events[1].(*OrderConfirmStatusChangedEvent)
	require.True(t, ok)
	assert.Equal(t, StatusYes, changed.Order().Confirmed)
	assert.Equal(t, confirmer, changed.ConfirmedBy())
}

func TestChangeConfirmStatus_RejectsNotProcessedTarget(t *testing.T) {
	o := newTestOrder(1)
	err := o.ChangeConfirmStatus(StatusNotProcessed, UserRef{ID: 2})
	assert.ErrorIs(t, err, shared.ErrInvalidInput)
	assert.Empty(t, o.Events())
}

func TestAddOrderMessage_TracksAdded(t *testing.T) {
	o := newTestOrder(1)
	o.AddOrderMessage(OrderMessage{MessageID: 10, ChatID: 2})
	o.AddOrderMessage(OrderMessage{MessageID: 11, ChatID: 3})

	assert.Len(t, o.Messages(), 2)
	assert.Len(t, o.AddedMessages(), 2)

	o.ClearDirtyTracking()
	assert.Empty(t, o.AddedMessages())
	assert.Len(t, o.Messages(), 2)
}

func TestSnapshot_IsACopy(t *testing.T) {
	o := newTestOrder(1)
	o.Create()
	created := o.Events()[0].(*OrderCreatedEvent)

	o.AddOrderMessage(OrderMessage{MessageID: 1, ChatID: 1})
	assert.Empty(t, created.Order().Messages)
	assert.Equal(t, "Cola", created.Order().Lines[0].Goods.Name)
}

func TestNewDraft_Validation(t *testing.T) {
	_, err := NewDraft(1, "m-1", "", nil)
	assert.ErrorIs(t, err, ErrEmptyOrderLines)

	_, err = NewDraft(1, "m-1", "", []DraftLine{{GoodsID: "g-1", Quantity: 0}})
	assert.ErrorIs(t, err, ErrInvalidQuantity)

	_, err = NewDraft(1, "", "", []DraftLine{{GoodsID: "g-1", Quantity: 1}})
	assert.ErrorIs(t, err, shared.ErrInvalidInput)

	d, err := NewDraft(1, "m-1", "note", []DraftLine{{GoodsID: "g-1", Quantity: 3}})
	require.NoError(t, err)
	assert.NotEmpty(t, d.ID)
	assert.Equal(t, 3, d.Lines[0].Quantity)
}

func TestUserBasedPolicy(t *testing.T) {
	own := int64(5)
	other := int64(6)

	user := NewUserBasedPolicy(testActor{id: 5})
	assert.True(t, user.AddOrders())
	assert.True(t, user.ReadOrder(&own))
	assert.False(t, user.ReadOrder(&other))
	assert.True(t, user.ReadOrder(nil))
	assert.False(t, user.ReadAllOrders())
	assert.True(t, user.ReadUserOrders(5))
	assert.False(t, user.ReadUserOrders(6))
	assert.False(t, user.ConfirmOrders())
	assert.False(t, user.ModifyOrders())

	confirmer := NewUserBasedPolicy(testActor{id: 7, confirmer: true})
	assert.True(t, confirmer.ReadOrder(&other))
	assert.True(t, confirmer.ReadAllOrders())
	assert.True(t, confirmer.ConfirmOrders())

	blocked := NewUserBasedPolicy(testActor{id: 8, blocked: true})
	assert.False(t, blocked.AddOrders())
}

type testActor struct {
	id        int64
	blocked   bool
	admin     bool
	confirmer bool
}

func (a testActor) UserID() int64         { return a.id }
func (a testActor) IsBlocked() bool       { return a.blocked }
func (a testActor) IsAdmin() bool         { return a.admin }
func (a testActor) CanConfirmOrder() bool { return a.confirmer }
