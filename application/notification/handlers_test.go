package notification

import (
	"context"
	"errors"
	"fmt"
	"testing"

	apporder "tgorders/application/order"
	"tgorders/domain/accesslevel"
	"tgorders/domain/goods"
	"tgorders/domain/market"
	"tgorders/domain/order"
	"tgorders/domain/shared"
	"tgorders/domain/user"
	"tgorders/infrastructure/persistence/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSender struct {
	calls   *[]string
	failFor map[int64]bool
	next    int
}

func (s *fakeSender) Send(ctx context.Context, chatID int64, text, confirmOrderID string) (order.OrderMessage, error) {
	*s.calls = append(*s.calls, fmt.Sprintf("send:%d", chatID))
	if s.failFor[chatID] {
		return order.OrderMessage{}, errors.New("chat not found")
	}
	s.next++
	return order.OrderMessage{MessageID: s.next, ChatID: chatID}, nil
}

func (s *fakeSender) ClearKeyboard(ctx context.Context, chatID int64, messageID int) error {
	*s.calls = append(*s.calls, fmt.Sprintf("clear:%d:%d", chatID, messageID))
	return nil
}

type env struct {
	store      *memory.Store
	factory    *memory.UnitOfWorkFactory
	dispatcher *shared.EventDispatcher
	sender     *fakeSender
	calls      []string
	creator    *user.TelegramUser
	confirmers []*user.TelegramUser
	market     *market.Market
	goods      *goods.Goods
}

func newEnv(t *testing.T) *env {
	t.Helper()
	ctx := context.Background()
	e := &env{store: memory.NewStore()}
	e.factory = memory.NewUnitOfWorkFactory(e.store).WithRecorder(func(op string) {
		e.calls = append(e.calls, op)
	})
	e.sender = &fakeSender{calls: &e.calls, failFor: map[int64]bool{}}
	e.dispatcher = shared.NewEventDispatcher(nil)
	NewHandlers(e.sender, e.dispatcher).Register(e.factory)
	e.dispatcher.Domain.Register(order.EventOrderCreated, func(ctx context.Context, ev shared.DomainEvent, d shared.Data) error {
		e.calls = append(e.calls, "domain")
		return nil
	})

	var err error
	e.creator, err = user.New(200, "Worker", []accesslevel.AccessLevel{accesslevel.User})
	require.NoError(t, err)
	for i, name := range []string{"Anna", "Boris"} {
		c, err := user.New(int64(101+i), name, []accesslevel.AccessLevel{accesslevel.Confirmation})
		require.NoError(t, err)
		e.confirmers = append(e.confirmers, c)
	}
	e.market, err = market.New("Central")
	require.NoError(t, err)
	sku := "TEA-1"
	e.goods, err = goods.New("Tea", goods.TypeGoods, &sku, nil)
	require.NoError(t, err)

	seed := memory.NewUnitOfWork(e.store)
	require.NoError(t, seed.Users().AddUser(ctx, e.creator))
	for _, c := range e.confirmers {
		require.NoError(t, seed.Users().AddUser(ctx, c))
	}
	require.NoError(t, seed.Markets().AddMarket(ctx, e.market))
	require.NoError(t, seed.Goods().AddGoods(ctx, e.goods))
	require.NoError(t, seed.Commit(ctx))
	return e
}

func (e *env) orders(actor shared.Actor) *apporder.ApplicationService {
	return apporder.NewApplicationService(e.factory.Open(), order.NewUserBasedPolicy(actor), e.dispatcher)
}

func (e *env) addOrder(t *testing.T) *apporder.OrderResponse {
	t.Helper()
	resp, err := e.orders(e.creator).AddOrder(context.Background(), apporder.CreateOrderRequest{
		Lines:             []apporder.OrderLineRequest{{GoodsID: e.goods.ID(), Quantity: 2}},
		CreatorID:         e.creator.ID(),
		RecipientMarketID: e.market.ID(),
	})
	require.NoError(t, err)
	return resp
}

func TestOrderCreated_EmissionOrder(t *testing.T) {
	e := newEnv(t)

	created := e.addOrder(t)

	assert.Equal(t, []string{
		"domain",
		"commit",
		"send:101",
		"send:102",
		"commit",
		"rollback",
	}, e.calls)

	o, err := e.factory.Open().OrderReader().OrderByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, []order.OrderMessage{{MessageID: 1, ChatID: 101}, {MessageID: 2, ChatID: 102}}, o.Messages())

	outbox := e.store.OutboxEvents()
	require.Len(t, outbox, 1)
	assert.Equal(t, order.EventOrderCreated, outbox[0].EventName())
	assert.Equal(t, created.ID, outbox[0].GetAggregateID())
}

func TestOrderCreated_SkipsUnreachableConfirmer(t *testing.T) {
	e := newEnv(t)
	e.sender.failFor[101] = true

	created := e.addOrder(t)

	o, err := e.factory.Open().OrderReader().OrderByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, []order.OrderMessage{{MessageID: 1, ChatID: 102}}, o.Messages())
}

func TestOrderConfirmStatusChanged_CreatorUnreachable(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	created := e.addOrder(t)

	e.sender.failFor[e.creator.ID()] = true
	e.calls = nil

	chief := e.confirmers[0]
	resp, err := e.orders(chief).ChangeConfirmStatus(ctx,
		apporder.ConfirmOrderRequest{OrderID: created.ID, Status: "YES"},
		order.UserRef{ID: chief.ID(), Name: chief.Name()},
	)
	require.NoError(t, err)
	assert.Equal(t, "YES", resp.Confirmed)

	assert.Equal(t, []string{"commit", "send:200", "clear:101:1", "clear:102:2", "rollback"}, e.calls)

	o, err := e.factory.Open().OrderReader().OrderByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, order.StatusYes, o.Confirmed())
}

func TestOrderConfirmStatusChanged_ClearsKeyboards(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	created := e.addOrder(t)
	e.calls = nil

	chief := e.confirmers[1]
	_, err := e.orders(chief).ChangeConfirmStatus(ctx,
		apporder.ConfirmOrderRequest{OrderID: created.ID, Status: "NO"},
		order.UserRef{ID: chief.ID(), Name: chief.Name()},
	)
	require.NoError(t, err)

	assert.Equal(t, []string{"commit", "send:200", "clear:101:1", "clear:102:2", "rollback"}, e.calls)
}

func TestUnitOfWorkMiddleware_MissingUnitOfWork(t *testing.T) {
	h := NewHandlers(&fakeSender{calls: new([]string)}, shared.NewEventDispatcher(nil))
	ev := order.NewOrderCreatedEvent(order.Snapshot{ID: "o-1"})

	err := h.OrderCreated(context.Background(), ev, shared.Data{})
	assert.ErrorContains(t, err, DataUnitOfWork)
}

func TestFormatOrder_EscapesHTML(t *testing.T) {
	sku := "A<1>"
	text := FormatOrder(order.Snapshot{
		ID:         "o-1",
		Commentary: "<b>fast</b>",
		Confirmed:  order.StatusNotProcessed,
		Lines: []order.LineSnapshot{
			{Goods: order.GoodsRef{Name: "Tea & Co", SKU: &sku}, Quantity: 2},
		},
	})

	assert.Contains(t, text, "Comments: &lt;b&gt;fast&lt;/b&gt;")
	assert.Contains(t, text, "Name: Tea &amp; Co A&lt;1&gt;")
	assert.Contains(t, text, "Quantity: 2")
}
