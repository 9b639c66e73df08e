package telegram

import (
	"context"
	"errors"
	"testing"

	apporder "tgorders/application/order"
	"tgorders/domain/accesslevel"
	"tgorders/domain/goods"
	"tgorders/domain/market"
	"tgorders/domain/order"
	"tgorders/domain/shared"
	"tgorders/domain/user"
	"tgorders/infrastructure/persistence/memory"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBot struct {
	sent     []tgbotapi.Chattable
	requests []tgbotapi.Chattable
	err      error
}

func (b *fakeBot) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	if b.err != nil {
		return tgbotapi.Message{}, b.err
	}
	b.sent = append(b.sent, c)
	msg, _ := c.(tgbotapi.MessageConfig)
	return tgbotapi.Message{MessageID: len(b.sent), Chat: &tgbotapi.Chat{ID: msg.ChatID}}, nil
}

func (b *fakeBot) Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	if b.err != nil {
		return nil, b.err
	}
	b.requests = append(b.requests, c)
	return &tgbotapi.APIResponse{Ok: true}, nil
}

const orderID = "0190b4c4-6d2a-7c39-9a51-3f0c8e1d2a7b"

func TestParseConfirmCallback(t *testing.T) {
	tests := []struct {
		data    string
		want    ConfirmCallback
		wantErr bool
	}{
		{data: "order_confirm:" + orderID + ":1", want: ConfirmCallback{OrderID: orderID, Result: true}},
		{data: "order_confirm:" + orderID + ":0", want: ConfirmCallback{OrderID: orderID}},
		{data: "order_confirm:" + orderID + ":2", wantErr: true},
		{data: "order_confirm:not-a-uuid:1", wantErr: true},
		{data: "goods:" + orderID + ":1", wantErr: true},
		{data: "order_confirm:" + orderID, wantErr: true},
		{data: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.data, func(t *testing.T) {
			got, err := ParseConfirmCallback(tt.data)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnknownCallback)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.data, got.String())
		})
	}
}

func TestConfirmCallback_Status(t *testing.T) {
	assert.Equal(t, order.StatusYes, ConfirmCallback{Result: true}.Status())
	assert.Equal(t, order.StatusNo, ConfirmCallback{}.Status())
}

func TestNotifier_SendWithKeyboard(t *testing.T) {
	bot := &fakeBot{}
	msg, err := NewNotifier(bot).Send(context.Background(), 100, "<b>hi</b>", orderID)
	require.NoError(t, err)
	assert.Equal(t, order.OrderMessage{MessageID: 1, ChatID: 100}, msg)

	require.Len(t, bot.sent, 1)
	cfg := bot.sent[0].(tgbotapi.MessageConfig)
	assert.Equal(t, tgbotapi.ModeHTML, cfg.ParseMode)
	keyboard := cfg.ReplyMarkup.(tgbotapi.InlineKeyboardMarkup)
	require.Len(t, keyboard.InlineKeyboard, 2)
	assert.Equal(t, "order_confirm:"+orderID+":1", *keyboard.InlineKeyboard[0][0].CallbackData)
	assert.Equal(t, "order_confirm:"+orderID+":0", *keyboard.InlineKeyboard[1][0].CallbackData)
}

func TestNotifier_SendPlain(t *testing.T) {
	bot := &fakeBot{}
	_, err := NewNotifier(bot).Send(context.Background(), 100, "done", "")
	require.NoError(t, err)
	assert.Nil(t, bot.sent[0].(tgbotapi.MessageConfig).ReplyMarkup)
}

func TestNotifier_SendError(t *testing.T) {
	bot := &fakeBot{err: errors.New("chat not found")}
	_, err := NewNotifier(bot).Send(context.Background(), 100, "done", "")
	assert.ErrorContains(t, err, "chat not found")
}

func TestNotifier_ClearKeyboard(t *testing.T) {
	bot := &fakeBot{}
	require.NoError(t, NewNotifier(bot).ClearKeyboard(context.Background(), 100, 5))

	require.Len(t, bot.requests, 1)
	edit := bot.requests[0].(tgbotapi.EditMessageReplyMarkupConfig)
	assert.Equal(t, int64(100), edit.ChatID)
	assert.Equal(t, 5, edit.MessageID)
	assert.Empty(t, edit.ReplyMarkup.InlineKeyboard)
}

type routerFixture struct {
	factory   *memory.UnitOfWorkFactory
	bot       *fakeBot
	router    *CallbackRouter
	orderID   string
	confirmer int64
	creator   int64
}

func newRouterFixture(t *testing.T) *routerFixture {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()

	creator, err := user.New(200, "Worker", []accesslevel.AccessLevel{accesslevel.User})
	require.NoError(t, err)
	confirmer, err := user.New(100, "Chief", []accesslevel.AccessLevel{accesslevel.Confirmation})
	require.NoError(t, err)
	m, err := market.New("Central")
	require.NoError(t, err)
	sku := "COLA-1"
	cola, err := goods.New("Cola", goods.TypeGoods, &sku, nil)
	require.NoError(t, err)

	seed := memory.NewUnitOfWork(store)
	require.NoError(t, seed.Users().AddUser(ctx, creator))
	require.NoError(t, seed.Users().AddUser(ctx, confirmer))
	require.NoError(t, seed.Markets().AddMarket(ctx, m))
	require.NoError(t, seed.Goods().AddGoods(ctx, cola))
	require.NoError(t, seed.Commit(ctx))

	factory := memory.NewUnitOfWorkFactory(store)
	dispatcher := shared.NewEventDispatcher(nil)
	created, err := apporder.NewApplicationService(factory.Open(), order.AllowPolicy{}, dispatcher).
		AddOrder(ctx, apporder.CreateOrderRequest{
			Lines:             []apporder.OrderLineRequest{{GoodsID: cola.ID(), Quantity: 2}},
			CreatorID:         creator.ID(),
			RecipientMarketID: m.ID(),
		})
	require.NoError(t, err)

	bot := &fakeBot{}
	return &routerFixture{
		factory:   factory,
		bot:       bot,
		router:    NewCallbackRouter(bot, factory, dispatcher),
		orderID:   created.ID,
		confirmer: confirmer.ID(),
		creator:   creator.ID(),
	}
}

func (f *routerFixture) press(from int64, data string) string {
	f.bot.requests = nil
	f.router.HandleUpdate(context.Background(), tgbotapi.Update{
		CallbackQuery: &tgbotapi.CallbackQuery{ID: "cb", From: &tgbotapi.User{ID: from}, Data: data},
	})
	if len(f.bot.requests) != 1 {
		return ""
	}
	return f.bot.requests[0].(tgbotapi.CallbackConfig).Text
}

func (f *routerFixture) status(t *testing.T) string {
	t.Helper()
	o, err := apporder.NewApplicationService(f.factory.Open(), order.AllowPolicy{}, shared.NewEventDispatcher(nil)).
		GetOrderByID(context.Background(), f.orderID)
	require.NoError(t, err)
	return o.Confirmed
}

func TestCallbackRouter_Confirms(t *testing.T) {
	f := newRouterFixture(t)

	answer := f.press(f.confirmer, ConfirmCallback{OrderID: f.orderID, Result: true}.String())
	assert.Equal(t, "Order confirmed", answer)
	assert.Equal(t, "YES", f.status(t))

	answer = f.press(f.confirmer, ConfirmCallback{OrderID: f.orderID}.String())
	assert.Equal(t, "Order is already processed", answer)
	assert.Equal(t, "YES", f.status(t))
}

func TestCallbackRouter_Cancels(t *testing.T) {
	f := newRouterFixture(t)

	assert.Equal(t, "Order canceled", f.press(f.confirmer, ConfirmCallback{OrderID: f.orderID}.String()))
	assert.Equal(t, "NO", f.status(t))
}

func TestCallbackRouter_Denied(t *testing.T) {
	f := newRouterFixture(t)

	assert.Equal(t, "Access denied", f.press(f.creator, ConfirmCallback{OrderID: f.orderID, Result: true}.String()))
	assert.Equal(t, "Access denied", f.press(999, ConfirmCallback{OrderID: f.orderID, Result: true}.String()))
	assert.Equal(t, "NOT_PROCESSED", f.status(t))
}

func TestCallbackRouter_UnknownData(t *testing.T) {
	f := newRouterFixture(t)

	assert.Equal(t, "Unknown action", f.press(f.confirmer, "something:else"))
	assert.Equal(t, "NOT_PROCESSED", f.status(t))
}

func TestCallbackRouter_IgnoresMessages(t *testing.T) {
	f := newRouterFixture(t)
	f.router.HandleUpdate(context.Background(), tgbotapi.Update{Message: &tgbotapi.Message{Text: "/start"}})
	assert.Empty(t, f.bot.requests)
}
