package telegram

import (
	"context"
	"errors"
	"fmt"
	"strings"

	apporder "tgorders/application/order"
	"tgorders/application/session"
	"tgorders/domain/order"
	"tgorders/domain/shared"
	"tgorders/pkg/logger"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const confirmPrefix = "order_confirm"

// ConfirmCallback is the payload of a confirm keyboard button:
// order_confirm:<order id>:<1|0>.
type ConfirmCallback struct {
	OrderID string
	Result  bool
}

func (c ConfirmCallback) String() string {
	result := "0"
	if c.Result {
		result = "1"
	}
	return confirmPrefix + ":" + c.OrderID + ":" + result
}

func (c ConfirmCallback) Status() order.ConfirmedStatus {
	if c.Result {
		return order.StatusYes
	}
	return order.StatusNo
}

var ErrUnknownCallback = errors.New("unknown callback data")

// ParseConfirmCallback accepts only the exact format written by
// ConfirmKeyboard.
func ParseConfirmCallback(data string) (ConfirmCallback, error) {
	parts := strings.Split(data, ":")
	if len(parts) != 3 || parts[0] != confirmPrefix {
		return ConfirmCallback{}, fmt.Errorf("%w: %q", ErrUnknownCallback, data)
	}
	if _, err := uuid.Parse(parts[1]); err != nil {
		return ConfirmCallback{}, fmt.Errorf("%w: bad order id %q", ErrUnknownCallback, parts[1])
	}

	cb := ConfirmCallback{OrderID: parts[1]}
	switch parts[2] {
	case "1":
		cb.Result = true
	case "0":
	default:
		return ConfirmCallback{}, fmt.Errorf("%w: bad result %q", ErrUnknownCallback, parts[2])
	}
	return cb, nil
}

// CallbackRouter handles the callback queries of the confirm keyboard. Each
// query runs in its own session for the user who pressed the button.
type CallbackRouter struct {
	bot        Bot
	factory    shared.UnitOfWorkFactory
	dispatcher *shared.EventDispatcher
}

func NewCallbackRouter(bot Bot, factory shared.UnitOfWorkFactory, dispatcher *shared.EventDispatcher) *CallbackRouter {
	return &CallbackRouter{bot: bot, factory: factory, dispatcher: dispatcher}
}

// HandleUpdate ignores everything but callback queries.
func (r *CallbackRouter) HandleUpdate(ctx context.Context, update tgbotapi.Update) {
	q := update.CallbackQuery
	if q == nil || q.From == nil {
		return
	}

	answer := r.handle(ctx, q)
	if _, err := r.bot.Request(tgbotapi.NewCallback(q.ID, answer)); err != nil {
		logger.Warn("Failed to answer callback query",
			zap.String("callback_id", q.ID),
			zap.Error(err),
		)
	}
}

func (r *CallbackRouter) handle(ctx context.Context, q *tgbotapi.CallbackQuery) string {
	cb, err := ParseConfirmCallback(q.Data)
	if err != nil {
		logger.Debug("Ignoring callback query", zap.String("data", q.Data), zap.Error(err))
		return "Unknown action"
	}

	err = session.Run(ctx, r.factory, r.dispatcher, q.From.ID, func(s *session.Session) error {
		actor := s.Actor()
		_, err := s.Orders().ChangeConfirmStatus(ctx, apporder.ConfirmOrderRequest{
			OrderID: cb.OrderID,
			Status:  string(cb.Status()),
		}, order.UserRef{ID: actor.ID(), Name: actor.Name()})
		return err
	})

	switch {
	case err == nil:
		if cb.Result {
			return "Order confirmed"
		}
		return "Order canceled"
	case errors.Is(err, order.ErrOrderAlreadyConfirmed):
		return "Order is already processed"
	case errors.Is(err, shared.ErrUnauthorized), errors.Is(err, shared.ErrAccessDenied):
		return "Access denied"
	case errors.Is(err, shared.ErrNotFound):
		return "Order not found"
	default:
		logger.Error("Failed to change order confirm status",
			zap.String("order_id", cb.OrderID),
			zap.Int64("user_id", q.From.ID),
			zap.Error(err),
		)
		return "Something went wrong"
	}
}

// Poll feeds updates to the router one at a time until ctx ends.
func Poll(ctx context.Context, bot *tgbotapi.BotAPI, timeout int, router *CallbackRouter) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = timeout
	updates := bot.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			bot.StopReceivingUpdates()
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			router.HandleUpdate(ctx, update)
		}
	}
}
