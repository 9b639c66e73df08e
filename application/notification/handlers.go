package notification

import (
	"context"
	"fmt"

	apporder "tgorders/application/order"
	appuser "tgorders/application/user"
	"tgorders/domain/order"
	"tgorders/domain/shared"
	"tgorders/domain/user"
	"tgorders/pkg/logger"

	"go.uber.org/zap"
)

// DataUnitOfWork is the data bag key of the unit of work opened by
// UnitOfWorkMiddleware.
const DataUnitOfWork = "notification.uow"

// Handlers sends the order notifications.
type Handlers struct {
	sender     Sender
	dispatcher *shared.EventDispatcher
}

func NewHandlers(sender Sender, dispatcher *shared.EventDispatcher) *Handlers {
	return &Handlers{sender: sender, dispatcher: dispatcher}
}

// Register wires the handlers and the middlewares of both channels. The domain
// channel writes every event to the outbox of the running unit of work.
func (h *Handlers) Register(factory shared.UnitOfWorkFactory) {
	h.dispatcher.Domain.Use(LoggingMiddleware("domain"), MetricsMiddleware("domain"))
	for _, name := range OutboxEvents {
		h.dispatcher.Domain.Register(name, OutboxHandler)
	}

	h.dispatcher.Notifications.Use(
		LoggingMiddleware("notification"),
		MetricsMiddleware("notification"),
		UnitOfWorkMiddleware(factory),
	)
	h.dispatcher.Notifications.Register(order.EventOrderCreated, h.OrderCreated)
	h.dispatcher.Notifications.Register(order.EventOrderConfirmStatusChanged, h.OrderConfirmStatusChanged)
}

// OrderCreated sends the order to every confirmer with a confirm keyboard and
// records the sent messages on the order. A recipient that cannot be reached is
// logged and skipped.
func (h *Handlers) OrderCreated(ctx context.Context, event shared.DomainEvent, data shared.Data) error {
	e, ok := event.(*order.OrderCreatedEvent)
	if !ok {
		return fmt.Errorf("unexpected event type %T", event)
	}
	users, orders, err := unitOfWork(data)
	if err != nil {
		return err
	}

	confirmers, err := appuser.NewApplicationService(users, user.AllowPolicy{}, h.dispatcher).
		GetUsersForConfirmation(ctx)
	if err != nil {
		return fmt.Errorf("load confirmers: %w", err)
	}

	o := e.Order()
	text := fmt.Sprintf("New order %s from %s\n\n", pre(o.ID), o.Creator.Name) + FormatOrder(o)

	sent := make([]apporder.OrderMessageRequest, 0, len(confirmers))
	for _, c := range confirmers {
		msg, err := h.sender.Send(ctx, c.ID, text, o.ID)
		if err != nil {
			logger.Error("send order to confirmer",
				zap.String("order_id", o.ID),
				zap.Int64("chat_id", c.ID),
				zap.Error(err),
			)
			continue
		}
		sent = append(sent, apporder.OrderMessageRequest{MessageID: msg.MessageID, ChatID: msg.ChatID})
	}

	return apporder.NewApplicationService(orders, order.AllowPolicy{}, h.dispatcher).
		AddOrderMessages(ctx, o.ID, sent)
}

// OrderConfirmStatusChanged tells the creator and removes the keyboards from
// every message sent to the confirmers. Each delivery failure is logged and
// the remaining messages are still handled.
func (h *Handlers) OrderConfirmStatusChanged(ctx context.Context, event shared.DomainEvent, data shared.Data) error {
	e, ok := event.(*order.OrderConfirmStatusChangedEvent)
	if !ok {
		return fmt.Errorf("unexpected event type %T", event)
	}

	o := e.Order()
	text := fmt.Sprintf("Order %s confirmed by %s\n\n", pre(o.ID), e.ConfirmedBy().Name) + FormatOrder(o)
	if _, err := h.sender.Send(ctx, o.Creator.ID, text, ""); err != nil {
		logger.Error("send confirm status to creator",
			zap.String("order_id", o.ID),
			zap.Int64("chat_id", o.Creator.ID),
			zap.Error(err),
		)
	}

	for _, m := range o.Messages {
		if err := h.sender.ClearKeyboard(ctx, m.ChatID, m.MessageID); err != nil {
			logger.Warn("clear order keyboard",
				zap.String("order_id", o.ID),
				zap.Int64("chat_id", m.ChatID),
				zap.Int("message_id", m.MessageID),
				zap.Error(err),
			)
		}
	}
	return nil
}

func unitOfWork(data shared.Data) (user.UnitOfWork, order.UnitOfWork, error) {
	uow, ok := shared.Value[shared.UnitOfWork](data, DataUnitOfWork)
	if !ok {
		return nil, nil, fmt.Errorf("no unit of work in data under %q", DataUnitOfWork)
	}
	users, ok := uow.(user.UnitOfWork)
	if !ok {
		return nil, nil, fmt.Errorf("unit of work %T has no user repositories", uow)
	}
	orders, ok := uow.(order.UnitOfWork)
	if !ok {
		return nil, nil, fmt.Errorf("unit of work %T has no order repositories", uow)
	}
	return users, orders, nil
}
