package order

import (
	"context"

	"tgorders/application/usecase"
	"tgorders/domain/order"
	"tgorders/domain/shared"
	"tgorders/pkg/logger"
	"tgorders/pkg/validator"

	"go.uber.org/zap"
)

// AddOrder inserts the order with its lines in one unit of work. A failing
// line abandons the whole order.
type AddOrder struct {
	uow        order.UnitOfWork
	dispatcher *shared.EventDispatcher
}

func (uc AddOrder) Execute(ctx context.Context, req CreateOrderRequest) (*OrderResponse, error) {
	if err := validator.Validate("order", req); err != nil {
		return nil, err
	}

	draft, err := order.NewDraft(req.CreatorID, req.RecipientMarketID, req.Commentary, toDraftLines(req.Lines))
	if err != nil {
		return nil, err
	}

	o, err := uc.uow.Orders().CreateOrder(ctx, draft)
	if err != nil {
		return nil, usecase.Abort(ctx, uc.uow, err)
	}
	o.Create()

	if err := usecase.Commit(ctx, uc.uow, uc.dispatcher, o); err != nil {
		return nil, err
	}

	logger.Info("order persisted",
		zap.String("order_id", o.ID()),
		zap.Int64("creator_id", o.Creator().ID),
		zap.Int("lines", len(o.Lines())),
	)
	return toOrderResponse(o), nil
}

type ChangeConfirmStatus struct {
	uow        order.UnitOfWork
	dispatcher *shared.EventDispatcher
}

func (uc ChangeConfirmStatus) Execute(ctx context.Context, req ConfirmOrderRequest, confirmedBy order.UserRef) (*OrderResponse, error) {
	if err := validator.Validate("order", req); err != nil {
		return nil, err
	}
	status, err := order.ParseConfirmedStatus(req.Status)
	if err != nil {
		return nil, err
	}

	o, err := uc.uow.Orders().OrderByID(ctx, req.OrderID)
	if err != nil {
		return nil, usecase.Abort(ctx, uc.uow, err)
	}
	if err := o.ChangeConfirmStatus(status, confirmedBy); err != nil {
		return nil, usecase.Abort(ctx, uc.uow, err)
	}
	if err := uc.uow.Orders().EditOrder(ctx, o); err != nil {
		return nil, usecase.Abort(ctx, uc.uow, err)
	}

	if err := usecase.Commit(ctx, uc.uow, uc.dispatcher, o); err != nil {
		return nil, err
	}

	logger.Info("order confirm status changed",
		zap.String("order_id", o.ID()),
		zap.String("status", string(status)),
		zap.Int64("confirmed_by", confirmedBy.ID),
	)
	return toOrderResponse(o), nil
}

type AddOrderMessages struct {
	uow        order.UnitOfWork
	dispatcher *shared.EventDispatcher
}

func (uc AddOrderMessages) Execute(ctx context.Context, orderID string, msgs []OrderMessageRequest) error {
	o, err := uc.uow.Orders().OrderByID(ctx, orderID)
	if err != nil {
		return usecase.Abort(ctx, uc.uow, err)
	}
	for _, m := range msgs {
		o.AddOrderMessage(order.OrderMessage{MessageID: m.MessageID, ChatID: m.ChatID})
	}
	if err := uc.uow.Orders().EditOrder(ctx, o); err != nil {
		return usecase.Abort(ctx, uc.uow, err)
	}

	if err := usecase.Commit(ctx, uc.uow, uc.dispatcher, o); err != nil {
		return err
	}

	logger.Debug("order messages recorded", zap.String("order_id", orderID), zap.Int("count", len(msgs)))
	return nil
}

// GetAllOrders lists every order, newest first.
type GetAllOrders struct {
	uow order.UnitOfWork
}

func (uc GetAllOrders) Execute(ctx context.Context) ([]*OrderResponse, error) {
	orders, err := uc.uow.OrderReader().AllOrders(ctx)
	if err != nil {
		return nil, err
	}
	return toOrderResponses(orders), nil
}

type GetUserOrders struct {
	uow order.UnitOfWork
}

func (uc GetUserOrders) Execute(ctx context.Context, creatorID int64) ([]*OrderResponse, error) {
	orders, err := uc.uow.OrderReader().OrdersByCreator(ctx, creatorID)
	if err != nil {
		return nil, err
	}
	return toOrderResponses(orders), nil
}
