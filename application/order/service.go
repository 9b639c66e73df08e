/*
Package order is the application service of orders.

AddOrder and ChangeConfirmStatus emit events; their notification handlers
message the confirmers and the creator after the commit.
*/
package order

import (
	"context"

	"tgorders/domain/order"
	"tgorders/domain/shared"
)

// ApplicationService coordinates order operations for one acting user.
type ApplicationService struct {
	uow        order.UnitOfWork
	policy     order.AccessPolicy
	dispatcher *shared.EventDispatcher
}

func NewApplicationService(uow order.UnitOfWork, policy order.AccessPolicy, dispatcher *shared.EventDispatcher) *ApplicationService {
	return &ApplicationService{uow: uow, policy: policy, dispatcher: dispatcher}
}

func (s *ApplicationService) AddOrder(ctx context.Context, req CreateOrderRequest) (*OrderResponse, error) {
	if !s.policy.AddOrders() {
		return nil, shared.NewAccessDeniedError("order", "add order")
	}
	return AddOrder{uow: s.uow, dispatcher: s.dispatcher}.Execute(ctx, req)
}

func (s *ApplicationService) GetAllOrders(ctx context.Context) ([]*OrderResponse, error) {
	if !s.policy.ReadAllOrders() {
		return nil, shared.NewAccessDeniedError("order", "read all orders")
	}
	return GetAllOrders{uow: s.uow}.Execute(ctx)
}

// GetOrderByID loads the order before the policy check because ReadOrder
// needs its creator.
func (s *ApplicationService) GetOrderByID(ctx context.Context, id string) (*OrderResponse, error) {
	o, err := s.uow.OrderReader().OrderByID(ctx, id)
	if err != nil {
		return nil, err
	}
	creatorID := o.Creator().ID
	if !s.policy.ReadOrder(&creatorID) {
		return nil, shared.NewAccessDeniedError("order", "read order")
	}
	return toOrderResponse(o), nil
}

func (s *ApplicationService) GetUserOrders(ctx context.Context, userID int64) ([]*OrderResponse, error) {
	if !s.policy.ReadUserOrders(userID) {
		return nil, shared.NewAccessDeniedError("order", "read user orders")
	}
	return GetUserOrders{uow: s.uow}.Execute(ctx, userID)
}

// ChangeConfirmStatus confirms (YES) or rejects (NO) a NOT_PROCESSED order.
func (s *ApplicationService) ChangeConfirmStatus(ctx context.Context, req ConfirmOrderRequest, confirmedBy order.UserRef) (*OrderResponse, error) {
	if !s.policy.ConfirmOrders() {
		return nil, shared.NewAccessDeniedError("order", "confirm order")
	}
	return ChangeConfirmStatus{uow: s.uow, dispatcher: s.dispatcher}.Execute(ctx, req, confirmedBy)
}

// AddOrderMessages records the bot messages sent about an order.
func (s *ApplicationService) AddOrderMessages(ctx context.Context, orderID string, msgs []OrderMessageRequest) error {
	if !s.policy.ModifyOrders() {
		return shared.NewAccessDeniedError("order", "edit order")
	}
	return AddOrderMessages{uow: s.uow, dispatcher: s.dispatcher}.Execute(ctx, orderID, msgs)
}
