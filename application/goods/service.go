/*
Package goods is the application service of the catalog.

Every method checks one access policy predicate and hands over to a use case.
Mutating use cases run the two phase event emission through the unit of work.
*/
package goods

import (
	"context"

	"tgorders/domain/goods"
	"tgorders/domain/shared"
)

// ApplicationService coordinates catalog operations for one acting user.
type ApplicationService struct {
	uow        goods.UnitOfWork
	policy     goods.AccessPolicy
	dispatcher *shared.EventDispatcher
}

func NewApplicationService(uow goods.UnitOfWork, policy goods.AccessPolicy, dispatcher *shared.EventDispatcher) *ApplicationService {
	return &ApplicationService{uow: uow, policy: policy, dispatcher: dispatcher}
}

func (s *ApplicationService) AddGoods(ctx context.Context, req CreateGoodsRequest) (*GoodsResponse, error) {
	if !s.policy.ModifyGoods() {
		return nil, shared.NewAccessDeniedError("goods", "add goods")
	}
	return AddGoods{uow: s.uow, dispatcher: s.dispatcher}.Execute(ctx, req)
}

func (s *ApplicationService) GetGoodsInFolder(ctx context.Context, q GoodsInFolderQuery) ([]*GoodsResponse, error) {
	if !s.policy.ReadGoods() {
		return nil, shared.NewAccessDeniedError("goods", "read goods")
	}
	return GetGoodsInFolder{uow: s.uow}.Execute(ctx, q)
}

func (s *ApplicationService) GetGoodsByID(ctx context.Context, id string) (*GoodsResponse, error) {
	if !s.policy.ReadGoods() {
		return nil, shared.NewAccessDeniedError("goods", "read goods")
	}
	return GetGoodsByID{uow: s.uow}.Execute(ctx, id)
}

func (s *ApplicationService) GetParentFolder(ctx context.Context, childID string) (*GoodsResponse, error) {
	if !s.policy.ReadGoods() {
		return nil, shared.NewAccessDeniedError("goods", "read goods")
	}
	return GetParentFolder{uow: s.uow}.Execute(ctx, childID)
}

func (s *ApplicationService) PatchGoods(ctx context.Context, req PatchGoodsRequest) (*GoodsResponse, error) {
	if !s.policy.ModifyGoods() {
		return nil, shared.NewAccessDeniedError("goods", "edit goods")
	}
	return PatchGoods{uow: s.uow, dispatcher: s.dispatcher}.Execute(ctx, req)
}

func (s *ApplicationService) DeleteGoods(ctx context.Context, id string) error {
	if !s.policy.ModifyGoods() {
		return shared.NewAccessDeniedError("goods", "delete goods")
	}
	return DeleteGoods{uow: s.uow, dispatcher: s.dispatcher}.Execute(ctx, id)
}
