// Package market is the application service of delivery destinations.
package market

import (
	"context"

	"tgorders/domain/market"
	"tgorders/domain/shared"
)

type CreateMarketRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}

type PatchMarketRequest struct {
	ID       string               `json:"-" validate:"required"`
	Name     shared.Patch[string] `json:"name"`
	IsActive shared.Patch[bool]   `json:"is_active"`
}

type MarketResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	IsActive bool   `json:"is_active"`
}

func toMarketResponse(m *market.Market) *MarketResponse {
	return &MarketResponse{ID: m.ID(), Name: m.Name(), IsActive: m.IsActive()}
}

// ApplicationService coordinates market operations for one acting user.
type ApplicationService struct {
	uow        market.UnitOfWork
	policy     market.AccessPolicy
	dispatcher *shared.EventDispatcher
}

func NewApplicationService(uow market.UnitOfWork, policy market.AccessPolicy, dispatcher *shared.EventDispatcher) *ApplicationService {
	return &ApplicationService{uow: uow, policy: policy, dispatcher: dispatcher}
}

func (s *ApplicationService) GetAllMarkets(ctx context.Context, onlyActive bool) ([]*MarketResponse, error) {
	if !s.policy.ReadMarkets() {
		return nil, shared.NewAccessDeniedError("market", "read markets")
	}
	return GetAllMarkets{uow: s.uow}.Execute(ctx, onlyActive)
}

func (s *ApplicationService) GetMarket(ctx context.Context, id string) (*MarketResponse, error) {
	if !s.policy.ReadMarkets() {
		return nil, shared.NewAccessDeniedError("market", "read markets")
	}
	return GetMarket{uow: s.uow}.Execute(ctx, id)
}

func (s *ApplicationService) AddMarket(ctx context.Context, req CreateMarketRequest) (*MarketResponse, error) {
	if !s.policy.ModifyMarkets() {
		return nil, shared.NewAccessDeniedError("market", "add market")
	}
	return AddMarket{uow: s.uow, dispatcher: s.dispatcher}.Execute(ctx, req)
}

func (s *ApplicationService) PatchMarket(ctx context.Context, req PatchMarketRequest) (*MarketResponse, error) {
	if !s.policy.ModifyMarkets() {
		return nil, shared.NewAccessDeniedError("market", "edit market")
	}
	return PatchMarket{uow: s.uow, dispatcher: s.dispatcher}.Execute(ctx, req)
}

func (s *ApplicationService) DeleteMarket(ctx context.Context, id string) error {
	if !s.policy.ModifyMarkets() {
		return shared.NewAccessDeniedError("market", "delete market")
	}
	return DeleteMarket{uow: s.uow, dispatcher: s.dispatcher}.Execute(ctx, id)
}
