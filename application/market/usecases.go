package market

import (
	"context"

	"tgorders/application/usecase"
	"tgorders/domain/market"
	"tgorders/domain/shared"
	"tgorders/pkg/logger"
	"tgorders/pkg/validator"

	"go.uber.org/zap"
)

// GetAllMarkets lists markets sorted by name.
type GetAllMarkets struct {
	uow market.UnitOfWork
}

func (uc GetAllMarkets) Execute(ctx context.Context, onlyActive bool) ([]*MarketResponse, error) {
	markets, err := uc.uow.MarketReader().AllMarkets(ctx, onlyActive)
	if err != nil {
		return nil, err
	}
	responses := make([]*MarketResponse, len(markets))
	for i, m := range markets {
		responses[i] = toMarketResponse(m)
	}
	return responses, nil
}

type GetMarket struct {
	uow market.UnitOfWork
}

func (uc GetMarket) Execute(ctx context.Context, id string) (*MarketResponse, error) {
	m, err := uc.uow.MarketReader().MarketByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toMarketResponse(m), nil
}

type AddMarket struct {
	uow        market.UnitOfWork
	dispatcher *shared.EventDispatcher
}

func (uc AddMarket) Execute(ctx context.Context, req CreateMarketRequest) (*MarketResponse, error) {
	if err := validator.Validate("market", req); err != nil {
		return nil, err
	}

	m, err := market.New(req.Name)
	if err != nil {
		return nil, err
	}
	if err := uc.uow.Markets().AddMarket(ctx, m); err != nil {
		return nil, usecase.Abort(ctx, uc.uow, err)
	}
	if err := usecase.Commit(ctx, uc.uow, uc.dispatcher, m); err != nil {
		return nil, err
	}

	logger.Info("market persisted", zap.String("market_id", m.ID()), zap.String("name", m.Name()))
	return toMarketResponse(m), nil
}

type PatchMarket struct {
	uow        market.UnitOfWork
	dispatcher *shared.EventDispatcher
}

func (uc PatchMarket) Execute(ctx context.Context, req PatchMarketRequest) (*MarketResponse, error) {
	if err := validator.Validate("market", req); err != nil {
		return nil, err
	}
	if req.Name.IsNull() || req.IsActive.IsNull() {
		return nil, shared.NewValidationError("market", "", "name and is_active can't be null")
	}

	m, err := uc.uow.Markets().MarketByID(ctx, req.ID)
	if err != nil {
		return nil, usecase.Abort(ctx, uc.uow, err)
	}
	if name, ok := req.Name.Value(); ok {
		if err := m.ChangeName(name); err != nil {
			return nil, usecase.Abort(ctx, uc.uow, err)
		}
	}
	if active, ok := req.IsActive.Value(); ok {
		m.ChangeActiveStatus(active)
	}

	if err := uc.uow.Markets().EditMarket(ctx, m); err != nil {
		return nil, usecase.Abort(ctx, uc.uow, err)
	}
	if err := usecase.Commit(ctx, uc.uow, uc.dispatcher, m); err != nil {
		return nil, err
	}

	logger.Info("market edited", zap.String("market_id", m.ID()))
	return toMarketResponse(m), nil
}

type DeleteMarket struct {
	uow        market.UnitOfWork
	dispatcher *shared.EventDispatcher
}

func (uc DeleteMarket) Execute(ctx context.Context, id string) error {
	if err := uc.uow.Markets().DeleteMarket(ctx, id); err != nil {
		return usecase.Abort(ctx, uc.uow, err)
	}
	if err := usecase.Commit(ctx, uc.uow, uc.dispatcher); err != nil {
		return err
	}

	logger.Info("market deleted", zap.String("market_id", id))
	return nil
}
