package goods

import (
	"context"
	"errors"

	"tgorders/application/usecase"
	"tgorders/domain/goods"
	"tgorders/domain/shared"
	"tgorders/pkg/logger"
	"tgorders/pkg/validator"

	"go.uber.org/zap"
)

// AddGoods creates a node. An unknown parent is treated as the root.
type AddGoods struct {
	uow        goods.UnitOfWork
	dispatcher *shared.EventDispatcher
}

func (uc AddGoods) Execute(ctx context.Context, req CreateGoodsRequest) (*GoodsResponse, error) {
	if err := validator.Validate("goods", req); err != nil {
		return nil, err
	}
	goodsType, err := goods.ParseType(req.Type)
	if err != nil {
		return nil, err
	}

	var parent *goods.Goods
	if req.ParentID != nil {
		parent, err = uc.uow.Goods().GoodsByID(ctx, *req.ParentID)
		if errors.Is(err, goods.ErrGoodsNotExists) {
			logger.Debug("parent not found, adding to root", zap.String("parent_id", *req.ParentID))
			parent, err = nil, nil
		}
		if err != nil {
			return nil, usecase.Abort(ctx, uc.uow, err)
		}
	}

	g, err := goods.New(req.Name, goodsType, req.SKU, parent)
	if err != nil {
		return nil, usecase.Abort(ctx, uc.uow, err)
	}

	if err := uc.uow.Goods().AddGoods(ctx, g); err != nil {
		return nil, usecase.Abort(ctx, uc.uow, err)
	}

	if err := usecase.Commit(ctx, uc.uow, uc.dispatcher, g); err != nil {
		return nil, err
	}

	logger.Info("goods persisted",
		zap.String("goods_id", g.ID()),
		zap.String("name", g.Name()),
		zap.String("type", string(g.Type())),
	)
	return toGoodsResponse(g), nil
}

type GetGoodsInFolder struct {
	uow goods.UnitOfWork
}

func (uc GetGoodsInFolder) Execute(ctx context.Context, q GoodsInFolderQuery) ([]*GoodsResponse, error) {
	items, err := uc.uow.GoodsReader().GoodsInFolder(ctx, q.ParentID, q.OnlyActive)
	if err != nil {
		return nil, err
	}
	return toGoodsResponses(items), nil
}

type GetGoodsByID struct {
	uow goods.UnitOfWork
}

func (uc GetGoodsByID) Execute(ctx context.Context, id string) (*GoodsResponse, error) {
	g, err := uc.uow.GoodsReader().GoodsByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toGoodsResponse(g), nil
}

// GetParentFolder returns nil for a root node.
type GetParentFolder struct {
	uow goods.UnitOfWork
}

func (uc GetParentFolder) Execute(ctx context.Context, childID string) (*GoodsResponse, error) {
	parent, err := uc.uow.GoodsReader().ParentFolder(ctx, childID)
	if err != nil || parent == nil {
		return nil, err
	}
	return toGoodsResponse(parent), nil
}

type PatchGoods struct {
	uow        goods.UnitOfWork
	dispatcher *shared.EventDispatcher
}

func (uc PatchGoods) Execute(ctx context.Context, req PatchGoodsRequest) (*GoodsResponse, error) {
	if err := validator.Validate("goods", req); err != nil {
		return nil, err
	}

	g, err := uc.uow.Goods().GoodsByID(ctx, req.ID)
	if err != nil {
		return nil, usecase.Abort(ctx, uc.uow, err)
	}

	if err := applyPatch(g, req); err != nil {
		return nil, usecase.Abort(ctx, uc.uow, err)
	}

	if err := uc.uow.Goods().EditGoods(ctx, g); err != nil {
		return nil, usecase.Abort(ctx, uc.uow, err)
	}

	if err := usecase.Commit(ctx, uc.uow, uc.dispatcher, g); err != nil {
		return nil, err
	}

	logger.Info("goods edited", zap.String("goods_id", g.ID()))
	return toGoodsResponse(g), nil
}

func applyPatch(g *goods.Goods, req PatchGoodsRequest) error {
	if req.Name.IsNull() {
		return shared.NewValidationError("goods", "name", "goods name can't be null")
	}
	if name, ok := req.Name.Value(); ok {
		if err := g.ChangeName(name); err != nil {
			return err
		}
	}

	if !req.SKU.IsUnset() {
		if err := g.ChangeSKU(req.SKU.Ptr()); err != nil {
			return err
		}
	}

	if req.IsActive.IsNull() {
		return shared.NewValidationError("goods", "is_active", "is_active can't be null")
	}
	if active, ok := req.IsActive.Value(); ok {
		if err := g.ChangeActiveStatus(active); err != nil {
			return err
		}
	}
	return nil
}

type DeleteGoods struct {
	uow        goods.UnitOfWork
	dispatcher *shared.EventDispatcher
}

func (uc DeleteGoods) Execute(ctx context.Context, id string) error {
	if err := uc.uow.Goods().DeleteGoods(ctx, id); err != nil {
		return usecase.Abort(ctx, uc.uow, err)
	}

	if err := usecase.Commit(ctx, uc.uow, uc.dispatcher); err != nil {
		return err
	}

	logger.Info("goods deleted", zap.String("goods_id", id))
	return nil
}
