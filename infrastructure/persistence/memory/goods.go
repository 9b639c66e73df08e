package memory

import (
	"context"

	"tgorders/domain/goods"
	"tgorders/domain/shared"
)

func goodsFromRow(row goodsRow) *goods.Goods {
	return goods.RebuildFromDTO(goods.ReconstructionDTO{
		ID:       row.ID,
		Name:     row.Name,
		Type:     row.Type,
		SKU:      row.SKU,
		IsActive: row.IsActive,
		ParentID: row.ParentID,
	})
}

func goodsToRow(g *goods.Goods) goodsRow {
	return goodsRow{
		ID:       g.ID(),
		Name:     g.Name(),
		Type:     g.Type(),
		SKU:      g.SKU(),
		IsActive: g.IsActive(),
		ParentID: g.ParentID(),
	}
}

// loadFamily links a node with its parent and direct children in one tree.
func loadFamily(st *state, id string) (*goods.Goods, error) {
	row, ok := st.goods[id]
	if !ok {
		return nil, goods.NewGoodsNotExistsError(id)
	}

	node := goodsFromRow(row)
	tree := goods.NewTree(node)
	if row.ParentID != nil {
		if parentRow, ok := st.goods[*row.ParentID]; ok {
			tree.Add(goodsFromRow(parentRow))
		}
	}
	for _, child := range st.goods {
		if child.ParentID != nil && *child.ParentID == id {
			tree.Add(goodsFromRow(child))
		}
	}
	return node, nil
}

type goodsRepository struct{ uow *UnitOfWork }

func (r goodsRepository) GoodsByID(ctx context.Context, id string) (*goods.Goods, error) {
	return loadFamily(r.uow.read(), id)
}

func (r goodsRepository) AddGoods(ctx context.Context, g *goods.Goods) error {
	st := r.uow.write()
	if _, exists := st.goods[g.ID()]; exists {
		return goods.NewGoodsAlreadyExistsError(g.ID())
	}
	if parentID := g.ParentID(); parentID != nil {
		parent, ok := st.goods[*parentID]
		if !ok {
			return goods.NewGoodsNotExistsError(*parentID)
		}
		if parent.Type != goods.TypeFolder {
			return goods.NewGoodsTypeCantBeParentError(*parentID)
		}
	}
	st.goods[g.ID()] = goodsToRow(g)
	return nil
}

func (r goodsRepository) EditGoods(ctx context.Context, g *goods.Goods) error {
	st := r.uow.write()
	if _, exists := st.goods[g.ID()]; !exists {
		return goods.NewGoodsNotExistsError(g.ID())
	}
	st.goods[g.ID()] = goodsToRow(g)
	return nil
}

func (r goodsRepository) DeleteGoods(ctx context.Context, id string) error {
	st := r.uow.write()
	if _, exists := st.goods[id]; !exists {
		return goods.NewGoodsNotExistsError(id)
	}
	for _, row := range st.goods {
		if row.ParentID != nil && *row.ParentID == id {
			return goods.NewCantDeleteWithChildrenError(id)
		}
	}
	for _, o := range st.orders {
		for _, line := range o.Lines {
			if line.GoodsID == id {
				return goods.NewCantDeleteWithOrdersError(id)
			}
		}
	}
	delete(st.goods, id)
	return nil
}

type goodsReader struct{ uow *UnitOfWork }

func (r goodsReader) GoodsInFolder(ctx context.Context, parentID *string, onlyActive bool) ([]*goods.Goods, error) {
	return r.find(goods.Listing(parentID, onlyActive)), nil
}

func (r goodsReader) find(spec shared.Specification[*goods.Goods]) []*goods.Goods {
	result := make([]*goods.Goods, 0)
	for _, row := range r.uow.read().goods {
		g := goodsFromRow(row)
		if spec.IsSatisfiedBy(g) {
			result = append(result, g)
		}
	}
	goods.SortForListing(result)
	return result
}

func (r goodsReader) GoodsByID(ctx context.Context, id string) (*goods.Goods, error) {
	row, ok := r.uow.read().goods[id]
	if !ok {
		return nil, goods.NewGoodsNotExistsError(id)
	}
	return goodsFromRow(row), nil
}

func (r goodsReader) ParentFolder(ctx context.Context, childID string) (*goods.Goods, error) {
	st := r.uow.read()
	child, ok := st.goods[childID]
	if !ok {
		return nil, goods.NewGoodsNotExistsError(childID)
	}
	if child.ParentID == nil {
		return nil, nil
	}
	parent, ok := st.goods[*child.ParentID]
	if !ok {
		return nil, nil
	}
	return goodsFromRow(parent), nil
}
