package mysql

import (
	"context"
	"errors"
	"fmt"

	"tgorders/domain/goods"
	"tgorders/infrastructure/persistence/mysql/po"
	"tgorders/infrastructure/persistence/specification"

	"gorm.io/gorm"
)

func mapGoodsError(err error, id string) error {
	v, ok := constraintViolation(err)
	switch {
	case !ok:
		return fmt.Errorf("goods %s: %w", id, err)
	case v.is(errDuplicateEntry, constraintPrimary):
		return goods.NewGoodsAlreadyExistsError(id)
	case v.is(errRowIsReferenced, constraintGoodsParent):
		return goods.NewCantDeleteWithChildrenError(id)
	case v.is(errRowIsReferenced, constraintOrderLineGoods):
		return goods.NewCantDeleteWithOrdersError(id)
	case v.is(errCheckViolated, constraintGoodsFolderSKU):
		return goods.NewCantSetFolderSKUError(id)
	case v.is(errCheckViolated, constraintGoodsGoodsSKU):
		return goods.NewGoodsMustHaveSKUError(id)
	}
	return fmt.Errorf("goods %s: %w", id, err)
}

func findGoods(db *gorm.DB, id string) (*po.GoodsPO, error) {
	var row po.GoodsPO
	if err := db.First(&row, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, goods.NewGoodsNotExistsError(id)
		}
		return nil, fmt.Errorf("goods %s: %w", id, err)
	}
	return &row, nil
}

type goodsRepository struct{ uow *UnitOfWork }

// GoodsByID links the node with its parent and direct children.
func (r goodsRepository) GoodsByID(ctx context.Context, id string) (*goods.Goods, error) {
	db, err := r.uow.begin(ctx)
	if err != nil {
		return nil, err
	}
	row, err := findGoods(db, id)
	if err != nil {
		return nil, err
	}

	node := row.ToDomain()
	tree := goods.NewTree(node)
	if row.ParentID != nil {
		var parent po.GoodsPO
		err := db.Where("id = ?", *row.ParentID).Limit(1).Find(&parent).Error
		if err != nil {
			return nil, fmt.Errorf("goods %s parent: %w", id, err)
		}
		if parent.ID != "" {
			tree.Add(parent.ToDomain())
		}
	}

	var children []po.GoodsPO
	if err := db.Where("parent_id = ?", id).Find(&children).Error; err != nil {
		return nil, fmt.Errorf("goods %s children: %w", id, err)
	}
	for i := range children {
		tree.Add(children[i].ToDomain())
	}
	return node, nil
}

func (r goodsRepository) AddGoods(ctx context.Context, g *goods.Goods) error {
	db, err := r.uow.begin(ctx)
	if err != nil {
		return err
	}
	if parentID := g.ParentID(); parentID != nil {
		parent, err := findGoods(db, *parentID)
		if err != nil {
			return err
		}
		if goods.GoodsType(parent.Type) != goods.TypeFolder {
			return goods.NewGoodsTypeCantBeParentError(*parentID)
		}
	}

	if err := db.Create(po.FromGoodsDomain(g)).Error; err != nil {
		return mapGoodsError(err, g.ID())
	}
	return nil
}

func (r goodsRepository) EditGoods(ctx context.Context, g *goods.Goods) error {
	db, err := r.uow.begin(ctx)
	if err != nil {
		return err
	}
	row := po.FromGoodsDomain(g)
	result := db.Model(&po.GoodsPO{}).
		Where("id = ?", row.ID).
		Select("name", "type", "parent_id", "sku", "is_active").
		Updates(row)
	if result.Error != nil {
		return mapGoodsError(result.Error, g.ID())
	}
	if result.RowsAffected == 0 {
		return goods.NewGoodsNotExistsError(g.ID())
	}
	return nil
}

func (r goodsRepository) DeleteGoods(ctx context.Context, id string) error {
	db, err := r.uow.begin(ctx)
	if err != nil {
		return err
	}
	result := db.Where("id = ?", id).Delete(&po.GoodsPO{})
	if result.Error != nil {
		return mapGoodsError(result.Error, id)
	}
	if result.RowsAffected == 0 {
		return goods.NewGoodsNotExistsError(id)
	}
	return nil
}

type goodsReader struct{ uow *UnitOfWork }

func (r goodsReader) GoodsInFolder(ctx context.Context, parentID *string, onlyActive bool) ([]*goods.Goods, error) {
	cond, err := specification.Goods(goods.Listing(parentID, onlyActive))
	if err != nil {
		return nil, err
	}

	var rows []po.GoodsPO
	if err := r.uow.read(ctx).Scopes(cond.Scope()).Order("name").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("goods in folder: %w", err)
	}
	result := make([]*goods.Goods, len(rows))
	for i := range rows {
		result[i] = rows[i].ToDomain()
	}
	goods.SortForListing(result)
	return result, nil
}

func (r goodsReader) GoodsByID(ctx context.Context, id string) (*goods.Goods, error) {
	row, err := findGoods(r.uow.read(ctx), id)
	if err != nil {
		return nil, err
	}
	return row.ToDomain(), nil
}

func (r goodsReader) ParentFolder(ctx context.Context, childID string) (*goods.Goods, error) {
	db := r.uow.read(ctx)
	child, err := findGoods(db, childID)
	if err != nil {
		return nil, err
	}
	if child.ParentID == nil {
		return nil, nil
	}

	var parent po.GoodsPO
	if err := db.Where("id = ?", *child.ParentID).Limit(1).Find(&parent).Error; err != nil {
		return nil, fmt.Errorf("goods %s parent: %w", childID, err)
	}
	if parent.ID == "" {
		return nil, nil
	}
	return parent.ToDomain(), nil
}
