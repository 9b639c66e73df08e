package po

import "tgorders/domain/goods"

// GoodsPO Goods persistence object
// The parent link is a plain column; the tree is linked by goods.Tree after loading.
type GoodsPO struct {
	ID       string  `gorm:"primaryKey;size:36"`
	Name     string  `gorm:"size:255;not null"`
	Type     string  `gorm:"size:16;not null"`
	ParentID *string `gorm:"size:36;index"`
	SKU      *string `gorm:"column:sku;size:64"`
	IsActive bool    `gorm:"not null;default:true"`
}

func (GoodsPO) TableName() string {
	return "goods"
}

func FromGoodsDomain(g *goods.Goods) *GoodsPO {
	return &GoodsPO{
		ID:       g.ID(),
		Name:     g.Name(),
		Type:     string(g.Type()),
		ParentID: g.ParentID(),
		SKU:      g.SKU(),
		IsActive: g.IsActive(),
	}
}

func (po *GoodsPO) ToDomain() *goods.Goods {
	return goods.RebuildFromDTO(goods.ReconstructionDTO{
		ID:       po.ID,
		Name:     po.Name,
		Type:     goods.GoodsType(po.Type),
		SKU:      po.SKU,
		IsActive: po.IsActive,
		ParentID: po.ParentID,
	})
}
