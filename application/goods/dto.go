package goods

import "tgorders/domain/shared"

// CreateGoodsRequest is the input of AddGoods.
type CreateGoodsRequest struct {
	Name     string  `json:"name" validate:"required,max=100"`
	Type     string  `json:"type" validate:"required,oneof=GOODS FOLDER"`
	SKU      *string `json:"sku" validate:"omitempty,max=64"`
	ParentID *string `json:"parent_id" validate:"omitempty,uuid"`
}

// PatchGoodsRequest changes only the fields that are set. SKU accepts null.
type PatchGoodsRequest struct {
	ID       string               `json:"-" validate:"required"`
	Name     shared.Patch[string] `json:"name"`
	SKU      shared.Patch[string] `json:"sku"`
	IsActive shared.Patch[bool]   `json:"is_active"`
}

// GoodsInFolderQuery lists one folder; nil ParentID is the catalog root.
type GoodsInFolderQuery struct {
	ParentID   *string `form:"parent_id"`
	OnlyActive bool    `form:"only_active"`
}

type GoodsResponse struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Type     string  `json:"type"`
	SKU      *string `json:"sku"`
	IsActive bool    `json:"is_active"`
	ParentID *string `json:"parent_id"`
}
