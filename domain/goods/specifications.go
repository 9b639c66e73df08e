package goods

import "tgorders/domain/shared"

// InFolderSpecification matches direct children of ParentID; nil is the root.
type InFolderSpecification struct {
	ParentID *string
}

func (spec InFolderSpecification) IsSatisfiedBy(entity *Goods) bool {
	if spec.ParentID == nil || entity.parentID == nil {
		return spec.ParentID == nil && entity.parentID == nil
	}
	return *spec.ParentID == *entity.parentID
}

type ActiveSpecification struct{}

func (ActiveSpecification) IsSatisfiedBy(entity *Goods) bool {
	return entity.isActive
}

// Listing is the predicate behind Reader.GoodsInFolder.
func Listing(parentID *string, onlyActive bool) shared.Specification[*Goods] {
	var spec shared.Specification[*Goods] = InFolderSpecification{ParentID: parentID}
	if onlyActive {
		spec = shared.And[*Goods](spec, ActiveSpecification{})
	}
	return spec
}
