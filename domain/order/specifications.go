package order

import (
	"sort"

	"tgorders/domain/shared"
)

// ByCreatorSpecification filters orders by creator
type ByCreatorSpecification struct {
	CreatorID int64
}

func (spec ByCreatorSpecification) IsSatisfiedBy(entity *Order) bool {
	return entity.creator.ID == spec.CreatorID
}

// ByConfirmedSpecification filters orders by confirm status
type ByConfirmedSpecification struct {
	Status ConfirmedStatus
}

func (spec ByConfirmedSpecification) IsSatisfiedBy(entity *Order) bool {
	return entity.confirmed == spec.Status
}

func NewByCreatorSpecification(creatorID int64) shared.Specification[*Order] {
	return ByCreatorSpecification{CreatorID: creatorID}
}

func NewByConfirmedSpecification(status ConfirmedStatus) shared.Specification[*Order] {
	return ByConfirmedSpecification{Status: status}
}

// SortNewestFirst orders by creation time, newest first.
func SortNewestFirst(orders []*Order) {
	sort.SliceStable(orders, func(i, j int) bool {
		return orders[i].createdAt.After(orders[j].createdAt)
	})
}
