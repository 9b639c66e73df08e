package goods

import (
	"errors"

	"tgorders/domain/shared"
)

// ============================================================================
// Sentinel errors
// ============================================================================

var (
	ErrGoodsNotExists = errors.New("goods not exists")

	ErrGoodsAlreadyExists = errors.New("goods already exists")

	// ErrCantMakeInactiveWithActiveChildren a folder still has active children
	ErrCantMakeInactiveWithActiveChildren = errors.New("can't make inactive folder with active children")

	ErrCantMakeActiveWithInactiveParent = errors.New("can't make active goods with inactive parent")

	ErrCantSetFolderSKU = errors.New("folder can't have SKU")

	ErrGoodsMustHaveSKU = errors.New("goods must have SKU")

	// ErrGoodsTypeCantBeParent only folders can hold children
	ErrGoodsTypeCantBeParent = errors.New("goods type can't be parent")

	ErrCantDeleteWithChildren = errors.New("can't delete folder with children")

	// ErrCantDeleteWithOrders the goods is referenced by an order line
	ErrCantDeleteWithOrders = errors.New("can't delete goods with orders")
)

// ============================================================================
// Constructors
// ============================================================================

func newError(sentinel, category error, field, message string) error {
	return &goodsDomainError{
		sentinel: sentinel,
		category: category,
		field:    field,
		message:  message,
		stack:    shared.CaptureStack(4),
	}
}

func NewGoodsNotExistsError(id string) error {
	return newError(ErrGoodsNotExists, shared.ErrNotFound, "", "goods with id "+id+" not exists")
}

func NewGoodsAlreadyExistsError(id string) error {
	return newError(ErrGoodsAlreadyExists, shared.ErrConflict, "", "goods with id "+id+" already exists")
}

func NewCantMakeInactiveWithActiveChildrenError(id string) error {
	return newError(ErrCantMakeInactiveWithActiveChildren, shared.ErrInvalidInput, "is_active",
		"folder "+id+" has active children")
}

func NewCantMakeActiveWithInactiveParentError(id string) error {
	return newError(ErrCantMakeActiveWithInactiveParent, shared.ErrInvalidInput, "is_active",
		"goods "+id+" has inactive parent")
}

func NewCantSetFolderSKUError(id string) error {
	return newError(ErrCantSetFolderSKU, shared.ErrInvalidInput, "sku", "folder "+id+" can't have SKU")
}

func NewGoodsMustHaveSKUError(id string) error {
	return newError(ErrGoodsMustHaveSKU, shared.ErrInvalidInput, "sku", "goods "+id+" must have SKU")
}

func NewGoodsTypeCantBeParentError(parentID string) error {
	return newError(ErrGoodsTypeCantBeParent, shared.ErrInvalidInput, "parent_id",
		"goods "+parentID+" is not a folder and can't be parent")
}

func NewCantDeleteWithChildrenError(id string) error {
	return newError(ErrCantDeleteWithChildren, shared.ErrConflict, "", "folder "+id+" has children and can't be deleted")
}

func NewCantDeleteWithOrdersError(id string) error {
	return newError(ErrCantDeleteWithOrders, shared.ErrConflict, "", "goods "+id+" is used in orders and can't be deleted")
}

// goodsDomainError unwraps to the sentinel and its category.
type goodsDomainError struct {
	sentinel error
	category error
	field    string
	message  string
	stack    []uintptr
}

func (e *goodsDomainError) Error() string {
	return e.message
}

func (e *goodsDomainError) Unwrap() []error {
	return []error{e.sentinel, e.category}
}

func (e *goodsDomainError) Field() string {
	return e.field
}

// Stack implements shared.Stacker
func (e *goodsDomainError) Stack() []string {
	if len(e.stack) == 0 {
		return nil
	}
	return shared.FormatStack(e.stack)
}
