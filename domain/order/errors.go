package order

import (
	"errors"
	"fmt"

	"tgorders/domain/shared"
)

// ============================================================================
// Sentinel errors
// ============================================================================

var (
	ErrOrderNotExists = errors.New("order not exists")

	ErrOrderAlreadyExists = errors.New("order already exists")

	// ErrOrderAlreadyConfirmed the order left NOT_PROCESSED
	ErrOrderAlreadyConfirmed = errors.New("order already confirmed")

	// ErrOrderLineGoodsHasIncorrectType a line references a folder
	ErrOrderLineGoodsHasIncorrectType = errors.New("order line goods has incorrect type")

	ErrEmptyOrderLines = errors.New("order must have at least one line")

	ErrInvalidQuantity = errors.New("quantity must be positive")
)

// ============================================================================
// Constructors
// ============================================================================

func NewOrderNotExistsError(id string) error {
	return &orderDomainError{
		sentinel: ErrOrderNotExists,
		category: shared.ErrNotFound,
		message:  "order with id " + id + " not exists",
		stack:    shared.CaptureStack(3),
	}
}

func NewOrderAlreadyExistsError(id string) error {
	return &orderDomainError{
		sentinel: ErrOrderAlreadyExists,
		category: shared.ErrConflict,
		message:  "order with id " + id + " already exists",
		stack:    shared.CaptureStack(3),
	}
}

func NewOrderAlreadyConfirmedError(id string) error {
	return &orderDomainError{
		sentinel: ErrOrderAlreadyConfirmed,
		category: shared.ErrForbidden,
		field:    "confirmed",
		message:  "order " + id + " already confirmed",
		stack:    shared.CaptureStack(3),
	}
}

// NewOrderLineGoodsHasIncorrectTypeError reports line index and the offending goods.
func NewOrderLineGoodsHasIncorrectTypeError(line int, goodsID, goodsType string) error {
	return &orderDomainError{
		sentinel: ErrOrderLineGoodsHasIncorrectType,
		category: shared.ErrInvalidInput,
		field:    "order_lines",
		message:  fmt.Sprintf("line %d: goods with id %s is %s type, not GOODS", line, goodsID, goodsType),
		stack:    shared.CaptureStack(3),
	}
}

func NewEmptyOrderLinesError() error {
	return &orderDomainError{
		sentinel: ErrEmptyOrderLines,
		category: shared.ErrInvalidInput,
		field:    "order_lines",
		message:  "order must have at least one line",
		stack:    shared.CaptureStack(3),
	}
}

func NewInvalidQuantityError(line, quantity int) error {
	return &orderDomainError{
		sentinel: ErrInvalidQuantity,
		category: shared.ErrInvalidInput,
		field:    "order_lines",
		message:  fmt.Sprintf("line %d: quantity %d must be positive", line, quantity),
		stack:    shared.CaptureStack(3),
	}
}

// orderDomainError unwraps to the sentinel and its category.
type orderDomainError struct {
	sentinel error
	category error
	field    string
	message  string
	stack    []uintptr
}

func (e *orderDomainError) Error() string {
	return e.message
}

func (e *orderDomainError) Unwrap() []error {
	return []error{e.sentinel, e.category}
}

// Stack implements shared.Stacker
func (e *orderDomainError) Stack() []string {
	if len(e.stack) == 0 {
		return nil
	}
	return shared.FormatStack(e.stack)
}

func (e *orderDomainError) Field() string {
	return e.field
}
