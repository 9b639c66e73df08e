package market

import (
	"errors"

	"tgorders/domain/shared"
)

var (
	ErrMarketNotExists = errors.New("market not exists")

	// ErrMarketAlreadyExists duplicate id or name
	ErrMarketAlreadyExists = errors.New("market already exists")

	ErrCantDeleteWithOrders = errors.New("can't delete market with orders")
)

func NewMarketNotExistsError(id string) error {
	return &marketDomainError{
		sentinel: ErrMarketNotExists,
		category: shared.ErrNotFound,
		message:  "market with id " + id + " not exists",
		stack:    shared.CaptureStack(3),
	}
}

func NewMarketAlreadyExistsError(name string) error {
	return &marketDomainError{
		sentinel: ErrMarketAlreadyExists,
		category: shared.ErrConflict,
		message:  "market " + name + " already exists",
		stack:    shared.CaptureStack(3),
	}
}

func NewCantDeleteWithOrdersError(id string) error {
	return &marketDomainError{
		sentinel: ErrCantDeleteWithOrders,
		category: shared.ErrConflict,
		message:  "market " + id + " has orders and can't be deleted",
		stack:    shared.CaptureStack(3),
	}
}

type marketDomainError struct {
	sentinel error
	category error
	message  string
	stack    []uintptr
}

func (e *marketDomainError) Error() string   { return e.message }
func (e *marketDomainError) Unwrap() []error { return []error{e.sentinel, e.category} }
func (e *marketDomainError) Stack() []string { return shared.FormatStack(e.stack) }
