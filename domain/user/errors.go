package user

import (
	"errors"
	"strconv"

	"tgorders/domain/shared"
)

// ============================================================================
// Sentinel errors
// ============================================================================

var (
	ErrUserNotExists = errors.New("user not exists")

	ErrUserAlreadyExists = errors.New("user already exists")

	// ErrBlockedUserWithOtherRole BLOCKED combined with any other level
	ErrBlockedUserWithOtherRole = errors.New("blocked user can't have other roles")

	ErrUserWithNoAccessLevels = errors.New("user must have at least one access level")

	// ErrCantDeleteWithOrders the user created orders
	ErrCantDeleteWithOrders = errors.New("can't delete user with orders")
)

// ============================================================================
// Constructors
// ============================================================================

func NewUserNotExistsError(id int64) error {
	return &userDomainError{
		sentinel: ErrUserNotExists,
		category: shared.ErrNotFound,
		message:  "user with id " + strconv.FormatInt(id, 10) + " not exists",
		stack:    shared.CaptureStack(3),
	}
}

func NewUserAlreadyExistsError(id int64) error {
	return &userDomainError{
		sentinel: ErrUserAlreadyExists,
		category: shared.ErrConflict,
		message:  "user with id " + strconv.FormatInt(id, 10) + " already exists",
		stack:    shared.CaptureStack(3),
	}
}

func NewBlockedUserWithOtherRoleError(id int64) error {
	return &userDomainError{
		sentinel: ErrBlockedUserWithOtherRole,
		category: shared.ErrInvalidInput,
		field:    "access_levels",
		message:  "user " + strconv.FormatInt(id, 10) + ": blocked user can't have other roles",
		stack:    shared.CaptureStack(3),
	}
}

func NewUserWithNoAccessLevelsError(id int64) error {
	return &userDomainError{
		sentinel: ErrUserWithNoAccessLevels,
		category: shared.ErrInvalidInput,
		field:    "access_levels",
		message:  "user " + strconv.FormatInt(id, 10) + " must have at least one access level",
		stack:    shared.CaptureStack(3),
	}
}

func NewCantDeleteWithOrdersError(id int64) error {
	return &userDomainError{
		sentinel: ErrCantDeleteWithOrders,
		category: shared.ErrConflict,
		message:  "user " + strconv.FormatInt(id, 10) + " has orders and can't be deleted",
		stack:    shared.CaptureStack(3),
	}
}

// userDomainError unwraps to the sentinel and its category.
type userDomainError struct {
	sentinel error
	category error
	field    string
	message  string
	stack    []uintptr
}

func (e *userDomainError) Error() string {
	return e.message
}

func (e *userDomainError) Unwrap() []error {
	return []error{e.sentinel, e.category}
}

// Stack implements shared.Stacker
func (e *userDomainError) Stack() []string {
	if len(e.stack) == 0 {
		return nil
	}
	return shared.FormatStack(e.stack)
}

func (e *userDomainError) Field() string {
	return e.field
}
