/*
Package shared holds the building blocks every bounded context depends on:
error categories, domain events, the event dispatcher, the unit of work port
and the tri-state patch field.

Error design:
 1. Each context declares its own sentinel errors for errors.Is().
 2. Context errors also unwrap to one of the category sentinels below, so the
    transport layer can map them without knowing every context.
 3. The stack is captured when the error is created and formatted on demand.
 4. No transport concepts (HTTP codes) live here.
*/
package shared

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
)

// ============================================================================
// Category sentinels
// ============================================================================

var (
	// ErrNotFound resource does not exist
	ErrNotFound = errors.New("not found")

	// ErrConflict unique or referential conflict
	ErrConflict = errors.New("conflict")

	// ErrInvalidInput invariant or validation failure
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnauthorized no acting user
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden operation not allowed in the current state
	ErrForbidden = errors.New("forbidden")

	// ErrAccessDenied access policy rejected the operation
	ErrAccessDenied = errors.New("access denied")
)

// DomainError is the generic structured error used when a context does not need
// its own sentinel.
type DomainError struct {
	// Err category sentinel
	Err error

	Entity  string
	Message string
	Field   string

	stack []uintptr
}

func (e *DomainError) Error() string {
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// Stack formats the captured frames.
func (e *DomainError) Stack() []string {
	return FormatStack(e.stack)
}

// CaptureStack captures the current call stack.
// skip is usually 3: Callers, CaptureStack and the NewXxxError constructor.
func CaptureStack(skip int) []uintptr {
	var pcs [32]uintptr
	n := runtime.Callers(skip, pcs[:])
	return pcs[:n]
}

// FormatStack renders at most 10 non-runtime frames.
func FormatStack(stack []uintptr) []string {
	if len(stack) == 0 {
		return nil
	}

	frames := runtime.CallersFrames(stack)
	var result []string
	for {
		frame, more := frames.Next()
		if !strings.Contains(frame.File, "runtime/") {
			result = append(result, fmt.Sprintf("%s:%d %s", frame.File, frame.Line, frame.Function))
		}
		if !more || len(result) > 10 {
			break
		}
	}
	return result
}

// ============================================================================
// Constructors
// ============================================================================

func NewNotFoundError(entity string) error {
	return &DomainError{
		Err:     ErrNotFound,
		Entity:  entity,
		Message: entity + " not found",
		stack:   CaptureStack(3),
	}
}

func NewConflictError(entity, message string) error {
	return &DomainError{
		Err:     ErrConflict,
		Entity:  entity,
		Message: message,
		stack:   CaptureStack(3),
	}
}

func NewValidationError(entity, field, reason string) error {
	return &DomainError{
		Err:     ErrInvalidInput,
		Entity:  entity,
		Field:   field,
		Message: reason,
		stack:   CaptureStack(3),
	}
}

func NewForbiddenError(entity, reason string) error {
	return &DomainError{
		Err:     ErrForbidden,
		Entity:  entity,
		Message: reason,
		stack:   CaptureStack(3),
	}
}

// NewAccessDeniedError is returned by services when a policy predicate is false.
// Use cases never return it.
func NewAccessDeniedError(entity, operation string) error {
	return &DomainError{
		Err:     ErrAccessDenied,
		Entity:  entity,
		Message: "access denied: " + operation,
		stack:   CaptureStack(3),
	}
}

// Stacker is implemented by errors that carry a captured stack.
type Stacker interface {
	Stack() []string
}
