package accesslevel

import (
	"errors"

	"tgorders/domain/shared"
)

var (
	// ErrAccessLevelNotExist unknown id or name
	ErrAccessLevelNotExist = errors.New("access level not exist")
)

func NewAccessLevelNotExistError(key string) error {
	return &accessLevelError{
		sentinel: ErrAccessLevelNotExist,
		category: shared.ErrNotFound,
		message:  "access level " + key + " not exist",
		stack:    shared.CaptureStack(3),
	}
}

type accessLevelError struct {
	sentinel error
	category error
	message  string
	stack    []uintptr
}

func (e *accessLevelError) Error() string { return e.message }

func (e *accessLevelError) Unwrap() []error { return []error{e.sentinel, e.category} }

func (e *accessLevelError) Stack() []string { return shared.FormatStack(e.stack) }
