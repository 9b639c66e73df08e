package accesslevel

import (
	"context"

	"tgorders/domain/shared"
)

// Reader is the query side of the context.
type Reader interface {
	// AllAccessLevels returns the levels known to storage, in catalog order.
	AllAccessLevels(ctx context.Context) ([]AccessLevel, error)

	// UserAccessLevels fails with a user not found error for an unknown user.
	UserAccessLevels(ctx context.Context, userID int64) ([]AccessLevel, error)
}

type UnitOfWork interface {
	shared.UnitOfWork
	AccessLevelReader() Reader
}
