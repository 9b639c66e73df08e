package user

import (
	"context"

	"tgorders/domain/shared"
)

// Repository loads and stores live aggregates inside the current unit of work.
type Repository interface {
	// UserByID returns ErrUserNotExists when absent.
	UserByID(ctx context.Context, id int64) (*TelegramUser, error)

	// AddUser fails with ErrUserAlreadyExists on id collision.
	AddUser(ctx context.Context, u *TelegramUser) error

	// EditUser stores name, levels and a changed id (located by OriginalID).
	EditUser(ctx context.Context, u *TelegramUser) error

	// DeleteUser fails with ErrUserNotExists or ErrCantDeleteWithOrders.
	DeleteUser(ctx context.Context, id int64) error
}

// Reader is the query side. Results are ordered by name.
type Reader interface {
	AllUsers(ctx context.Context) ([]*TelegramUser, error)
	UsersForConfirmation(ctx context.Context) ([]*TelegramUser, error)
	UserByID(ctx context.Context, id int64) (*TelegramUser, error)
}

type UnitOfWork interface {
	shared.UnitOfWork
	Users() Repository
	UserReader() Reader
}
