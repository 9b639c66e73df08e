/*
Package session opens the scope of one bot update or HTTP request: a unit of
work serving every context, the acting user, and the application services
bound to that user's policies.
*/
package session

import (
	"context"
	"errors"
	"fmt"

	appaccess "tgorders/application/accesslevel"
	appgoods "tgorders/application/goods"
	appmarket "tgorders/application/market"
	apporder "tgorders/application/order"
	appuser "tgorders/application/user"
	"tgorders/domain/accesslevel"
	"tgorders/domain/goods"
	"tgorders/domain/market"
	"tgorders/domain/order"
	"tgorders/domain/shared"
	"tgorders/domain/user"
)

// UnitOfWork is implemented by the memory and MySQL adapters.
type UnitOfWork interface {
	goods.UnitOfWork
	market.UnitOfWork
	user.UnitOfWork
	accesslevel.UnitOfWork
	order.UnitOfWork
}

type Session struct {
	uow        UnitOfWork
	dispatcher *shared.EventDispatcher
	actor      *user.TelegramUser
}

// Open starts a session without an acting user. Call Authenticate before
// using the services.
func Open(ctx context.Context, factory shared.UnitOfWorkFactory, dispatcher *shared.EventDispatcher) (*Session, error) {
	uow, err := factory.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("open unit of work: %w", err)
	}
	full, ok := uow.(UnitOfWork)
	if !ok {
		return nil, fmt.Errorf("unit of work %T does not serve every context", uow)
	}
	return &Session{uow: full, dispatcher: dispatcher}, nil
}

// Authenticate loads the acting user. An unknown id is ErrUnauthorized.
func (s *Session) Authenticate(ctx context.Context, userID int64) error {
	u, err := appuser.NewApplicationService(s.uow, user.AllowPolicy{}, s.dispatcher).Actor(ctx, userID)
	switch {
	case errors.Is(err, shared.ErrNotFound):
		return fmt.Errorf("%w: unknown user %d", shared.ErrUnauthorized, userID)
	case err != nil:
		return err
	}
	s.actor = u
	return nil
}

func (s *Session) Actor() *user.TelegramUser { return s.actor }

// Close rolls back whatever the services left uncommitted.
func (s *Session) Close(ctx context.Context) error {
	return s.uow.Rollback(ctx)
}

func (s *Session) Goods() *appgoods.ApplicationService {
	return appgoods.NewApplicationService(s.uow, goods.NewUserBasedPolicy(s.actor), s.dispatcher)
}

func (s *Session) Markets() *appmarket.ApplicationService {
	return appmarket.NewApplicationService(s.uow, market.NewUserBasedPolicy(s.actor), s.dispatcher)
}

func (s *Session) Users() *appuser.ApplicationService {
	return appuser.NewApplicationService(s.uow, user.NewUserBasedPolicy(s.actor), s.dispatcher)
}

func (s *Session) AccessLevels() *appaccess.ApplicationService {
	return appaccess.NewApplicationService(s.uow, accesslevel.NewUserBasedPolicy(s.actor))
}

func (s *Session) Orders() *apporder.ApplicationService {
	return apporder.NewApplicationService(s.uow, order.NewUserBasedPolicy(s.actor), s.dispatcher)
}

// Admin returns a user service that skips the policy checks. It serves the
// configured administrators at startup.
func (s *Session) Admin() *appuser.ApplicationService {
	return appuser.NewApplicationService(s.uow, user.AllowPolicy{}, s.dispatcher)
}

// Run opens a session for userID, calls fn and closes it.
func Run(ctx context.Context, factory shared.UnitOfWorkFactory, dispatcher *shared.EventDispatcher, userID int64, fn func(*Session) error) (err error) {
	s, err := Open(ctx, factory, dispatcher)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := s.Close(ctx); cerr != nil {
			err = errors.Join(err, fmt.Errorf("close session: %w", cerr))
		}
	}()
	if err := s.Authenticate(ctx, userID); err != nil {
		return err
	}
	return fn(s)
}
