package shared

import (
	"context"
	"errors"
	"fmt"
)

// UnitOfWork is the transactional scope of one use case. Repositories obtained
// from a context specific unit of work take part in it.
type UnitOfWork interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// UnitOfWorkFactory opens a fresh scope. Notification handlers use it because
// the scope of the triggering use case is already committed.
type UnitOfWorkFactory interface {
	New(ctx context.Context) (UnitOfWork, error)
}

// OutboxRepository stores domain events in the same transaction as the state
// that produced them.
type OutboxRepository interface {
	SaveEvent(ctx context.Context, event DomainEvent) error
}

// OutboxUnitOfWork is implemented by units of work that can record events.
type OutboxUnitOfWork interface {
	UnitOfWork
	Outbox() OutboxRepository
}

type uowKey struct{}

// ContextWithUnitOfWork exposes the running unit of work to domain handlers.
func ContextWithUnitOfWork(ctx context.Context, uow UnitOfWork) context.Context {
	return context.WithValue(ctx, uowKey{}, uow)
}

func UnitOfWorkFromContext(ctx context.Context) (UnitOfWork, bool) {
	uow, ok := ctx.Value(uowKey{}).(UnitOfWork)
	return uow, ok
}

// ErrNotificationFailed marks errors raised by notification handlers. The state
// change they describe is already committed.
var ErrNotificationFailed = errors.New("notification failed after commit")

// CommitWithEvents runs the emission protocol for the given aggregates:
//
//	domain handlers -> commit -> notification handlers -> clear event logs
//
// A domain handler error rolls the unit of work back. A notification error is
// returned wrapped in ErrNotificationFailed after the commit.
func CommitWithEvents(ctx context.Context, uow UnitOfWork, dispatcher *EventDispatcher, aggregates ...AggregateRoot) error {
	var events []DomainEvent
	for _, agg := range aggregates {
		events = append(events, agg.Events()...)
	}

	if err := dispatcher.PublishEvents(ContextWithUnitOfWork(ctx, uow), events); err != nil {
		if rbErr := uow.Rollback(ctx); rbErr != nil {
			return errors.Join(err, fmt.Errorf("rollback: %w", rbErr))
		}
		return err
	}

	if err := uow.Commit(ctx); err != nil {
		if rbErr := uow.Rollback(ctx); rbErr != nil {
			return errors.Join(err, fmt.Errorf("rollback: %w", rbErr))
		}
		return err
	}

	notifyErr := dispatcher.PublishNotifications(ctx, events)

	for _, agg := range aggregates {
		agg.ClearEvents()
	}

	if notifyErr != nil {
		return fmt.Errorf("%w: %w", ErrNotificationFailed, notifyErr)
	}
	return nil
}
