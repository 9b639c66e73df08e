// Package usecase holds the steps shared by every mutating use case.
package usecase

import (
	"context"
	"errors"
	"fmt"

	"tgorders/domain/shared"
	"tgorders/pkg/logger"

	"go.uber.org/zap"
)

// Commit runs the emission protocol. A notification failure happens after the
// commit, so it is logged and the use case still succeeds.
func Commit(ctx context.Context, uow shared.UnitOfWork, dispatcher *shared.EventDispatcher, aggregates ...shared.AggregateRoot) error {
	err := shared.CommitWithEvents(ctx, uow, dispatcher, aggregates...)
	if errors.Is(err, shared.ErrNotificationFailed) {
		logger.Warn("notification failed after commit", zap.Error(err))
		return nil
	}
	return err
}

// Abort rolls the unit of work back and returns err. Storage conflicts are
// logged at Warn.
func Abort(ctx context.Context, uow shared.UnitOfWork, err error) error {
	if errors.Is(err, shared.ErrConflict) {
		logger.Warn("conflict, rolling back", zap.Error(err))
	}
	if rbErr := uow.Rollback(ctx); rbErr != nil {
		return errors.Join(err, fmt.Errorf("rollback: %w", rbErr))
	}
	return err
}
