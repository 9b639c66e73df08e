package notification

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tgorders/domain/goods"
	"tgorders/domain/market"
	"tgorders/domain/order"
	"tgorders/domain/shared"
	"tgorders/domain/user"
	"tgorders/pkg/logger"
	"tgorders/pkg/metrics"

	"go.uber.org/zap"
)

// OutboxEvents are the events OutboxHandler is registered for.
var OutboxEvents = []string{
	goods.EventGoodsCreated,
	market.EventMarketCreated,
	user.EventUserCreated,
	order.EventOrderCreated,
	order.EventOrderConfirmStatusChanged,
}

// LoggingMiddleware logs every handler call of one channel.
func LoggingMiddleware(channel string) shared.Middleware {
	return func(next shared.Handler) shared.Handler {
		return func(ctx context.Context, event shared.DomainEvent, data shared.Data) error {
			start := time.Now()
			err := next(ctx, event, data)

			fields := []zap.Field{
				zap.String("channel", channel),
				zap.String("event", event.EventName()),
				zap.String("aggregate_id", event.GetAggregateID()),
				zap.Duration("elapsed", time.Since(start)),
			}
			if err != nil {
				logger.Error("event handler failed", append(fields, zap.Error(err))...)
				return err
			}
			logger.Debug("event handled", fields...)
			return nil
		}
	}
}

func MetricsMiddleware(channel string) shared.Middleware {
	return func(next shared.Handler) shared.Handler {
		return func(ctx context.Context, event shared.DomainEvent, data shared.Data) error {
			start := time.Now()
			err := next(ctx, event, data)

			result := "ok"
			if err != nil {
				result = "error"
			}
			metrics.EventHandlersTotal.WithLabelValues(channel, event.EventName(), result).Inc()
			metrics.EventHandlerDuration.WithLabelValues(channel, event.EventName()).Observe(time.Since(start).Seconds())
			return err
		}
	}
}

// UnitOfWorkMiddleware opens a fresh unit of work for each handler call and
// stores it under DataUnitOfWork. Whatever the handler left uncommitted is
// rolled back.
func UnitOfWorkMiddleware(factory shared.UnitOfWorkFactory) shared.Middleware {
	return func(next shared.Handler) shared.Handler {
		return func(ctx context.Context, event shared.DomainEvent, data shared.Data) error {
			uow, err := factory.New(ctx)
			if err != nil {
				return fmt.Errorf("open unit of work: %w", err)
			}
			data[DataUnitOfWork] = uow

			err = next(ctx, event, data)
			if rbErr := uow.Rollback(ctx); rbErr != nil {
				return errors.Join(err, fmt.Errorf("rollback: %w", rbErr))
			}
			return err
		}
	}
}

// OutboxHandler saves the event through the unit of work of the running use
// case. Units of work without an outbox are skipped.
func OutboxHandler(ctx context.Context, event shared.DomainEvent, data shared.Data) error {
	uow, ok := shared.UnitOfWorkFromContext(ctx)
	if !ok {
		return fmt.Errorf("no running unit of work for %s", event.EventName())
	}
	outbox, ok := uow.(shared.OutboxUnitOfWork)
	if !ok {
		logger.Debug("unit of work has no outbox", zap.String("event", event.EventName()))
		return nil
	}
	if err := outbox.Outbox().SaveEvent(ctx, event); err != nil {
		return fmt.Errorf("save %s to outbox: %w", event.EventName(), err)
	}
	return nil
}
