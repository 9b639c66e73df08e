package mysql

import (
	"context"
	"fmt"
	"time"

	"tgorders/infrastructure/persistence/mysql/po"
	"tgorders/pkg/logger"
	"tgorders/pkg/metrics"

	"go.uber.org/zap"
)

// OutboxStore is the part of OutboxRepository the worker drives.
type OutboxStore interface {
	GetPendingEvents(ctx context.Context, limit int) ([]*po.OutboxEventPO, error)
	MarkEventProcessing(ctx context.Context, eventID string) error
	MarkEventPublished(ctx context.Context, eventID string) error
	MarkEventFailed(ctx context.Context, eventID string, maxRetries int) error
}

// OutboxPublisher delivers one relayed row. Delivery is at least once, so
// publishers deduplicate by eventID.
type OutboxPublisher interface {
	Publish(ctx context.Context, eventID, eventType, payload string) error
}

type OutboxWorker struct {
	repository   OutboxStore
	publisher    OutboxPublisher
	pollInterval time.Duration
	batchSize    int
	maxRetries   int
}

// NewOutboxWorker validates the relay settings taken from config.OutboxConfig.
func NewOutboxWorker(repository OutboxStore, publisher OutboxPublisher, pollInterval time.Duration, batchSize, maxRetries int) (*OutboxWorker, error) {
	switch {
	case repository == nil:
		return nil, fmt.Errorf("outbox repository is required")
	case publisher == nil:
		return nil, fmt.Errorf("outbox publisher is required")
	case pollInterval <= 0:
		return nil, fmt.Errorf("poll interval must be positive")
	case batchSize <= 0:
		return nil, fmt.Errorf("batch size must be positive")
	case maxRetries <= 0:
		return nil, fmt.Errorf("max retries must be positive")
	}
	return &OutboxWorker{
		repository:   repository,
		publisher:    publisher,
		pollInterval: pollInterval,
		batchSize:    batchSize,
		maxRetries:   maxRetries,
	}, nil
}

// Run relays a batch per tick until ctx is done.
func (w *OutboxWorker) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	logger.Info("Outbox relay started", zap.Duration("poll_interval", w.pollInterval), zap.Int("batch_size", w.batchSize))
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if _, err := w.ProcessBatch(ctx); err != nil {
				logger.Error("Outbox batch failed", zap.Error(err))
			}
		}
	}
}

// ProcessBatch relays one batch and returns how many rows were published.
func (w *OutboxWorker) ProcessBatch(ctx context.Context) (int, error) {
	events, err := w.repository.GetPendingEvents(ctx, w.batchSize)
	if err != nil {
		return 0, err
	}

	published := 0
	for _, event := range events {
		outcome := w.relay(ctx, event)
		metrics.OutboxRelayedTotal.WithLabelValues(outcome).Inc()
		if outcome == "published" {
			published++
		}
	}
	return published, nil
}

// relay moves one row through processing to published or failed and names
// the outcome for the relay counter.
func (w *OutboxWorker) relay(ctx context.Context, event *po.OutboxEventPO) string {
	log := logger.With(zap.String("event_id", event.ID), zap.String("event_type", event.EventType))

	if err := w.repository.MarkEventProcessing(ctx, event.ID); err != nil {
		log.Warn("Outbox event claimed elsewhere", zap.Error(err))
		return "skipped"
	}

	if err := w.publisher.Publish(ctx, event.ID, event.EventType, event.Payload); err != nil {
		log.Warn("Outbox publish failed", zap.Int("retry_count", event.RetryCount), zap.Error(err))
		if err := w.repository.MarkEventFailed(ctx, event.ID, w.maxRetries); err != nil {
			log.Error("Failed to mark outbox event failed", zap.Error(err))
		}
		return "failed"
	}

	if err := w.repository.MarkEventPublished(ctx, event.ID); err != nil {
		log.Error("Failed to mark outbox event published", zap.Error(err))
		return "unmarked"
	}
	return "published"
}
