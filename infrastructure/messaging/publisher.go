/*
Package messaging relays outbox rows to a watermill topic.

The worker publishes each row once per id: a Deduplicator (redis when enabled)
drops rows that were already relayed by an earlier attempt whose status update
was lost.
*/
package messaging

import (
	"context"
	"fmt"

	"tgorders/pkg/logger"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"go.uber.org/zap"
)

const MetadataEventType = "event_type"

// NewGoChannel is the in-process pub/sub used by the relay.
func NewGoChannel(buffer int64) *gochannel.GoChannel {
	return gochannel.NewGoChannel(gochannel.Config{OutputChannelBuffer: buffer}, logger.NewWatermillAdapter())
}

// Publisher implements the outbox worker's publisher over watermill.
type Publisher struct {
	pub   message.Publisher
	topic string
	dedup Deduplicator
}

// NewPublisher publishes to topic; dedup may be nil.
func NewPublisher(pub message.Publisher, topic string, dedup Deduplicator) *Publisher {
	return &Publisher{pub: pub, topic: topic, dedup: dedup}
}

func (p *Publisher) Publish(ctx context.Context, eventID, eventType, payload string) error {
	if p.dedup != nil {
		first, err := p.dedup.FirstSeen(ctx, eventID)
		switch {
		case err != nil:
			logger.Warn("Outbox deduplication unavailable", zap.String("event_id", eventID), zap.Error(err))
		case !first:
			logger.Debug("Outbox event already relayed", zap.String("event_id", eventID))
			return nil
		}
	}

	msg := message.NewMessage(eventID, []byte(payload))
	msg.Metadata.Set(MetadataEventType, eventType)
	msg.SetContext(ctx)

	if err := p.pub.Publish(p.topic, msg); err != nil {
		if p.dedup != nil {
			if forgetErr := p.dedup.Forget(ctx, eventID); forgetErr != nil {
				logger.Warn("Failed to unmark outbox event", zap.String("event_id", eventID), zap.Error(forgetErr))
			}
		}
		return fmt.Errorf("publish %s to %s: %w", eventType, p.topic, err)
	}
	return nil
}

// LogRelayed consumes topic and logs every relayed event until ctx ends.
func LogRelayed(ctx context.Context, sub message.Subscriber, topic string) error {
	messages, err := sub.Subscribe(ctx, topic)
	if err != nil {
		return fmt.Errorf("subscribe %s: %w", topic, err)
	}
	for msg := range messages {
		logger.Info("Outbox event relayed",
			zap.String("event_id", msg.UUID),
			zap.String("event_type", msg.Metadata.Get(MetadataEventType)),
			zap.ByteString("payload", msg.Payload),
		)
		msg.Ack()
	}
	return nil
}
