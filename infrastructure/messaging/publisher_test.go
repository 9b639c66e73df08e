package messaging

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDedup struct {
	seen      map[string]bool
	forgotten []string
	err       error
}

func (d *fakeDedup) FirstSeen(ctx context.Context, id string) (bool, error) {
	if d.err != nil {
		return false, d.err
	}
	if d.seen[id] {
		return false, nil
	}
	d.seen[id] = true
	return true, nil
}

func (d *fakeDedup) Forget(ctx context.Context, id string) error {
	d.forgotten = append(d.forgotten, id)
	delete(d.seen, id)
	return nil
}

type failingPublisher struct{}

func (failingPublisher) Publish(topic string, messages ...*message.Message) error {
	return errors.New("closed")
}

func (failingPublisher) Close() error { return nil }

func receive(t *testing.T, messages <-chan *message.Message) *message.Message {
	t.Helper()
	select {
	case msg := <-messages:
		msg.Ack()
		return msg
	case <-time.After(time.Second):
		t.Fatal("no message received")
		return nil
	}
}

func TestPublisher_PublishesOncePerEvent(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	bus := NewGoChannel(8)
	defer bus.Close()
	messages, err := bus.Subscribe(ctx, "events")
	require.NoError(t, err)

	dedup := &fakeDedup{seen: map[string]bool{}}
	publisher := NewPublisher(bus, "events", dedup)

	require.NoError(t, publisher.Publish(ctx, "e1", "order.created", `{"order_id":"o-1"}`))
	require.NoError(t, publisher.Publish(ctx, "e1", "order.created", `{"order_id":"o-1"}`))
	require.NoError(t, publisher.Publish(ctx, "e2", "goods.created", `{}`))

	got := map[string]*message.Message{}
	for range 2 {
		msg := receive(t, messages)
		got[msg.UUID] = msg
	}
	require.Contains(t, got, "e1")
	require.Contains(t, got, "e2")
	assert.Equal(t, "order.created", got["e1"].Metadata.Get(MetadataEventType))
	assert.JSONEq(t, `{"order_id":"o-1"}`, string(got["e1"].Payload))
	assert.Equal(t, "goods.created", got["e2"].Metadata.Get(MetadataEventType))
}

func TestPublisher_FailureForgetsEvent(t *testing.T) {
	dedup := &fakeDedup{seen: map[string]bool{}}
	publisher := NewPublisher(failingPublisher{}, "events", dedup)

	err := publisher.Publish(context.Background(), "e1", "order.created", "{}")
	assert.Error(t, err)
	assert.Equal(t, []string{"e1"}, dedup.forgotten)
	assert.False(t, dedup.seen["e1"])
}

func TestPublisher_DedupUnavailableStillPublishes(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	bus := NewGoChannel(8)
	defer bus.Close()
	messages, err := bus.Subscribe(ctx, "events")
	require.NoError(t, err)

	publisher := NewPublisher(bus, "events", &fakeDedup{err: errors.New("redis down")})
	require.NoError(t, publisher.Publish(ctx, "e1", "market.created", "{}"))

	assert.Equal(t, "e1", receive(t, messages).UUID)
}

func TestDedupKey(t *testing.T) {
	assert.Equal(t, "tgorders:outbox:relayed:e1", dedupKey("e1"))
}
