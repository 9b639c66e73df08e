package shared

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingUoW struct {
	calls     *[]string
	commitErr error
}

func (u recordingUoW) Commit(ctx context.Context) error {
	*u.calls = append(*u.calls, "commit")
	return u.commitErr
}

func (u recordingUoW) Rollback(ctx context.Context) error {
	*u.calls = append(*u.calls, "rollback")
	return nil
}

type testAggregate struct {
	EventLog
}

func (a *testAggregate) AggregateID() string { return "agg-1" }

func newTestAggregate() *testAggregate {
	a := &testAggregate{EventLog: NewEventLog()}
	a.Record(testEvent{"created", "agg-1"})
	return a
}

func TestCommitWithEvents_Order(t *testing.T) {
	var calls []string
	uow := recordingUoW{calls: &calls}
	d := NewEventDispatcher(nil)

	d.Domain.Register("created", func(ctx context.Context, e DomainEvent, data Data) error {
		_, ok := UnitOfWorkFromContext(ctx)
		assert.True(t, ok, "domain handlers see the running unit of work")
		calls = append(calls, "domain")
		return nil
	})
	d.Notifications.Register("created", func(ctx context.Context, e DomainEvent, data Data) error {
		calls = append(calls, "notify")
		return nil
	})

	agg := newTestAggregate()
	require.NoError(t, CommitWithEvents(context.Background(), uow, d, agg))

	assert.Equal(t, []string{"domain", "commit", "notify"}, calls)
	assert.Empty(t, agg.Events())
}

func TestCommitWithEvents_NotificationErrorAfterCommit(t *testing.T) {
	var calls []string
	uow := recordingUoW{calls: &calls}
	d := NewEventDispatcher(nil)
	boom := errors.New("telegram down")

	d.Domain.Register("created", func(ctx context.Context, e DomainEvent, data Data) error {
		calls = append(calls, "domain")
		return nil
	})
	d.Notifications.Register("created", func(ctx context.Context, e DomainEvent, data Data) error {
		calls = append(calls, "notify")
		return boom
	})

	agg := newTestAggregate()
	err := CommitWithEvents(context.Background(), uow, d, agg)

	require.ErrorIs(t, err, ErrNotificationFailed)
	require.ErrorIs(t, err, boom)
	assert.Equal(t, []string{"domain", "commit", "notify"}, calls)
	assert.Empty(t, agg.Events())
}

func TestCommitWithEvents_DomainErrorRollsBack(t *testing.T) {
	var calls []string
	uow := recordingUoW{calls: &calls}
	d := NewEventDispatcher(nil)
	boom := errors.New("outbox full")

	d.Domain.Register("created", func(ctx context.Context, e DomainEvent, data Data) error {
		calls = append(calls, "domain")
		return boom
	})
	d.Notifications.Register("created", func(ctx context.Context, e DomainEvent, data Data) error {
		calls = append(calls, "notify")
		return nil
	})

	agg := newTestAggregate()
	err := CommitWithEvents(context.Background(), uow, d, agg)

	require.ErrorIs(t, err, boom)
	assert.Equal(t, []string{"domain", "rollback"}, calls)
	assert.Len(t, agg.Events(), 1)
}

func TestCommitWithEvents_CommitFailureRollsBack(t *testing.T) {
	var calls []string
	lost := errors.New("connection lost")
	uow := recordingUoW{calls: &calls, commitErr: lost}
	d := NewEventDispatcher(nil)
	d.Notifications.Register("created", func(ctx context.Context, e DomainEvent, data Data) error {
		calls = append(calls, "notify")
		return nil
	})

	err := CommitWithEvents(context.Background(), uow, d, newTestAggregate())

	require.ErrorIs(t, err, lost)
	assert.NotErrorIs(t, err, ErrNotificationFailed)
	assert.Equal(t, []string{"commit", "rollback"}, calls)
}
