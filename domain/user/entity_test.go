package user

import (
	"testing"

	"tgorders/domain/accesslevel"
	"tgorders/domain/shared"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_RecordsCreatedEvent(t *testing.T) {
	u, err := New(100, "Alice", []accesslevel.AccessLevel{accesslevel.User})
	require.NoError(t, err)

	events := u.Events()
	require.Len(t, events, 1)
	assert.Equal(t, "user.created", events[0].EventName())
	assert.Equal(t, "100", events[0].GetAggregateID())
}

func TestNew_BlockedIsExclusive(t *testing.T) {
	_, err := New(1, "Bob", []accesslevel.AccessLevel{accesslevel.Blocked, accesslevel.User})
	assert.ErrorIs(t, err, ErrBlockedUserWithOtherRole)
	assert.ErrorIs(t, err, shared.ErrInvalidInput)
}

func TestNew_NeedsAccessLevel(t *testing.T) {
	_, err := New(1, "Bob", nil)
	assert.ErrorIs(t, err, ErrUserWithNoAccessLevels)
}

func TestSetAccessLevels_ChecksInvariants(t *testing.T) {
	u := RebuildFromDTO(ReconstructionDTO{ID: 1, Name: "Bob", AccessLevels: []accesslevel.AccessLevel{accesslevel.User}})

	assert.ErrorIs(t, u.SetAccessLevels([]accesslevel.AccessLevel{}), ErrUserWithNoAccessLevels)
	assert.ErrorIs(t, u.SetAccessLevels([]accesslevel.AccessLevel{accesslevel.Administrator, accesslevel.Blocked}), ErrBlockedUserWithOtherRole)
	assert.Equal(t, []accesslevel.AccessLevel{accesslevel.User}, u.AccessLevels())

	require.NoError(t, u.SetAccessLevels([]accesslevel.AccessLevel{accesslevel.Confirmation, accesslevel.Confirmation, accesslevel.Administrator}))
	assert.Equal(t, []accesslevel.AccessLevel{accesslevel.Administrator, accesslevel.Confirmation}, u.AccessLevels())
	assert.True(t, u.IsAdmin())
	assert.True(t, u.CanConfirmOrder())
	assert.False(t, u.IsBlocked())
}

func TestBlock(t *testing.T) {
	u := RebuildFromDTO(ReconstructionDTO{ID: 1, Name: "Bob", AccessLevels: []accesslevel.AccessLevel{accesslevel.Administrator}})
	u.Block()

	assert.True(t, u.IsBlocked())
	assert.False(t, u.IsAdmin())
	assert.Equal(t, []accesslevel.AccessLevel{accesslevel.Blocked}, u.AccessLevels())
}

func TestChangeID_KeepsOriginalUntilSaved(t *testing.T) {
	u := RebuildFromDTO(ReconstructionDTO{ID: 1, Name: "Bob", AccessLevels: []accesslevel.AccessLevel{accesslevel.User}})
	require.NoError(t, u.ChangeID(2))

	assert.Equal(t, int64(2), u.ID())
	assert.Equal(t, int64(1), u.OriginalID())

	u.MarkSaved()
	assert.Equal(t, int64(2), u.OriginalID())
}

func TestRebuildFromDTO_HasEmptyEventLog(t *testing.T) {
	u := RebuildFromDTO(ReconstructionDTO{ID: 1, Name: "Bob", AccessLevels: []accesslevel.AccessLevel{accesslevel.User}})
	assert.NotNil(t, u.Events())
	assert.Empty(t, u.Events())
}
