package accesslevel

import (
	"errors"
	"testing"

	"tgorders/domain/shared"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestByIDAndByName(t *testing.T) {
	l, err := ByID(-1)
	require.NoError(t, err)
	assert.Equal(t, Blocked, l)

	l, err = ByName(NameConfirmation)
	require.NoError(t, err)
	assert.Equal(t, 3, l.ID())

	_, err = ByID(42)
	assert.ErrorIs(t, err, ErrAccessLevelNotExist)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	_, err = ByName("ROOT")
	assert.True(t, errors.Is(err, ErrAccessLevelNotExist))
}

func TestNormalize_CollapsesDuplicates(t *testing.T) {
	got := Normalize([]AccessLevel{Confirmation, User, Confirmation, User})
	assert.Equal(t, []AccessLevel{User, Confirmation}, got)
}

func TestAll_ReturnsCopy(t *testing.T) {
	all := All()
	all[0] = User
	assert.Equal(t, Blocked, All()[0])
}

func TestFromIDs(t *testing.T) {
	levels, err := FromIDs([]int{1, 3})
	require.NoError(t, err)
	assert.Equal(t, []AccessLevel{Administrator, Confirmation}, levels)

	_, err = FromIDs([]int{1, 7})
	assert.ErrorIs(t, err, ErrAccessLevelNotExist)
}
