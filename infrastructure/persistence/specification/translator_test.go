package specification

import (
	"testing"

	"tgorders/domain/accesslevel"
	"tgorders/domain/goods"
	"tgorders/domain/order"
	"tgorders/domain/shared"
	"tgorders/domain/user"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGoods_Listing(t *testing.T) {
	root, err := Goods(goods.Listing(nil, false))
	require.NoError(t, err)
	assert.Equal(t, "parent_id IS NULL", root.SQL)
	assert.Empty(t, root.Args)

	folder := "f-1"
	active, err := Goods(goods.Listing(&folder, true))
	require.NoError(t, err)
	assert.Equal(t, "(parent_id = ?) AND (is_active = ?)", active.SQL)
	assert.Equal(t, []any{"f-1", true}, active.Args)
}

func TestUsers_NotBlockedOrConfirmation(t *testing.T) {
	spec := shared.Or[*user.TelegramUser](user.NotBlocked(), user.ForConfirmation())

	c, err := Users(spec)
	require.NoError(t, err)
	assert.Equal(t,
		"(NOT (id IN (SELECT user_id FROM user_access_level WHERE access_level_id = ?))) OR "+
			"(id IN (SELECT user_id FROM user_access_level WHERE access_level_id = ?))",
		c.SQL)
	assert.Equal(t, []any{accesslevel.Blocked.ID(), accesslevel.Confirmation.ID()}, c.Args)
}

func TestOrders(t *testing.T) {
	c, err := Orders(shared.And(order.NewByCreatorSpecification(7), order.NewByConfirmedSpecification(order.StatusYes)))
	require.NoError(t, err)
	assert.Equal(t, "(creator_id = ?) AND (confirmed = ?)", c.SQL)
	assert.Equal(t, []any{int64(7), "YES"}, c.Args)
}

type unknownSpec struct{}

func (unknownSpec) IsSatisfiedBy(*goods.Goods) bool { return true }

func TestUnsupportedSpecification(t *testing.T) {
	_, err := Goods(shared.Not[*goods.Goods](unknownSpec{}))
	assert.ErrorIs(t, err, ErrUnsupportedSpecification)
}
