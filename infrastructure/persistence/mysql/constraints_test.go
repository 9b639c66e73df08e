package mysql

import (
	"errors"
	"fmt"
	"testing"

	"tgorders/domain/goods"
	"tgorders/domain/market"
	"tgorders/domain/user"

	mysqlDriver "github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
)

func TestConstraintViolation(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		number     uint16
		constraint string
	}{
		{
			name:       "duplicate with table prefix",
			err:        &mysqlDriver.MySQLError{Number: 1062, Message: "Duplicate entry 'Central' for key 'market.uq_market_name'"},
			number:     1062,
			constraint: "uq_market_name",
		},
		{
			name:       "duplicate primary",
			err:        &mysqlDriver.MySQLError{Number: 1062, Message: "Duplicate entry '7' for key 'PRIMARY'"},
			number:     1062,
			constraint: "PRIMARY",
		},
		{
			name: "referenced parent row",
			err: &mysqlDriver.MySQLError{Number: 1451, Message: "Cannot delete or update a parent row: a foreign key constraint fails " +
				"(`tgorders`.`goods`, CONSTRAINT `fk_goods_parent` FOREIGN KEY (`parent_id`) REFERENCES `goods` (`id`))"},
			number:     1451,
			constraint: "fk_goods_parent",
		},
		{
			name: "missing referenced row, wrapped",
			err: fmt.Errorf("insert: %w", &mysqlDriver.MySQLError{Number: 1452, Message: "Cannot add or update a child row: a foreign key constraint fails " +
				"(`tgorders`.`order_line`, CONSTRAINT `fk_order_line_goods` FOREIGN KEY (`goods_id`, `goods_type`) REFERENCES `goods` (`id`, `type`))"}),
			number:     1452,
			constraint: "fk_order_line_goods",
		},
		{
			name:       "check",
			err:        &mysqlDriver.MySQLError{Number: 3819, Message: "Check constraint 'ck_goods_folder_sku' is violated."},
			number:     3819,
			constraint: "ck_goods_folder_sku",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, ok := constraintViolation(tt.err)
			assert.True(t, ok)
			assert.Equal(t, tt.number, v.Number)
			assert.Equal(t, tt.constraint, v.Constraint)
		})
	}
}

func TestConstraintViolation_IgnoresOtherErrors(t *testing.T) {
	_, ok := constraintViolation(errors.New("connection refused"))
	assert.False(t, ok)

	_, ok = constraintViolation(&mysqlDriver.MySQLError{Number: 1213, Message: "Deadlock found"})
	assert.False(t, ok)
}

func TestMapGoodsError(t *testing.T) {
	dup := &mysqlDriver.MySQLError{Number: 1062, Message: "Duplicate entry 'g-1' for key 'goods.PRIMARY'"}
	assert.ErrorIs(t, mapGoodsError(dup, "g-1"), goods.ErrGoodsAlreadyExists)

	children := &mysqlDriver.MySQLError{Number: 1451, Message: "a foreign key constraint fails (`db`.`goods`, CONSTRAINT `fk_goods_parent` FOREIGN KEY)"}
	assert.ErrorIs(t, mapGoodsError(children, "g-1"), goods.ErrCantDeleteWithChildren)

	orders := &mysqlDriver.MySQLError{Number: 1451, Message: "a foreign key constraint fails (`db`.`order_line`, CONSTRAINT `fk_order_line_goods` FOREIGN KEY)"}
	assert.ErrorIs(t, mapGoodsError(orders, "g-1"), goods.ErrCantDeleteWithOrders)

	sku := &mysqlDriver.MySQLError{Number: 3819, Message: "Check constraint 'ck_goods_goods_sku' is violated."}
	assert.ErrorIs(t, mapGoodsError(sku, "g-1"), goods.ErrGoodsMustHaveSKU)

	other := errors.New("timeout")
	assert.ErrorIs(t, mapGoodsError(other, "g-1"), other)
}

func TestMapMarketAndUserErrors(t *testing.T) {
	name := &mysqlDriver.MySQLError{Number: 1062, Message: "Duplicate entry 'Central' for key 'market.uq_market_name'"}
	assert.ErrorIs(t, mapMarketError(name, "m-1", "Central"), market.ErrMarketAlreadyExists)

	ordered := &mysqlDriver.MySQLError{Number: 1451, Message: "fails (`db`.`orders`, CONSTRAINT `fk_order_market` FOREIGN KEY)"}
	assert.ErrorIs(t, mapMarketError(ordered, "m-1", "Central"), market.ErrCantDeleteWithOrders)

	dupUser := &mysqlDriver.MySQLError{Number: 1062, Message: "Duplicate entry '7' for key 'telegram_user.PRIMARY'"}
	assert.ErrorIs(t, mapUserError(dupUser, 7), user.ErrUserAlreadyExists)

	creator := &mysqlDriver.MySQLError{Number: 1451, Message: "fails (`db`.`orders`, CONSTRAINT `fk_order_creator` FOREIGN KEY)"}
	assert.ErrorIs(t, mapUserError(creator, 7), user.ErrCantDeleteWithOrders)
}
