package mysql

import (
	"errors"
	"regexp"
	"strings"

	mysqlDriver "github.com/go-sql-driver/mysql"
)

// MySQL error numbers for constraint violations.
const (
	errDuplicateEntry  = 1062
	errRowIsReferenced = 1451
	errNoReferencedRow = 1452
	errCheckViolated   = 3819
)

// Constraint names declared by the migrations.
const (
	constraintPrimary          = "PRIMARY"
	constraintGoodsParent      = "fk_goods_parent"
	constraintOrderLineGoods   = "fk_order_line_goods"
	constraintGoodsFolderSKU   = "ck_goods_folder_sku"
	constraintGoodsGoodsSKU    = "ck_goods_goods_sku"
	constraintMarketName       = "uq_market_name"
	constraintOrderMarket      = "fk_order_market"
	constraintOrderCreator     = "fk_order_creator"
	constraintUserLevelCatalog = "fk_user_access_level_level"
)

var (
	foreignKeyPattern = regexp.MustCompile("CONSTRAINT `([^`]+)`")
	duplicatePattern  = regexp.MustCompile(`for key '([^']+)'`)
	checkPattern      = regexp.MustCompile(`[Cc]heck constraint '([^']+)'`)
)

// violation is a constraint failure reported by the server.
type violation struct {
	Number     uint16
	Constraint string
}

// constraintViolation extracts the violated constraint from a driver error.
// Duplicate key names lose their "table." prefix.
func constraintViolation(err error) (violation, bool) {
	var mysqlErr *mysqlDriver.MySQLError
	if !errors.As(err, &mysqlErr) {
		return violation{}, false
	}

	var pattern *regexp.Regexp
	switch mysqlErr.Number {
	case errDuplicateEntry:
		pattern = duplicatePattern
	case errRowIsReferenced, errNoReferencedRow:
		pattern = foreignKeyPattern
	case errCheckViolated:
		pattern = checkPattern
	default:
		return violation{}, false
	}

	v := violation{Number: mysqlErr.Number}
	if m := pattern.FindStringSubmatch(mysqlErr.Message); m != nil {
		name := m[1]
		if i := strings.LastIndex(name, "."); i >= 0 {
			name = name[i+1:]
		}
		v.Constraint = name
	}
	return v, true
}

func (v violation) is(number uint16, constraint string) bool {
	return v.Number == number && v.Constraint == constraint
}
