package mysql

import (
	"context"
	"errors"
	"fmt"

	"tgorders/domain/market"
	"tgorders/domain/order"
	"tgorders/domain/shared"
	"tgorders/domain/user"
	"tgorders/infrastructure/persistence/mysql/po"
	"tgorders/infrastructure/persistence/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func mapOrderError(err error, draft *order.Draft) error {
	v, ok := constraintViolation(err)
	switch {
	case !ok:
	case v.is(errDuplicateEntry, constraintPrimary):
		return order.NewOrderAlreadyExistsError(draft.ID)
	case v.is(errNoReferencedRow, constraintOrderCreator):
		return user.NewUserNotExistsError(draft.CreatorID)
	case v.is(errNoReferencedRow, constraintOrderMarket):
		return market.NewMarketNotExistsError(draft.RecipientMarketID)
	}
	return fmt.Errorf("order %s: %w", draft.ID, err)
}

// lineError resolves a rejected line: the goods is either missing or a folder.
func lineError(db *gorm.DB, err error, index int, goodsID string) error {
	v, ok := constraintViolation(err)
	if !ok || !v.is(errNoReferencedRow, constraintOrderLineGoods) {
		return fmt.Errorf("order line %d: %w", index, err)
	}

	row, lookupErr := findGoods(db, goodsID)
	if lookupErr != nil {
		return lookupErr
	}
	return order.NewOrderLineGoodsHasIncorrectTypeError(index, goodsID, row.Type)
}

// orderRepository MySQL/GORM implementation of order repository
// GORM usage specification: Association features are prohibited to maintain DDD aggregate boundaries
type orderRepository struct{ uow *UnitOfWork }

// CreateOrder inserts the lines one by one so a failing line can be named.
func (r orderRepository) CreateOrder(ctx context.Context, draft *order.Draft) (*order.Order, error) {
	db, err := r.uow.begin(ctx)
	if err != nil {
		return nil, err
	}

	orderPO, linePOs := po.FromDraft(draft, uuid.NewString)
	if err := db.Create(orderPO).Error; err != nil {
		return nil, mapOrderError(err, draft)
	}
	for i := range linePOs {
		if err := db.Create(&linePOs[i]).Error; err != nil {
			return nil, lineError(db, err, i, linePOs[i].GoodsID)
		}
	}

	orders, err := hydrateOrders(db, []po.OrderPO{*orderPO})
	if err != nil {
		return nil, err
	}
	return orders[0], nil
}

// OrderByID locks the order row until the unit of work ends.
func (r orderRepository) OrderByID(ctx context.Context, id string) (*order.Order, error) {
	db, err := r.uow.begin(ctx)
	if err != nil {
		return nil, err
	}
	return findOrder(db.Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

func (r orderRepository) EditOrder(ctx context.Context, o *order.Order) error {
	db, err := r.uow.begin(ctx)
	if err != nil {
		return err
	}

	result := db.Model(&po.OrderPO{}).
		Where("id = ?", o.ID()).
		Update("confirmed", string(o.Confirmed()))
	if result.Error != nil {
		return fmt.Errorf("order %s: %w", o.ID(), result.Error)
	}
	if result.RowsAffected == 0 {
		return order.NewOrderNotExistsError(o.ID())
	}

	if added := po.FromOrderMessages(o.ID(), o.AddedMessages()); len(added) > 0 {
		if err := db.Create(&added).Error; err != nil {
			return fmt.Errorf("order %s messages: %w", o.ID(), err)
		}
	}
	o.ClearDirtyTracking()
	return nil
}

func findOrder(db *gorm.DB, id string) (*order.Order, error) {
	var row po.OrderPO
	if err := db.First(&row, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, order.NewOrderNotExistsError(id)
		}
		return nil, fmt.Errorf("order %s: %w", id, err)
	}

	orders, err := hydrateOrders(db, []po.OrderPO{row})
	if err != nil {
		return nil, err
	}
	return orders[0], nil
}

// hydrateOrders loads lines, messages and refs for a batch of order rows.
func hydrateOrders(db *gorm.DB, rows []po.OrderPO) ([]*order.Order, error) {
	if len(rows) == 0 {
		return []*order.Order{}, nil
	}
	// Locking applies to the order rows only.
	db = db.Session(&gorm.Session{NewDB: true})

	orderIDs := make([]string, len(rows))
	userIDs := make([]int64, 0, len(rows))
	marketIDs := make([]string, 0, len(rows))
	for i, row := range rows {
		orderIDs[i] = row.ID
		userIDs = append(userIDs, row.CreatorID)
		marketIDs = append(marketIDs, row.RecipientMarketID)
	}

	var lines []po.OrderLinePO
	if err := db.Where("order_id IN ?", orderIDs).Order("order_id").Order("position").Find(&lines).Error; err != nil {
		return nil, fmt.Errorf("order lines: %w", err)
	}
	var messages []po.OrderMessagePO
	if err := db.Where("order_id IN ?", orderIDs).Order("id").Find(&messages).Error; err != nil {
		return nil, fmt.Errorf("order messages: %w", err)
	}

	goodsIDs := make([]string, len(lines))
	for i, l := range lines {
		goodsIDs[i] = l.GoodsID
	}
	refs := po.OrderRefs{
		Goods:   make(map[string]po.GoodsPO),
		Users:   make(map[int64]po.UserPO),
		Markets: make(map[string]po.MarketPO),
	}
	if len(goodsIDs) > 0 {
		var goodsRows []po.GoodsPO
		if err := db.Where("id IN ?", goodsIDs).Find(&goodsRows).Error; err != nil {
			return nil, fmt.Errorf("order goods: %w", err)
		}
		for _, g := range goodsRows {
			refs.Goods[g.ID] = g
		}
	}
	var userRows []po.UserPO
	if err := db.Where("id IN ?", userIDs).Find(&userRows).Error; err != nil {
		return nil, fmt.Errorf("order creators: %w", err)
	}
	for _, u := range userRows {
		refs.Users[u.ID] = u
	}
	var marketRows []po.MarketPO
	if err := db.Where("id IN ?", marketIDs).Find(&marketRows).Error; err != nil {
		return nil, fmt.Errorf("order markets: %w", err)
	}
	for _, m := range marketRows {
		refs.Markets[m.ID] = m
	}

	linesByOrder := make(map[string][]po.OrderLinePO, len(rows))
	for _, l := range lines {
		linesByOrder[l.OrderID] = append(linesByOrder[l.OrderID], l)
	}
	messagesByOrder := make(map[string][]po.OrderMessagePO, len(rows))
	for _, m := range messages {
		messagesByOrder[m.OrderID] = append(messagesByOrder[m.OrderID], m)
	}

	result := make([]*order.Order, len(rows))
	for i := range rows {
		result[i] = rows[i].ToDomain(linesByOrder[rows[i].ID], messagesByOrder[rows[i].ID], refs)
	}
	return result, nil
}

type orderReader struct{ uow *UnitOfWork }

func (r orderReader) find(ctx context.Context, spec shared.Specification[*order.Order]) ([]*order.Order, error) {
	db := r.uow.read(ctx)
	query := db.Order("created_at DESC")
	if spec != nil {
		cond, err := specification.Orders(spec)
		if err != nil {
			return nil, err
		}
		query = query.Scopes(cond.Scope())
	}

	var rows []po.OrderPO
	if err := query.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("orders: %w", err)
	}
	return hydrateOrders(db, rows)
}

func (r orderReader) AllOrders(ctx context.Context) ([]*order.Order, error) {
	return r.find(ctx, nil)
}

func (r orderReader) OrderByID(ctx context.Context, id string) (*order.Order, error) {
	return findOrder(r.uow.read(ctx), id)
}

func (r orderReader) OrdersByCreator(ctx context.Context, creatorID int64) ([]*order.Order, error) {
	return r.find(ctx, order.NewByCreatorSpecification(creatorID))
}
