// Package specification translates domain specifications into GORM scopes.
package specification

import (
	"errors"
	"fmt"

	"tgorders/domain/goods"
	"tgorders/domain/order"
	"tgorders/domain/shared"
	"tgorders/domain/user"

	"gorm.io/gorm"
)

var ErrUnsupportedSpecification = errors.New("unsupported specification")

// Condition is a WHERE fragment with its bind arguments.
type Condition struct {
	SQL  string
	Args []any
}

// Scope applies the condition to a query.
func (c Condition) Scope() func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(c.SQL, c.Args...)
	}
}

// concrete translates the leaf specifications of one entity.
type concrete[T any] func(spec shared.Specification[T]) (Condition, bool)

// translate handles the composites and delegates leaves to leaf.
func translate[T any](spec shared.Specification[T], leaf concrete[T]) (Condition, error) {
	switch s := spec.(type) {
	case shared.AndSpecification[T]:
		return combine(s.Left, s.Right, "AND", leaf)
	case shared.OrSpecification[T]:
		return combine(s.Left, s.Right, "OR", leaf)
	case shared.NotSpecification[T]:
		inner, err := translate(s.Spec, leaf)
		if err != nil {
			return Condition{}, err
		}
		return Condition{SQL: "NOT (" + inner.SQL + ")", Args: inner.Args}, nil
	}

	if c, ok := leaf(spec); ok {
		return c, nil
	}
	return Condition{}, fmt.Errorf("%w: %T", ErrUnsupportedSpecification, spec)
}

func combine[T any](left, right shared.Specification[T], op string, leaf concrete[T]) (Condition, error) {
	l, err := translate(left, leaf)
	if err != nil {
		return Condition{}, err
	}
	r, err := translate(right, leaf)
	if err != nil {
		return Condition{}, err
	}
	args := append(append([]any{}, l.Args...), r.Args...)
	return Condition{SQL: "(" + l.SQL + ") " + op + " (" + r.SQL + ")", Args: args}, nil
}

// Goods translates specifications over the goods table.
func Goods(spec shared.Specification[*goods.Goods]) (Condition, error) {
	return translate(spec, func(spec shared.Specification[*goods.Goods]) (Condition, bool) {
		switch s := spec.(type) {
		case goods.InFolderSpecification:
			if s.ParentID == nil {
				return Condition{SQL: "parent_id IS NULL"}, true
			}
			return Condition{SQL: "parent_id = ?", Args: []any{*s.ParentID}}, true
		case goods.ActiveSpecification:
			return Condition{SQL: "is_active = ?", Args: []any{true}}, true
		}
		return Condition{}, false
	})
}

// Orders translates specifications over the orders table.
func Orders(spec shared.Specification[*order.Order]) (Condition, error) {
	return translate(spec, func(spec shared.Specification[*order.Order]) (Condition, bool) {
		switch s := spec.(type) {
		case order.ByCreatorSpecification:
			return Condition{SQL: "creator_id = ?", Args: []any{s.CreatorID}}, true
		case order.ByConfirmedSpecification:
			return Condition{SQL: "confirmed = ?", Args: []any{string(s.Status)}}, true
		}
		return Condition{}, false
	})
}

// Users translates specifications over the telegram_user table.
func Users(spec shared.Specification[*user.TelegramUser]) (Condition, error) {
	return translate(spec, func(spec shared.Specification[*user.TelegramUser]) (Condition, bool) {
		switch s := spec.(type) {
		case user.HasAccessLevelSpecification:
			return Condition{
				SQL:  "id IN (SELECT user_id FROM user_access_level WHERE access_level_id = ?)",
				Args: []any{s.Level.ID()},
			}, true
		}
		return Condition{}, false
	})
}
