/*
Package memory is the in-process persistence adapter. It backs the "memory"
database type and the application tests.

A Store holds the committed state. A UnitOfWork copies it on the first write,
works on the copy and swaps it in on Commit. Concurrent units of work are
last-writer-wins; the bot serves one update at a time.
*/
package memory

import (
	"maps"
	"slices"
	"sync"
	"time"

	"tgorders/domain/accesslevel"
	"tgorders/domain/goods"
	"tgorders/domain/order"
	"tgorders/domain/shared"
)

type goodsRow struct {
	ID       string
	Name     string
	Type     goods.GoodsType
	SKU      *string
	IsActive bool
	ParentID *string
}

type marketRow struct {
	ID       string
	Name     string
	IsActive bool
}

type userRow struct {
	ID           int64
	Name         string
	AccessLevels []accesslevel.AccessLevel
}

type lineRow struct {
	ID       string
	GoodsID  string
	Quantity int
}

type orderRow struct {
	ID         string
	Lines      []lineRow
	CreatorID  int64
	MarketID   string
	CreatedAt  time.Time
	Commentary string
	Confirmed  order.ConfirmedStatus
	Messages   []order.OrderMessage
}

type state struct {
	goods   map[string]goodsRow
	markets map[string]marketRow
	users   map[int64]userRow
	orders  map[string]orderRow
	outbox  []shared.DomainEvent
}

func newState() *state {
	return &state{
		goods:   make(map[string]goodsRow),
		markets: make(map[string]marketRow),
		users:   make(map[int64]userRow),
		orders:  make(map[string]orderRow),
	}
}

// clone copies the maps; rows are values and their slices are never mutated
// in place.
func (s *state) clone() *state {
	return &state{
		goods:   maps.Clone(s.goods),
		markets: maps.Clone(s.markets),
		users:   maps.Clone(s.users),
		orders:  maps.Clone(s.orders),
		outbox:  slices.Clone(s.outbox),
	}
}

// Store is the committed state shared by units of work.
type Store struct {
	mu sync.RWMutex
	st *state
}

func NewStore() *Store {
	return &Store{st: newState()}
}

func (s *Store) snapshot() *state {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.st
}

func (s *Store) replace(st *state) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.st = st
}

// OutboxEvents returns the committed outbox.
func (s *Store) OutboxEvents() []shared.DomainEvent {
	return slices.Clone(s.snapshot().outbox)
}
