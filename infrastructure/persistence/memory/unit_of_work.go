package memory

import (
	"context"

	"tgorders/domain/accesslevel"
	"tgorders/domain/goods"
	"tgorders/domain/market"
	"tgorders/domain/order"
	"tgorders/domain/shared"
	"tgorders/domain/user"
)

// Recorder receives "commit" and "rollback" as they happen.
type Recorder func(op string)

// UnitOfWork implements every context's unit of work over a Store.
type UnitOfWork struct {
	store  *Store
	work   *state
	record Recorder
}

func NewUnitOfWork(store *Store) *UnitOfWork {
	return &UnitOfWork{store: store}
}

// read returns the working copy when one exists, the committed state otherwise.
func (u *UnitOfWork) read() *state {
	if u.work != nil {
		return u.work
	}
	return u.store.snapshot()
}

// write begins the unit of work lazily.
func (u *UnitOfWork) write() *state {
	if u.work == nil {
		u.work = u.store.snapshot().clone()
	}
	return u.work
}

func (u *UnitOfWork) Commit(ctx context.Context) error {
	if u.record != nil {
		u.record("commit")
	}
	if u.work != nil {
		u.store.replace(u.work)
		u.work = nil
	}
	return nil
}

func (u *UnitOfWork) Rollback(ctx context.Context) error {
	if u.record != nil {
		u.record("rollback")
	}
	u.work = nil
	return nil
}

func (u *UnitOfWork) Goods() goods.Repository               { return goodsRepository{u} }
func (u *UnitOfWork) GoodsReader() goods.Reader             { return goodsReader{u} }
func (u *UnitOfWork) Markets() market.Repository            { return marketRepository{u} }
func (u *UnitOfWork) MarketReader() market.Reader           { return marketReader{u} }
func (u *UnitOfWork) Users() user.Repository                { return userRepository{u} }
func (u *UnitOfWork) UserReader() user.Reader               { return userReader{u} }
func (u *UnitOfWork) AccessLevelReader() accesslevel.Reader { return accessLevelReader{u} }
func (u *UnitOfWork) Orders() order.Repository              { return orderRepository{u} }
func (u *UnitOfWork) OrderReader() order.Reader             { return orderReader{u} }
func (u *UnitOfWork) Outbox() shared.OutboxRepository       { return outboxRepository{u} }

// UnitOfWorkFactory opens units of work over one Store.
type UnitOfWorkFactory struct {
	store  *Store
	record Recorder
}

func NewUnitOfWorkFactory(store *Store) *UnitOfWorkFactory {
	return &UnitOfWorkFactory{store: store}
}

// WithRecorder makes every unit of work report commits and rollbacks.
func (f *UnitOfWorkFactory) WithRecorder(record Recorder) *UnitOfWorkFactory {
	f.record = record
	return f
}

func (f *UnitOfWorkFactory) New(ctx context.Context) (shared.UnitOfWork, error) {
	return f.Open(), nil
}

// Open returns the concrete unit of work.
func (f *UnitOfWorkFactory) Open() *UnitOfWork {
	return &UnitOfWork{store: f.store, record: f.record}
}

type outboxRepository struct{ uow *UnitOfWork }

func (r outboxRepository) SaveEvent(ctx context.Context, event shared.DomainEvent) error {
	st := r.uow.write()
	st.outbox = append(st.outbox, event)
	return nil
}

var (
	_ goods.UnitOfWork         = (*UnitOfWork)(nil)
	_ market.UnitOfWork        = (*UnitOfWork)(nil)
	_ user.UnitOfWork          = (*UnitOfWork)(nil)
	_ accesslevel.UnitOfWork   = (*UnitOfWork)(nil)
	_ order.UnitOfWork         = (*UnitOfWork)(nil)
	_ shared.OutboxUnitOfWork  = (*UnitOfWork)(nil)
	_ shared.UnitOfWorkFactory = (*UnitOfWorkFactory)(nil)
)
