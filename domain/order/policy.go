package order

import "tgorders/domain/shared"

type AccessPolicy interface {
	AddOrders() bool
	// ReadOrder takes the creator of the order, nil when unknown.
	ReadOrder(creatorID *int64) bool
	ReadAllOrders() bool
	ReadUserOrders(userID int64) bool
	ConfirmOrders() bool
	ModifyOrders() bool
}

type AllowPolicy struct{}

func (AllowPolicy) AddOrders() bool                  { return true }
func (AllowPolicy) ReadOrder(creatorID *int64) bool  { return true }
func (AllowPolicy) ReadAllOrders() bool              { return true }
func (AllowPolicy) ReadUserOrders(userID int64) bool { return true }
func (AllowPolicy) ConfirmOrders() bool              { return true }
func (AllowPolicy) ModifyOrders() bool               { return true }

type UserBasedPolicy struct {
	actor shared.Actor
}

func NewUserBasedPolicy(actor shared.Actor) *UserBasedPolicy {
	return &UserBasedPolicy{actor: actor}
}

func (p *UserBasedPolicy) isNotBlocked() bool { return !p.actor.IsBlocked() }
func (p *UserBasedPolicy) isAdmin() bool      { return p.actor.IsAdmin() }
func (p *UserBasedPolicy) isConfirmer() bool  { return p.actor.CanConfirmOrder() }

func (p *UserBasedPolicy) AddOrders() bool {
	return p.isNotBlocked()
}

func (p *UserBasedPolicy) ReadOrder(creatorID *int64) bool {
	if p.isAdmin() || p.isConfirmer() || creatorID == nil {
		return true
	}
	return *creatorID == p.actor.UserID()
}

func (p *UserBasedPolicy) ReadAllOrders() bool {
	return p.isAdmin() || p.isConfirmer()
}

func (p *UserBasedPolicy) ReadUserOrders(userID int64) bool {
	return p.actor.UserID() == userID
}

func (p *UserBasedPolicy) ConfirmOrders() bool {
	return p.isConfirmer()
}

func (p *UserBasedPolicy) ModifyOrders() bool {
	return p.isAdmin()
}

var (
	_ AccessPolicy = AllowPolicy{}
	_ AccessPolicy = (*UserBasedPolicy)(nil)
)
