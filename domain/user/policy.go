package user

import "tgorders/domain/shared"

type AccessPolicy interface {
	ReadUsers() bool
	// ReadUser allows ReadUsers or reading oneself.
	ReadUser(id int64) bool
	ModifyUsers() bool
}

// AllowPolicy is used by system initiated flows such as notification handlers.
type AllowPolicy struct{}

func (AllowPolicy) ReadUsers() bool        { return true }
func (AllowPolicy) ReadUser(id int64) bool { return true }
func (AllowPolicy) ModifyUsers() bool      { return true }

type UserBasedPolicy struct {
	actor shared.Actor
}

func NewUserBasedPolicy(actor shared.Actor) *UserBasedPolicy {
	return &UserBasedPolicy{actor: actor}
}

func (p *UserBasedPolicy) isNotBlocked() bool { return !p.actor.IsBlocked() }
func (p *UserBasedPolicy) isAdmin() bool      { return p.actor.IsAdmin() }

func (p *UserBasedPolicy) ReadUsers() bool {
	return p.isNotBlocked() && p.isAdmin()
}

func (p *UserBasedPolicy) ReadUser(id int64) bool {
	return p.ReadUsers() || p.actor.UserID() == id
}

func (p *UserBasedPolicy) ModifyUsers() bool {
	return p.isAdmin()
}

var (
	_ AccessPolicy = AllowPolicy{}
	_ AccessPolicy = (*UserBasedPolicy)(nil)
)
