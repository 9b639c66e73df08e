package goods

import "tgorders/domain/shared"

type AccessPolicy interface {
	ReadGoods() bool
	ModifyGoods() bool
}

type AllowPolicy struct{}

func (AllowPolicy) ReadGoods() bool   { return true }
func (AllowPolicy) ModifyGoods() bool { return true }

type UserBasedPolicy struct {
	actor shared.Actor
}

func NewUserBasedPolicy(actor shared.Actor) *UserBasedPolicy {
	return &UserBasedPolicy{actor: actor}
}

func (p *UserBasedPolicy) ReadGoods() bool {
	return !p.actor.IsBlocked()
}

func (p *UserBasedPolicy) ModifyGoods() bool {
	return p.actor.IsAdmin()
}

var (
	_ AccessPolicy = AllowPolicy{}
	_ AccessPolicy = (*UserBasedPolicy)(nil)
)
