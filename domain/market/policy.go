package market

import "tgorders/domain/shared"

type AccessPolicy interface {
	ReadMarkets() bool
	ModifyMarkets() bool
}

type AllowPolicy struct{}

func (AllowPolicy) ReadMarkets() bool   { return true }
func (AllowPolicy) ModifyMarkets() bool { return true }

type UserBasedPolicy struct {
	actor shared.Actor
}

func NewUserBasedPolicy(actor shared.Actor) *UserBasedPolicy {
	return &UserBasedPolicy{actor: actor}
}

func (p *UserBasedPolicy) ReadMarkets() bool   { return !p.actor.IsBlocked() }
func (p *UserBasedPolicy) ModifyMarkets() bool { return p.actor.IsAdmin() }

var (
	_ AccessPolicy = AllowPolicy{}
	_ AccessPolicy = (*UserBasedPolicy)(nil)
)
