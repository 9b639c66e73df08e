package accesslevel

import "tgorders/domain/shared"

type AccessPolicy interface {
	ReadAccessLevels() bool
}

// AllowPolicy is used by system initiated flows.
type AllowPolicy struct{}

func (AllowPolicy) ReadAccessLevels() bool { return true }

type UserBasedPolicy struct {
	actor shared.Actor
}

func NewUserBasedPolicy(actor shared.Actor) *UserBasedPolicy {
	return &UserBasedPolicy{actor: actor}
}

func (p *UserBasedPolicy) ReadAccessLevels() bool { return !p.actor.IsBlocked() }

var (
	_ AccessPolicy = AllowPolicy{}
	_ AccessPolicy = (*UserBasedPolicy)(nil)
)
