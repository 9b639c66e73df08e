package shared

// AggregateRoot is the consistency boundary of a context. It is the only
// entry point for mutations and it owns the pending event log.
type AggregateRoot interface {
	// AggregateID returns the identity as a string, whatever its native type.
	AggregateID() string

	// Events returns the pending events without clearing them.
	Events() []DomainEvent

	// ClearEvents drops the pending events once both channels have seen them.
	ClearEvents()
}

// Actor is the acting user as seen by access policies.
type Actor interface {
	UserID() int64
	IsBlocked() bool
	IsAdmin() bool
	CanConfirmOrder() bool
}
