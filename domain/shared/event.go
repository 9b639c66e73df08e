package shared

import (
	"fmt"
	"time"
)

type DomainEvent interface {
	EventName() string
	OccurredOn() time.Time
	GetAggregateID() string
}

func ValidateEvent(event DomainEvent) error {
	if event == nil {
		return fmt.Errorf("event cannot be nil")
	}

	if event.EventName() == "" {
		return fmt.Errorf("event name cannot be empty")
	}

	if event.GetAggregateID() == "" {
		return fmt.Errorf("aggregate ID cannot be empty")
	}

	if event.OccurredOn().IsZero() {
		return fmt.Errorf("occurred on time cannot be zero")
	}

	return nil
}

// EventLog is the pending event list an aggregate accumulates while it is
// mutated. Aggregates embed it and create it with NewEventLog in both the
// factory and the rebuild path, so it is never nil.
type EventLog struct {
	events []DomainEvent
}

func NewEventLog() EventLog {
	return EventLog{events: make([]DomainEvent, 0)}
}

// Record appends an event.
func (l *EventLog) Record(event DomainEvent) {
	l.events = append(l.events, event)
}

// Events returns a copy of the pending events without clearing them.
func (l *EventLog) Events() []DomainEvent {
	out := make([]DomainEvent, len(l.events))
	copy(out, l.events)
	return out
}

// ClearEvents drops every pending event.
func (l *EventLog) ClearEvents() {
	l.events = l.events[:0]
}

// PullEvents returns the pending events and clears the log.
func (l *EventLog) PullEvents() []DomainEvent {
	out := l.Events()
	l.ClearEvents()
	return out
}
