package shared

import (
	"context"
	"fmt"
	"maps"
)

// Data is the bag of shared values handed to every handler of one publish call
// (notification sender, unit of work factory and so on).
type Data map[string]any

// Value returns data[key] as T.
func Value[T any](data Data, key string) (T, bool) {
	v, ok := data[key].(T)
	return v, ok
}

// Handler reacts to one event.
type Handler func(ctx context.Context, event DomainEvent, data Data) error

// Middleware wraps a handler. Middlewares registered first run outermost.
type Middleware func(next Handler) Handler

// Observer is one routing table: event name to an ordered handler list, with
// its own middleware chain.
type Observer struct {
	name        string
	handlers    map[string][]Handler
	middlewares []Middleware
}

func NewObserver(name string) *Observer {
	return &Observer{
		name:     name,
		handlers: make(map[string][]Handler),
	}
}

func (o *Observer) Name() string { return o.name }

// Register appends a handler for eventName. Handlers run in registration order.
func (o *Observer) Register(eventName string, handler Handler) {
	o.handlers[eventName] = append(o.handlers[eventName], handler)
}

// Use appends middlewares to the chain.
func (o *Observer) Use(middlewares ...Middleware) {
	o.middlewares = append(o.middlewares, middlewares...)
}

// Handlers returns the number of handlers registered for eventName.
func (o *Observer) Handlers(eventName string) int {
	return len(o.handlers[eventName])
}

func (o *Observer) wrap(handler Handler) Handler {
	for i := len(o.middlewares) - 1; i >= 0; i-- {
		handler = o.middlewares[i](handler)
	}
	return handler
}

// Notify runs the handlers of every event one after another. The first error
// stops the whole batch.
func (o *Observer) Notify(ctx context.Context, events []DomainEvent, data Data) error {
	for _, event := range events {
		for _, handler := range o.handlers[event.EventName()] {
			if err := o.wrap(handler)(ctx, event, data); err != nil {
				return fmt.Errorf("%s handler for %s: %w", o.name, event.EventName(), err)
			}
		}
	}
	return nil
}

// EventDispatcher routes events to two independent observers. Domain handlers
// run before the transaction commits, notification handlers after it.
type EventDispatcher struct {
	Domain        *Observer
	Notifications *Observer
	data          Data
}

func NewEventDispatcher(data Data) *EventDispatcher {
	d := &EventDispatcher{
		Domain:        NewObserver("domain"),
		Notifications: NewObserver("notification"),
		data:          make(Data, len(data)),
	}
	maps.Copy(d.data, data)
	return d
}

// Set stores a shared value for later publish calls.
func (d *EventDispatcher) Set(key string, value any) {
	d.data[key] = value
}

func (d *EventDispatcher) snapshot() Data {
	data := make(Data, len(d.data))
	maps.Copy(data, d.data)
	return data
}

func (d *EventDispatcher) PublishEvents(ctx context.Context, events []DomainEvent) error {
	return d.Domain.Notify(ctx, events, d.snapshot())
}

func (d *EventDispatcher) PublishNotifications(ctx context.Context, events []DomainEvent) error {
	return d.Notifications.Notify(ctx, events, d.snapshot())
}
