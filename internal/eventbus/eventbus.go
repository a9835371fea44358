package eventbus

import (
	"sync"

	"go.uber.org/zap"

	"collectionview/internal/domain"
)

// Re-export domain types for convenience
type DomainEvent = domain.DomainEvent
type EventType = domain.EventType

// EventHandler is a function that handles domain events
type EventHandler func(DomainEvent)

// EventBus is the interface for the event bus
type EventBus interface {
	Publish(event DomainEvent)
	Subscribe(eventType EventType, handler EventHandler) func()
	SubscribeAll(handler EventHandler) func()
}

type subscription struct {
	id      uint64
	handler EventHandler
}

// bus delivers events synchronously, in publish order, on the caller's goroutine.
// Handlers run after the bus lock is released so they may publish or subscribe.
type bus struct {
	mu       sync.RWMutex
	handlers map[EventType][]subscription
	all      []subscription
	nextID   uint64
	logger   *zap.Logger
}

// Option configures the bus
type Option func(*bus)

// WithLogger sets the logger used for handler panics
func WithLogger(logger *zap.Logger) Option {
	return func(b *bus) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// New creates a new event bus
func New(opts ...Option) EventBus {
	b := &bus{
		handlers: make(map[EventType][]subscription),
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Publish sends an event to type subscribers first, then to catch-all subscribers
func (b *bus) Publish(event DomainEvent) {
	if event == nil {
		return
	}

	b.mu.RLock()
	typed := b.handlers[event.Type()]
	handlers := make([]subscription, 0, len(typed)+len(b.all))
	handlers = append(handlers, typed...)
	handlers = append(handlers, b.all...)
	b.mu.RUnlock()

	b.logger.Debug("publishing event", zap.String("type", string(event.Type())), zap.Int("handlers", len(handlers)))

	for _, sub := range handlers {
		b.call(sub.handler, event)
	}
}

// Subscribe subscribes to events of a specific type.
// Returns an unsubscribe function
func (b *bus) Subscribe(eventType EventType, handler EventHandler) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	id := b.nextID
	b.handlers[eventType] = append(b.handlers[eventType], subscription{id: id, handler: handler})

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		b.handlers[eventType] = without(b.handlers[eventType], id)
	}
}

// SubscribeAll subscribes to every event
func (b *bus) SubscribeAll(handler EventHandler) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	id := b.nextID
	b.all = append(b.all, subscription{id: id, handler: handler})

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		b.all = without(b.all, id)
	}
}

func (b *bus) call(h EventHandler, event DomainEvent) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("event handler panic",
				zap.String("type", string(event.Type())),
				zap.Any("panic", r),
				zap.Stack("stack"))
		}
	}()
	h(event)
}

func without(subs []subscription, id uint64) []subscription {
	out := make([]subscription, 0, len(subs))
	for _, s := range subs {
		if s.id != id {
			out = append(out, s)
		}
	}
	return out
}

// NullBus is a no-op implementation of EventBus
type NullBus struct{}

func (NullBus) Publish(event DomainEvent) {}
func (NullBus) Subscribe(eventType EventType, handler EventHandler) func() {
	return func() {}
}
func (NullBus) SubscribeAll(handler EventHandler) func() { return func() {} }

// Recorder collects every published event; useful for hosts that batch
// notifications and for tests
type Recorder struct {
	mu     sync.Mutex
	events []DomainEvent
}

// Record subscribes the recorder to all events on b
func Record(b EventBus) (*Recorder, func()) {
	r := &Recorder{}
	unsub := b.SubscribeAll(func(e DomainEvent) {
		r.mu.Lock()
		r.events = append(r.events, e)
		r.mu.Unlock()
	})
	return r, unsub
}

// Events returns a copy of the recorded events
func (r *Recorder) Events() []DomainEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]DomainEvent(nil), r.events...)
}

// Types returns the recorded event types in order
func (r *Recorder) Types() []EventType {
	r.mu.Lock()
	defer r.mu.Unlock()
	types := make([]EventType, len(r.events))
	for i, e := range r.events {
		types[i] = e.Type()
	}
	return types
}

// Reset drops recorded events
func (r *Recorder) Reset() {
	r.mu.Lock()
	r.events = nil
	r.mu.Unlock()
}
