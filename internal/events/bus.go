package events

import (
	"log/slog"
	"sync"
)

// Handler receives the payload of an emitted event.
type Handler func(payload any)

// Bus is a named-event publisher. The backend emits from its own goroutines
// while the UI subscribes, so all access is locked.
type Bus struct {
	mu       sync.RWMutex
	nextID   uint64
	handlers map[string]map[uint64]Handler
	logger   *slog.Logger
}

// NewBus creates an empty bus
func NewBus(logger *slog.Logger) *Bus {
	if logger == nil {
		logger = slog.Default()
	}
	return &Bus{
		handlers: make(map[string]map[uint64]Handler),
		logger:   logger,
	}
}

// Subscription is the handle returned by Subscribe. Unsubscribe releases it.
type Subscription struct {
	bus  *Bus
	name string
	id   uint64
	once sync.Once
}

// ID identifies the subscription. IDs are never reused within a bus.
func (s *Subscription) ID() uint64 {
	if s == nil {
		return 0
	}
	return s.id
}

// Unsubscribe detaches the handler. Safe to call more than once.
func (s *Subscription) Unsubscribe() {
	if s == nil {
		return
	}
	s.once.Do(func() {
		s.bus.remove(s.name, s.id)
	})
}

// Subscribe registers fn for events named name
func (b *Bus) Subscribe(name string, fn Handler) *Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	id := b.nextID
	if b.handlers[name] == nil {
		b.handlers[name] = make(map[uint64]Handler)
	}
	b.handlers[name][id] = fn
	b.logger.Debug("event subscribed", "event", name, "id", id)

	return &Subscription{bus: b, name: name, id: id}
}

// Emit delivers payload to every live handler for name.
// Handlers run on the caller's goroutine, outside the lock.
func (b *Bus) Emit(name string, payload any) {
	b.mu.RLock()
	fns := make([]Handler, 0, len(b.handlers[name]))
	for _, fn := range b.handlers[name] {
		fns = append(fns, fn)
	}
	b.mu.RUnlock()

	for _, fn := range fns {
		fn(payload)
	}
}

// Subscribers returns the number of live handlers for name
func (b *Bus) Subscribers(name string) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.handlers[name])
}

func (b *Bus) remove(name string, id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	subs := b.handlers[name]
	if subs == nil {
		return
	}
	delete(subs, id)
	if len(subs) == 0 {
		delete(b.handlers, name)
	}
	b.logger.Debug("event unsubscribed", "event", name, "id", id)
}
