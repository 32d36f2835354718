package actions

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"runtime/debug"
	"slices"
	"sync"
)

// Handler receives dispatched events.
type Handler func(Event)

// Handlers is the two-callback form used by UI consumers.
// Either callback may be nil.
type Handlers struct {
	OnStart func()
	OnStop  func()
}

func (h Handlers) handle(e Event) {
	switch e.Action {
	case StartRecording:
		if h.OnStart != nil {
			h.OnStart()
		}
	case StopRecording:
		if h.OnStop != nil {
			h.OnStop()
		}
	}
}

// Bus is a synchronous one-to-many dispatcher. The zero value is not usable;
// construct with NewBus.
type Bus struct {
	mu     sync.RWMutex
	subs   map[uint64]Handler
	nextID uint64
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{subs: make(map[uint64]Handler)}
}

// Subscription is a live registration on a Bus.
type Subscription struct {
	id        uint64
	bus       *Bus
	once      sync.Once
	stopAfter func() bool
}

// Close revokes the subscription. Safe to call more than once and on nil.
func (s *Subscription) Close() {
	if s == nil {
		return
	}
	s.once.Do(func() {
		if s.stopAfter != nil {
			s.stopAfter()
		}
		s.bus.remove(s.id)
	})
}

// Subscribe registers h until the returned subscription is closed.
func (b *Bus) Subscribe(h Handler) *Subscription {
	if h == nil {
		h = func(Event) {}
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	id := b.nextID
	b.subs[id] = h
	return &Subscription{id: id, bus: b}
}

// SubscribeContext registers h and revokes it automatically once ctx is done.
func (b *Bus) SubscribeContext(ctx context.Context, h Handler) *Subscription {
	sub := b.Subscribe(h)
	if ctx == nil {
		return sub
	}
	sub.stopAfter = context.AfterFunc(ctx, func() { sub.bus.remove(sub.id) })
	return sub
}

// Listen subscribes start/stop callbacks for the lifetime of ctx.
func (b *Bus) Listen(ctx context.Context, handlers Handlers) *Subscription {
	return b.SubscribeContext(ctx, handlers.handle)
}

// Publish delivers e to every current subscriber in subscription order and
// returns the number of handlers invoked. Handlers run on the caller's
// goroutine, outside the bus lock.
func (b *Bus) Publish(e Event) int {
	b.mu.RLock()
	ids := make([]uint64, 0, len(b.subs))
	for id := range b.subs {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	handlers := make([]Handler, 0, len(ids))
	for _, id := range ids {
		handlers = append(handlers, b.subs[id])
	}
	b.mu.RUnlock()

	if len(handlers) == 0 {
		slog.Debug("[EVENT] action dropped, no subscribers", "action", e.Action, "shortcut", e.Shortcut)
		return 0
	}
	for _, h := range handlers {
		deliver(h, e)
	}
	return len(handlers)
}

// Len returns the current number of subscribers.
func (b *Bus) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}

func (b *Bus) remove(id uint64) {
	b.mu.Lock()
	delete(b.subs, id)
	b.mu.Unlock()
}

func deliver(h Handler, e Event) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("[EVENT] action handler panicked",
				"action", e.Action,
				"panic", fmt.Sprintf("%v", r),
			)
			fmt.Fprintf(os.Stderr, "[EVENT] handler panic stack:\n%s\n", debug.Stack())
		}
	}()
	h(e)
}
