package event

import (
	"sync"

	"go.uber.org/zap"
)

// Listener receives events a Dispatcher emits
type Listener interface {
	HandleEvent(ev Event)
}

// ListenerFunc adapts a plain function to Listener
type ListenerFunc func(ev Event)

// HandleEvent calls f(ev)
func (f ListenerFunc) HandleEvent(ev Event) { f(ev) }

// ListenerID identifies a subscription for later removal
type ListenerID uint64

type subscription struct {
	id       ListenerID
	listener Listener
}

// Dispatcher is a synchronous publish/subscribe hub
//
// Architecture:
//   - Emit runs on the caller's goroutine
//   - Multiple listeners can subscribe to the same event type
//   - Listeners are invoked in subscription order
//   - The listener list is snapshotted per Emit, so listeners may subscribe or
//     unsubscribe (including themselves) while being dispatched
type Dispatcher struct {
	mu        sync.RWMutex
	listeners map[EventType][]subscription
	nextID    ListenerID
	log       *zap.Logger
}

// NewDispatcher creates an empty dispatcher
// A nil logger is replaced with a no-op logger
func NewDispatcher(log *zap.Logger) *Dispatcher {
	if log == nil {
		log = zap.NewNop()
	}
	return &Dispatcher{
		listeners: make(map[EventType][]subscription),
		log:       log,
	}
}

// Subscribe registers l for events of type t and returns its subscription id
// A nil listener is ignored and yields id 0
func (d *Dispatcher) Subscribe(t EventType, l Listener) ListenerID {
	if l == nil {
		return 0
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	d.nextID++
	id := d.nextID
	d.listeners[t] = append(d.listeners[t], subscription{id: id, listener: l})
	return id
}

// SubscribeName resolves a registered event name and subscribes l to it
// Returns false if the name is unknown
func (d *Dispatcher) SubscribeName(name string, l Listener) (ListenerID, bool) {
	t, ok := GetEventType(name)
	if !ok {
		d.log.Warn("subscribe to unknown event name", zap.String("name", name))
		return 0, false
	}
	return d.Subscribe(t, l), true
}

// Unsubscribe removes the subscription id from event type t
// Unknown ids are ignored
func (d *Dispatcher) Unsubscribe(t EventType, id ListenerID) {
	d.mu.Lock()
	defer d.mu.Unlock()

	subs := d.listeners[t]
	for i, s := range subs {
		if s.id != id {
			continue
		}
		// Copy-on-write keeps in-flight Emit snapshots intact
		next := make([]subscription, 0, len(subs)-1)
		next = append(next, subs[:i]...)
		next = append(next, subs[i+1:]...)
		if len(next) == 0 {
			delete(d.listeners, t)
		} else {
			d.listeners[t] = next
		}
		return
	}
}

// Emit delivers ev to every listener subscribed to ev.Type
func (d *Dispatcher) Emit(ev Event) {
	d.mu.RLock()
	subs := d.listeners[ev.Type]
	d.mu.RUnlock()

	for _, s := range subs {
		s.listener.HandleEvent(ev)
	}
}

// HasListeners returns true if any listener is subscribed to t
func (d *Dispatcher) HasListeners(t EventType) bool {
	return d.ListenerCount(t) > 0
}

// ListenerCount returns the number of listeners subscribed to t
func (d *Dispatcher) ListenerCount(t EventType) int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.listeners[t])
}
