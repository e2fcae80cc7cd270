package engine

// EventType identifies a lifecycle event emitted by the World.
type EventType int

const (
	// EventEntityAdded fires when a queued entity is promoted into
	// the canonical store during the flush.
	EventEntityAdded EventType = iota
	// EventEntityRemoved fires when a queued removal is applied
	// during the flush.
	EventEntityRemoved
)

// Event is a single lifecycle notification.
type Event struct {
	Type   EventType
	Entity *Entity
}

// Listener receives lifecycle events. Listeners for one type are
// invoked synchronously during the flush, in registration order.
type Listener func(Event)

// Subscribe registers a listener for the given event type.
func (w *World) Subscribe(t EventType, fn Listener) {
	if fn == nil {
		return
	}
	w.listeners[t] = append(w.listeners[t], fn)
}

func (w *World) emit(t EventType, e *Entity) {
	for _, fn := range w.listeners[t] {
		fn(Event{Type: t, Entity: e})
	}
}
