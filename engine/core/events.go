package core

import "reflect"

// EventBus queues events per concrete event type. It is meant to be stored
// as a resource: writers take it exclusively, readers drain the queue of a
// single type. Events left unread are dropped when the host clears the bus at
// the end of the frame.
type EventBus struct {
	events map[reflect.Type][]any
}

func NewEventBus() EventBus {
	return EventBus{events: make(map[reflect.Type][]any)}
}

// WriteEvent appends an event of type T to the bus.
func WriteEvent[T any](bus *EventBus, event T) {
	if bus.events == nil {
		bus.events = make(map[reflect.Type][]any)
	}
	key := reflect.TypeFor[T]()
	bus.events[key] = append(bus.events[key], event)
}

// ReadEvents removes and returns all queued events of type T, oldest first.
func ReadEvents[T any](bus *EventBus) []T {
	key := reflect.TypeFor[T]()
	queued, ok := bus.events[key]
	if !ok {
		return nil
	}
	delete(bus.events, key)

	out := make([]T, 0, len(queued))
	for _, e := range queued {
		out = append(out, e.(T))
	}
	return out
}

// HasEvents reports whether at least one event of type T is queued.
func HasEvents[T any](bus *EventBus) bool {
	return len(bus.events[reflect.TypeFor[T]()]) > 0
}

// Len is the number of queued events across all types.
func (b *EventBus) Len() int {
	n := 0
	for _, q := range b.events {
		n += len(q)
	}
	return n
}

// Clear drops every queued event.
func (b *EventBus) Clear() {
	clear(b.events)
}

// System events written by the platform layer and the input state.

type KeyPressed struct {
	Key KeyCode
}

type KeyReleased struct {
	Key KeyCode
}

type ButtonPressed struct {
	Button Button
	X, Y   int32
}

type ButtonReleased struct {
	Button Button
	X, Y   int32
}

type MouseMoved struct {
	X, Y int32
}

type MouseWheel struct {
	Delta int8
}

// WindowResized is fired when the framebuffer size changes.
// A zero width or height means the window was minimized.
type WindowResized struct {
	Width  uint32
	Height uint32
}

type WindowCloseRequested struct{}
