package assets

import "math"

// ID indexes a slot of an Assets store. Ids of removed values are handed
// out again, so an ID must not outlive the value it was returned for.
type ID uint32

const InvalidID ID = math.MaxUint32

type slot[T any] struct {
	value  T
	handle Handle[T]
	used   bool
}

// Assets is a slot store for loaded values of one type. Freed slots are
// reused, most recently freed first.
type Assets[T any] struct {
	slots   []slot[T]
	free    []ID
	handles map[Handle[T]]ID
}

func NewAssets[T any]() Assets[T] {
	return Assets[T]{handles: make(map[Handle[T]]ID)}
}

// Add stores value in a free slot, appending one if none is free.
func (a *Assets[T]) Add(value T) ID {
	if n := len(a.free); n > 0 {
		id := a.free[n-1]
		a.free = a.free[:n-1]
		a.slots[id] = slot[T]{value: value, used: true}
		return id
	}
	a.slots = append(a.slots, slot[T]{value: value, used: true})
	return ID(len(a.slots) - 1)
}

// Insert stores value under handle. A value already stored under handle is
// replaced in place and keeps its ID.
func (a *Assets[T]) Insert(handle Handle[T], value T) ID {
	if a.handles == nil {
		a.handles = make(map[Handle[T]]ID)
	}
	if id, ok := a.handles[handle]; ok {
		a.slots[id].value = value
		return id
	}
	id := a.Add(value)
	a.slots[id].handle = handle
	a.handles[handle] = id
	return id
}

func (a *Assets[T]) Get(id ID) (T, bool) {
	if int(id) >= len(a.slots) || !a.slots[id].used {
		var zero T
		return zero, false
	}
	return a.slots[id].value, true
}

// Lookup returns the value stored under handle.
func (a *Assets[T]) Lookup(handle Handle[T]) (T, bool) {
	id, ok := a.handles[handle]
	if !ok {
		var zero T
		return zero, false
	}
	return a.Get(id)
}

func (a *Assets[T]) ID(handle Handle[T]) (ID, bool) {
	id, ok := a.handles[handle]
	return id, ok
}

// Remove frees the slot of id. It reports whether the slot was in use.
func (a *Assets[T]) Remove(id ID) bool {
	if int(id) >= len(a.slots) || !a.slots[id].used {
		return false
	}
	if h := a.slots[id].handle; !h.IsZero() {
		delete(a.handles, h)
	}
	a.slots[id] = slot[T]{}
	a.free = append(a.free, id)
	return true
}

func (a *Assets[T]) Len() int {
	return len(a.slots) - len(a.free)
}

// Each calls fn for every stored value in ID order.
func (a *Assets[T]) Each(fn func(id ID, value T)) {
	for i, s := range a.slots {
		if s.used {
			fn(ID(i), s.value)
		}
	}
}
