package state

import (
	"reflect"

	"golang.org/x/exp/slices"
)

// State is a container of singleton resources keyed by their static type.
//
// The zero value is an empty State ready to use.
type State struct {
	resources map[TypeKey]*cell
}

func New() *State {
	return &State{resources: make(map[TypeKey]*cell)}
}

func (s *State) init() {
	if s.resources == nil {
		s.resources = make(map[TypeKey]*cell)
	}
}

// Add inserts value as the single resource of type T, dropping any previous
// one. Replacing a resource that is currently borrowed panics.
func Add[T any](s *State, value T) {
	s.init()
	key := KeyOf[T]()
	if prev, ok := s.resources[key]; ok && prev.borrowed() {
		fail(KindBorrowConflict, "Add", key, "", "cannot replace, %s", prev.describe())
	}
	s.resources[key] = newCell(value)
}

// Has reports whether a resource of type T exists. It does not borrow. A
// nil State has no resources.
func Has[T any](s *State) bool {
	if s == nil {
		return false
	}
	_, ok := s.resources[KeyOf[T]()]
	return ok
}

// Remove drops the resource of type T and reports whether it existed.
func Remove[T any](s *State) bool {
	if s == nil {
		return false
	}
	key := KeyOf[T]()
	c, ok := s.resources[key]
	if !ok {
		return false
	}
	if c.borrowed() {
		fail(KindBorrowConflict, "Remove", key, "", "cannot remove, %s", c.describe())
	}
	delete(s.resources, key)
	return true
}

// Fetch resolves a capability accessor directly against s:
//
//	counter := state.Fetch[state.ResMut[int]](s)
//	defer counter.Release()
//
// The caller owns the returned guard and must release it. Fetch panics if
// the resource is missing or the borrow conflicts with a live one.
func Fetch[C any, P interface {
	*C
	Param
}](s *State) C {
	var c C
	P(&c).acquire(s, "Fetch")
	return c
}

func (s *State) lookup(key TypeKey, op, owner string) *cell {
	if s == nil {
		fail(KindMissingResource, op, key, owner, "nil state")
	}
	c, ok := s.resources[key]
	if !ok {
		fail(KindMissingResource, op, key, owner, "no resource of this type was added")
	}
	return c
}

// Len is the number of resources in the state.
func (s *State) Len() int {
	if s == nil {
		return 0
	}
	return len(s.resources)
}

// Keys lists the resource types held, sorted by type name.
func (s *State) Keys() []TypeKey {
	if s == nil {
		return nil
	}
	keys := make([]TypeKey, 0, len(s.resources))
	for k := range s.resources {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, compareKeys)
	return keys
}

// Merge moves every resource of other into s, replacing resources of the
// same type. other is empty afterwards.
func (s *State) Merge(other *State) {
	if other == nil || other == s {
		return
	}
	s.init()
	for key, c := range other.resources {
		if c.borrowed() {
			fail(KindBorrowConflict, "Merge", key, "", "source resource is %s", c.describe())
		}
		if prev, ok := s.resources[key]; ok && prev.borrowed() {
			fail(KindBorrowConflict, "Merge", key, "", "cannot replace, %s", prev.describe())
		}
	}
	for _, e := range other.Drain() {
		s.resources[e.Key] = e.cell
	}
}

// Drain empties the state, handing ownership of every resource to the
// caller. Entries can be put back, in this or another State, with Insert.
func (s *State) Drain() []Entry {
	entries := make([]Entry, 0, len(s.resources))
	for _, key := range s.Keys() {
		c := s.resources[key]
		if c.borrowed() {
			fail(KindBorrowConflict, "Drain", key, "", "resource is %s", c.describe())
		}
		entries = append(entries, Entry{Key: key, cell: c})
	}
	clear(s.resources)
	return entries
}

// Insert adds a drained entry, replacing any resource of the same type.
func (s *State) Insert(e Entry) {
	if e.cell == nil {
		return
	}
	s.init()
	if prev, ok := s.resources[e.Key]; ok && prev.borrowed() {
		fail(KindBorrowConflict, "Insert", e.Key, "", "cannot replace, %s", prev.describe())
	}
	s.resources[e.Key] = e.cell
}

// Entry is one resource taken out of a State.
type Entry struct {
	Key  TypeKey
	cell *cell
}

// Value returns the resource held by the entry as its static type T boxed
// in an interface, or nil for an empty entry.
func (e Entry) Value() any {
	if e.cell == nil {
		return nil
	}
	return reflect.ValueOf(e.cell.value).Elem().Interface()
}
