package state

import "reflect"

// TypeKey is the identity of a static type, usable as a map key.
type TypeKey struct {
	rt reflect.Type
}

// KeyOf returns the key for T. Interface types are keys of their own, they
// are not resolved to the dynamic type of any value.
func KeyOf[T any]() TypeKey {
	return TypeKey{rt: reflect.TypeFor[T]()}
}

func (k TypeKey) Type() reflect.Type {
	return k.rt
}

func (k TypeKey) IsZero() bool {
	return k.rt == nil
}

func (k TypeKey) String() string {
	if k.rt == nil {
		return "<nil>"
	}
	return k.rt.String()
}

func compareKeys(a, b TypeKey) int {
	as, bs := a.String(), b.String()
	switch {
	case as < bs:
		return -1
	case as > bs:
		return 1
	default:
		return 0
	}
}
