package state

import (
	"errors"
	"testing"
)

// mustPanicWith runs fn and fails the test unless it panics with an
// *AccessError of the given kind.
func mustPanicWith(t *testing.T, kind Kind, fn func()) *AccessError {
	t.Helper()

	var got *AccessError
	func() {
		defer func() {
			r := recover()
			if r == nil {
				return
			}
			err, ok := r.(error)
			if !ok || !errors.As(err, &got) {
				t.Fatalf("panic value %v is not an *AccessError", r)
			}
		}()
		fn()
	}()

	if got == nil {
		t.Fatalf("expected a %s panic, got none", kind)
	}
	if got.Kind != kind {
		t.Fatalf("expected a %s panic, got %v", kind, got)
	}
	return got
}
