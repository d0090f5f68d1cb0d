package state

import (
	"errors"
	"strings"
	"testing"

	"github.com/spaghettifunk/ember/engine/core"
)

func TestHandlerResolvesInDeclaredOrder(t *testing.T) {
	s := New()
	Add(s, 2)
	Add(s, "x")

	var got []string
	h := NewHandler(func(n ResMut[int], str Res[string]) {
		*n.Get() *= 10
		got = append(got, str.Get())
	})
	h.Run(s)
	h.Run(s)

	r := Fetch[Res[int]](s)
	defer r.Release()
	if r.Get() != 200 {
		t.Fatalf("int = %d, want 200", r.Get())
	}
	if len(got) != 2 {
		t.Fatalf("handler ran %d times, want 2", len(got))
	}

	access := h.Access()
	if len(access) != 2 || access[0].String() != "ResMut[int]" || access[1].String() != "Res[string]" {
		t.Fatalf("access = %v", access)
	}
}

func TestHandlerReleasesAfterCall(t *testing.T) {
	s := New()
	Add(s, 0)

	var kept ResMut[int]
	NewHandler(func(n ResMut[int]) {
		kept = n
	}).Run(s)

	// the borrow ended with the call, so a fresh exclusive fetch works
	w := Fetch[ResMut[int]](s)
	w.Release()

	mustPanicWith(t, KindReleasedGuard, func() {
		kept.Set(1)
	})
}

func TestHandlerSharedTwiceSucceeds(t *testing.T) {
	s := New()
	Add(s, "shared")

	ran := false
	NewHandler(func(a Res[string], b Res[string]) {
		ran = a.Get() == b.Get()
	}).Run(s)
	if !ran {
		t.Fatal("two shared borrows of the same type must both succeed")
	}
}

func TestHandlerConflictsAbortBeforeBody(t *testing.T) {
	tests := []struct {
		name string
		fn   any
	}{
		{name: "mut then shared", fn: func(ResMut[int], Res[int]) {}},
		{name: "shared then mut", fn: func(Res[int], ResMut[int]) {}},
		{name: "mut twice", fn: func(ResMut[int], ResMut[int]) {}},
		{name: "mut with others", fn: func(Res[string], ResMut[int], Res[int]) {}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New()
			Add(s, 1)
			Add(s, "a")

			h := NewHandler(tt.fn)
			err := mustPanicWith(t, KindBorrowConflict, func() {
				h.Run(s)
			})
			if !errors.Is(err, core.ErrBorrowConflict) {
				t.Fatalf("error should wrap ErrBorrowConflict: %v", err)
			}

			// all borrows taken before the failure were released
			w := Fetch[ResMut[int]](s)
			w.Release()
			ws := Fetch[ResMut[string]](s)
			ws.Release()
		})
	}
}

func TestHandlerMissingResourceSkipsBody(t *testing.T) {
	s := New()
	Add(s, 1)

	ran := false
	h := NewHandler(func(n ResMut[int], missing Res[position]) {
		ran = true
	})
	err := mustPanicWith(t, KindMissingResource, func() {
		h.Run(s)
	})
	if ran {
		t.Fatal("body must not run when a resource is missing")
	}
	if !strings.Contains(err.Error(), "state.position") || !strings.Contains(err.Error(), h.Name()) {
		t.Fatalf("error should name the type and handler: %v", err)
	}

	w := Fetch[ResMut[int]](s)
	w.Release()
}

func TestHandlerReleasesWhenBodyPanics(t *testing.T) {
	s := New()
	Add(s, 1)

	func() {
		defer func() { _ = recover() }()
		NewHandler(func(n ResMut[int]) {
			panic("boom")
		}).Run(s)
	}()

	w := Fetch[ResMut[int]](s)
	w.Release()
}

type embedsRes struct {
	Res[int]
}

type embedsResMut struct {
	ResMut[int]
}

func TestNewHandlerValidation(t *testing.T) {
	type notAccessor struct{}
	tests := []struct {
		name string
		fn   any
	}{
		{name: "nil", fn: nil},
		{name: "not a func", fn: 42},
		{name: "nil func", fn: (func())(nil)},
		{name: "returns value", fn: func() error { return nil }},
		{name: "plain param", fn: func(int) {}},
		{name: "pointer accessor", fn: func(*Res[int]) {}},
		{name: "struct param", fn: func(notAccessor) {}},
		{name: "embedded Res", fn: func(embedsRes) {}},
		{name: "embedded ResMut", fn: func(Res[string], embedsResMut) {}},
		{name: "variadic", fn: func(...Res[int]) {}},
		{name: "too many", fn: func(Res[int], Res[int], Res[int], Res[int], Res[int], Res[int], Res[int], Res[int], Res[int], Res[int], Res[int]) {}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := mustPanicWith(t, KindInvalidHandler, func() {
				NewHandler(tt.fn)
			})
			if !errors.Is(err, core.ErrInvalidHandler) {
				t.Fatalf("error should wrap ErrInvalidHandler: %v", err)
			}
		})
	}
}

func TestNewHandlerMaxArity(t *testing.T) {
	s := New()
	Add(s, 1)

	calls := 0
	NewHandler(func(a, b, c, d, e, f, g, h, i, j Res[int]) {
		calls += a.Get() + b.Get() + c.Get() + d.Get() + e.Get() + f.Get() + g.Get() + h.Get() + i.Get() + j.Get()
	}).Run(s)
	if calls != MaxHandlerParams {
		t.Fatalf("sum = %d, want %d", calls, MaxHandlerParams)
	}
}

func TestNewHandlerReusesHandler(t *testing.T) {
	h := NewHandler(func() {})
	if NewHandler(h) != h {
		t.Fatal("binding a *Handler should return it unchanged")
	}
}

func namedHandler(Res[int]) {}

func TestHandlerName(t *testing.T) {
	h := NewHandler(namedHandler)
	if h.Name() != "state.namedHandler" {
		t.Fatalf("Name = %q", h.Name())
	}
}
