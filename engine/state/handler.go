package state

import (
	"fmt"
	"reflect"
	"runtime"
	"strings"

	"github.com/spaghettifunk/ember/engine/core"
)

// MaxHandlerParams is the largest number of accessors a handler may take.
const MaxHandlerParams = 10

var paramType = reflect.TypeFor[Param]()

// Handler binds a function of capability accessors into a single Run
// operation. It is built once at registration and run many times.
type Handler struct {
	name   string
	fn     reflect.Value
	direct func()
	params []reflect.Type
}

// NewHandler validates fn and binds it. fn must be a func taking between
// zero and MaxHandlerParams accessors (Res[T] or ResMut[T]) and returning
// nothing. Anything else panics with KindInvalidHandler. Nothing is resolved
// until Run.
func NewHandler(fn any) *Handler {
	if h, ok := fn.(*Handler); ok {
		if h == nil {
			fail(KindInvalidHandler, "NewHandler", TypeKey{}, "", "nil handler")
		}
		return h
	}
	if fn == nil {
		fail(KindInvalidHandler, "NewHandler", TypeKey{}, "", "nil function")
	}

	v := reflect.ValueOf(fn)
	t := v.Type()
	if t.Kind() != reflect.Func {
		fail(KindInvalidHandler, "NewHandler", TypeKey{rt: t}, "", "expected a func, got %s", t)
	}
	if v.IsNil() {
		fail(KindInvalidHandler, "NewHandler", TypeKey{rt: t}, "", "nil function")
	}

	name := funcName(v)
	switch {
	case t.IsVariadic():
		fail(KindInvalidHandler, "NewHandler", TypeKey{rt: t}, name, "variadic handlers are not supported")
	case t.NumOut() != 0:
		fail(KindInvalidHandler, "NewHandler", TypeKey{rt: t}, name, "handlers must not return values")
	case t.NumIn() > MaxHandlerParams:
		fail(KindInvalidHandler, "NewHandler", TypeKey{rt: t}, name, "%d parameters, at most %d are supported", t.NumIn(), MaxHandlerParams)
	}

	h := &Handler{
		name:   name,
		fn:     v,
		params: make([]reflect.Type, t.NumIn()),
	}
	for i := 0; i < t.NumIn(); i++ {
		in := t.In(i)
		if !isAccessor(in) {
			fail(KindInvalidHandler, "NewHandler", TypeKey{rt: in}, name, "parameter %d is not a Res or ResMut accessor", i)
		}
		h.params[i] = in
	}
	if direct, ok := fn.(func()); ok {
		h.direct = direct
	}

	h.warnConflicts()
	return h
}

// warnConflicts logs accessor lists that are bound to fail at run time,
// e.g. ResMut[T] next to Res[T]. The failure itself still happens in Run.
func (h *Handler) warnConflicts() {
	seen := make(map[TypeKey]bool, len(h.params))
	for _, a := range h.Access() {
		excl, dup := seen[a.Key]
		if dup && (excl || a.Exclusive) {
			core.LogWarn("handler %s borrows %s exclusively alongside another borrow, it will fail when run", h.name, a.Key)
		}
		seen[a.Key] = excl || a.Exclusive
	}
}

// Access describes one declared accessor.
type Access struct {
	Key       TypeKey
	Exclusive bool
}

func (a Access) String() string {
	if a.Exclusive {
		return fmt.Sprintf("ResMut[%s]", a.Key)
	}
	return fmt.Sprintf("Res[%s]", a.Key)
}

// Access lists the declared accessors in parameter order.
func (h *Handler) Access() []Access {
	out := make([]Access, len(h.params))
	for i, pt := range h.params {
		key, excl := reflect.New(pt).Interface().(Param).access()
		out[i] = Access{Key: key, Exclusive: excl}
	}
	return out
}

func (h *Handler) Name() string {
	return h.name
}

// Run resolves every parameter against s in declared order, calls the
// function and releases all borrows, also when the function panics. If a
// parameter cannot be resolved the function is not called.
func (h *Handler) Run(s *State) {
	if h.direct != nil {
		h.direct()
		return
	}

	args := make([]reflect.Value, len(h.params))
	acquired := make([]Param, 0, len(h.params))
	defer func() {
		for i := len(acquired) - 1; i >= 0; i-- {
			acquired[i].Release()
		}
	}()

	for i, pt := range h.params {
		pv := reflect.New(pt)
		p := pv.Interface().(Param)
		p.acquire(s, h.name)
		acquired = append(acquired, p)
		args[i] = pv.Elem()
	}
	h.fn.Call(args)
}

var guardType = reflect.TypeFor[*guard]()

// isAccessor accepts Res[T] and ResMut[T] only. A struct embedding one
// implements Param through promotion but is not an accessor.
func isAccessor(t reflect.Type) bool {
	if t.Kind() != reflect.Struct || t.PkgPath() != paramType.PkgPath() {
		return false
	}
	if t.NumField() != 1 || t.Field(0).Type != guardType {
		return false
	}
	return reflect.PointerTo(t).Implements(paramType)
}

func funcName(v reflect.Value) string {
	f := runtime.FuncForPC(v.Pointer())
	if f == nil {
		return v.Type().String()
	}
	name := f.Name()
	if i := strings.LastIndexByte(name, '/'); i >= 0 {
		name = name[i+1:]
	}
	return strings.TrimSuffix(name, "-fm")
}
