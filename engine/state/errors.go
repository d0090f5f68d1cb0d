package state

import (
	"fmt"
	"strings"

	"github.com/spaghettifunk/ember/engine/core"
)

// Kind categorizes an access failure.
type Kind uint8

const (
	KindMissingResource Kind = iota + 1
	KindBorrowConflict
	KindTypeMismatch
	KindInvalidHandler
	KindReleasedGuard
)

func (k Kind) String() string {
	switch k {
	case KindMissingResource:
		return "missing resource"
	case KindBorrowConflict:
		return "borrow conflict"
	case KindTypeMismatch:
		return "type mismatch"
	case KindInvalidHandler:
		return "invalid handler"
	case KindReleasedGuard:
		return "released guard"
	default:
		return "unknown"
	}
}

// AccessError describes a fatal access failure. It is raised with panic,
// never returned: there is no sensible fallback for a resource that was
// never added. Recovered values unwrap to the core sentinel errors.
type AccessError struct {
	Kind    Kind
	Op      string
	Type    TypeKey
	Handler string
	Detail  string
}

func (e *AccessError) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(e.Op)
	b.WriteString("] ")
	b.WriteString(e.Kind.String())

	if !e.Type.IsZero() {
		b.WriteString(": ")
		b.WriteString(e.Type.String())
	}
	if e.Handler != "" {
		b.WriteString(" in ")
		b.WriteString(e.Handler)
	}
	if e.Detail != "" {
		b.WriteString(" - ")
		b.WriteString(e.Detail)
	}
	return b.String()
}

func (e *AccessError) Unwrap() error {
	switch e.Kind {
	case KindMissingResource:
		return core.ErrMissingResource
	case KindBorrowConflict:
		return core.ErrBorrowConflict
	case KindTypeMismatch:
		return core.ErrTypeMismatch
	case KindInvalidHandler:
		return core.ErrInvalidHandler
	case KindReleasedGuard:
		return core.ErrReleasedGuard
	default:
		return nil
	}
}

func fail(kind Kind, op string, key TypeKey, handler string, detail string, args ...any) {
	if len(args) > 0 {
		detail = fmt.Sprintf(detail, args...)
	}
	panic(&AccessError{
		Kind:    kind,
		Op:      op,
		Type:    key,
		Handler: handler,
		Detail:  detail,
	})
}
