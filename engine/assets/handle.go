package assets

import (
	"reflect"

	"github.com/google/uuid"
)

var handleNamespace = uuid.MustParse("6f0c9a52-3f3e-4c1b-9a57-1d6c2f8be140")

// Handle names an asset of type T. Handles built from the same type and
// label are equal, in this process and across runs.
type Handle[T any] struct {
	id uuid.UUID
}

func NewHandle[T any](label string) Handle[T] {
	name := reflect.TypeFor[T]().String() + "/" + label
	return Handle[T]{id: uuid.NewSHA1(handleNamespace, []byte(name))}
}

// RandomHandle returns a handle no label maps to.
func RandomHandle[T any]() Handle[T] {
	return Handle[T]{id: uuid.New()}
}

func (h Handle[T]) UUID() uuid.UUID {
	return h.id
}

func (h Handle[T]) IsZero() bool {
	return h.id == uuid.Nil
}

func (h Handle[T]) String() string {
	return h.id.String()
}
