package state

import "fmt"

// cell owns one boxed resource and its borrow state.
//
// value always holds a *T for the T named by key. shared counts live
// Res guards; exclusive is set while a ResMut guard is live. Both are never
// non-zero at the same time.
type cell struct {
	key       TypeKey
	value     any
	shared    int
	exclusive bool
	holder    string
}

func newCell[T any](v T) *cell {
	p := new(T)
	*p = v
	return &cell{key: KeyOf[T](), value: p}
}

func (c *cell) borrowed() bool {
	return c.exclusive || c.shared > 0
}

func (c *cell) describe() string {
	switch {
	case c.exclusive:
		return fmt.Sprintf("borrowed exclusively by %s", c.holder)
	case c.shared == 1:
		return fmt.Sprintf("borrowed shared by %s", c.holder)
	case c.shared > 1:
		return fmt.Sprintf("borrowed shared %d times", c.shared)
	default:
		return "free"
	}
}

func (c *cell) borrowShared(op, owner string) {
	if c.exclusive {
		fail(KindBorrowConflict, op, c.key, owner, "already %s", c.describe())
	}
	c.shared++
	c.holder = owner
}

func (c *cell) borrowExclusive(op, owner string) {
	if c.borrowed() {
		fail(KindBorrowConflict, op, c.key, owner, "already %s", c.describe())
	}
	c.exclusive = true
	c.holder = owner
}

func (c *cell) releaseShared() {
	if c.shared > 0 {
		c.shared--
	}
	if c.shared == 0 {
		c.holder = ""
	}
}

func (c *cell) releaseExclusive() {
	c.exclusive = false
	c.holder = ""
}

// downcast returns the typed pointer boxed in c, failing loudly if the box
// does not hold a *T.
func downcast[T any](c *cell, op, owner string) *T {
	p, ok := c.value.(*T)
	if !ok {
		fail(KindTypeMismatch, op, KeyOf[T](), owner, "cell holds %T", c.value)
	}
	return p
}
