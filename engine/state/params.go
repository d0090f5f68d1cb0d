package state

// Param is implemented by the capability accessors Res and ResMut. The set
// is closed: handler parameters of any other type are rejected when the
// handler is built.
type Param interface {
	acquire(s *State, owner string)
	access() (TypeKey, bool)
	Release()
}

// guard is the borrow backing one accessor. It is shared by every copy of
// the accessor so a copy retained past its handler call sees the release.
type guard struct {
	cell      *cell
	exclusive bool
	owner     string
	released  bool
}

func (g *guard) check(op string, key TypeKey) {
	if g == nil {
		fail(KindReleasedGuard, op, key, "", "accessor was never resolved")
	}
	if g.released {
		fail(KindReleasedGuard, op, key, g.owner, "accessor used after its borrow ended")
	}
}

func (g *guard) release() {
	if g == nil || g.released {
		return
	}
	g.released = true
	if g.exclusive {
		g.cell.releaseExclusive()
	} else {
		g.cell.releaseShared()
	}
}

// Res is a shared, read-only borrow of the resource of type T for the
// duration of one handler call.
type Res[T any] struct {
	g *guard
}

func (r *Res[T]) acquire(s *State, owner string) {
	key := KeyOf[T]()
	c := s.lookup(key, "Res", owner)
	c.borrowShared("Res", owner)
	r.g = &guard{cell: c, owner: owner}
}

func (r Res[T]) access() (TypeKey, bool) {
	return KeyOf[T](), false
}

// Get returns a copy of the resource. Use Ref for large resources or to
// call pointer methods.
func (r Res[T]) Get() T {
	return *r.Ref()
}

// Ref returns a pointer to the stored resource without copying it. The
// borrow is shared: the pointee must not be modified, and the pointer must
// not be kept after the handler returns.
func (r Res[T]) Ref() *T {
	r.g.check("Res.Ref", KeyOf[T]())
	return downcast[T](r.g.cell, "Res.Ref", r.g.owner)
}

// Release ends the borrow. Handlers never need to call it.
func (r Res[T]) Release() {
	r.g.release()
}

// ResMut is an exclusive, read-write borrow of the resource of type T for
// the duration of one handler call.
type ResMut[T any] struct {
	g *guard
}

func (r *ResMut[T]) acquire(s *State, owner string) {
	key := KeyOf[T]()
	c := s.lookup(key, "ResMut", owner)
	c.borrowExclusive("ResMut", owner)
	r.g = &guard{cell: c, exclusive: true, owner: owner}
}

func (r ResMut[T]) access() (TypeKey, bool) {
	return KeyOf[T](), true
}

// Get returns a pointer to the stored resource. The pointer must not be
// kept after the handler returns.
func (r ResMut[T]) Get() *T {
	r.g.check("ResMut.Get", KeyOf[T]())
	return downcast[T](r.g.cell, "ResMut.Get", r.g.owner)
}

// Set replaces the stored resource in place.
func (r ResMut[T]) Set(value T) {
	*r.Get() = value
}

// Release ends the borrow. Handlers never need to call it.
func (r ResMut[T]) Release() {
	r.g.release()
}
