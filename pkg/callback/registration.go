package callback

import "fmt"

// noCopy triggers the vet copylocks check when a Registration is
// copied by value.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

// Registration owns one live registry entry. It is created by
// Register, held by the component that owns the receiver, and disposed
// exactly once when that component tears down.
//
// A Registration must not be copied.
type Registration[R any, T any] struct {
	noCopy noCopy

	registry *Registry
	key      Key
	disposed bool
}

// Register binds receiver and handler to a fresh key in r and returns
// the owning Registration.
//
// receiver is usually a pointer to the component exposing the
// callback; the registry holds it strongly until the Registration is
// disposed, so the handler's receiver argument is always the value
// registered here. handler runs on whatever goroutine invokes the
// callback; it must only be reached from other goroutines through a
// ThreadSafe Ref, which requires R to implement Shared.
//
// Register takes the registry's exclusive lock and must not be called
// from inside a handler running on the same registry; defer it with
// RunWhenUnlocked instead.
func Register[R any, T any](r *Registry, receiver R, handler func(R, T)) *Registration[R, T] {
	invoke := func(receiver, handler, parameter any) {
		handler.(func(R, T))(receiver.(R), parameter.(T))
	}
	key := r.register(receiver, invoke, handler)
	return &Registration[R, T]{
		registry: r,
		key:      key,
	}
}

// Dispose removes the entry synchronously, after which every Ref
// derived from this Registration is inert. It may block briefly on the
// registry's exclusive lock and must not be called from inside a
// handler running on the same registry; defer it with RunWhenUnlocked
// instead.
//
// Disposing twice panics: it means the owning component's teardown ran
// twice. Disposing after ForceClear panics for the same reason, the
// entry this Registration owns no longer exists.
func (c *Registration[R, T]) Dispose() {
	if c.disposed {
		panic("lignin: callback registration disposed twice")
	}
	c.disposed = true
	c.registry.deregister(c.key)
}

// ToRef returns a ThreadSafe Ref for this registration.
//
// It panics unless R implements Shared, because a ThreadSafe Ref lets
// any goroutine reach the receiver. Use SharedRef to get the same
// check at compile time, or ToRefThreadBound when the receiver is not
// shareable.
func (c *Registration[R, T]) ToRef() Ref[T] {
	var zero R
	if _, ok := any(zero).(Shared); !ok {
		panic(fmt.Sprintf("lignin: receiver type %T does not implement callback.Shared", zero))
	}
	return Ref[T]{
		registry: c.registry,
		key:      c.key,
		safety:   ThreadSafe,
	}
}

// ToRefThreadBound returns a ThreadBound Ref for this registration. It
// is available for any receiver type; the Ref must only be called from
// goroutines that are allowed to touch the receiver directly.
func (c *Registration[R, T]) ToRefThreadBound() Ref[T] {
	return Ref[T]{
		registry: c.registry,
		key:      c.key,
		safety:   ThreadBound,
	}
}

// SharedRef is ToRef with the Shared requirement moved to compile
// time: it only instantiates for receiver types that implement Shared.
func SharedRef[R Shared, T any](c *Registration[R, T]) Ref[T] {
	return Ref[T]{
		registry: c.registry,
		key:      c.key,
		safety:   ThreadSafe,
	}
}
