package callback

import "fmt"

// Ref is a small, copyable handle denoting a registration by key
// without owning it. Refs are comparable with == and usable as map
// keys; identity is the key, deliberately ignoring the receiver and
// handler behind it, so two Refs from distinct registrations are
// always distinct even when they were built from identical values.
// VDOM diffing relies on this to tell "this event binding changed"
// from "this event binding is the same as before".
//
// The safety capability is part of identity too: a ThreadSafe and a
// ThreadBound Ref to the same registration compare unequal, just as
// the capability would make them distinct types in a language that can
// express that. Within one capability, identity is the key alone;
// Compare ignores the capability entirely.
//
// Any number of Refs may be derived from one Registration; all stay
// valid until it is disposed, after which calling any of them is a
// defined no-op. The zero Ref is inert.
type Ref[T any] struct {
	registry *Registry
	key      Key
	safety   Safety
}

// Call invokes the registered handler with the registered receiver and
// parameter, or does nothing if the owning Registration was already
// disposed.
//
// The handler runs synchronously on the calling goroutine, under the
// registry's shared lock. A ThreadBound Ref must only be called from
// goroutines allowed to touch its receiver.
func (ref Ref[T]) Call(parameter T) {
	if ref.registry == nil {
		return
	}
	ref.registry.Invoke(ref.key, parameter)
}

// Key returns the registry key this Ref denotes. Zero for the zero Ref.
func (ref Ref[T]) Key() Key {
	return ref.key
}

// Safety reports the capability this Ref was created with.
func (ref Ref[T]) Safety() Safety {
	return ref.safety
}

// Compare orders Refs by key, returning -1, 0, or +1. Ordering, like
// equality, ignores the receiver and handler.
func (ref Ref[T]) Compare(other Ref[T]) int {
	switch {
	case ref.key < other.key:
		return -1
	case ref.key > other.key:
		return 1
	default:
		return 0
	}
}

// String returns a debug representation of the Ref.
func (ref Ref[T]) String() string {
	return fmt.Sprintf("Ref{key: %d, safety: %s}", uint64(ref.key), ref.safety)
}
