package callback

// Safety says whether a Ref may be handed to other goroutines.
//
// The capability is decided when the Ref is created: ToRef produces a
// ThreadSafe Ref and requires the receiver type to implement Shared,
// ToRefThreadBound produces a ThreadBound Ref with no requirement on
// the receiver.
type Safety uint8

const (
	// ThreadBound marks a Ref that must only be called from goroutines
	// that are allowed to touch the receiver directly.
	ThreadBound Safety = iota + 1

	// ThreadSafe marks a Ref whose receiver is safe for concurrent
	// access, so the Ref may be called from any goroutine.
	ThreadSafe
)

// String returns the string representation of the Safety.
func (s Safety) String() string {
	switch s {
	case ThreadBound:
		return "ThreadBound"
	case ThreadSafe:
		return "ThreadSafe"
	default:
		return "Unknown"
	}
}

// Shared marks receiver types that are safe for concurrent access
// through the registry. Implementing it is the receiver author's
// promise that any goroutine may call its registered handlers at any
// time; the registry cannot verify this.
//
// The marker gates ToRef at runtime and SharedRef at compile time.
type Shared interface {
	// SharedCallbackReceiver is a marker method and is never called.
	SharedCallbackReceiver()
}
