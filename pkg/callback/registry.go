package callback

import (
	"errors"
	"log/slog"
	"math"
	"sync"
	"sync/atomic"
)

// Key identifies one registered callback. Keys are allocated
// monotonically, are never zero for a live entry, and are never reused
// during normal operation. The zero Key is reserved as invalid.
type Key uint64

// ErrRegistrationsLive is returned by Reset while registrations are
// still live.
var ErrRegistrationsLive = errors.New("lignin: registrations still live")

// entry is one registry table row. The receiver is held strongly for
// the entry's lifetime, so the registry acts as the arena that keeps
// receivers reachable while handlers can still fire.
type entry struct {
	// receiver is the value the registration was created with,
	// typically a pointer to the owning component.
	receiver any

	// invoke restores the erased types and runs handler against
	// receiver with parameter.
	invoke func(receiver, handler, parameter any)

	// handler is the func(R, T) the registration was created with.
	handler any
}

// Registry is the concurrent table mapping keys to callback entries.
//
// Invoke takes shared access, so dispatch from multiple goroutines does
// not serialize against itself, only against registration churn.
// Register and Dispose take exclusive access.
//
// Construct one with NewRegistry and pass it to every component; a
// Registry has no teardown and is expected to live as long as the
// host application.
type Registry struct {
	mu       sync.RWMutex
	keyCount uint64
	entries  map[Key]entry

	// dispatching holds the per-goroutine deferral queue while a
	// dispatch is in progress on that goroutine. See deferral.go.
	dispatching sync.Map // goroutine id (uint64) -> *deferralQueue

	logger *slog.Logger

	// Cumulative counters surfaced by Metrics.
	registeredTotal   atomic.Uint64
	deregisteredTotal atomic.Uint64
	invokedTotal      atomic.Uint64
	missedTotal       atomic.Uint64
	deferredTotal     atomic.Uint64
}

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the logger used for registry lifecycle events.
// Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(r *Registry) {
		r.logger = logger
	}
}

// NewRegistry creates an empty callback registry.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		entries: make(map[Key]entry),
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// register allocates a key and inserts an entry under exclusive access.
// Key-space exhaustion is fatal: continuing would risk key collision.
func (r *Registry) register(receiver any, invoke func(receiver, handler, parameter any), handler any) Key {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.keyCount == math.MaxUint64 {
		panic("lignin: callback registry keys exhausted")
	}
	r.keyCount++
	key := Key(r.keyCount)
	if _, exists := r.entries[key]; exists {
		panic("lignin: callback registry key collision")
	}
	r.entries[key] = entry{
		receiver: receiver,
		invoke:   invoke,
		handler:  handler,
	}
	r.registeredTotal.Add(1)
	r.logger.Debug("callback registered", "key", uint64(key), "live", len(r.entries))
	return key
}

// deregister removes the entry for key under exclusive access. The
// entry must exist: a missing entry means a Registration's removal
// logic ran twice or the registry was force-cleared underneath it,
// which is a lifecycle bug, not a recoverable condition.
func (r *Registry) deregister(key Key) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.entries[key]; !ok {
		panic("lignin: deregistered callback that was not registered")
	}
	delete(r.entries, key)
	r.deregisteredTotal.Add(1)
	r.logger.Debug("callback deregistered", "key", uint64(key), "live", len(r.entries))
}

// Invoke looks up key under shared access and runs the stored handler
// against the stored receiver with parameter. A missing key is a
// silent no-op: the owning Registration was already disposed, which is
// an expected race during teardown, not an error.
//
// The shared lock is held for the whole handler run. A handler that
// needs to register or dispose callbacks on this registry must go
// through RunWhenUnlocked. If the handler panics, any continuations it
// queued are discarded and the panic propagates to the caller
// unchanged.
//
// parameter must match the registered handler's parameter type;
// Ref.Call enforces this statically. A mismatch through this untyped
// entry point panics.
func (r *Registry) Invoke(key Key, parameter any) {
	gid := goroutineID()
	q := r.enterDispatch(gid)
	completed := false
	defer r.leaveDispatch(gid, q, &completed)

	if q.depth > 1 {
		// Nested invoke: the outer invoke on this goroutine still holds
		// the shared lock, which covers this lookup too. Re-acquiring it
		// here would stall behind any writer queued in the meantime.
		r.dispatch(key, parameter)
	} else {
		func() {
			r.mu.RLock()
			defer r.mu.RUnlock()
			r.dispatch(key, parameter)
		}()
	}
	completed = true
}

// dispatch resolves and runs one entry. The caller must hold the
// shared lock, directly or through an enclosing Invoke on the same
// goroutine.
func (r *Registry) dispatch(key Key, parameter any) {
	e, ok := r.entries[key]
	if !ok {
		r.missedTotal.Add(1)
		return
	}
	r.invokedTotal.Add(1)
	e.invoke(e.receiver, e.handler, parameter)
}

// Len reports the number of live entries.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

// Exhaustion indicates how much of the key space has been consumed, on
// a linear scale from 0 (none or very little) to 255 (almost complete
// or complete). It is the high-order byte of the key counter and is
// meant for operational monitoring, not correctness.
func (r *Registry) Exhaustion() uint8 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return uint8(r.keyCount >> 56)
}

// Reset rewinds the key counter to zero if no registrations are live,
// so that a controlled restart starts over with the original key
// sequence. If registrations are still live it lowers the counter only
// to the highest live key, the minimum that guarantees no future
// collision, and returns ErrRegistrationsLive.
func (r *Registry) Reset() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.entries) == 0 {
		r.keyCount = 0
		return nil
	}

	var highest Key
	for key := range r.entries {
		if key > highest {
			highest = key
		}
	}
	r.keyCount = uint64(highest)
	r.logger.Warn("callback registry reset refused", "live", len(r.entries), "highest_key", uint64(highest))
	return ErrRegistrationsLive
}

// ForceClear unconditionally empties the table and rewinds the key
// counter to zero.
//
// This invalidates every outstanding Registration: disposing one
// afterwards panics, since its entry no longer exists under a now
// reusable key space. Callers must guarantee that no live Registration
// will ever be disposed after this call. Not part of normal operation.
func (r *Registry) ForceClear() {
	r.mu.Lock()
	defer r.mu.Unlock()

	cleared := len(r.entries)
	r.entries = make(map[Key]entry)
	r.keyCount = 0
	r.logger.Warn("callback registry force-cleared", "cleared", cleared)
}
