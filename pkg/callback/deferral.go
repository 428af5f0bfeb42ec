package callback

import "runtime"

// deferralQueue is the per-goroutine dispatch state. It exists only
// while the goroutine is inside Invoke and is touched only by that
// goroutine, so it needs no locking of its own.
type deferralQueue struct {
	// depth counts nested Invoke calls on this goroutine. The queue
	// drains when the outermost one returns.
	depth int

	// deferred holds continuations in FIFO order.
	deferred []func()
}

// goroutineID returns a unique identifier for the current goroutine,
// parsed from the runtime stack header ("goroutine <id> ..."). An
// implementation detail; not exposed.
func goroutineID() uint64 {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)

	var id uint64
	for i := len("goroutine "); i < n; i++ {
		if buf[i] == ' ' {
			break
		}
		id = id*10 + uint64(buf[i]-'0')
	}
	return id
}

// enterDispatch marks the current goroutine as dispatching, creating
// its queue on the outermost entry.
func (r *Registry) enterDispatch(gid uint64) *deferralQueue {
	if v, ok := r.dispatching.Load(gid); ok {
		q := v.(*deferralQueue)
		q.depth++
		return q
	}
	q := &deferralQueue{depth: 1}
	r.dispatching.Store(gid, q)
	return q
}

// leaveDispatch unwinds one dispatch level. On the outermost level it
// returns the goroutine to idle and, if the dispatch completed
// normally, drains the queued continuations in FIFO order, after the
// shared lock has been released, so they may freely register and
// dispose. If the dispatch is unwinding from a panic the queue is
// discarded instead; never run work scheduled by a handler that
// failed.
func (r *Registry) leaveDispatch(gid uint64, q *deferralQueue, completed *bool) {
	q.depth--
	if q.depth > 0 {
		return
	}
	r.dispatching.Delete(gid)
	if !*completed {
		q.deferred = nil
		return
	}
	for len(q.deferred) > 0 {
		f := q.deferred[0]
		q.deferred = q.deferred[1:]
		f()
	}
}

// RunWhenUnlocked runs f at the earliest moment the calling goroutine
// does not hold this registry's lock.
//
// Called outside of dispatch, that moment is now: f runs immediately,
// before RunWhenUnlocked returns. Called from inside a handler
// (directly or transitively), f is queued and runs after the outermost
// Invoke on this goroutine returns, in FIFO order relative to other
// deferred continuations. If that Invoke's handler panics, queued
// continuations are discarded and f never runs.
//
// This is the way for a handler to register or dispose callbacks on
// its own registry, which would otherwise deadlock on the lock the
// surrounding Invoke already holds.
func (r *Registry) RunWhenUnlocked(f func()) {
	if v, ok := r.dispatching.Load(goroutineID()); ok {
		q := v.(*deferralQueue)
		q.deferred = append(q.deferred, f)
		r.deferredTotal.Add(1)
		return
	}
	f()
}
