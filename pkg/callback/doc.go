// Package callback provides the callback registry that lets VDOM nodes
// carry small, copyable handles to event callbacks instead of embedding
// closures or receiver pointers in the tree.
//
// # Core Types
//
// Registry is the concurrent lookup table. Register binds a receiver and
// a handler to a fresh key and returns a Registration, the owning handle
// whose Dispose removes the binding. A Registration produces Refs:
// comparable value handles that can be embedded in VDOM nodes and
// invoked by a renderer.
//
// # Lifecycle
//
//	reg := callback.NewRegistry()
//	registration := callback.Register(reg, receiver, (*Receiver).HandleClick)
//	ref := registration.ToRefThreadBound()
//	// ... embed ref in a vdom.EventBinding, render, dispatch ...
//	ref.Call(event)          // runs the handler against the receiver
//	registration.Dispose()   // after this, ref.Call is a safe no-op
//
// Disposing a Registration is synchronous; Refs derived from it become
// inert rather than dangling. Calling an inert Ref does nothing.
//
// # Reentrancy
//
// A handler runs while the registry's shared lock is held, so it cannot
// itself register or dispose registrations on the same registry without
// deadlocking. RunWhenUnlocked defers such work until the outermost
// dispatch on the calling goroutine returns; outside of dispatch it runs
// the work immediately.
//
// # Observability
//
// NewMetrics exposes registry saturation and activity as a
// prometheus.Collector. NewTracedDispatcher wraps dispatch in
// OpenTelemetry spans.
package callback
