package vdom

import "sync"

// Guard pairs a shared Node with a teardown callback, for producers
// that cache subtrees or act as containers for components that do.
//
// Consumers may delay dropping a Guard arbitrarily, so producers must
// not rely on prompt teardown for correctness. Consumers should not
// leak one, since the producer may leak memory in that case.
type Guard struct {
	node Node

	dropOnce sync.Once
	drop     func()
}

// NewGuard creates a guard for node. drop runs at most once, when the
// guard is dropped; it may be nil.
func NewGuard(node Node, drop func()) *Guard {
	return &Guard{node: node, drop: drop}
}

// Node returns the guarded node. It must not be used after Drop.
func (g *Guard) Node() Node {
	return g.node
}

// Drop releases the guarded node, running the teardown callback on the
// first call. Further calls do nothing.
func (g *Guard) Drop() {
	g.dropOnce.Do(func() {
		if g.drop != nil {
			g.drop()
		}
	})
}
