package vdom

import "sync/atomic"

// remnantKeyCounter is the source of remnant key identities.
var remnantKeyCounter uint64

// RemnantKey is an identity token for a remnant site. Keys are
// compared by identity: two sites belong together only when they share
// the same *RemnantKey.
type RemnantKey struct {
	id uint64
}

// NewRemnantKey allocates a fresh identity token.
func NewRemnantKey() *RemnantKey {
	return &RemnantKey{id: atomic.AddUint64(&remnantKeyCounter, 1)}
}

// RemnantSite marks a subtree whose producer has gone away but whose
// rendered output may linger for one more pass, letting a differ fade
// it out instead of dropping it abruptly.
type RemnantSite struct {
	// Key ties successive renders of the same site together.
	Key *RemnantKey

	// Content is the subtree currently shown at this site.
	Content *Node

	// Callback produces the site's next state when the differ is ready
	// to advance it.
	Callback RemnantRenderCallback
}

// RemnantRenderCallback renders a remnant site's next state. It is
// called at most once per render pass; returning an error abandons the
// site.
type RemnantRenderCallback func() (RemnantState, error)

// RemnantState is the outcome of advancing a remnant site: either
// still bound to content (with an optional follow-up callback), or
// vanished.
type RemnantState struct {
	// Bound is the content to keep showing; nil when the site vanished.
	Bound *Node

	// Next advances the site again on a later pass. nil means this is
	// the final bound state.
	Next RemnantRenderCallback

	// Vanished reports that the site is gone and Bound must be ignored.
	Vanished bool
}

// equal compares sites by key identity and content. Callbacks carry no
// comparable identity and are ignored.
func (s *RemnantSite) equal(other *RemnantSite) bool {
	if s == nil || other == nil {
		return s == other
	}
	if s.Key != other.Key {
		return false
	}
	if s.Content == nil || other.Content == nil {
		return s.Content == other.Content
	}
	return s.Content.Equal(*other.Content)
}
