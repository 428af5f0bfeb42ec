// Package vdom provides the virtual DOM data types a rendering
// framework diffs against a real DOM.
//
// # Core Types
//
// Node is the fundamental building block, a flat struct discriminated
// by Kind: comments, text, elements, node references, multi-node
// groups, and remnant sites. Element carries attributes, content, and
// event bindings; an EventBinding holds a name and a callback.Ref, not
// a closure, so nodes stay small, copyable values.
//
// # Identity
//
// Equal compares trees structurally; Hash produces a structural hash
// consistent with Equal. Event bindings compare by name and callback
// identity (the ref's key), so a rebound handler changes a tree's
// identity even when the new handler is behaviorally identical. A
// differ relies on exactly that.
//
// # Lifecycle helpers
//
// Guard pairs a shared Node with an at-most-once teardown callback for
// producers that cache or share subtrees. RemnantSite marks a subtree
// that may outlive its producer for one more render pass.
//
// Diffing, patching, and DOM materialization live in host renderers,
// not here.
package vdom
