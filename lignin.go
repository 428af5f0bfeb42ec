// Package lignin provides virtual DOM data types and the callback
// registry that lets those nodes carry lightweight handles to event
// callbacks.
//
// The tree types live in pkg/vdom, the registry in pkg/callback, and
// the erasable web-platform parameter stand-ins in pkg/web. This
// package re-exports the common names so application code can read
// naturally:
//
//	node := lignin.TextNode("hello")
//
// Rendering frameworks diff these trees and dispatch events through
// callback refs; diffing and DOM materialization are renderer
// concerns and are not part of this module.
package lignin

import (
	"github.com/Tamschi/lignin/pkg/callback"
	"github.com/Tamschi/lignin/pkg/vdom"
)

// Tree types, re-exported from pkg/vdom.
type (
	Kind         = vdom.Kind
	Node         = vdom.Node
	Element      = vdom.Element
	Attribute    = vdom.Attribute
	EventBinding = vdom.EventBinding
	RemnantSite  = vdom.RemnantSite
	RemnantKey   = vdom.RemnantKey
	Guard        = vdom.Guard
)

// Node kinds, re-exported from pkg/vdom.
const (
	KindComment     = vdom.KindComment
	KindText        = vdom.KindText
	KindElement     = vdom.KindElement
	KindRef         = vdom.KindRef
	KindMulti       = vdom.KindMulti
	KindRemnantSite = vdom.KindRemnantSite
)

// Registry types, re-exported from pkg/callback.
type (
	Registry = callback.Registry
	Key      = callback.Key
	Safety   = callback.Safety
)

// Ref safety capabilities, re-exported from pkg/callback.
const (
	ThreadBound = callback.ThreadBound
	ThreadSafe  = callback.ThreadSafe
)

// NewRegistry creates an empty callback registry.
func NewRegistry(opts ...callback.Option) *Registry {
	return callback.NewRegistry(opts...)
}

// TextNode creates a text node.
func TextNode(text string) Node {
	return vdom.TextNode(text)
}

// CommentNode creates a comment node.
func CommentNode(text string) Node {
	return vdom.CommentNode(text)
}

// Multi groups nodes without introducing a wrapper element.
func Multi(nodes ...Node) Node {
	return vdom.Multi(nodes...)
}
