package vdom

import (
	"github.com/Tamschi/lignin/pkg/callback"
	"github.com/Tamschi/lignin/pkg/web"
)

// TextNode creates a text node.
func TextNode(text string) Node {
	return Node{Kind: KindText, Text: text}
}

// CommentNode creates a comment node.
func CommentNode(text string) Node {
	return Node{Kind: KindComment, Text: text}
}

// RefNode creates an indirection to target.
func RefNode(target *Node) Node {
	return Node{Kind: KindRef, Target: target}
}

// Multi groups nodes without introducing a wrapper element.
func Multi(nodes ...Node) Node {
	return Node{Kind: KindMulti, Nodes: nodes}
}

// Node wraps the element in a Node.
func (e *Element) Node() Node {
	return Node{Kind: KindElement, Element: e}
}

// Node wraps the remnant site in a Node.
func (s *RemnantSite) Node() Node {
	return Node{Kind: KindRemnantSite, Remnant: s}
}

// Attr creates an attribute.
func Attr(name, value string) Attribute {
	return Attribute{Name: name, Value: value}
}

// On creates an event binding for the given event name.
func On(name string, handler callback.Ref[web.Event]) EventBinding {
	return EventBinding{Name: name, Handler: handler}
}
