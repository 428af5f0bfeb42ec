package vdom

import (
	"github.com/Tamschi/lignin/pkg/callback"
	"github.com/Tamschi/lignin/pkg/web"
)

// Kind is the node type discriminator.
type Kind uint8

const (
	KindComment     Kind = iota // <!-- ... -->
	KindText                    // Plain text node
	KindElement                 // <div>, <button>, etc.
	KindRef                     // Indirection to another node
	KindMulti                   // Grouping without wrapper
	KindRemnantSite             // Subtree that may linger past its producer
)

// String returns the string representation of the Kind.
func (k Kind) String() string {
	switch k {
	case KindComment:
		return "Comment"
	case KindText:
		return "Text"
	case KindElement:
		return "Element"
	case KindRef:
		return "Ref"
	case KindMulti:
		return "Multi"
	case KindRemnantSite:
		return "RemnantSite"
	default:
		return "Unknown"
	}
}

// Node is the virtual DOM node. Exactly one payload field is used,
// selected by Kind; the rest stay zero.
type Node struct {
	Kind    Kind         // Node type
	Text    string       // For KindText and KindComment
	Element *Element     // For KindElement
	Target  *Node        // For KindRef
	Nodes   []Node       // For KindMulti
	Remnant *RemnantSite // For KindRemnantSite
}

// Element is a named element with attributes, content, and event
// bindings.
type Element struct {
	Name          string
	Attributes    []Attribute
	Content       []Node
	EventBindings []EventBinding
}

// Attribute represents a single attribute.
type Attribute struct {
	Name  string
	Value string
}

// EventBinding binds an event name to a callback ref. Binding identity
// is the ref's identity: two bindings with the same name compare
// unequal when their refs come from distinct registrations, which is
// how a differ detects that a handler was rebound.
type EventBinding struct {
	Name    string
	Handler callback.Ref[web.Event]
}

// IsInteractive returns true if this node is an element with event
// bindings.
func (n *Node) IsInteractive() bool {
	return n != nil && n.Kind == KindElement && n.Element != nil && len(n.Element.EventBindings) > 0
}

// Equal reports whether two trees are structurally equal. Ref nodes
// compare through their targets; remnant sites compare by key identity
// and content (their render callbacks are not comparable and carry no
// identity of their own).
func (n Node) Equal(other Node) bool {
	if n.Kind != other.Kind {
		return false
	}
	switch n.Kind {
	case KindComment, KindText:
		return n.Text == other.Text
	case KindElement:
		return n.Element.Equal(other.Element)
	case KindRef:
		if n.Target == nil || other.Target == nil {
			return n.Target == other.Target
		}
		return n.Target.Equal(*other.Target)
	case KindMulti:
		if len(n.Nodes) != len(other.Nodes) {
			return false
		}
		for i := range n.Nodes {
			if !n.Nodes[i].Equal(other.Nodes[i]) {
				return false
			}
		}
		return true
	case KindRemnantSite:
		return n.Remnant.equal(other.Remnant)
	default:
		return false
	}
}

// Equal reports whether two elements are structurally equal.
func (e *Element) Equal(other *Element) bool {
	if e == nil || other == nil {
		return e == other
	}
	if e.Name != other.Name ||
		len(e.Attributes) != len(other.Attributes) ||
		len(e.Content) != len(other.Content) ||
		len(e.EventBindings) != len(other.EventBindings) {
		return false
	}
	for i := range e.Attributes {
		if e.Attributes[i] != other.Attributes[i] {
			return false
		}
	}
	for i := range e.EventBindings {
		if e.EventBindings[i] != other.EventBindings[i] {
			return false
		}
	}
	for i := range e.Content {
		if !e.Content[i].Equal(other.Content[i]) {
			return false
		}
	}
	return true
}
