package web

// Event is the erasable stand-in for a platform event value.
type Event struct {
	value any
}

// NewEvent wraps a renderer-supplied event value.
func NewEvent(value any) Event {
	return Event{value: value}
}

// Materialize returns the wrapped value.
func (e Event) Materialize() any {
	return e.value
}

// Comment is the erasable stand-in for a platform comment node.
type Comment struct {
	value any
}

// NewComment wraps a renderer-supplied comment node.
func NewComment(value any) Comment {
	return Comment{value: value}
}

// Materialize returns the wrapped value.
func (c Comment) Materialize() any {
	return c.value
}

// Text is the erasable stand-in for a platform text node.
type Text struct {
	value any
}

// NewText wraps a renderer-supplied text node.
func NewText(value any) Text {
	return Text{value: value}
}

// Materialize returns the wrapped value.
func (t Text) Materialize() any {
	return t.value
}

// HtmlElement is the erasable stand-in for a platform element handle.
type HtmlElement struct {
	value any
}

// NewHtmlElement wraps a renderer-supplied element handle.
func NewHtmlElement(value any) HtmlElement {
	return HtmlElement{value: value}
}

// Materialize returns the wrapped value.
func (h HtmlElement) Materialize() any {
	return h.value
}

// DomRef is the erasable stand-in for an optional platform value,
// used where a renderer reports "this node now exists" / "this node is
// gone" through the same callback.
type DomRef[T any] struct {
	value T
	ok    bool
}

// Some wraps a present value.
func Some[T any](value T) DomRef[T] {
	return DomRef[T]{value: value, ok: true}
}

// None is the absent DomRef.
func None[T any]() DomRef[T] {
	return DomRef[T]{}
}

// Materialize returns the wrapped value and whether it is present.
func (d DomRef[T]) Materialize() (T, bool) {
	return d.value, d.ok
}
