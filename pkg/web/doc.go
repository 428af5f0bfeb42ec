// Package web provides erasable stand-ins for web-platform values used
// as callback parameters.
//
// The VDOM layer never depends on a browser or renderer API. Instead,
// a host renderer wraps whatever platform value it holds (a DOM event,
// an element handle) in one of these stand-ins before dispatching it
// through a callback ref, and the receiving handler calls Materialize
// to get the value back. The typed payload structs (MouseEvent,
// KeyboardEvent, ...) are the conventional shapes renderers put inside
// an Event.
package web
