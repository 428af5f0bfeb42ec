package vdom

import (
	"encoding/binary"
	"hash"
	"hash/fnv"
)

// Hash returns a structural FNV-1a hash of the tree, consistent with
// Equal: equal trees hash equally. Like Equal, it sees event bindings
// through their name and callback key, and remnant sites through their
// key identity and content.
func (n Node) Hash() uint64 {
	h := fnv.New64a()
	n.writeHash(h)
	return h.Sum64()
}

func (n Node) writeHash(h hash.Hash64) {
	writeUint64(h, uint64(n.Kind))
	switch n.Kind {
	case KindComment, KindText:
		writeString(h, n.Text)
	case KindElement:
		n.Element.writeHash(h)
	case KindRef:
		if n.Target != nil {
			n.Target.writeHash(h)
		}
	case KindMulti:
		writeUint64(h, uint64(len(n.Nodes)))
		for _, child := range n.Nodes {
			child.writeHash(h)
		}
	case KindRemnantSite:
		if n.Remnant != nil {
			if n.Remnant.Key != nil {
				writeUint64(h, n.Remnant.Key.id)
			}
			if n.Remnant.Content != nil {
				n.Remnant.Content.writeHash(h)
			}
		}
	}
}

func (e *Element) writeHash(h hash.Hash64) {
	if e == nil {
		return
	}
	writeString(h, e.Name)
	writeUint64(h, uint64(len(e.Attributes)))
	for _, a := range e.Attributes {
		writeString(h, a.Name)
		writeString(h, a.Value)
	}
	writeUint64(h, uint64(len(e.EventBindings)))
	for _, b := range e.EventBindings {
		writeString(h, b.Name)
		writeUint64(h, uint64(b.Handler.Key()))
	}
	writeUint64(h, uint64(len(e.Content)))
	for _, child := range e.Content {
		child.writeHash(h)
	}
}

func writeUint64(h hash.Hash64, v uint64) {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], v)
	h.Write(buf[:])
}

func writeString(h hash.Hash64, s string) {
	writeUint64(h, uint64(len(s)))
	h.Write([]byte(s))
}
