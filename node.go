package goenum

import (
	"bytes"
	"iter"

	gojson "github.com/goccy/go-json"
)

// Node is one level of a built registry. Children are reached by key;
// the level's own decorations live behind Features, so keys never collide
// with them.
type Node struct {
	depth    int
	path     Path
	children []child
	index    map[string]int
	features *Features
}

// child holds exactly one of item or node.
type child struct {
	key  string
	item *Item
	node *Node
}

// Depth returns the nesting level (0 for the root).
func (n *Node) Depth() int { return n.depth }

// Path returns the level's location from the root.
func (n *Node) Path() Path { return n.path }

// Len returns the number of children.
func (n *Node) Len() int { return len(n.children) }

// Keys returns the child keys in declaration order.
func (n *Node) Keys() []string {
	out := make([]string, len(n.children))
	for i, c := range n.children {
		out[i] = c.key
	}
	return out
}

// Features returns the level's decorations, or nil when the level has no
// direct leaf. Features methods accept a nil receiver.
func (n *Node) Features() *Features { return n.features }

// HasFeatures reports whether the level has at least one direct leaf.
func (n *Node) HasFeatures() bool { return n.features != nil }

// Item returns the leaf declared under key.
func (n *Node) Item(key string) (*Item, bool) {
	i, ok := n.index[key]
	if !ok || n.children[i].item == nil {
		return nil, false
	}
	return n.children[i].item, true
}

// Node returns the nested level declared under key.
func (n *Node) Node(key string) (*Node, bool) {
	i, ok := n.index[key]
	if !ok || n.children[i].node == nil {
		return nil, false
	}
	return n.children[i].node, true
}

// Walk descends through nested levels by key.
func (n *Node) Walk(keys ...string) (*Node, bool) {
	cur := n
	for _, k := range keys {
		next, ok := cur.Node(k)
		if !ok {
			return nil, false
		}
		cur = next
	}
	return cur, true
}

// Lookup resolves a leaf by its full key path, e.g. Lookup("API", "V1", "USERS").
func (n *Node) Lookup(keys ...string) (*Item, bool) {
	if len(keys) == 0 {
		return nil, false
	}
	parent, ok := n.Walk(keys[:len(keys)-1]...)
	if !ok {
		return nil, false
	}
	return parent.Item(keys[len(keys)-1])
}

// All iterates children in declaration order; each value is an *Item or a *Node.
func (n *Node) All() iter.Seq2[string, any] {
	return func(yield func(string, any) bool) {
		for _, c := range n.children {
			var v any = c.node
			if c.item != nil {
				v = c.item
			}
			if !yield(c.key, v) {
				return
			}
		}
	}
}

// Leaves iterates every leaf of the subtree depth-first in declaration order.
func (n *Node) Leaves() iter.Seq[*Item] {
	return func(yield func(*Item) bool) {
		n.leaves(yield)
	}
}

func (n *Node) leaves(yield func(*Item) bool) bool {
	for _, c := range n.children {
		if c.item != nil {
			if !yield(c.item) {
				return false
			}
			continue
		}
		if !c.node.leaves(yield) {
			return false
		}
	}
	return true
}

// MarshalJSON renders the subtree in declaration order: plain leaves as
// values, pairs as {"value":..,"meta":..}, nested levels as objects.
func (n *Node) MarshalJSON() ([]byte, error) {
	var b bytes.Buffer
	if err := n.writeJSON(&b); err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}

func (n *Node) writeJSON(b *bytes.Buffer) error {
	b.WriteByte('{')
	for i, c := range n.children {
		if i > 0 {
			b.WriteByte(',')
		}
		kb, err := gojson.Marshal(c.key)
		if err != nil {
			return err
		}
		b.Write(kb)
		b.WriteByte(':')
		if c.node != nil {
			if err := c.node.writeJSON(b); err != nil {
				return err
			}
			continue
		}
		vb, err := c.item.value.MarshalJSON()
		if err != nil {
			return err
		}
		if !c.item.hasMeta {
			b.Write(vb)
			continue
		}
		mb, err := marshalAny(c.item.meta)
		if err != nil {
			return err
		}
		b.WriteString(`{"value":`)
		b.Write(vb)
		b.WriteString(`,"meta":`)
		b.Write(mb)
		b.WriteByte('}')
	}
	b.WriteByte('}')
	return nil
}
