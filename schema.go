package goenum

import (
	"fmt"
	"math"

	js "github.com/reoring/goenum/jsonschema"
)

// JSONSchema projects the level to a JSON Schema. Direct values become an
// enum, plus one oneOf const per key titled by the key when any leaf carries
// metadata; nested levels become properties. NaN and ±Inf have no JSON form
// and are left out.
func (n *Node) JSONSchema() *js.Schema {
	s := n.schema()
	s.Schema = js.Draft
	if len(n.path) == 0 {
		s.Title = "goenum registry"
	}
	return s
}

func (n *Node) schema() *js.Schema {
	s := &js.Schema{}
	if len(n.path) > 0 {
		s.Title = n.path[len(n.path)-1]
	}
	var (
		enum     []any
		branches []*js.Schema
		withMeta bool
	)
	for _, c := range n.children {
		if c.node != nil {
			if s.Properties == nil {
				s.Properties = map[string]*js.Schema{}
			}
			s.Properties[c.key] = c.node.schema()
			continue
		}
		v := c.item.value.Interface()
		if f, ok := v.(float64); ok && (math.IsNaN(f) || math.IsInf(f, 0)) {
			continue
		}
		enum = append(enum, v)
		b := &js.Schema{Title: c.key, Const: v}
		if c.item.hasMeta {
			withMeta = true
			if d, ok := c.item.MetaField("description"); ok {
				b.Description = fmt.Sprint(d)
			}
		}
		branches = append(branches, b)
	}
	if len(enum) > 0 {
		if types := js.Types(enum); len(types) == 1 && s.Properties == nil {
			s.Type = types[0]
		}
		s.Enum = enum
		if withMeta {
			s.OneOf = branches
		}
	}
	if s.Properties != nil && s.Type == "" && len(enum) == 0 {
		s.Type = "object"
	}
	return s
}
