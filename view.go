package goenum

import (
	"bytes"
	"iter"

	gojson "github.com/goccy/go-json"
)

// View is the plain, read-only projection of one level: every direct leaf
// key mapped to its raw value with metadata stripped. Nested levels are not
// part of it.
type View struct {
	keys   []string
	values []Value
	index  map[string]int
}

func newView(fields []Field) *View {
	v := &View{index: make(map[string]int, len(fields))}
	for _, f := range fields {
		var lv Value
		switch Classify(f.Value) {
		case KindLeaf:
			lv, _ = ValueOf(f.Value)
		case KindLeafWithMeta:
			lv, _, _ = splitPair(f.Value)
		default:
			continue
		}
		v.index[f.Key] = len(v.keys)
		v.keys = append(v.keys, f.Key)
		v.values = append(v.values, lv)
	}
	return v
}

// Len returns the number of keys.
func (v *View) Len() int { return len(v.keys) }

// Keys returns the keys in declaration order.
func (v *View) Keys() []string { return append([]string(nil), v.keys...) }

// Get returns the raw value declared under key.
func (v *View) Get(key string) (Value, bool) {
	i, ok := v.index[key]
	if !ok {
		return Value{}, false
	}
	return v.values[i], true
}

// Value returns the value declared under key, or the invalid zero Value.
func (v *View) Value(key string) Value {
	lv, _ := v.Get(key)
	return lv
}

// Pick returns the values of the given keys; unknown keys yield the invalid
// zero Value, which never matches anything.
func (v *View) Pick(keys ...string) []Value {
	out := make([]Value, len(keys))
	for i, k := range keys {
		out[i] = v.Value(k)
	}
	return out
}

// All iterates key/value pairs in declaration order.
func (v *View) All() iter.Seq2[string, Value] {
	return func(yield func(string, Value) bool) {
		for i, k := range v.keys {
			if !yield(k, v.values[i]) {
				return
			}
		}
	}
}

// MarshalJSON renders the view as an ordered JSON object.
func (v *View) MarshalJSON() ([]byte, error) {
	var b bytes.Buffer
	b.WriteByte('{')
	for i, k := range v.keys {
		if i > 0 {
			b.WriteByte(',')
		}
		kb, err := gojson.Marshal(k)
		if err != nil {
			return nil, err
		}
		b.Write(kb)
		b.WriteByte(':')
		vb, err := v.values[i].MarshalJSON()
		if err != nil {
			return nil, err
		}
		b.Write(vb)
	}
	b.WriteByte('}')
	return b.Bytes(), nil
}
