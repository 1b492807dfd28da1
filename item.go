package goenum

import "reflect"

// Item is a decorated leaf: the value, optional metadata and an identity
// equality check.
type Item struct {
	key     string
	path    Path
	value   Value
	meta    any
	hasMeta bool
}

func newItem(key string, path Path, v Value, meta any, hasMeta bool) *Item {
	return &Item{key: key, path: path, value: v, meta: meta, hasMeta: hasMeta}
}

// Key returns the key the item was declared under.
func (it *Item) Key() string { return it.key }

// Path returns the item's location from the root.
func (it *Item) Path() Path { return it.path }

// Value returns the leaf value.
func (it *Item) Value() Value { return it.value }

// Meta returns the metadata exactly as declared, or nil.
func (it *Item) Meta() any { return it.meta }

// HasMeta reports whether the item was declared as a (value, metadata) pair.
func (it *Item) HasMeta() bool { return it.hasMeta }

// Equals reports whether candidate is the same value (see SameValue).
func (it *Item) Equals(candidate any) bool { return sameAs(candidate, it.value) }

// MetaField looks up one metadata field by key. Map and Spec metadata are
// matched on their keys, struct metadata on the resolved struct key.
func (it *Item) MetaField(name string) (any, bool) {
	if !it.hasMeta {
		return nil, false
	}
	switch m := it.meta.(type) {
	case Meta:
		v, ok := m[name]
		return v, ok
	case map[string]any:
		v, ok := m[name]
		return v, ok
	case Spec:
		return m.Get(name)
	}
	rv := reflect.ValueOf(it.meta)
	for rv.Kind() == reflect.Pointer && !rv.IsNil() {
		rv = rv.Elem()
	}
	if rv.Kind() == reflect.Map {
		v := rv.MapIndex(reflect.ValueOf(name).Convert(rv.Type().Key()))
		if !v.IsValid() {
			return nil, false
		}
		return v.Interface(), true
	}
	fields, _ := objectFields(it.meta)
	for _, f := range fields {
		if f.Key == name {
			return f.Value, true
		}
	}
	return nil, false
}

// MetaString is MetaField narrowed to a string value.
func (it *Item) MetaString(name string) string {
	v, _ := it.MetaField(name)
	s, _ := v.(string)
	return s
}
