package goenum

import (
	"reflect"
	"slices"
	"sync"
)

// LoopItem is one direct leaf of a level as seen by ForEach and Map.
type LoopItem struct {
	Key     string
	Value   Value
	Meta    any // nil when HasMeta is false.
	HasMeta bool
}

// Selector picks candidates out of a level's plain view for ContainsOneOf.
// It may return a single value or a slice of values.
type Selector func(v *View) any

// Features decorates a level that has at least one direct leaf. Values are
// fixed at construction; AsType and the loop items are computed on first use
// and cached. A nil *Features behaves like an empty level, except that
// ContainsOneOf still answers from its own candidates.
type Features struct {
	values []Value
	asType func() *View
	items  func() []LoopItem
}

// newFeatures derives the features of one level. fields is the level as
// declared; direct holds its leaf items in declaration order (values already
// unwrapped from pairs).
func newFeatures(fields []Field, direct []*Item) *Features {
	values := make([]Value, len(direct))
	for i, it := range direct {
		values[i] = it.value
	}
	return &Features{
		values: values,
		asType: sync.OnceValue(func() *View { return newView(fields) }),
		items: sync.OnceValue(func() []LoopItem {
			out := make([]LoopItem, len(direct))
			for i, it := range direct {
				out[i] = LoopItem{Key: it.key, Value: it.value, Meta: it.meta, HasMeta: it.hasMeta}
			}
			return out
		}),
	}
}

// Values returns the direct leaf values in declaration order. The returned
// slice is a copy; the level itself never changes.
func (f *Features) Values() []Value {
	if f == nil {
		return nil
	}
	return slices.Clone(f.values)
}

// Len returns the number of direct leaf values.
func (f *Features) Len() int {
	if f == nil {
		return 0
	}
	return len(f.values)
}

// AsType returns the plain view of the level. Every call returns the same
// *View.
func (f *Features) AsType() *View {
	if f == nil {
		return &View{}
	}
	return f.asType()
}

// Contains reports whether candidate is one of the level's direct values.
func (f *Features) Contains(candidate any) bool {
	if f == nil {
		return false
	}
	c, ok := ValueOf(candidate)
	if !ok {
		return false
	}
	for _, v := range f.values {
		if SameValue(c, v) {
			return true
		}
	}
	return false
}

// ContainsOneOf reports whether candidate is one of the given candidates.
// The comparison never consults the level itself, so a nil or empty Features
// answers the same as a populated one. The candidates may be passed as a
// single slice, as the variadic list itself, or as a function taking *View
// with one result (Selector, func(*View) []Value, ...) invoked with AsType.
// With no candidates, or a nil selector, it reports false.
func (f *Features) ContainsOneOf(candidate any, within ...any) bool {
	if len(within) == 0 {
		return false
	}
	switch first := within[0].(type) {
	case Selector:
		if first == nil {
			return false
		}
		return matchSelected(candidate, first(f.AsType()))
	case func(*View) any:
		if first == nil {
			return false
		}
		return matchSelected(candidate, first(f.AsType()))
	}
	if selected, ok := callSelector(within[0], f); ok {
		return matchSelected(candidate, selected)
	}
	if set, ok := asList(within[0]); ok {
		return containsAny(set, candidate)
	}
	return containsAny(within, candidate)
}

var viewPtrType = reflect.TypeFor[*View]()

// callSelector invokes fn with f.AsType() when fn is a non-variadic func of
// one *View argument and one result. A nil func yields a nil selection.
func callSelector(fn any, f *Features) (any, bool) {
	rv := reflect.ValueOf(fn)
	if rv.Kind() != reflect.Func {
		return nil, false
	}
	rt := rv.Type()
	if rt.IsVariadic() || rt.NumIn() != 1 || rt.NumOut() != 1 || !viewPtrType.AssignableTo(rt.In(0)) {
		return nil, false
	}
	if rv.IsNil() {
		return nil, true
	}
	out := rv.Call([]reflect.Value{reflect.ValueOf(f.AsType())})
	return out[0].Interface(), true
}

func matchSelected(candidate, selected any) bool {
	if set, ok := asList(selected); ok {
		return containsAny(set, candidate)
	}
	return sameAsAny(candidate, selected)
}

// asList expands slices and arrays into []any. Pair-shaped slices are still
// lists here: ContainsOneOf takes raw candidates, not spec entries.
func asList(v any) ([]any, bool) {
	switch t := v.(type) {
	case nil:
		return nil, false
	case []any:
		return t, true
	case []Value:
		out := make([]any, len(t))
		for i := range t {
			out[i] = t[i]
		}
		return out, true
	case Spec, []Field:
		return nil, false
	}
	rv := reflect.ValueOf(v)
	if k := rv.Kind(); k != reflect.Slice && k != reflect.Array {
		return nil, false
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}

func containsAny(set []any, candidate any) bool {
	for _, s := range set {
		if sameAsAny(candidate, s) {
			return true
		}
	}
	return false
}

func sameAsAny(candidate, other any) bool {
	o, ok := ValueOf(other)
	return ok && sameAs(candidate, o)
}

// Items returns the direct leaves with their metadata, in declaration order.
func (f *Features) Items() []LoopItem {
	if f == nil {
		return nil
	}
	return slices.Clone(f.items())
}

// ForEach calls fn for every direct leaf in declaration order.
func (f *Features) ForEach(fn func(item LoopItem, idx int)) {
	if f == nil {
		return
	}
	for i, it := range f.items() {
		fn(it, i)
	}
}

// Map projects every direct leaf of f through fn.
func Map[T any](f *Features, fn func(item LoopItem, idx int) T) []T {
	if f == nil {
		return nil
	}
	items := f.items()
	out := make([]T, len(items))
	for i, it := range items {
		out[i] = fn(it, i)
	}
	return out
}
