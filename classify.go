package goenum

import "reflect"

// Kind labels the shape of a spec entry.
type Kind int

const (
	KindInvalid      Kind = iota // Anything that is not one of the shapes below.
	KindLeaf                     // A string or a number.
	KindLeafWithMeta             // A 2-element (leaf, metadata) pair.
	KindNested                   // An object-shaped value holding further entries.
)

func (k Kind) String() string {
	switch k {
	case KindLeaf:
		return "leaf"
	case KindLeafWithMeta:
		return "leaf_with_meta"
	case KindNested:
		return "nested"
	default:
		return "invalid"
	}
}

// Classify labels node. Checks run in a fixed order (leaf, pair, nested) so
// that a 2-element pair is never mistaken for a nested level. Slices and
// arrays that are not pairs are invalid; Spec and []Field count as objects.
func Classify(node any) Kind {
	if _, ok := ValueOf(node); ok {
		return KindLeaf
	}
	if _, _, ok := splitPair(node); ok {
		return KindLeafWithMeta
	}
	if isObjectShaped(node) {
		return KindNested
	}
	return KindInvalid
}

// IsMetadata reports whether v may be used as metadata: any non-nil,
// object-shaped value (Spec, string-keyed map, struct or pointer to one).
func IsMetadata(v any) bool { return isObjectShaped(v) }

func isObjectShaped(v any) bool {
	_, ok := objectFields(v)
	return ok
}

// splitPair unpacks a (leaf, metadata) pair.
func splitPair(node any) (Value, any, bool) {
	if node == nil {
		return Value{}, nil, false
	}
	switch node.(type) {
	case Spec, []Field:
		return Value{}, nil, false
	}
	rv := reflect.ValueOf(node)
	if k := rv.Kind(); k != reflect.Slice && k != reflect.Array {
		return Value{}, nil, false
	}
	if rv.Len() != 2 {
		return Value{}, nil, false
	}
	lv, ok := ValueOf(rv.Index(0).Interface())
	if !ok {
		return Value{}, nil, false
	}
	meta := rv.Index(1).Interface()
	if !isObjectShaped(meta) {
		return Value{}, nil, false
	}
	return lv, meta, true
}
