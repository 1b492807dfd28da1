package goenum

import (
	"bytes"
	"fmt"
	"reflect"
	"slices"
	"strings"

	gojson "github.com/goccy/go-json"
)

// Field is one keyed entry of a Spec.
type Field struct {
	Key   string
	Value any
}

// Spec is an ordered enum definition. Values are leaves (string or number),
// pairs built with Pair, or nested object-shaped values (Spec, string-keyed
// maps, structs).
type Spec []Field

// Meta is a convenience metadata record. Any object-shaped value works as
// metadata; Meta is just the common case.
type Meta map[string]any

// Of builds a Spec from alternating keys and values. It panics when the
// argument count is odd or a key is not a string, which is a programming
// error in a literal definition.
func Of(kv ...any) Spec {
	if len(kv)%2 != 0 {
		panic("goenum: Of requires key/value pairs")
	}
	s := make(Spec, 0, len(kv)/2)
	for i := 0; i < len(kv); i += 2 {
		k, ok := kv[i].(string)
		if !ok {
			panic(fmt.Sprintf("goenum: Of key at position %d is %T, want string", i, kv[i]))
		}
		s = append(s, Field{Key: k, Value: kv[i+1]})
	}
	return s
}

// Pair attaches metadata to a leaf value.
func Pair(value, meta any) []any { return []any{value, meta} }

// Get returns the value stored under key.
func (s Spec) Get(key string) (any, bool) {
	for _, f := range s {
		if f.Key == key {
			return f.Value, true
		}
	}
	return nil, false
}

// Keys returns the keys in declaration order.
func (s Spec) Keys() []string {
	out := make([]string, len(s))
	for i, f := range s {
		out[i] = f.Key
	}
	return out
}

// MarshalJSON renders the Spec as a JSON object in declaration order.
func (s Spec) MarshalJSON() ([]byte, error) {
	var b bytes.Buffer
	b.WriteByte('{')
	for i, f := range s {
		if i > 0 {
			b.WriteByte(',')
		}
		k, err := gojson.Marshal(f.Key)
		if err != nil {
			return nil, err
		}
		b.Write(k)
		b.WriteByte(':')
		v, err := marshalAny(f.Value)
		if err != nil {
			return nil, err
		}
		b.Write(v)
	}
	b.WriteByte('}')
	return b.Bytes(), nil
}

func marshalAny(v any) ([]byte, error) {
	if lv, ok := ValueOf(v); ok {
		return lv.MarshalJSON()
	}
	return gojson.Marshal(v)
}

// ResolveStructKey resolves the key a struct field contributes to a level.
// Priority: goenum:"name=..." > json tag name > field name; "-" disables the field.
func ResolveStructKey(sf reflect.StructField) string {
	if gt := sf.Tag.Get("goenum"); gt != "" {
		if gt == "-" {
			return "-"
		}
		for _, p := range strings.Split(gt, ",") {
			p = strings.TrimSpace(p)
			if strings.HasPrefix(p, "name=") {
				return strings.TrimPrefix(p, "name=")
			}
		}
	}
	if jt := sf.Tag.Get("json"); jt != "" {
		if jt == "-" {
			return "-"
		}
		name := jt
		if i := strings.IndexByte(jt, ','); i >= 0 {
			name = jt[:i]
		}
		if name != "" {
			return name
		}
	}
	return sf.Name
}

// objectFields lists the entries of an object-shaped value in iteration
// order. The second result is false when v is not object-shaped.
func objectFields(v any) ([]Field, bool) {
	switch t := v.(type) {
	case nil:
		return nil, false
	case Spec:
		return t, true
	case []Field:
		return t, true
	case Meta:
		return mapFields(reflect.ValueOf(map[string]any(t))), true
	case map[string]any:
		return mapFields(reflect.ValueOf(t)), true
	}
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil, false
		}
		rv = rv.Elem()
	}
	switch rv.Kind() {
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return nil, false
		}
		if rv.IsNil() {
			return []Field{}, true
		}
		return mapFields(rv), true
	case reflect.Struct:
		if rv.Type() == reflect.TypeOf(Value{}) {
			return nil, false
		}
		return structFields(rv), true
	case reflect.Slice:
		if rv.Type().Elem() == reflect.TypeOf(Field{}) {
			return rv.Convert(reflect.TypeOf([]Field(nil))).Interface().([]Field), true
		}
	}
	return nil, false
}

// mapFields returns map entries sorted by key; maps carry no declaration order.
func mapFields(rv reflect.Value) []Field {
	keys := rv.MapKeys()
	slices.SortFunc(keys, func(a, b reflect.Value) int { return strings.Compare(a.String(), b.String()) })
	out := make([]Field, 0, len(keys))
	for _, k := range keys {
		out = append(out, Field{Key: k.String(), Value: rv.MapIndex(k).Interface()})
	}
	return out
}

func structFields(rv reflect.Value) []Field {
	rt := rv.Type()
	out := make([]Field, 0, rt.NumField())
	for i := 0; i < rt.NumField(); i++ {
		sf := rt.Field(i)
		if !sf.IsExported() {
			continue
		}
		key := ResolveStructKey(sf)
		if key == "-" {
			continue
		}
		out = append(out, Field{Key: key, Value: rv.Field(i).Interface()})
	}
	return out
}
