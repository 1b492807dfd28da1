package goenum

import (
	"encoding/json"
	"math"
	"reflect"
	"strconv"

	gojson "github.com/goccy/go-json"
)

type valueKind uint8

const (
	_valueInvalid valueKind = iota
	_valueString
	_valueNumber
)

// Value is an enum leaf: a string or a number. Numbers are held as float64 so
// NaN, ±Inf and ±0 stay distinguishable. The zero Value is invalid and never
// equals anything.
type Value struct {
	kind valueKind
	str  string
	num  float64
}

// StringValue returns a string leaf.
func StringValue(s string) Value { return Value{kind: _valueString, str: s} }

// NumberValue returns a numeric leaf.
func NumberValue(f float64) Value { return Value{kind: _valueNumber, num: f} }

func (v Value) IsValid() bool  { return v.kind != _valueInvalid }
func (v Value) IsString() bool { return v.kind == _valueString }
func (v Value) IsNumber() bool { return v.kind == _valueNumber }

// AsString returns the string payload and whether v is a string leaf.
func (v Value) AsString() (string, bool) { return v.str, v.kind == _valueString }

// AsNumber returns the numeric payload and whether v is a numeric leaf.
func (v Value) AsNumber() (float64, bool) { return v.num, v.kind == _valueNumber }

// Interface returns the payload as string, float64 or nil.
func (v Value) Interface() any {
	switch v.kind {
	case _valueString:
		return v.str
	case _valueNumber:
		return v.num
	default:
		return nil
	}
}

// String implements fmt.Stringer. Strings are returned unquoted.
func (v Value) String() string {
	switch v.kind {
	case _valueString:
		return v.str
	case _valueNumber:
		return formatNumber(v.num)
	default:
		return "<invalid>"
	}
}

// MarshalJSON renders strings and finite numbers natively. NaN and ±Inf have
// no JSON form and are rendered as the strings "NaN", "Infinity", "-Infinity".
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case _valueString:
		return gojson.Marshal(v.str)
	case _valueNumber:
		if math.IsNaN(v.num) || math.IsInf(v.num, 0) {
			return gojson.Marshal(formatNumber(v.num))
		}
		return []byte(strconv.FormatFloat(v.num, 'g', -1, 64)), nil
	default:
		return []byte("null"), nil
	}
}

// Equals reports whether candidate converts to a leaf that is SameValue as v.
func (v Value) Equals(candidate any) bool { return sameAs(candidate, v) }

func formatNumber(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// SameValue compares two leaves by identity: NaN equals NaN, +0 and -0 are
// distinct, and a string never equals a number.
func SameValue(a, b Value) bool {
	if a.kind != b.kind || a.kind == _valueInvalid {
		return false
	}
	if a.kind == _valueString {
		return a.str == b.str
	}
	if math.IsNaN(a.num) {
		return math.IsNaN(b.num)
	}
	return a.num == b.num && math.Signbit(a.num) == math.Signbit(b.num)
}

// ValueOf converts x into a leaf. It accepts Value, any string-kinded type,
// every int/uint/float kind and json.Number. Booleans, complex numbers and
// malformed json.Number report false.
func ValueOf(x any) (Value, bool) {
	switch t := x.(type) {
	case nil:
		return Value{}, false
	case Value:
		return t, t.IsValid()
	case string:
		return StringValue(t), true
	case float64:
		return NumberValue(t), true
	case int:
		return NumberValue(float64(t)), true
	case json.Number:
		f, err := strconv.ParseFloat(string(t), 64)
		if err != nil {
			return Value{}, false
		}
		return NumberValue(f), true
	case bool:
		return Value{}, false
	}
	rv := reflect.ValueOf(x)
	switch rv.Kind() {
	case reflect.String:
		return StringValue(rv.String()), true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return NumberValue(float64(rv.Int())), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return NumberValue(float64(rv.Uint())), true
	case reflect.Float32, reflect.Float64:
		return NumberValue(rv.Float()), true
	}
	return Value{}, false
}

func sameAs(candidate any, v Value) bool {
	c, ok := ValueOf(candidate)
	return ok && SameValue(c, v)
}
