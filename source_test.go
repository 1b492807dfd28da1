package goenum_test

import (
	"bytes"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/reoring/goenum"
	"github.com/reoring/goenum/source/gojson"
)

func TestDecodeSpec_KeepsOrder(t *testing.T) {
	spec, err := goenum.DecodeSpec(goenum.JSONBytes([]byte(`{"Z":"z","A":{"B":[1,{"d":"x"}]},"M":2.5}`)))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got := strings.Join(spec.Keys(), ","); got != "Z,A,M" {
		t.Fatalf("keys: %s", got)
	}
	a, _ := spec.Get("A")
	if _, ok := a.(goenum.Spec); !ok {
		t.Fatalf("objects must decode to Spec, got %T", a)
	}
	m, _ := spec.Get("M")
	if m != 2.5 {
		t.Fatalf("numbers must decode to float64, got %#v", m)
	}
}

func TestBuildFrom_JSON(t *testing.T) {
	root, err := goenum.BuildFrom(goenum.JSONReader(strings.NewReader(`{
		"STATUS": {"ACTIVE": ["active", {"description": "In use"}], "INACTIVE": "inactive"},
		"HTTP": {"OK": 200}
	}`)))
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	it, ok := root.Lookup("STATUS", "ACTIVE")
	if !ok || !it.Equals("active") || it.MetaString("description") != "In use" {
		t.Fatalf("STATUS.ACTIVE: %+v", it)
	}
	http, _ := root.Node("HTTP")
	if !http.Features().Contains(200) {
		t.Fatalf("HTTP must contain 200")
	}
}

func TestDecodeSpec_DuplicateKey(t *testing.T) {
	_, err := goenum.DecodeSpec(goenum.JSONBytes([]byte(`{"a":1,"a":2}`)))
	if err == nil {
		t.Fatalf("expected error for duplicate key")
	}
	if !errors.Is(err, goenum.ErrDuplicateKey) {
		t.Fatalf("expected ErrDuplicateKey, got: %v", err)
	}
	iss, ok := goenum.AsIssue(err)
	if !ok || iss.Code != goenum.CodeDuplicateKey || iss.Path != "/a" {
		t.Fatalf("expected duplicate_key at /a, got: %+v", iss)
	}
}

func TestDecodeSpec_DuplicateKey_NestedPath(t *testing.T) {
	_, err := goenum.DecodeSpec(goenum.JSONBytes([]byte(`{"x":{"y":["v",{"a":1,"a":2}]}}`)))
	iss, ok := goenum.AsIssue(err)
	if !ok {
		t.Fatalf("expected issue, got: %v", err)
	}
	if iss.Path != "/x/y/1/a" {
		t.Fatalf("expected path=/x/y/1/a, got: %s", iss.Path)
	}
}

func TestDecodeSpec_MaxNesting_Exceeded(t *testing.T) {
	_, err := goenum.DecodeSpec(goenum.JSONBytes([]byte(`{"a":{"b":{"c":1}}}`)), goenum.Options{MaxNesting: 2})
	if err == nil {
		t.Fatalf("expected error for max nesting exceeded")
	}
	iss, ok := goenum.AsIssue(err)
	if !ok || iss.Path != "/a/b" || iss.Code != goenum.CodeParseError {
		t.Fatalf("expected parse_error at /a/b, got: %+v", iss)
	}
}

func TestDecodeSpec_MaxBytes_Exceeded(t *testing.T) {
	data := []byte(`{"a":"` + strings.Repeat("x", 1024) + `"}`)
	_, err := goenum.DecodeSpec(goenum.JSONReader(bytes.NewReader(data)), goenum.Options{MaxBytes: 16})
	if err == nil {
		t.Fatalf("expected error for max bytes exceeded")
	}
	if goenum.ErrorCode(err) != goenum.CodeTruncated {
		t.Fatalf("expected truncated issue, got: %v", err)
	}
}

func TestDecodeSpec_Malformed(t *testing.T) {
	for _, in := range []string{``, `{"a":`, `{"a":1} {}`, `[1,2]`, `"x"`, `{"a" 1}`} {
		_, err := goenum.DecodeSpec(goenum.JSONBytes([]byte(in)))
		if err == nil {
			t.Fatalf("%q: expected error", in)
		}
		var de *goenum.DecodeError
		if !errors.As(err, &de) || de.Code() != goenum.CodeParseError {
			t.Fatalf("%q: expected parse_error DecodeError, got %T %v", in, err, err)
		}
	}
}

func TestBuildFrom_InvalidLeafFromJSON(t *testing.T) {
	_, err := goenum.BuildFrom(goenum.JSONBytes([]byte(`{"A":{"B":true}}`)))
	var iv *goenum.InvalidValueError
	if !errors.As(err, &iv) || iv.Path.String() != "A.B" {
		t.Fatalf("expected invalid value at A.B, got %v", err)
	}
	iss, _ := goenum.AsIssue(err)
	if iss.Path != "/A/B" {
		t.Fatalf("issue path: %s", iss.Path)
	}
}

func TestDecodeSpec_HugeNumberIsInf(t *testing.T) {
	spec, err := goenum.DecodeSpec(goenum.JSONBytes([]byte(`{"BIG":1e999}`)))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	v, _ := spec.Get("BIG")
	if f, ok := v.(float64); !ok || !math.IsInf(f, 1) {
		t.Fatalf("expected +Inf, got %v", v)
	}
}

func TestJSONDriver_GoJSON(t *testing.T) {
	goenum.SetJSONDriver(gojson.Driver())
	defer goenum.UseDefaultJSONDriver()
	if goenum.CurrentJSONDriver().Name() != "go-json" {
		t.Fatalf("driver: %s", goenum.CurrentJSONDriver().Name())
	}
	root, err := goenum.BuildFrom(goenum.JSONBytes([]byte(`{"B":"b","A":["a",{"x":1}],"N":{"C":3}}`)))
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if got := strings.Join(root.Keys(), ","); got != "B,A,N" {
		t.Fatalf("keys: %s", got)
	}
	if _, err := goenum.DecodeSpec(goenum.JSONBytes([]byte(`{"a":1,"a":2}`))); !errors.Is(err, goenum.ErrDuplicateKey) {
		t.Fatalf("go-json driver must reject duplicates too, got %v", err)
	}
}

func TestSetJSONDriver_NilIgnored(t *testing.T) {
	goenum.SetJSONDriver(nil)
	if goenum.CurrentJSONDriver().Name() != "encoding/json" {
		t.Fatalf("nil driver must be ignored")
	}
}
