package goenum_test

import (
	"encoding/json"
	"math"
	"slices"
	"testing"

	"github.com/reoring/goenum"
)

func sampleRegistry(t *testing.T) *goenum.Node {
	t.Helper()
	root, err := goenum.Build(goenum.Of(
		"STATUS", goenum.Of(
			"ACTIVE", goenum.Pair("active", goenum.Meta{"description": "In use"}),
			"INACTIVE", "inactive",
		),
		"API", goenum.Of("V1", goenum.Of("USERS", "/v1/users", "POSTS", "/v1/posts")),
		"LIMIT", 10,
	))
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	return root
}

func TestNode_MarshalJSON(t *testing.T) {
	b, err := json.Marshal(sampleRegistry(t))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"STATUS":{"ACTIVE":{"value":"active","meta":{"description":"In use"}},"INACTIVE":"inactive"},"API":{"V1":{"USERS":"/v1/users","POSTS":"/v1/posts"}},"LIMIT":10}`
	if string(b) != want {
		t.Fatalf("json:\n got %s\nwant %s", b, want)
	}
}

func TestNode_Leaves(t *testing.T) {
	var paths []string
	for it := range sampleRegistry(t).Leaves() {
		paths = append(paths, it.Path().String())
	}
	want := []string{"STATUS.ACTIVE", "STATUS.INACTIVE", "API.V1.USERS", "API.V1.POSTS", "LIMIT"}
	if !slices.Equal(paths, want) {
		t.Fatalf("leaves: got %v", paths)
	}
}

func TestNode_AllStopsEarly(t *testing.T) {
	n := 0
	for range sampleRegistry(t).All() {
		n++
		break
	}
	if n != 1 {
		t.Fatalf("iteration did not stop")
	}
}

func TestNode_LookupMisses(t *testing.T) {
	root := sampleRegistry(t)
	if _, ok := root.Lookup(); ok {
		t.Fatalf("empty lookup must miss")
	}
	if _, ok := root.Lookup("STATUS", "MISSING"); ok {
		t.Fatalf("missing key must miss")
	}
	if _, ok := root.Lookup("LIMIT", "X"); ok {
		t.Fatalf("descending into a leaf must miss")
	}
	if _, ok := root.Item("STATUS"); ok {
		t.Fatalf("Item must not return nested levels")
	}
	if _, ok := root.Node("LIMIT"); ok {
		t.Fatalf("Node must not return leaves")
	}
}

func TestView_MarshalJSON(t *testing.T) {
	status, _ := sampleRegistry(t).Node("STATUS")
	b, err := json.Marshal(status.Features().AsType())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != `{"ACTIVE":"active","INACTIVE":"inactive"}` {
		t.Fatalf("view json: %s", b)
	}
	got := status.Features().AsType().Pick("INACTIVE", "NOPE")
	if !got[0].Equals("inactive") || got[1].IsValid() {
		t.Fatalf("pick: %v", got)
	}
}

func TestNode_JSONSchema(t *testing.T) {
	root := sampleRegistry(t)
	s := root.JSONSchema()
	if s.Schema == "" || s.Type != "" || len(s.Enum) != 1 || s.Enum[0] != 10.0 {
		t.Fatalf("root schema: %+v", s)
	}
	status := s.Properties["STATUS"]
	if status == nil || status.Type != "string" || len(status.OneOf) != 2 {
		t.Fatalf("status schema: %+v", status)
	}
	if status.OneOf[0].Title != "ACTIVE" || status.OneOf[0].Const != "active" || status.OneOf[0].Description != "In use" {
		t.Fatalf("oneOf[0]: %+v", status.OneOf[0])
	}
	api := s.Properties["API"]
	if api == nil || api.Type != "object" || api.Properties["V1"] == nil {
		t.Fatalf("api schema: %+v", api)
	}
}

func TestNode_JSONSchemaSkipsNonFinite(t *testing.T) {
	s := goenum.MustBuild(goenum.Of("NAN", math.NaN(), "ONE", 1)).JSONSchema()
	if len(s.Enum) != 1 || s.Enum[0] != 1.0 {
		t.Fatalf("enum: %v", s.Enum)
	}
}

func TestPath(t *testing.T) {
	p := goenum.Path{"a/b", "c~d"}
	if p.Pointer() != "/a~1b/c~0d" {
		t.Fatalf("pointer: %s", p.Pointer())
	}
	if goenum.Path(nil).String() != goenum.RootPath || goenum.Path(nil).Pointer() != "/" {
		t.Fatalf("root rendering")
	}
	base := goenum.Path{"A"}
	x, y := base.Child("X"), base.Child("Y")
	if x.String() != "A.X" || y.String() != "A.Y" {
		t.Fatalf("children share storage: %s %s", x, y)
	}
	if !slices.Equal(goenum.ParsePath("A.B"), goenum.Path{"A", "B"}) || goenum.ParsePath("") != nil {
		t.Fatalf("ParsePath")
	}
}

func TestSpec_MarshalJSONKeepsOrder(t *testing.T) {
	b, err := json.Marshal(goenum.Of("Z", 1, "A", goenum.Pair("a", goenum.Meta{"k": "v"})))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != `{"Z":1,"A":["a",{"k":"v"}]}` {
		t.Fatalf("spec json: %s", b)
	}
}
