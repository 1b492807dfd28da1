package goenum_test

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/reoring/goenum"
)

func TestAsIssue_ErrorKinds(t *testing.T) {
	_, invalid := goenum.Build(goenum.Of("A", goenum.Of("B/C", true)))
	_, depth := goenum.Build(goenum.Of("A", goenum.Of("B", "b")), goenum.Options{MaxDepth: 1})
	_, dup := goenum.Build(goenum.Of("A", "a", "A", "a"))
	_, decode := goenum.DecodeSpec(goenum.JSONBytes([]byte(`{"x":`)))
	_, opts := goenum.Build(goenum.Of("A", "a"), goenum.Options{MaxBytes: -1})

	cases := []struct {
		err  error
		code string
		path string
	}{
		{invalid, goenum.CodeInvalidValue, "/A/B~1C"},
		{depth, goenum.CodeDepthExceeded, "/A"},
		{dup, goenum.CodeDuplicateKey, "/A"},
		{decode, goenum.CodeParseError, ""},
		{opts, goenum.CodeInvalidOptions, "/"},
	}
	for _, tc := range cases {
		iss, ok := goenum.AsIssue(tc.err)
		if !ok {
			t.Fatalf("%v: expected issue", tc.err)
		}
		if iss.Code != tc.code || iss.Path != tc.path {
			t.Fatalf("%v: got %+v want code=%s path=%s", tc.err, iss, tc.code, tc.path)
		}
		if iss.Message == "" {
			t.Fatalf("%v: empty message", tc.err)
		}
		// Wrapping keeps the issue reachable.
		if goenum.ErrorCode(fmt.Errorf("load: %w", tc.err)) != tc.code {
			t.Fatalf("%v: code lost through wrapping", tc.err)
		}
	}
}

func TestAsIssue_ForeignErrors(t *testing.T) {
	if _, ok := goenum.AsIssue(nil); ok {
		t.Fatalf("nil is not an issue")
	}
	if goenum.ErrorCode(io.EOF) != "" {
		t.Fatalf("foreign errors have no code")
	}
}

func TestDecodeError_Unwrap(t *testing.T) {
	_, err := goenum.DecodeSpec(goenum.JSONBytes([]byte(`{"x":`)))
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Fatalf("expected io.ErrUnexpectedEOF in chain, got %v", err)
	}
	if errors.Is(err, goenum.ErrDuplicateKey) {
		t.Fatalf("parse errors must not match ErrDuplicateKey")
	}
}

func TestInvalidValueError_Describe(t *testing.T) {
	_, err := goenum.Build(goenum.Of("A", []any{"a", "b", "c"}))
	if !strings.Contains(err.Error(), `["a","b","c"]`) || !strings.Contains(err.Error(), "at A") {
		t.Fatalf("message: %s", err)
	}
	_, err = goenum.Build(goenum.Of("F", func() {}))
	if !strings.Contains(err.Error(), "func()") {
		t.Fatalf("message: %s", err)
	}
}
