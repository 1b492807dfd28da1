package engine

import (
	"errors"
	"io"
	"testing"
)

// sliceSource replays tokens; each token's Offset doubles as the location.
type sliceSource struct {
	toks []Token
	pos  int
	loc  int64
}

func (s *sliceSource) NextToken() (Token, error) {
	if s.pos >= len(s.toks) {
		return Token{}, io.EOF
	}
	t := s.toks[s.pos]
	s.pos++
	s.loc = t.Offset
	return t, nil
}

func (s *sliceSource) Location() int64 { return s.loc }

func obj(keysAndValues ...Token) []Token {
	out := []Token{{Kind: KindBeginObject}}
	out = append(out, keysAndValues...)
	return append(out, Token{Kind: KindEndObject})
}

func key(k string) Token { return Token{Kind: KindKey, String: k} }
func str(s string) Token { return Token{Kind: KindString, String: s} }

func TestDecodeOrdered_KeepsKeyOrder(t *testing.T) {
	src := &sliceSource{toks: obj(key("b"), str("1"), key("a"), Token{Kind: KindNumber, Number: "2"})}
	v, err := DecodeOrdered(src)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	o, ok := v.(*Object)
	if !ok || len(o.Keys) != 2 || o.Keys[0] != "b" || o.Keys[1] != "a" {
		t.Fatalf("unexpected object: %#v", v)
	}
	if o.Values[1] != Number("2") {
		t.Fatalf("numbers stay raw, got %#v", o.Values[1])
	}
}

func TestDecodeOrdered_Truncated(t *testing.T) {
	src := &sliceSource{toks: []Token{{Kind: KindBeginObject}, key("a")}}
	if _, err := DecodeOrdered(src); !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Fatalf("expected ErrUnexpectedEOF, got %v", err)
	}
	if _, err := DecodeOrdered(&sliceSource{}); !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Fatalf("empty input: expected ErrUnexpectedEOF, got %v", err)
	}
}

func TestDecodeOrdered_TrailingData(t *testing.T) {
	toks := append(obj(), obj()...)
	if _, err := DecodeOrdered(&sliceSource{toks: toks}); !errors.Is(err, ErrTrailingData) {
		t.Fatalf("expected ErrTrailingData, got %v", err)
	}
}

func TestEnforce_DuplicateKey(t *testing.T) {
	inner := &sliceSource{toks: obj(key("a"), str("1"), key("a"), str("2"))}
	_, err := DecodeOrdered(WrapWithEnforcement(inner, EnforceOptions{RejectDuplicates: true}))
	var ie IssueError
	if !errors.As(err, &ie) {
		t.Fatalf("expected IssueError, got %v", err)
	}
	if ie.Code != CodeDuplicateKey || ie.Path != "/a" {
		t.Fatalf("unexpected issue: %+v", ie.SimpleIssue)
	}
}

func TestEnforce_DuplicatesAllowedWhenDisabled(t *testing.T) {
	inner := &sliceSource{toks: obj(key("a"), str("1"), key("a"), str("2"))}
	if _, err := DecodeOrdered(WrapWithEnforcement(inner, EnforceOptions{})); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestEnforce_SameKeyInSiblingObjects(t *testing.T) {
	toks := obj(key("x"), Token{Kind: KindBeginObject}, key("a"), str("1"), Token{Kind: KindEndObject},
		key("y"), Token{Kind: KindBeginObject}, key("a"), str("2"), Token{Kind: KindEndObject})
	if _, err := DecodeOrdered(WrapWithEnforcement(&sliceSource{toks: toks}, EnforceOptions{RejectDuplicates: true})); err != nil {
		t.Fatalf("sibling objects may reuse keys: %v", err)
	}
}

func TestEnforce_MaxNestingPath(t *testing.T) {
	toks := obj(key("a"), Token{Kind: KindBeginArray}, str("v"), Token{Kind: KindBeginObject}, Token{Kind: KindEndObject}, Token{Kind: KindEndArray})
	_, err := DecodeOrdered(WrapWithEnforcement(&sliceSource{toks: toks}, EnforceOptions{MaxNesting: 2}))
	var ie IssueError
	if !errors.As(err, &ie) || ie.Path != "/a/1" {
		t.Fatalf("expected nesting issue at /a/1, got %v (%+v)", err, ie.SimpleIssue)
	}
}

func TestEnforce_MaxBytes(t *testing.T) {
	toks := obj(key("a"), Token{Kind: KindString, String: "long", Offset: 100})
	toks[0].Offset, toks[1].Offset = 1, 4
	_, err := DecodeOrdered(WrapWithEnforcement(&sliceSource{toks: toks}, EnforceOptions{MaxBytes: 10}))
	var ie IssueError
	if !errors.As(err, &ie) || ie.Code != CodeTruncated {
		t.Fatalf("expected truncated, got %v", err)
	}
}

func TestJoinJSONPointer_Escapes(t *testing.T) {
	if got := joinJSONPointer("/x", "a/b~c"); got != "/x/a~1b~0c" {
		t.Fatalf("got %s", got)
	}
}
