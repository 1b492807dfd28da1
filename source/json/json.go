// Package json adapts encoding/json's streaming decoder to the engine token
// stream. It is the default goenum JSON driver.
package json

import (
	"bytes"
	"encoding/json"
	"io"
	"strconv"

	eng "github.com/reoring/goenum/internal/engine"
)

type containerKind int

const (
	kindObject containerKind = iota
	kindArray
)

type frame struct {
	kind         containerKind
	expectingKey bool
}

type jsonSource struct {
	dec        *json.Decoder
	stack      []frame
	lastOffset int64
}

// NewReader wraps an io.Reader into an engine.TokenSource for JSON.
func NewReader(r io.Reader) eng.TokenSource {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	return &jsonSource{dec: dec, lastOffset: -1}
}

// NewBytes wraps a byte slice into an engine.TokenSource for JSON.
func NewBytes(b []byte) eng.TokenSource { return NewReader(bytes.NewReader(b)) }

func (s *jsonSource) NextToken() (eng.Token, error) {
	tok, err := s.dec.Token()
	if err != nil {
		return eng.Token{}, err
	}
	s.lastOffset = s.dec.InputOffset()

	switch v := tok.(type) {
	case json.Delim:
		switch v {
		case '{':
			s.stack = append(s.stack, frame{kind: kindObject, expectingKey: true})
			return s.token(eng.Token{Kind: eng.KindBeginObject}), nil
		case '[':
			s.stack = append(s.stack, frame{kind: kindArray})
			return s.token(eng.Token{Kind: eng.KindBeginArray}), nil
		case '}', ']':
			if n := len(s.stack); n > 0 {
				s.stack = s.stack[:n-1]
			}
			s.valueDone()
			kind := eng.KindEndObject
			if v == ']' {
				kind = eng.KindEndArray
			}
			return s.token(eng.Token{Kind: kind}), nil
		}
	case string:
		if n := len(s.stack); n > 0 {
			top := &s.stack[n-1]
			if top.kind == kindObject && top.expectingKey {
				top.expectingKey = false
				return s.token(eng.Token{Kind: eng.KindKey, String: v}), nil
			}
		}
		s.valueDone()
		return s.token(eng.Token{Kind: eng.KindString, String: v}), nil
	case bool:
		s.valueDone()
		return s.token(eng.Token{Kind: eng.KindBool, Bool: v}), nil
	case json.Number:
		s.valueDone()
		return s.token(eng.Token{Kind: eng.KindNumber, Number: string(v)}), nil
	case float64:
		s.valueDone()
		return s.token(eng.Token{Kind: eng.KindNumber, Number: strconv.FormatFloat(v, 'g', -1, 64)}), nil
	}
	s.valueDone()
	return s.token(eng.Token{Kind: eng.KindNull}), nil
}

func (s *jsonSource) token(t eng.Token) eng.Token {
	t.Offset = s.lastOffset
	return t
}

// valueDone flips the enclosing object back to expecting a key.
func (s *jsonSource) valueDone() {
	if n := len(s.stack); n > 0 {
		top := &s.stack[n-1]
		if top.kind == kindObject && !top.expectingKey {
			top.expectingKey = true
		}
	}
}

func (s *jsonSource) Location() int64 { return s.lastOffset }
