package goenum

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"sync"

	eng "github.com/reoring/goenum/internal/engine"
	jsonsrc "github.com/reoring/goenum/source/json"
)

// TokenKind enumerates JSON token kinds.
type TokenKind int

const (
	TokenBeginObject TokenKind = iota
	TokenEndObject
	TokenBeginArray
	TokenEndArray
	TokenKey
	TokenString
	TokenNumber
	TokenBool
	TokenNull
)

// Token describes a token in the input stream. Offset records the byte position
// when known (-1 otherwise).
type Token struct {
	Kind   TokenKind
	String string // Stored for key/string tokens.
	Number string // Raw number text.
	Bool   bool
	Offset int64
}

// Source abstracts over token streams a spec can be decoded from.
type Source interface {
	NextToken() (Token, error)
	Location() int64 // byte offset; -1 if unknown
}

// JSONDriver converts JSON input into a Source via a pluggable SPI. The default
// implementation is based on encoding/json and may be swapped with SetJSONDriver
// (see source/gojson).
type JSONDriver interface {
	NewReader(r io.Reader) Source
	NewBytes(b []byte) Source
	Name() string
}

var (
	jsonDriverMu      sync.RWMutex
	currentJSONDriver JSONDriver = defaultJSONDriver{}
)

// SetJSONDriver replaces the global JSON driver; nil values are ignored.
func SetJSONDriver(d JSONDriver) {
	if d == nil {
		return
	}
	jsonDriverMu.Lock()
	currentJSONDriver = d
	jsonDriverMu.Unlock()
}

// UseDefaultJSONDriver restores the default encoding/json-backed driver.
func UseDefaultJSONDriver() {
	jsonDriverMu.Lock()
	currentJSONDriver = defaultJSONDriver{}
	jsonDriverMu.Unlock()
}

// CurrentJSONDriver returns the driver used by JSONReader and JSONBytes.
func CurrentJSONDriver() JSONDriver {
	jsonDriverMu.RLock()
	d := currentJSONDriver
	jsonDriverMu.RUnlock()
	return d
}

type defaultJSONDriver struct{}

func (defaultJSONDriver) NewReader(r io.Reader) Source { return SourceFromEngine(jsonsrc.NewReader(r)) }
func (defaultJSONDriver) NewBytes(b []byte) Source    { return SourceFromEngine(jsonsrc.NewBytes(b)) }
func (defaultJSONDriver) Name() string                { return "encoding/json" }

// JSONReader wraps an io.Reader as a JSON Source.
func JSONReader(r io.Reader) Source { return CurrentJSONDriver().NewReader(r) }

// JSONBytes wraps a byte slice as a JSON Source.
func JSONBytes(b []byte) Source { return CurrentJSONDriver().NewBytes(b) }

// SourceFromEngine wraps an engine.TokenSource as a goenum.Source.
func SourceFromEngine(inner eng.TokenSource) Source {
	return &engineSourceAdapter{inner: inner}
}

// DecodeSpec reads one JSON document from src into a Spec, preserving key
// order. Objects become Spec, arrays []any and numbers float64. Duplicate
// keys are rejected; Options.MaxBytes and Options.MaxNesting bound the input.
// The document root must be an object.
func DecodeSpec(src Source, opts ...Options) (Spec, error) {
	opt, err := pickOptions(opts)
	if err != nil {
		return nil, err
	}
	enforced := eng.WrapWithEnforcement(engineTokenSource(src), eng.EnforceOptions{
		RejectDuplicates: true,
		MaxNesting:       opt.MaxNesting,
		MaxBytes:         opt.MaxBytes,
	})
	raw, err := eng.DecodeOrdered(enforced)
	if err != nil {
		return nil, toDecodeError(err, src.Location())
	}
	obj, ok := raw.(*eng.Object)
	if !ok {
		return nil, &DecodeError{ErrCode: CodeParseError, Path: "/", Message: fmt.Sprintf("document root must be an object, got %s", describe(raw)), Offset: -1}
	}
	v, err := fromEngine(obj, "")
	if err != nil {
		return nil, err
	}
	return v.(Spec), nil
}

// BuildFrom decodes src with DecodeSpec and builds the registry.
func BuildFrom(src Source, opts ...Options) (*Node, error) {
	spec, err := DecodeSpec(src, opts...)
	if err != nil {
		return nil, err
	}
	return Build(spec, opts...)
}

func fromEngine(v any, ptr string) (any, error) {
	switch t := v.(type) {
	case *eng.Object:
		s := make(Spec, len(t.Keys))
		for i, k := range t.Keys {
			cv, err := fromEngine(t.Values[i], ptr+"/"+jsonPointerEscaper.Replace(k))
			if err != nil {
				return nil, err
			}
			s[i] = Field{Key: k, Value: cv}
		}
		return s, nil
	case []any:
		out := make([]any, len(t))
		for i := range t {
			cv, err := fromEngine(t[i], ptr+"/"+strconv.Itoa(i))
			if err != nil {
				return nil, err
			}
			out[i] = cv
		}
		return out, nil
	case eng.Number:
		f, err := strconv.ParseFloat(string(t), 64)
		if err != nil && !(errors.Is(err, strconv.ErrRange) && math.IsInf(f, 0)) {
			return nil, &DecodeError{ErrCode: CodeParseError, Path: ptr, Message: "invalid number " + strconv.Quote(string(t)), Offset: -1, Err: err}
		}
		return f, nil
	default:
		return v, nil
	}
}

func toDecodeError(err error, offset int64) error {
	var ie eng.IssueError
	if errors.As(err, &ie) {
		code := ie.Code
		return &DecodeError{ErrCode: code, Path: ie.Path, Message: ie.Message, Offset: ie.Offset, Err: err}
	}
	msg := err.Error()
	if errors.Is(err, io.ErrUnexpectedEOF) {
		msg = "unexpected end of input"
	}
	return &DecodeError{ErrCode: CodeParseError, Message: msg, Offset: offset, Err: err}
}

type engineSourceAdapter struct {
	inner eng.TokenSource
}

func (s *engineSourceAdapter) NextToken() (Token, error) {
	t, err := s.inner.NextToken()
	if err != nil {
		return Token{}, err
	}
	return Token{Kind: TokenKind(t.Kind), String: t.String, Number: t.Number, Bool: t.Bool, Offset: t.Offset}, nil
}
func (s *engineSourceAdapter) Location() int64 { return s.inner.Location() }

// tokenSourceAdapter exposes a third-party Source to the engine.
type tokenSourceAdapter struct{ inner Source }

func (a *tokenSourceAdapter) NextToken() (eng.Token, error) {
	t, err := a.inner.NextToken()
	if err != nil {
		return eng.Token{}, err
	}
	return eng.Token{Kind: eng.Kind(t.Kind), String: t.String, Number: t.Number, Bool: t.Bool, Offset: t.Offset}, nil
}

func (a *tokenSourceAdapter) Location() int64 { return a.inner.Location() }

func engineTokenSource(s Source) eng.TokenSource {
	if ea, ok := s.(*engineSourceAdapter); ok {
		return ea.inner
	}
	return &tokenSourceAdapter{inner: s}
}
