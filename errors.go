package goenum

import (
	"errors"
	"fmt"
	"reflect"
)

// Error codes (exported consts for IDE completion and stable machine output).
const (
	CodeInvalidValue   = "invalid_value"
	CodeDepthExceeded  = "depth_exceeded"
	CodeDuplicateKey   = "duplicate_key"
	CodeInvalidOptions = "invalid_options"
	CodeParseError     = "parse_error"
	CodeTruncated      = "truncated"
)

var (
	// ErrInvalidValue matches every *InvalidValueError.
	ErrInvalidValue = errors.New("goenum: invalid enum value")
	// ErrDepthExceeded matches every *DepthExceededError.
	ErrDepthExceeded = errors.New("goenum: maximum nesting depth exceeded")
	// ErrDuplicateKey matches every *DuplicateKeyError and duplicate-key *DecodeError.
	ErrDuplicateKey = errors.New("goenum: duplicate key")
	// ErrInvalidOptions is returned for out-of-range Options.
	ErrInvalidOptions = errors.New("goenum: invalid options")
)

// InvalidValueError reports an entry that is neither a leaf, a (leaf,
// metadata) pair nor a nested level.
type InvalidValueError struct {
	Value any
	Path  Path
}

func (e *InvalidValueError) Error() string {
	return fmt.Sprintf("goenum: invalid enum value format at %s: %s (expected one of: string, number, [value, metadata] pair, nested mapping)",
		e.Path, describe(e.Value))
}

func (e *InvalidValueError) Is(target error) bool { return target == ErrInvalidValue }
func (e *InvalidValueError) Code() string         { return CodeInvalidValue }

// DepthExceededError reports a level entered at or beyond the configured
// maximum depth.
type DepthExceededError struct {
	Depth    int
	MaxDepth int
	Path     Path
}

func (e *DepthExceededError) Error() string {
	return fmt.Sprintf("goenum: maximum nesting depth (%d) exceeded at level %d (path: %s); flatten the structure or split it into smaller enums",
		e.MaxDepth, e.Depth, e.Path)
}

func (e *DepthExceededError) Is(target error) bool { return target == ErrDepthExceeded }
func (e *DepthExceededError) Code() string         { return CodeDepthExceeded }

// DuplicateKeyError reports a key declared twice within one level.
type DuplicateKeyError struct {
	Key  string
	Path Path
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("goenum: key %q declared twice at %s", e.Key, e.Path)
}

func (e *DuplicateKeyError) Is(target error) bool { return target == ErrDuplicateKey }
func (e *DuplicateKeyError) Code() string         { return CodeDuplicateKey }

// DecodeError reports a failure while reading a spec from a Source. Path is a
// JSON Pointer; Offset is the byte position when known (-1 otherwise).
type DecodeError struct {
	ErrCode string
	Path    string
	Message string
	Offset  int64
	Err     error
}

func (e *DecodeError) Error() string {
	if e.Path == "" {
		return "goenum: decode: " + e.Message
	}
	return fmt.Sprintf("goenum: decode %s: %s", e.Path, e.Message)
}

func (e *DecodeError) Unwrap() error { return e.Err }
func (e *DecodeError) Code() string  { return e.ErrCode }
func (e *DecodeError) Is(target error) bool {
	return target == ErrDuplicateKey && e.ErrCode == CodeDuplicateKey
}

// Issue is a flat, serializable view of a goenum error.
type Issue struct {
	Code    string `json:"code"`
	Path    string `json:"path"` // JSON Pointer.
	Message string `json:"message"`
}

// AsIssue flattens err into an Issue. Errors that do not originate from goenum
// report false.
func AsIssue(err error) (Issue, bool) {
	if err == nil {
		return Issue{}, false
	}
	var (
		iv  *InvalidValueError
		de  *DepthExceededError
		dk  *DuplicateKeyError
		dec *DecodeError
	)
	switch {
	case errors.As(err, &iv):
		return Issue{Code: iv.Code(), Path: iv.Path.Pointer(), Message: iv.Error()}, true
	case errors.As(err, &de):
		return Issue{Code: de.Code(), Path: de.Path.Pointer(), Message: de.Error()}, true
	case errors.As(err, &dk):
		return Issue{Code: dk.Code(), Path: dk.Path.Pointer(), Message: dk.Error()}, true
	case errors.As(err, &dec):
		return Issue{Code: dec.Code(), Path: dec.Path, Message: dec.Message}, true
	case errors.Is(err, ErrInvalidOptions):
		return Issue{Code: CodeInvalidOptions, Path: "/", Message: err.Error()}, true
	}
	return Issue{}, false
}

// ErrorCode returns the goenum code carried by err, or "" when none applies.
func ErrorCode(err error) string {
	if iss, ok := AsIssue(err); ok {
		return iss.Code
	}
	return ""
}

// describe renders an offending value for diagnostics.
func describe(v any) string {
	if v == nil {
		return "null"
	}
	switch reflect.ValueOf(v).Kind() {
	case reflect.Func, reflect.Chan, reflect.UnsafePointer, reflect.Complex64, reflect.Complex128:
		return fmt.Sprintf("%T", v)
	}
	b, err := marshalAny(v)
	if err != nil {
		return fmt.Sprintf("%T(%v)", v, v)
	}
	return string(b)
}
