// Package yaml reads enum specs from YAML documents. Mapping order is kept,
// duplicate keys are rejected with both positions, and the YAML special
// floats (.nan, .inf, -.inf) become NaN and ±Inf numbers. Options.MaxBytes
// and Options.MaxNesting bound the input, and alias expansion is capped.
package yaml

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	yamlv3 "gopkg.in/yaml.v3"

	"github.com/reoring/goenum"
)

// DuplicateKeyError reports a key declared twice in one YAML mapping, with
// the positions of both occurrences.
type DuplicateKeyError struct {
	Key       string
	Path      goenum.Path
	FirstLine int
	FirstCol  int
	Line      int
	Col       int
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("duplicate YAML key %q at %d:%d (first at %d:%d)", e.Key, e.Line, e.Col, e.FirstLine, e.FirstCol)
}

func (e *DuplicateKeyError) Is(target error) bool { return target == goenum.ErrDuplicateKey }
func (e *DuplicateKeyError) Code() string         { return goenum.CodeDuplicateKey }

// ErrNotMapping is returned when the document root is not a mapping.
var ErrNotMapping = errors.New("yaml: document root must be a mapping")

// ErrAliasExpansion is returned when aliases expand into a disproportionate
// share of the decoded nodes.
var ErrAliasExpansion = errors.New("yaml: document contains excessive aliasing")

// Decode reads the first YAML document from r. Only MaxBytes and MaxNesting
// of the last Options are consulted.
func Decode(r io.Reader, opts ...goenum.Options) (goenum.Spec, error) {
	opt, err := pickOptions(opts)
	if err != nil {
		return nil, err
	}
	if opt.MaxBytes > 0 {
		data, err := io.ReadAll(io.LimitReader(r, opt.MaxBytes+1))
		if err != nil {
			return nil, fmt.Errorf("yaml: %w", err)
		}
		if int64(len(data)) > opt.MaxBytes {
			return nil, &goenum.DecodeError{
				ErrCode: goenum.CodeTruncated,
				Message: fmt.Sprintf("input exceeds %d bytes", opt.MaxBytes),
				Offset:  opt.MaxBytes,
			}
		}
		r = bytes.NewReader(data)
	}
	var root yamlv3.Node
	if err := yamlv3.NewDecoder(r).Decode(&root); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("yaml: empty document: %w", io.ErrUnexpectedEOF)
		}
		return nil, fmt.Errorf("yaml: %w", err)
	}
	doc := &root
	if doc.Kind == yamlv3.DocumentNode {
		if len(doc.Content) == 0 {
			return nil, ErrNotMapping
		}
		doc = doc.Content[0]
	}
	w := walker{maxNesting: opt.MaxNesting}
	v, err := w.convert(doc, nil)
	if err != nil {
		return nil, err
	}
	spec, ok := v.(goenum.Spec)
	if !ok {
		return nil, fmt.Errorf("%w (line %d)", ErrNotMapping, doc.Line)
	}
	return spec, nil
}

// DecodeBytes is Decode over an in-memory document.
func DecodeBytes(b []byte, opts ...goenum.Options) (goenum.Spec, error) {
	return Decode(bytes.NewReader(b), opts...)
}

// Build decodes r and builds the registry with the same options.
func Build(r io.Reader, opts ...goenum.Options) (*goenum.Node, error) {
	spec, err := Decode(r, opts...)
	if err != nil {
		return nil, err
	}
	return goenum.Build(spec, opts...)
}

func pickOptions(opts []goenum.Options) (goenum.Options, error) {
	var opt goenum.Options
	if len(opts) > 0 {
		opt = opts[len(opts)-1]
	}
	if opt.MaxBytes < 0 || opt.MaxNesting < 0 {
		return opt, fmt.Errorf("%w: MaxBytes and MaxNesting must not be negative", goenum.ErrInvalidOptions)
	}
	if opt.MaxNesting == 0 {
		opt.MaxNesting = goenum.DefaultMaxNesting
	}
	return opt, nil
}

const (
	aliasRatioRangeLow  = 400000
	aliasRatioRangeHigh = 4000000
	aliasRatioRange     = float64(aliasRatioRangeHigh - aliasRatioRangeLow)
)

// allowedAliasRatio is the share of decoded nodes that may come from alias
// expansion: 99% for small documents, falling to 10% for huge ones.
func allowedAliasRatio(decoded int) float64 {
	switch {
	case decoded <= aliasRatioRangeLow:
		return 0.99
	case decoded >= aliasRatioRangeHigh:
		return 0.10
	default:
		return 0.99 - 0.89*(float64(decoded-aliasRatioRangeLow)/aliasRatioRange)
	}
}

// walker tracks anchors being expanded so a self-referencing alias fails
// instead of recursing forever, and counts nodes so alias fan-out is bounded.
type walker struct {
	expanding  []*yamlv3.Node
	maxNesting int
	decoded    int
	aliased    int
}

func (w *walker) convert(n *yamlv3.Node, path goenum.Path) (any, error) {
	w.decoded++
	if len(w.expanding) > 0 {
		w.aliased++
	}
	if w.aliased > 100 && w.decoded > 1000 && float64(w.aliased)/float64(w.decoded) > allowedAliasRatio(w.decoded) {
		return nil, fmt.Errorf("%w (at %d:%d)", ErrAliasExpansion, n.Line, n.Column)
	}
	container := n.Kind == yamlv3.MappingNode || n.Kind == yamlv3.SequenceNode
	if container && w.maxNesting > 0 && len(path)+1 > w.maxNesting {
		return nil, &goenum.DecodeError{
			ErrCode: goenum.CodeParseError,
			Path:    path.Pointer(),
			Message: fmt.Sprintf("nesting exceeds %d", w.maxNesting),
			Offset:  -1,
		}
	}
	switch n.Kind {
	case yamlv3.AliasNode:
		for _, a := range w.expanding {
			if a == n.Alias {
				return nil, fmt.Errorf("yaml: recursive alias %q at %d:%d", n.Value, n.Line, n.Column)
			}
		}
		w.expanding = append(w.expanding, n.Alias)
		v, err := w.convert(n.Alias, path)
		w.expanding = w.expanding[:len(w.expanding)-1]
		return v, err
	case yamlv3.MappingNode:
		spec := make(goenum.Spec, 0, len(n.Content)/2)
		first := make(map[string][2]int, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			k, v := n.Content[i], n.Content[i+1]
			key := k.Value
			if pos, dup := first[key]; dup {
				return nil, &DuplicateKeyError{Key: key, Path: path.Child(key), FirstLine: pos[0], FirstCol: pos[1], Line: k.Line, Col: k.Column}
			}
			first[key] = [2]int{k.Line, k.Column}
			val, err := w.convert(v, path.Child(key))
			if err != nil {
				return nil, err
			}
			spec = append(spec, goenum.Field{Key: key, Value: val})
		}
		return spec, nil
	case yamlv3.SequenceNode:
		arr := make([]any, 0, len(n.Content))
		for i, c := range n.Content {
			v, err := w.convert(c, path.Child(strconv.Itoa(i)))
			if err != nil {
				return nil, err
			}
			arr = append(arr, v)
		}
		return arr, nil
	case yamlv3.ScalarNode:
		return scalar(n), nil
	case yamlv3.DocumentNode:
		if len(n.Content) == 0 {
			return nil, nil
		}
		return w.convert(n.Content[0], path)
	}
	return nil, nil
}

func scalar(n *yamlv3.Node) any {
	switch n.ShortTag() {
	case "!!null":
		return nil
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err == nil {
			return b
		}
	case "!!int":
		if i, err := strconv.ParseInt(strings.ReplaceAll(n.Value, "_", ""), 0, 64); err == nil {
			return float64(i)
		}
		if u, err := strconv.ParseUint(strings.ReplaceAll(n.Value, "_", ""), 0, 64); err == nil {
			return float64(u)
		}
	case "!!float":
		switch strings.ToLower(n.Value) {
		case ".nan":
			return math.NaN()
		case ".inf", "+.inf":
			return math.Inf(1)
		case "-.inf":
			return math.Inf(-1)
		}
		if f, err := strconv.ParseFloat(strings.ReplaceAll(n.Value, "_", ""), 64); err == nil {
			return f
		}
	}
	return n.Value
}
