package goenum

import (
	"context"
	"log/slog"
	"slices"
)

// Build turns spec into a registry tree. spec must be object-shaped (Spec,
// string-keyed map or struct). Any invalid entry, duplicate key or level
// entered at Options.MaxDepth fails the whole build; no partial tree is
// returned. When several Options are given the last one wins.
func Build(spec any, opts ...Options) (*Node, error) {
	opt, err := pickOptions(opts)
	if err != nil {
		return nil, err
	}
	if Classify(spec) != KindNested {
		return nil, &InvalidValueError{Value: spec, Path: nil}
	}
	p := &processor{maxDepth: opt.MaxDepth, log: opt.Logger}
	return p.process(spec, 0, nil)
}

// MustBuild is like Build but panics on error. It is intended for
// package-level registries declared from literals.
func MustBuild(spec any, opts ...Options) *Node {
	n, err := Build(spec, opts...)
	if err != nil {
		panic(err)
	}
	return n
}

type processor struct {
	maxDepth int
	log      *slog.Logger
}

// process builds one level. The depth check runs before any entry is looked
// at, so even an empty level is rejected once it sits at maxDepth.
func (p *processor) process(level any, depth int, path Path) (*Node, error) {
	if depth >= p.maxDepth {
		return nil, &DepthExceededError{Depth: depth, MaxDepth: p.maxDepth, Path: path}
	}
	fields, _ := objectFields(level)
	// The level is kept for the lazy plain view; detach it from caller-owned memory.
	fields = slices.Clone(fields)
	n := &Node{
		depth:    depth,
		path:     path,
		children: make([]child, 0, len(fields)),
		index:    make(map[string]int, len(fields)),
	}
	var direct []*Item
	for _, f := range fields {
		childPath := path.Child(f.Key)
		if _, dup := n.index[f.Key]; dup {
			return nil, &DuplicateKeyError{Key: f.Key, Path: childPath}
		}
		c := child{key: f.Key}
		switch Classify(f.Value) {
		case KindLeaf:
			v, _ := ValueOf(f.Value)
			c.item = newItem(f.Key, childPath, v, nil, false)
			direct = append(direct, c.item)
		case KindLeafWithMeta:
			v, meta, _ := splitPair(f.Value)
			c.item = newItem(f.Key, childPath, v, meta, true)
			direct = append(direct, c.item)
		case KindNested:
			sub, err := p.process(f.Value, depth+1, childPath)
			if err != nil {
				return nil, err
			}
			c.node = sub
		default:
			return nil, &InvalidValueError{Value: f.Value, Path: childPath}
		}
		n.index[f.Key] = len(n.children)
		n.children = append(n.children, c)
	}
	if len(direct) > 0 {
		n.features = newFeatures(fields, direct)
	}
	if p.log != nil {
		p.log.LogAttrs(context.Background(), slog.LevelDebug, "goenum: level built",
			slog.Int("depth", depth),
			slog.String("path", path.String()),
			slog.Int("children", len(n.children)),
			slog.Int("values", len(direct)),
		)
	}
	return n, nil
}
