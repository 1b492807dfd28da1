package goenum

import (
	"fmt"
	"log/slog"
)

// DefaultMaxDepth bounds nesting when Options.MaxDepth is zero. Depth 0 is
// the top level, so the default admits ten levels (0..9).
const DefaultMaxDepth = 10

// DefaultMaxNesting bounds raw document nesting while decoding a Source.
// Metadata objects nest freely, so this is looser than MaxDepth.
const DefaultMaxNesting = 64

// Options bundles build options.
type Options struct {
	// MaxDepth is the number of nested levels a spec may enter. Zero selects
	// DefaultMaxDepth; negative values are rejected.
	MaxDepth int
	// Logger receives Debug records for every built level. Nil disables logging.
	Logger *slog.Logger

	// MaxBytes caps the input consumed by DecodeSpec/BuildFrom (0 = unlimited).
	MaxBytes int64
	// MaxNesting bounds object/array nesting while decoding a Source. Zero
	// selects DefaultMaxNesting.
	MaxNesting int
}

// pickOptions applies the last-wins convention for variadic options and
// fills defaults.
func pickOptions(opts []Options) (Options, error) {
	var opt Options
	if len(opts) > 0 {
		opt = opts[len(opts)-1]
	}
	if opt.MaxDepth < 0 {
		return opt, fmt.Errorf("%w: MaxDepth must be positive, got %d", ErrInvalidOptions, opt.MaxDepth)
	}
	if opt.MaxNesting < 0 {
		return opt, fmt.Errorf("%w: MaxNesting must be positive, got %d", ErrInvalidOptions, opt.MaxNesting)
	}
	if opt.MaxBytes < 0 {
		return opt, fmt.Errorf("%w: MaxBytes must not be negative, got %d", ErrInvalidOptions, opt.MaxBytes)
	}
	if opt.MaxDepth == 0 {
		opt.MaxDepth = DefaultMaxDepth
	}
	if opt.MaxNesting == 0 {
		opt.MaxNesting = DefaultMaxNesting
	}
	return opt, nil
}
