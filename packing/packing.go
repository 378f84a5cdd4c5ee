// Package packing implements the compressed block model and the three
// packing variants: simple (unaligned), aligned, and overflow.
//
// A variant decides only how fields map onto words; all variants share the
// block model, the width derivation, and the error taxonomy.
package packing

import (
	"fmt"
	"strings"

	"github.com/packio/bitpack/bitcursor"
	"github.com/packio/bitpack/shared"
)

// Variant tags the physical layout of a compressed block.
type Variant uint8

const (
	// Simple packs fields back to back; a field may straddle a word
	// boundary.
	Simple Variant = iota + 1
	// Aligned packs a whole number of fields per word; no field crosses a
	// word boundary.
	Aligned
	// Overflow packs a flag bit and a narrow field per element; flagged
	// elements live full-width in a side table.
	Overflow
)

func (v Variant) String() string {
	switch v {
	case Simple:
		return "simple"
	case Aligned:
		return "aligned"
	case Overflow:
		return "overflow"
	default:
		return fmt.Sprintf("variant(%d)", uint8(v))
	}
}

// ParseVariant resolves a variant from its human-facing name.
func ParseVariant(name string) (Variant, error) {
	switch strings.ToLower(name) {
	case "simple":
		return Simple, nil
	case "aligned":
		return Aligned, nil
	case "overflow":
		return Overflow, nil
	default:
		return 0, fmt.Errorf("%w: invalid `algorithm`; expected: one of simple, aligned, overflow; given: %q",
			shared.ErrInvalidConfig, name)
	}
}

// Codec compresses sequences into blocks of one fixed variant and serves
// random access into them. Codecs are stateless with respect to blocks and
// safe for concurrent use.
type Codec interface {
	Variant() Variant
	Compress(values []uint32) (*Block, error)
	Decompress(b *Block) ([]uint32, error)
	Get(b *Block, index int) (uint32, error)
}

type option struct {
	outlierFraction float64
	normalWidth     *uint8
	logger          shared.Logger
}

func (o *option) validate() error {
	if o.outlierFraction < 0 || o.outlierFraction > 1 {
		return fmt.Errorf("%w: invalid `outlierFraction`; expected: 0 <= f <= 1, given: %v",
			shared.ErrInvalidConfig, o.outlierFraction)
	}
	if o.normalWidth != nil && *o.normalWidth > bitcursor.WordBits {
		return fmt.Errorf("%w: invalid `normalWidth`; expected: 0..%d, given: %d",
			shared.ErrInvalidConfig, bitcursor.WordBits, *o.normalWidth)
	}
	if o.logger == nil {
		return fmt.Errorf("%w: invalid `logger`; expected: a logger, given: nil",
			shared.ErrInvalidConfig)
	}
	return nil
}

// exactWidth resolves the field width for variants without an overflow
// escape: the forced width when one was given, otherwise the minimal width
// of the data.
func (o *option) exactWidth(values []uint32) (uint8, error) {
	min := MinWidth(values)
	if o.normalWidth == nil {
		return min, nil
	}
	if w := *o.normalWidth; w >= min {
		return w, nil
	}
	return 0, fmt.Errorf("%w: invalid `normalWidth`; expected: >= %d to represent the maximum, given: %d",
		shared.ErrInvalidConfig, min, *o.normalWidth)
}

func newOption(opts ...OptionFunc) (*option, error) {
	o := &option{
		outlierFraction: DefaultOutlierFraction,
		logger:          shared.NoopLogger{},
	}
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}
	if err := o.validate(); err != nil {
		return nil, err
	}
	return o, nil
}

// OptionFunc modifies codec construction.
type OptionFunc func(*option) error

// WithOutlierFraction sets the share of values, by magnitude, the overflow
// variant may move to the side table when deriving the field width.
func WithOutlierFraction(f float64) OptionFunc {
	return func(o *option) error {
		o.outlierFraction = f
		return nil
	}
}

// WithNormalWidth forces the field width instead of deriving it from the
// data. Width 0 is valid only for the overflow variant, where every nonzero
// value becomes an outlier.
func WithNormalWidth(width uint8) OptionFunc {
	return func(o *option) error {
		o.normalWidth = new(uint8)
		*o.normalWidth = width
		return nil
	}
}

// WithLogger sets the logger codecs report width decisions through.
func WithLogger(logger shared.Logger) OptionFunc {
	return func(o *option) error {
		o.logger = logger
		return nil
	}
}
