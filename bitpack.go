// Package bitpack compresses sequences of non-negative integers by packing
// each element into a fixed number of bits, and serves random access into
// the compressed form without decompressing it.
//
// Three layouts are available. The simple variant packs fields back to back
// and lets them straddle word boundaries. The aligned variant keeps every
// field inside one word, trading some density for word-local access. The
// overflow variant stores a narrow field plus a flag per element and moves
// oversized values to a full-width side table, which pays off when a small
// share of the data is much larger than the rest.
//
// Signed sequences are handled by CompressSigned and friends, which map the
// values onto the non-negative domain first. The block layouts themselves
// live in the packing package; this package is the assembled surface most
// callers want.
package bitpack

import (
	"fmt"

	"github.com/packio/bitpack/packing"
	"github.com/packio/bitpack/shared"
)

type (
	Block      = packing.Block
	Codec      = packing.Codec
	Variant    = packing.Variant
	OptionFunc = packing.OptionFunc
)

const (
	Simple   = packing.Simple
	Aligned  = packing.Aligned
	Overflow = packing.Overflow
)

// DefaultOutlierFraction is the default share of values the overflow
// variant may push to the side table.
const DefaultOutlierFraction = packing.DefaultOutlierFraction

var (
	WithOutlierFraction = packing.WithOutlierFraction
	WithNormalWidth     = packing.WithNormalWidth
	WithLogger          = packing.WithLogger

	ParseVariant = packing.ParseVariant
)

var (
	ErrIndexOutOfRange = shared.ErrIndexOutOfRange
	ErrIntegrity       = shared.ErrIntegrity
	ErrInvalidConfig   = shared.ErrInvalidConfig
)

// New returns the codec implementing the given variant.
func New(variant Variant, opts ...OptionFunc) (Codec, error) {
	switch variant {
	case Simple:
		return packing.NewSimple(opts...)
	case Aligned:
		return packing.NewAligned(opts...)
	case Overflow:
		return packing.NewOverflow(opts...)
	default:
		return nil, fmt.Errorf("%w: invalid `variant`; expected: one of simple, aligned, overflow; given: %s",
			shared.ErrInvalidConfig, variant)
	}
}

// NewFromName resolves a variant by name and returns its codec.
func NewFromName(name string, opts ...OptionFunc) (Codec, error) {
	variant, err := ParseVariant(name)
	if err != nil {
		return nil, err
	}
	return New(variant, opts...)
}

// Compress packs values into a block of the given variant.
func Compress(variant Variant, values []uint32, opts ...OptionFunc) (*Block, error) {
	codec, err := New(variant, opts...)
	if err != nil {
		return nil, err
	}
	return codec.Compress(values)
}

// Decompress restores the full sequence of a self-describing block. The
// block is validated first, so a corrupt or foreign header surfaces as
// ErrIntegrity instead of a misdecode.
func Decompress(b *Block) ([]uint32, error) {
	if err := validateBlock(b); err != nil {
		return nil, err
	}
	codec, err := New(b.Variant)
	if err != nil {
		return nil, err
	}
	return codec.Decompress(b)
}

// Get reads one element of a self-describing block without decompressing
// the rest.
func Get(b *Block, index int) (uint32, error) {
	if err := validateBlock(b); err != nil {
		return 0, err
	}
	codec, err := New(b.Variant)
	if err != nil {
		return 0, err
	}
	return codec.Get(b, index)
}

func validateBlock(b *Block) error {
	if b == nil {
		return fmt.Errorf("%w: invalid `block`; expected: a block, given: nil", shared.ErrInvalidConfig)
	}
	return b.Validate()
}
