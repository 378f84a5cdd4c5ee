package packing

import (
	"fmt"
	"math"

	"github.com/packio/bitpack/bitcursor"
	"github.com/packio/bitpack/shared"
)

const wordBytes = bitcursor.WordBits / 8

// Block is the self-describing compressed form of a sequence. Blocks are
// immutable once built; none of the operations on them mutate, so a block is
// safe for any number of concurrent readers.
type Block struct {
	// Variant selects the payload layout.
	Variant Variant

	// Count is the number of logical elements. 0 is valid.
	Count uint64

	// BitWidth is the field width k in [0, 32]. Width 0 means every element
	// equals Constant and the block carries no payload words.
	BitWidth uint8

	// Constant is the repeated value of a width-0 block.
	Constant uint32

	// Words is the packed payload.
	Words []uint32

	// FlagWidth is the per-element flag width of overflow blocks, fixed at
	// 1. It is 0 on the other variants and on constant overflow blocks.
	FlagWidth uint8

	// OverflowValues holds flagged elements full-width, in element order.
	OverflowValues []uint32
}

// Validate checks that the payload shape matches the header. Blocks built
// by Compress always pass; blocks read from elsewhere may not.
func (b *Block) Validate() error {
	switch b.Variant {
	case Simple, Aligned:
		if b.FlagWidth != 0 {
			return shared.IntegrityError{Param: "flagWidth", Expected: "0", Given: fmt.Sprint(b.FlagWidth)}
		}
		if len(b.OverflowValues) != 0 {
			return shared.IntegrityError{Param: "overflowValues", Expected: "none", Given: fmt.Sprint(len(b.OverflowValues))}
		}
	case Overflow:
		switch b.FlagWidth {
		case flagBits:
		case 0:
			// Constant form; no flags, no side table.
			if b.BitWidth != 0 {
				return shared.IntegrityError{Param: "flagWidth", Expected: fmt.Sprint(flagBits), Given: "0"}
			}
			if len(b.OverflowValues) != 0 {
				return shared.IntegrityError{Param: "overflowValues", Expected: "none", Given: fmt.Sprint(len(b.OverflowValues))}
			}
		default:
			return shared.IntegrityError{Param: "flagWidth", Expected: fmt.Sprint(flagBits), Given: fmt.Sprint(b.FlagWidth)}
		}
	default:
		return shared.IntegrityError{Param: "variant", Expected: "simple, aligned or overflow", Given: b.Variant.String()}
	}

	if b.BitWidth > bitcursor.WordBits {
		return shared.IntegrityError{Param: "bitWidth", Expected: fmt.Sprintf("0..%d", bitcursor.WordBits), Given: fmt.Sprint(b.BitWidth)}
	}
	if want := b.expectedWords(); len(b.Words) != want {
		return shared.IntegrityError{Param: "words", Expected: fmt.Sprint(want), Given: fmt.Sprint(len(b.Words))}
	}
	if uint64(len(b.OverflowValues)) > b.Count {
		return shared.IntegrityError{Param: "overflowValues", Expected: fmt.Sprintf("<= %d", b.Count), Given: fmt.Sprint(len(b.OverflowValues))}
	}
	return nil
}

// expectedWords is the exact payload length the header dictates.
func (b *Block) expectedWords() int {
	switch {
	case b.Variant == Overflow && b.FlagWidth != 0:
		return bitcursor.WordCount(b.Count * (uint64(b.BitWidth) + flagBits))
	case b.BitWidth == 0:
		return 0
	case b.Variant == Simple:
		return bitcursor.WordCount(b.Count * uint64(b.BitWidth))
	case b.Variant == Aligned:
		perWord := uint64(bitcursor.WordBits / b.BitWidth)
		return int((b.Count + perWord - 1) / perWord)
	default:
		return 0
	}
}

func (b *Block) checkIndex(index int) error {
	if index < 0 || uint64(index) >= b.Count {
		return fmt.Errorf("%w: index %d, count %d", shared.ErrIndexOutOfRange, index, b.Count)
	}
	return nil
}

// PayloadBytes is the compressed payload size: packed words plus the
// overflow side table. The fixed-size header is not counted.
func (b *Block) PayloadBytes() uint64 {
	return uint64(len(b.Words)+len(b.OverflowValues)) * wordBytes
}

// RawBytes is the size of the uncompressed sequence at one word per element.
func (b *Block) RawBytes() uint64 {
	return b.Count * wordBytes
}

// Ratio is RawBytes over PayloadBytes. A constant block compresses to zero
// payload, so its ratio is +Inf; the empty block reports 1.
func (b *Block) Ratio() float64 {
	payload := b.PayloadBytes()
	if payload == 0 {
		if b.Count == 0 {
			return 1
		}
		return math.Inf(1)
	}
	return float64(b.RawBytes()) / float64(payload)
}

// checkBlock gates every decompress and get: the block must belong to the
// calling codec and hold together structurally.
func checkBlock(b *Block, want Variant) error {
	if b.Variant != want {
		return fmt.Errorf("%w: invalid `block`; expected: variant %s, given: %s",
			shared.ErrInvalidConfig, want, b.Variant)
	}
	return b.Validate()
}

// constantBlock shortcuts sequences where every element equals one value,
// including empty and single-element input. The constant travels in the
// header; there is no payload to pack.
func constantBlock(v Variant, values []uint32) (*Block, bool) {
	if len(values) > 0 && !allEqual(values) {
		return nil, false
	}
	b := &Block{Variant: v, Count: uint64(len(values))}
	if len(values) > 0 {
		b.Constant = values[0]
	}
	return b, true
}
