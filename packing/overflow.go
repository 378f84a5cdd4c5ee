package packing

import (
	"fmt"
	"math/bits"

	"github.com/packio/bitpack/bitcursor"
	"github.com/packio/bitpack/shared"
)

// flagBits is the width of the per-element outlier marker.
const flagBits = 1

// OverflowPacker packs each element as a flag bit followed by a k-bit field,
// back to back like the simple variant. Elements wider than k carry flag 1,
// a zero field, and their full value in a side table ordered by occurrence.
// Width k comes from WidthForFraction unless forced.
//
// Access cost is asymmetric: a normal element is one field read, a flagged
// element costs a flag scan over the elements before it to find its side
// table rank.
type OverflowPacker struct {
	opt *option
}

var _ Codec = (*OverflowPacker)(nil)

// NewOverflow returns an overflow-variant codec.
func NewOverflow(opts ...OptionFunc) (*OverflowPacker, error) {
	o, err := newOption(opts...)
	if err != nil {
		return nil, err
	}
	return &OverflowPacker{opt: o}, nil
}

func (p *OverflowPacker) Variant() Variant { return Overflow }

func (p *OverflowPacker) Compress(values []uint32) (*Block, error) {
	if b, ok := constantBlock(Overflow, values); ok {
		return b, nil
	}

	var width uint8
	if p.opt.normalWidth != nil {
		width = *p.opt.normalWidth
	} else {
		var outliers int
		width, outliers = WidthForFraction(values, p.opt.outlierFraction)
		p.opt.logger.Debug("overflow: derived width %d leaving %d of %d values over-wide",
			width, outliers, len(values))
	}

	var (
		count    = uint64(len(values))
		stride   = uint64(width) + flagBits
		cur      = bitcursor.NewSized(count * stride)
		overflow []uint32
	)
	for i, v := range values {
		off := uint64(i) * stride
		if bits.Len32(v) > int(width) {
			cur.Write(off, flagBits, 1)
			overflow = append(overflow, v)
		} else {
			cur.Write(off+flagBits, width, v)
		}
	}

	return &Block{
		Variant:        Overflow,
		Count:          count,
		BitWidth:       width,
		FlagWidth:      flagBits,
		Words:          cur.Words(),
		OverflowValues: overflow,
	}, nil
}

func (p *OverflowPacker) Decompress(b *Block) ([]uint32, error) {
	if err := checkBlock(b, Overflow); err != nil {
		return nil, err
	}
	out := make([]uint32, b.Count)
	if b.FlagWidth == 0 {
		for i := range out {
			out[i] = b.Constant
		}
		return out, nil
	}

	var (
		cur    = bitcursor.New(b.Words)
		stride = uint64(b.BitWidth) + flagBits
		next   int
	)
	for i := range out {
		off := uint64(i) * stride
		if cur.Read(off, flagBits) == 0 {
			out[i] = cur.Read(off+flagBits, b.BitWidth)
			continue
		}
		if next == len(b.OverflowValues) {
			return nil, shared.IntegrityError{
				Param:    "overflowValues",
				Expected: fmt.Sprintf(">= %d entries for the set flags", next+1),
				Given:    fmt.Sprint(len(b.OverflowValues)),
			}
		}
		out[i] = b.OverflowValues[next]
		next++
	}
	if next != len(b.OverflowValues) {
		return nil, shared.IntegrityError{
			Param:    "overflowValues",
			Expected: fmt.Sprintf("%d entries consumed by flags", next),
			Given:    fmt.Sprint(len(b.OverflowValues)),
		}
	}
	return out, nil
}

func (p *OverflowPacker) Get(b *Block, index int) (uint32, error) {
	if err := checkBlock(b, Overflow); err != nil {
		return 0, err
	}
	if err := b.checkIndex(index); err != nil {
		return 0, err
	}
	if b.FlagWidth == 0 {
		return b.Constant, nil
	}

	var (
		cur    = bitcursor.New(b.Words)
		stride = uint64(b.BitWidth) + flagBits
		off    = uint64(index) * stride
	)
	if cur.Read(off, flagBits) == 0 {
		return cur.Read(off+flagBits, b.BitWidth), nil
	}

	// The element's rank among flagged elements selects its side table
	// entry.
	rank := 0
	for i := uint64(0); i < uint64(index); i++ {
		if cur.Read(i*stride, flagBits) == 1 {
			rank++
		}
	}
	if rank >= len(b.OverflowValues) {
		return 0, shared.IntegrityError{
			Param:    "overflowValues",
			Expected: fmt.Sprintf(">= %d entries for the set flags", rank+1),
			Given:    fmt.Sprint(len(b.OverflowValues)),
		}
	}
	return b.OverflowValues[rank], nil
}
