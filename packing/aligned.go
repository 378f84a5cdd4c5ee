package packing

import "github.com/packio/bitpack/bitcursor"

// AlignedPacker packs floor(32/k) fields per word, so no field straddles a
// word boundary. The 32 mod k bits at the top of each word stay zero. Wider
// than simple, cheaper to address: element i sits in word i/perWord at slot
// i mod perWord.
type AlignedPacker struct {
	opt *option
}

var _ Codec = (*AlignedPacker)(nil)

// NewAligned returns an aligned-variant codec.
func NewAligned(opts ...OptionFunc) (*AlignedPacker, error) {
	o, err := newOption(opts...)
	if err != nil {
		return nil, err
	}
	return &AlignedPacker{opt: o}, nil
}

func (p *AlignedPacker) Variant() Variant { return Aligned }

// alignedOffset is the bit offset of element i at the given width.
func alignedOffset(i uint64, width uint8) uint64 {
	perWord := uint64(bitcursor.WordBits / width)
	return i/perWord*bitcursor.WordBits + i%perWord*uint64(width)
}

func (p *AlignedPacker) Compress(values []uint32) (*Block, error) {
	if b, ok := constantBlock(Aligned, values); ok {
		return b, nil
	}
	width, err := p.opt.exactWidth(values)
	if err != nil {
		return nil, err
	}

	var (
		count   = uint64(len(values))
		perWord = uint64(bitcursor.WordBits / width)
		words   = (count + perWord - 1) / perWord
	)
	cur := bitcursor.NewSized(words * bitcursor.WordBits)
	for i, v := range values {
		cur.Write(alignedOffset(uint64(i), width), width, v)
	}
	p.opt.logger.Debug("aligned: packed %d values at width %d, %d per word, into %d words",
		count, width, perWord, words)

	return &Block{
		Variant:  Aligned,
		Count:    count,
		BitWidth: width,
		Words:    cur.Words(),
	}, nil
}

func (p *AlignedPacker) Decompress(b *Block) ([]uint32, error) {
	if err := checkBlock(b, Aligned); err != nil {
		return nil, err
	}
	out := make([]uint32, b.Count)
	if b.BitWidth == 0 {
		for i := range out {
			out[i] = b.Constant
		}
		return out, nil
	}
	cur := bitcursor.New(b.Words)
	for i := range out {
		out[i] = cur.Read(alignedOffset(uint64(i), b.BitWidth), b.BitWidth)
	}
	return out, nil
}

func (p *AlignedPacker) Get(b *Block, index int) (uint32, error) {
	if err := checkBlock(b, Aligned); err != nil {
		return 0, err
	}
	if err := b.checkIndex(index); err != nil {
		return 0, err
	}
	if b.BitWidth == 0 {
		return b.Constant, nil
	}
	return bitcursor.New(b.Words).Read(alignedOffset(uint64(index), b.BitWidth), b.BitWidth), nil
}
