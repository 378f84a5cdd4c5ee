package packing

import "github.com/packio/bitpack/bitcursor"

// SimplePacker packs fields back to back at offsets i*k; a field may
// straddle a word boundary. Densest of the variants: exactly Count*k payload
// bits.
type SimplePacker struct {
	opt *option
}

var _ Codec = (*SimplePacker)(nil)

// NewSimple returns a simple-variant codec.
func NewSimple(opts ...OptionFunc) (*SimplePacker, error) {
	o, err := newOption(opts...)
	if err != nil {
		return nil, err
	}
	return &SimplePacker{opt: o}, nil
}

func (p *SimplePacker) Variant() Variant { return Simple }

func (p *SimplePacker) Compress(values []uint32) (*Block, error) {
	if b, ok := constantBlock(Simple, values); ok {
		return b, nil
	}
	width, err := p.opt.exactWidth(values)
	if err != nil {
		return nil, err
	}

	count := uint64(len(values))
	cur := bitcursor.NewSized(count * uint64(width))
	for i, v := range values {
		cur.Write(uint64(i)*uint64(width), width, v)
	}
	p.opt.logger.Debug("simple: packed %d values at width %d into %d words", count, width, len(cur.Words()))

	return &Block{
		Variant:  Simple,
		Count:    count,
		BitWidth: width,
		Words:    cur.Words(),
	}, nil
}

func (p *SimplePacker) Decompress(b *Block) ([]uint32, error) {
	if err := checkBlock(b, Simple); err != nil {
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
		out[i] = cur.Read(uint64(i)*uint64(b.BitWidth), b.BitWidth)
	}
	return out, nil
}

func (p *SimplePacker) Get(b *Block, index int) (uint32, error) {
	if err := checkBlock(b, Simple); err != nil {
		return 0, err
	}
	if err := b.checkIndex(index); err != nil {
		return 0, err
	}
	if b.BitWidth == 0 {
		return b.Constant, nil
	}
	return bitcursor.New(b.Words).Read(uint64(index)*uint64(b.BitWidth), b.BitWidth), nil
}
