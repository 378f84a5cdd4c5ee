// Package bitcursor provides random access reads and writes of bit runs
// over a fixed buffer of 32-bit words.
//
// It follows the LSB pattern, where least-significant bits are written and
// read first: within a word, bit offset b carries numeric weight 1<<b, and a
// run that outgrows its word continues in the low bits of the following
// word. A run is at most one word wide, so it touches at most two adjacent
// words.
package bitcursor

import "fmt"

// WordBits is the width of a single buffer word.
const WordBits = 32

// Cursor addresses bit runs inside a fixed []uint32 buffer. Offsets are
// absolute bit positions from the start of the buffer.
//
// Out-of-capacity runs and widths above WordBits are programming errors and
// panic; callers size the buffer up front via NewSized or WordCount.
type Cursor struct {
	words []uint32
}

// New wraps an existing word buffer.
func New(words []uint32) *Cursor {
	return &Cursor{words: words}
}

// NewSized allocates a zeroed buffer large enough to hold the given number
// of bits.
func NewSized(bits uint64) *Cursor {
	return &Cursor{words: make([]uint32, WordCount(bits))}
}

// WordCount returns the number of words required to hold the given number
// of bits.
func WordCount(bits uint64) int {
	return int((bits + WordBits - 1) / WordBits)
}

// Words exposes the underlying buffer.
func (c *Cursor) Words() []uint32 {
	return c.words
}

// Bits returns the cursor capacity in bits.
func (c *Cursor) Bits() uint64 {
	return uint64(len(c.words)) * WordBits
}

// Read returns the width-bit run starting at bit offset off. Width 0 reads
// nothing and returns 0.
func (c *Cursor) Read(off uint64, width uint8) uint32 {
	if width == 0 {
		return 0
	}
	c.check(off, width)
	var (
		word  = off / WordBits
		shift = off % WordBits
	)
	v := c.words[word] >> shift
	if rem := WordBits - shift; rem < uint64(width) {
		v |= c.words[word+1] << rem
	}
	return v & mask(width)
}

// Write ORs the low width bits of value into the run starting at bit offset
// off. Destination bits must still be zero; packers write append-style, each
// run exactly once. Width 0 writes nothing.
func (c *Cursor) Write(off uint64, width uint8, value uint32) {
	if width == 0 {
		return
	}
	c.check(off, width)
	value &= mask(width)
	var (
		word  = off / WordBits
		shift = off % WordBits
	)
	c.words[word] |= value << shift
	if rem := WordBits - shift; rem < uint64(width) {
		c.words[word+1] |= value >> rem
	}
}

func (c *Cursor) check(off uint64, width uint8) {
	if width > WordBits {
		panic(fmt.Sprintf("bitcursor: width %d out of range [0, %d]", width, WordBits))
	}
	if end := off + uint64(width); end > c.Bits() {
		panic(fmt.Sprintf("bitcursor: run [%d, %d) exceeds capacity %d", off, end, c.Bits()))
	}
}

func mask(width uint8) uint32 {
	return uint32(uint64(1)<<width - 1)
}
