package packing

import (
	"math/bits"

	"github.com/packio/bitpack/bitcursor"
)

// DefaultOutlierFraction bounds the share of values the overflow variant
// moves to the side table when no explicit width or fraction is given.
const DefaultOutlierFraction = 0.10

// MinWidth returns the smallest width that represents every value: the bit
// length of the maximum. 0 for empty and all-zero input.
func MinWidth(values []uint32) uint8 {
	var max uint32
	for _, v := range values {
		if v > max {
			max = v
		}
	}
	return uint8(bits.Len32(max))
}

// WidthForFraction returns the smallest width that leaves at most the given
// fraction of values over-wide, and how many values actually exceed it.
// Fraction 0 degenerates to MinWidth with zero outliers; fraction 1 to
// width 0 with every nonzero value an outlier.
func WidthForFraction(values []uint32, fraction float64) (width uint8, outliers int) {
	var hist [bitcursor.WordBits + 1]int
	for _, v := range values {
		hist[bits.Len32(v)]++
	}

	n := len(values)
	allowed := int(float64(n) * fraction)
	fit := 0
	for w := 0; w <= bitcursor.WordBits; w++ {
		fit += hist[w]
		if n-fit <= allowed {
			return uint8(w), n - fit
		}
	}
	return bitcursor.WordBits, 0
}

func allEqual(values []uint32) bool {
	if len(values) == 0 {
		return true
	}
	for _, v := range values[1:] {
		if v != values[0] {
			return false
		}
	}
	return true
}
