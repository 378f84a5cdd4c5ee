package packing_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/packio/bitpack/packing"
)

func TestMinWidth(t *testing.T) {
	req := require.New(t)

	for _, tc := range []struct {
		name   string
		values []uint32
		width  uint8
	}{
		{"empty", nil, 0},
		{"all zero", []uint32{0, 0, 0}, 0},
		{"one", []uint32{1}, 1},
		{"byte range", []uint32{3, 255, 17}, 8},
		{"just above byte", []uint32{256}, 9},
		{"full word", []uint32{0, math.MaxUint32}, 32},
	} {
		req.Equal(tc.width, packing.MinWidth(tc.values), tc.name)
	}
}

func TestWidthForFraction(t *testing.T) {
	req := require.New(t)

	values := []uint32{1, 2, 3, 1024, 4, 5, 2048, 6}

	width, outliers := packing.WidthForFraction(values, 0.25)
	req.Equal(uint8(3), width)
	req.Equal(2, outliers)

	// Fraction 0 must cover everything.
	width, outliers = packing.WidthForFraction(values, 0)
	req.Equal(uint8(12), width)
	req.Zero(outliers)

	// Fraction 1 pushes every nonzero value over the edge.
	width, outliers = packing.WidthForFraction(values, 1)
	req.Equal(uint8(0), width)
	req.Equal(8, outliers)

	width, outliers = packing.WidthForFraction([]uint32{0, 0, 7}, 1)
	req.Equal(uint8(0), width)
	req.Equal(1, outliers)
}

func TestWidthForFractionUniformData(t *testing.T) {
	req := require.New(t)

	// Without real outliers the derived width stays at the minimum no
	// matter the budget.
	values := []uint32{12, 13, 14, 15, 12, 13, 14, 15}
	width, outliers := packing.WidthForFraction(values, 0.25)
	req.Equal(uint8(4), width)
	req.Zero(outliers)
}
