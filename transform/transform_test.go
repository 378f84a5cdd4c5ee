package transform_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/packio/bitpack/shared"
	"github.com/packio/bitpack/transform"
)

func TestZigZagValues(t *testing.T) {
	req := require.New(t)

	for _, tc := range []struct {
		signed   int32
		unsigned uint32
	}{
		{0, 0},
		{-1, 1},
		{1, 2},
		{-2, 3},
		{2, 4},
		{math.MaxInt32, math.MaxUint32 - 1},
		{math.MinInt32, math.MaxUint32},
	} {
		req.Equal(tc.unsigned, transform.ZigZagEncode(tc.signed), "encode %d", tc.signed)
		req.Equal(tc.signed, transform.ZigZagDecode(tc.unsigned), "decode %d", tc.unsigned)
	}
}

func TestZigZagSlices(t *testing.T) {
	req := require.New(t)

	values := []int32{-3, 0, 5, -1, 2, math.MinInt32, math.MaxInt32}
	encoded := transform.ZigZag(values)
	req.Equal(values, transform.UnZigZag(encoded))
}

func TestOffsetRoundTrip(t *testing.T) {
	req := require.New(t)

	values := []int32{-10, -5, 0, 5, 10, 15, -20, 100}
	encoded, min := transform.OffsetEncode(values)
	req.Equal(int32(-20), min)
	req.Equal([]uint32{10, 15, 20, 25, 30, 35, 0, 120}, encoded)
	req.Equal(values, transform.OffsetDecode(encoded, min))
}

func TestOffsetFullSpan(t *testing.T) {
	req := require.New(t)

	values := []int32{math.MinInt32, math.MaxInt32, 0}
	encoded, min := transform.OffsetEncode(values)
	req.Equal(int32(math.MinInt32), min)
	req.Equal([]uint32{0, math.MaxUint32, 1 << 31}, encoded)
	req.Equal(values, transform.OffsetDecode(encoded, min))
}

func TestOffsetEmpty(t *testing.T) {
	req := require.New(t)

	encoded, min := transform.OffsetEncode(nil)
	req.Empty(encoded)
	req.Equal(int32(0), min)
}

func TestSplitSigns(t *testing.T) {
	req := require.New(t)

	values := []int32{-3, 0, 5, -1, 2}
	mags, signs := transform.SplitSigns(values)
	req.Equal([]uint32{3, 0, 5, 1, 2}, mags)
	req.Equal([]uint32{1, 0, 0, 1, 0}, signs)

	joined, err := transform.JoinSigns(mags, signs)
	req.NoError(err)
	req.Equal(values, joined)
}

func TestSplitSignsExtremes(t *testing.T) {
	req := require.New(t)

	values := []int32{math.MinInt32, math.MaxInt32}
	mags, signs := transform.SplitSigns(values)
	req.Equal([]uint32{1 << 31, math.MaxInt32}, mags)
	req.Equal([]uint32{1, 0}, signs)

	joined, err := transform.JoinSigns(mags, signs)
	req.NoError(err)
	req.Equal(values, joined)
}

func TestJoinSignsMismatchedLengths(t *testing.T) {
	req := require.New(t)

	_, err := transform.JoinSigns([]uint32{1, 2, 3}, []uint32{0, 1})
	req.ErrorIs(err, shared.ErrIntegrity)
}

func TestJoinSignRanges(t *testing.T) {
	req := require.New(t)

	v, err := transform.JoinSign(1<<31, 1)
	req.NoError(err)
	req.Equal(int32(math.MinInt32), v)

	_, err = transform.JoinSign(1<<31, 0)
	req.ErrorIs(err, shared.ErrIntegrity)

	_, err = transform.JoinSign(1<<31+1, 1)
	req.ErrorIs(err, shared.ErrIntegrity)

	_, err = transform.JoinSign(5, 2)
	req.ErrorIs(err, shared.ErrIntegrity)
}

func TestParseStrategy(t *testing.T) {
	req := require.New(t)

	for name, want := range map[string]transform.Strategy{
		"zigzag":    transform.StrategyZigZag,
		"offset":    transform.StrategyOffset,
		"signsplit": transform.StrategySignSplit,
		"ZigZag":    transform.StrategyZigZag,
	} {
		got, err := transform.Parse(name)
		req.NoError(err, name)
		req.Equal(want, got, name)
	}

	_, err := transform.Parse("delta")
	req.ErrorIs(err, shared.ErrInvalidConfig)
}

func TestStrategyString(t *testing.T) {
	req := require.New(t)

	req.Equal("zigzag", transform.StrategyZigZag.String())
	req.Equal("offset", transform.StrategyOffset.String())
	req.Equal("signsplit", transform.StrategySignSplit.String())
	req.Equal("strategy(7)", transform.Strategy(7).String())
}
