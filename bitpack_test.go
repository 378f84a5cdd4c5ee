package bitpack_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/packio/bitpack"
)

var facadeVariants = []bitpack.Variant{bitpack.Simple, bitpack.Aligned, bitpack.Overflow}

func TestFacadeRoundTrip(t *testing.T) {
	req := require.New(t)

	values := []uint32{17, 3, 9, 31, 8, 1, 30, 12, 7}
	for _, variant := range facadeVariants {
		b, err := bitpack.Compress(variant, values)
		req.NoError(err, variant)
		req.Equal(variant, b.Variant)

		decoded, err := bitpack.Decompress(b)
		req.NoError(err, variant)
		req.Equal(values, decoded, variant)

		for i, want := range values {
			got, err := bitpack.Get(b, i)
			req.NoError(err)
			req.Equal(want, got, "variant %s index %d", variant, i)
		}
	}
}

func TestFacadeRoutesByHeader(t *testing.T) {
	req := require.New(t)

	// Decompress and Get dispatch on the block header alone; the caller
	// never names the codec that produced the block.
	values := []uint32{1, 2, 3, 1024, 4, 5, 2048, 6}
	b, err := bitpack.Compress(bitpack.Overflow, values, bitpack.WithOutlierFraction(0.25))
	req.NoError(err)

	decoded, err := bitpack.Decompress(b)
	req.NoError(err)
	req.Equal(values, decoded)

	got, err := bitpack.Get(b, 3)
	req.NoError(err)
	req.Equal(uint32(1024), got)
}

func TestFacadeUnknownVariant(t *testing.T) {
	req := require.New(t)

	_, err := bitpack.New(bitpack.Variant(9))
	req.ErrorIs(err, bitpack.ErrInvalidConfig)

	_, err = bitpack.NewFromName("gzip")
	req.ErrorIs(err, bitpack.ErrInvalidConfig)

	codec, err := bitpack.NewFromName("ALIGNED")
	req.NoError(err)
	req.Equal(bitpack.Aligned, codec.Variant())
}

func TestFacadeValidatesBeforeDecoding(t *testing.T) {
	req := require.New(t)

	b, err := bitpack.Compress(bitpack.Simple, []uint32{9, 8, 7, 6, 5})
	req.NoError(err)

	corrupt := *b
	corrupt.Words = corrupt.Words[:0]
	_, err = bitpack.Decompress(&corrupt)
	req.ErrorIs(err, bitpack.ErrIntegrity)
	_, err = bitpack.Get(&corrupt, 0)
	req.ErrorIs(err, bitpack.ErrIntegrity)

	_, err = bitpack.Decompress(nil)
	req.ErrorIs(err, bitpack.ErrInvalidConfig)
}

func TestFacadeGetOutOfRange(t *testing.T) {
	req := require.New(t)

	b, err := bitpack.Compress(bitpack.Aligned, []uint32{1, 2, 3})
	req.NoError(err)

	_, err = bitpack.Get(b, 3)
	req.ErrorIs(err, bitpack.ErrIndexOutOfRange)
	_, err = bitpack.Get(b, -1)
	req.ErrorIs(err, bitpack.ErrIndexOutOfRange)
}

var facadeStrategies = []bitpack.Strategy{
	bitpack.StrategyZigZag,
	bitpack.StrategyOffset,
	bitpack.StrategySignSplit,
}

func TestSignedRoundTrip(t *testing.T) {
	req := require.New(t)

	cases := map[string][]int32{
		"mixed signs":  {-3, 0, 5, -1, 2},
		"wider spread": {-10, -5, 0, 5, 10, 15, -20, 100},
		"extremes":     {math.MinInt32, math.MaxInt32, 0, -1, 1},
		"all negative": {-7, -7, -2, -9},
	}
	for name, values := range cases {
		for _, variant := range facadeVariants {
			for _, strategy := range facadeStrategies {
				sb, err := bitpack.CompressSigned(variant, strategy, values)
				req.NoError(err, "%s/%s/%s", name, variant, strategy)
				req.NoError(sb.Validate())
				req.Equal(uint64(len(values)), sb.Data.Count)

				decoded, err := bitpack.DecompressSigned(sb)
				req.NoError(err)
				req.Equal(values, decoded, "%s/%s/%s", name, variant, strategy)

				for i, want := range values {
					got, err := bitpack.GetSigned(sb, i)
					req.NoError(err)
					req.Equal(want, got, "%s/%s/%s index %d", name, variant, strategy, i)
				}
			}
		}
	}
}

func TestSignedStrategyMetadata(t *testing.T) {
	req := require.New(t)

	values := []int32{-10, -5, 0, 5, 10, 15, -20, 100}

	zz, err := bitpack.CompressSigned(bitpack.Simple, bitpack.StrategyZigZag, values)
	req.NoError(err)
	req.Nil(zz.Signs)
	req.Zero(zz.Min)

	off, err := bitpack.CompressSigned(bitpack.Simple, bitpack.StrategyOffset, values)
	req.NoError(err)
	req.Nil(off.Signs)
	req.Equal(int32(-20), off.Min)

	ss, err := bitpack.CompressSigned(bitpack.Simple, bitpack.StrategySignSplit, values)
	req.NoError(err)
	req.NotNil(ss.Signs)
	req.Equal(bitpack.Aligned, ss.Signs.Variant)
	req.Equal(uint64(len(values)), ss.Signs.Count)
}

func TestSignedEmptyInput(t *testing.T) {
	req := require.New(t)

	for _, strategy := range facadeStrategies {
		sb, err := bitpack.CompressSigned(bitpack.Simple, strategy, nil)
		req.NoError(err, strategy)
		req.Zero(sb.Data.Count)

		decoded, err := bitpack.DecompressSigned(sb)
		req.NoError(err)
		req.Empty(decoded)
	}
}

func TestSignedUnknownStrategy(t *testing.T) {
	req := require.New(t)

	_, err := bitpack.CompressSigned(bitpack.Simple, bitpack.Strategy(9), []int32{1})
	req.ErrorIs(err, bitpack.ErrInvalidConfig)
}

func TestSignedValidate(t *testing.T) {
	req := require.New(t)

	sound, err := bitpack.CompressSigned(bitpack.Simple, bitpack.StrategySignSplit, []int32{-3, 0, 5, -1, 2})
	req.NoError(err)
	req.NoError(sound.Validate())

	noData := *sound
	noData.Data = nil
	req.ErrorIs(noData.Validate(), bitpack.ErrIntegrity)

	noSigns := *sound
	noSigns.Signs = nil
	req.ErrorIs(noSigns.Validate(), bitpack.ErrIntegrity)
	_, err = bitpack.DecompressSigned(&noSigns)
	req.ErrorIs(err, bitpack.ErrIntegrity)

	zz, err := bitpack.CompressSigned(bitpack.Simple, bitpack.StrategyZigZag, []int32{-3, 0, 5})
	req.NoError(err)
	straySigns := *zz
	straySigns.Signs = sound.Signs
	req.ErrorIs(straySigns.Validate(), bitpack.ErrIntegrity)

	shortSigns := *sound
	signs, err := bitpack.Compress(bitpack.Aligned, []uint32{1, 0})
	req.NoError(err)
	shortSigns.Signs = signs
	req.ErrorIs(shortSigns.Validate(), bitpack.ErrIntegrity)

	badStrategy := *sound
	badStrategy.Strategy = bitpack.Strategy(9)
	req.ErrorIs(badStrategy.Validate(), bitpack.ErrIntegrity)

	_, err = bitpack.DecompressSigned(nil)
	req.ErrorIs(err, bitpack.ErrInvalidConfig)
	_, err = bitpack.GetSigned(nil, 0)
	req.ErrorIs(err, bitpack.ErrInvalidConfig)
}

func TestSignedGetOutOfRange(t *testing.T) {
	req := require.New(t)

	sb, err := bitpack.CompressSigned(bitpack.Overflow, bitpack.StrategyZigZag, []int32{-3, 0, 5})
	req.NoError(err)

	_, err = bitpack.GetSigned(sb, 3)
	req.ErrorIs(err, bitpack.ErrIndexOutOfRange)
}

func TestSignedOptionsReachDataStream(t *testing.T) {
	req := require.New(t)

	// Mostly small magnitudes with two spikes; with a quarter of the
	// elements allowed over-wide the spikes land in the side table.
	values := []int32{-1, 2, -3, 1000, 1, -2, -1000, 3}
	sb, err := bitpack.CompressSigned(bitpack.Overflow, bitpack.StrategyZigZag, values,
		bitpack.WithOutlierFraction(0.25))
	req.NoError(err)
	req.Len(sb.Data.OverflowValues, 2)

	decoded, err := bitpack.DecompressSigned(sb)
	req.NoError(err)
	req.Equal(values, decoded)
}
