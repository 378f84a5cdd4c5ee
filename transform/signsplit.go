package transform

import (
	"fmt"
	"math"

	"github.com/packio/bitpack/shared"
)

// SplitSigns separates values into magnitudes and per-element sign bits.
// Zero carries sign 0. The magnitude of math.MinInt32 is 1<<31, which
// still fits a uint32.
func SplitSigns(values []int32) (mags, signs []uint32) {
	mags = make([]uint32, len(values))
	signs = make([]uint32, len(values))
	for i, v := range values {
		if v < 0 {
			mags[i] = uint32(-int64(v))
			signs[i] = 1
		} else {
			mags[i] = uint32(v)
		}
	}
	return mags, signs
}

// JoinSigns recombines the streams produced by SplitSigns. The two slices
// must have equal length and every pair must describe a representable
// int32.
func JoinSigns(mags, signs []uint32) ([]int32, error) {
	if len(mags) != len(signs) {
		return nil, shared.IntegrityError{
			Param:    "signs",
			Expected: fmt.Sprintf("%d entries", len(mags)),
			Given:    fmt.Sprintf("%d entries", len(signs)),
		}
	}
	out := make([]int32, len(mags))
	for i := range mags {
		v, err := JoinSign(mags[i], signs[i])
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		out[i] = v
	}
	return out, nil
}

// JoinSign recombines a single magnitude and sign bit.
func JoinSign(mag, sign uint32) (int32, error) {
	switch sign {
	case 0:
		if mag > math.MaxInt32 {
			return 0, shared.IntegrityError{
				Param:    "magnitude",
				Expected: fmt.Sprintf("at most %d for sign 0", math.MaxInt32),
				Given:    fmt.Sprintf("%d", mag),
			}
		}
		return int32(mag), nil
	case 1:
		if mag > 1<<31 {
			return 0, shared.IntegrityError{
				Param:    "magnitude",
				Expected: fmt.Sprintf("at most %d for sign 1", uint32(1)<<31),
				Given:    fmt.Sprintf("%d", mag),
			}
		}
		return int32(-int64(mag)), nil
	default:
		return 0, shared.IntegrityError{
			Param:    "sign",
			Expected: "0 or 1",
			Given:    fmt.Sprintf("%d", sign),
		}
	}
}
