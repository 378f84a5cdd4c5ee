package bitpack

import (
	"fmt"

	"github.com/packio/bitpack/packing"
	"github.com/packio/bitpack/shared"
	"github.com/packio/bitpack/transform"
)

// Strategy selects how signed values are mapped onto the non-negative
// domain before packing.
type Strategy = transform.Strategy

const (
	StrategyZigZag    = transform.StrategyZigZag
	StrategyOffset    = transform.StrategyOffset
	StrategySignSplit = transform.StrategySignSplit
)

var ParseStrategy = transform.Parse

// SignedBlock pairs a compressed transformed sequence with the metadata its
// strategy needs to restore signed values. Like Block it is immutable and
// safe for concurrent readers.
type SignedBlock struct {
	// Strategy is the transform applied before packing.
	Strategy Strategy

	// Data holds the transformed sequence: zigzag codes, distances from
	// Min, or magnitudes under the signsplit strategy.
	Data *Block

	// Signs is the 1-bit sign stream of the signsplit strategy, packed as
	// an aligned block. Nil under the other strategies.
	Signs *Block

	// Min is the sequence minimum the offset strategy rebases on. 0 under
	// the other strategies.
	Min int32
}

// Validate checks strategy-specific shape on top of the block-level checks.
func (sb *SignedBlock) Validate() error {
	if sb.Data == nil {
		return shared.IntegrityError{Param: "data", Expected: "a block", Given: "nil"}
	}
	if err := sb.Data.Validate(); err != nil {
		return err
	}
	switch sb.Strategy {
	case StrategyZigZag, StrategyOffset:
		if sb.Signs != nil {
			return shared.IntegrityError{
				Param:    "signs",
				Expected: fmt.Sprintf("none for the %s strategy", sb.Strategy),
				Given:    fmt.Sprintf("%d elements", sb.Signs.Count),
			}
		}
	case StrategySignSplit:
		if sb.Signs == nil {
			return shared.IntegrityError{Param: "signs", Expected: "a sign block", Given: "nil"}
		}
		if err := sb.Signs.Validate(); err != nil {
			return err
		}
		if sb.Signs.Count != sb.Data.Count {
			return shared.IntegrityError{
				Param:    "signs",
				Expected: fmt.Sprintf("%d elements", sb.Data.Count),
				Given:    fmt.Sprintf("%d elements", sb.Signs.Count),
			}
		}
	default:
		return shared.IntegrityError{Param: "strategy", Expected: "zigzag, offset or signsplit", Given: sb.Strategy.String()}
	}
	return nil
}

// CompressSigned transforms values with the given strategy and packs the
// result with the given variant. Options apply to the data stream; the
// signsplit sign stream is always packed aligned at one bit per element.
func CompressSigned(variant Variant, strategy Strategy, values []int32, opts ...OptionFunc) (*SignedBlock, error) {
	switch strategy {
	case StrategyZigZag:
		data, err := Compress(variant, transform.ZigZag(values), opts...)
		if err != nil {
			return nil, err
		}
		return &SignedBlock{Strategy: strategy, Data: data}, nil

	case StrategyOffset:
		encoded, min := transform.OffsetEncode(values)
		data, err := Compress(variant, encoded, opts...)
		if err != nil {
			return nil, err
		}
		return &SignedBlock{Strategy: strategy, Data: data, Min: min}, nil

	case StrategySignSplit:
		mags, signs := transform.SplitSigns(values)
		data, err := Compress(variant, mags, opts...)
		if err != nil {
			return nil, err
		}
		signBlock, err := packSigns(signs)
		if err != nil {
			return nil, err
		}
		return &SignedBlock{Strategy: strategy, Data: data, Signs: signBlock}, nil

	default:
		return nil, fmt.Errorf("%w: invalid `strategy`; expected: one of zigzag, offset, signsplit; given: %s",
			shared.ErrInvalidConfig, strategy)
	}
}

// DecompressSigned restores the full signed sequence.
func DecompressSigned(sb *SignedBlock) ([]int32, error) {
	if err := validateSigned(sb); err != nil {
		return nil, err
	}
	switch sb.Strategy {
	case StrategyZigZag:
		values, err := Decompress(sb.Data)
		if err != nil {
			return nil, err
		}
		return transform.UnZigZag(values), nil

	case StrategyOffset:
		values, err := Decompress(sb.Data)
		if err != nil {
			return nil, err
		}
		return transform.OffsetDecode(values, sb.Min), nil

	default:
		mags, err := Decompress(sb.Data)
		if err != nil {
			return nil, err
		}
		signs, err := Decompress(sb.Signs)
		if err != nil {
			return nil, err
		}
		return transform.JoinSigns(mags, signs)
	}
}

// GetSigned reads one signed element without decompressing the rest.
func GetSigned(sb *SignedBlock, index int) (int32, error) {
	if err := validateSigned(sb); err != nil {
		return 0, err
	}
	switch sb.Strategy {
	case StrategyZigZag:
		u, err := Get(sb.Data, index)
		if err != nil {
			return 0, err
		}
		return transform.ZigZagDecode(u), nil

	case StrategyOffset:
		u, err := Get(sb.Data, index)
		if err != nil {
			return 0, err
		}
		return transform.OffsetDecodeValue(u, sb.Min), nil

	default:
		mag, err := Get(sb.Data, index)
		if err != nil {
			return 0, err
		}
		sign, err := Get(sb.Signs, index)
		if err != nil {
			return 0, err
		}
		return transform.JoinSign(mag, sign)
	}
}

func packSigns(signs []uint32) (*Block, error) {
	codec, err := packing.NewAligned()
	if err != nil {
		return nil, err
	}
	return codec.Compress(signs)
}

func validateSigned(sb *SignedBlock) error {
	if sb == nil {
		return fmt.Errorf("%w: invalid `block`; expected: a signed block, given: nil", shared.ErrInvalidConfig)
	}
	return sb.Validate()
}
