// Package transform maps signed integer sequences onto the non-negative
// domain the packing codecs operate on, and back.
//
// Three strategies are provided. ZigZag interleaves negative and positive
// values so small magnitudes of either sign stay small. Offset rebases the
// sequence on its minimum and carries the minimum as metadata. SignSplit
// separates magnitudes from a per-element sign bit so the two streams can
// be packed independently.
package transform

import (
	"fmt"
	"strings"

	"github.com/packio/bitpack/shared"
)

// Strategy selects a signed-to-unsigned mapping.
type Strategy uint8

const (
	StrategyZigZag Strategy = iota + 1
	StrategyOffset
	StrategySignSplit
)

// String returns the canonical lower-case name of the strategy.
func (s Strategy) String() string {
	switch s {
	case StrategyZigZag:
		return "zigzag"
	case StrategyOffset:
		return "offset"
	case StrategySignSplit:
		return "signsplit"
	default:
		return fmt.Sprintf("strategy(%d)", uint8(s))
	}
}

// Parse resolves a strategy by name, case-insensitively.
func Parse(name string) (Strategy, error) {
	switch strings.ToLower(name) {
	case "zigzag":
		return StrategyZigZag, nil
	case "offset":
		return StrategyOffset, nil
	case "signsplit":
		return StrategySignSplit, nil
	default:
		return 0, fmt.Errorf("%w: unknown transform strategy %q", shared.ErrInvalidConfig, name)
	}
}
