package config_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/packio/bitpack/config"
	"github.com/packio/bitpack/packing"
	"github.com/packio/bitpack/shared"
)

func TestDefaultConfigIsValid(t *testing.T) {
	t.Parallel()

	require.NoError(t, config.DefaultConfig().Validate())
}

func TestValidate(t *testing.T) {
	t.Parallel()

	breakages := map[string]func(cfg *config.Config){
		"unknown algorithm":     func(cfg *config.Config) { cfg.Algorithm = "lzw" },
		"unknown strategy":      func(cfg *config.Config) { cfg.Strategy = "delta" },
		"negative fraction":     func(cfg *config.Config) { cfg.OutlierFraction = -0.1 },
		"fraction above one":    func(cfg *config.Config) { cfg.OutlierFraction = 1.5 },
		"width above word size": func(cfg *config.Config) { cfg.NormalWidth = 33 },
		"zero iterations":       func(cfg *config.Config) { cfg.Iterations = 0 },
		"nonpositive link":      func(cfg *config.Config) { cfg.LinkMBps = []float64{10, 0} },
		"empty datadir":         func(cfg *config.Config) { cfg.DataDir = "" },
	}
	for name, breakage := range breakages {
		cfg := config.DefaultConfig()
		breakage(cfg)
		require.ErrorIs(t, cfg.Validate(), shared.ErrInvalidConfig, name)
	}
}

func TestStrategyIsOptional(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultConfig()
	require.False(t, cfg.Signed())
	require.NoError(t, cfg.Validate())

	cfg.Strategy = "zigzag"
	require.True(t, cfg.Signed())
	require.NoError(t, cfg.Validate())

	strategy, err := cfg.TransformStrategy()
	require.NoError(t, err)
	require.Equal(t, "zigzag", strategy.String())
}

func TestVariant(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultConfig()
	cfg.Algorithm = "overflow"
	variant, err := cfg.Variant()
	require.NoError(t, err)
	require.Equal(t, packing.Overflow, variant)
}

func TestCodecOptions(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultConfig()
	require.Len(t, cfg.CodecOptions(), 1)

	cfg.NormalWidth = 16
	opts := cfg.CodecOptions()
	require.Len(t, opts, 2)

	// The options must construct a working codec.
	codec, err := packing.NewSimple(opts...)
	require.NoError(t, err)
	b, err := codec.Compress([]uint32{1, 2, 3})
	require.NoError(t, err)
	require.Equal(t, uint8(16), b.BitWidth)
}
