// Package config holds the human-facing configuration resolved by the CLI.
// The core packages take already-validated parameters; everything that
// arrives as a string or a flag is checked here first.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/packio/bitpack/bitcursor"
	"github.com/packio/bitpack/packing"
	"github.com/packio/bitpack/shared"
	"github.com/packio/bitpack/transform"
)

const (
	DefaultDataDirName = "data"
	DefaultAlgorithm   = "simple"
	DefaultIterations  = 50
)

var DefaultDataDir = filepath.Join(userHomeDir(), ".packio", DefaultDataDirName)

type Config struct {
	// Algorithm names the packing variant: simple, aligned or overflow.
	Algorithm string `mapstructure:"algorithm"`

	// Strategy names the signed transform: zigzag, offset or signsplit.
	// Empty means the input is treated as non-negative integers.
	Strategy string `mapstructure:"strategy"`

	// OutlierFraction is the share of values the overflow variant may move
	// to its side table.
	OutlierFraction float64 `mapstructure:"outlier-fraction"`

	// NormalWidth forces the field width. 0 derives the width from the
	// data.
	NormalWidth uint `mapstructure:"normal-width"`

	// Iterations is the benchmark repetition count per measurement.
	Iterations int `mapstructure:"iterations"`

	// LinkMBps lists the link speeds the benchmark report computes
	// break-even thresholds for.
	LinkMBps []float64 `mapstructure:"link-mbps"`

	// DataDir is where generated datasets land.
	DataDir string `mapstructure:"datadir"`
}

func DefaultConfig() *Config {
	return &Config{
		Algorithm:       DefaultAlgorithm,
		OutlierFraction: packing.DefaultOutlierFraction,
		Iterations:      DefaultIterations,
		LinkMBps:        []float64{1, 10, 100},
		DataDir:         DefaultDataDir,
	}
}

func (cfg *Config) Validate() error {
	if _, err := packing.ParseVariant(cfg.Algorithm); err != nil {
		return err
	}
	if cfg.Strategy != "" {
		if _, err := transform.Parse(cfg.Strategy); err != nil {
			return err
		}
	}
	if cfg.OutlierFraction < 0 || cfg.OutlierFraction > 1 {
		return fmt.Errorf("%w: invalid `OutlierFraction`; expected: 0 <= f <= 1, given: %v",
			shared.ErrInvalidConfig, cfg.OutlierFraction)
	}
	if cfg.NormalWidth > bitcursor.WordBits {
		return fmt.Errorf("%w: invalid `NormalWidth`; expected: 0..%d, given: %d",
			shared.ErrInvalidConfig, bitcursor.WordBits, cfg.NormalWidth)
	}
	if cfg.Iterations < 1 {
		return fmt.Errorf("%w: invalid `Iterations`; expected: >= 1, given: %d",
			shared.ErrInvalidConfig, cfg.Iterations)
	}
	for _, mbps := range cfg.LinkMBps {
		if mbps <= 0 {
			return fmt.Errorf("%w: invalid `LinkMBps`; expected: > 0, given: %v",
				shared.ErrInvalidConfig, mbps)
		}
	}
	if cfg.DataDir == "" {
		return fmt.Errorf("%w: invalid `DataDir`; expected: a path, given: empty",
			shared.ErrInvalidConfig)
	}
	return nil
}

// Variant resolves the configured packing variant.
func (cfg *Config) Variant() (packing.Variant, error) {
	return packing.ParseVariant(cfg.Algorithm)
}

// Signed reports whether a signed transform is configured.
func (cfg *Config) Signed() bool {
	return cfg.Strategy != ""
}

// TransformStrategy resolves the configured signed transform.
func (cfg *Config) TransformStrategy() (transform.Strategy, error) {
	return transform.Parse(cfg.Strategy)
}

// CodecOptions maps the configuration onto codec construction options.
func (cfg *Config) CodecOptions() []packing.OptionFunc {
	opts := []packing.OptionFunc{packing.WithOutlierFraction(cfg.OutlierFraction)}
	if cfg.NormalWidth > 0 {
		opts = append(opts, packing.WithNormalWidth(uint8(cfg.NormalWidth)))
	}
	return opts
}

func userHomeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}
