package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/packio/bitpack/bench"
	"github.com/packio/bitpack/persistence"
	"github.com/packio/bitpack/shared"
)

var (
	genN          int
	genMax        uint32
	genOutlierMax uint32
	genAlpha      float64
	genShare      float64
	genSeed       int64
	genOut        string
)

var genCmd = &cobra.Command{
	Use:   "gen <uniform|power-law|outliers|sequential>",
	Short: "generate a dataset file",
	Long: "Gen writes a synthetic dataset, one integer per line, for feeding " +
		"back into compress and bench. Without --out the file lands in the " +
		"configured data directory.",
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		g := bench.NewGenerator(genSeed)

		kind := args[0]
		var values []uint32
		switch kind {
		case "uniform":
			values = g.Uniform(genN, genMax)
		case "power-law":
			values = g.PowerLaw(genN, genMax, genAlpha)
		case "outliers":
			if genOutlierMax <= genMax {
				return fmt.Errorf("%w: invalid `outlier-max`; expected: > %d, given: %d",
					shared.ErrInvalidConfig, genMax, genOutlierMax)
			}
			values = g.WithOutliers(genN, genMax, genOutlierMax, genShare)
		case "sequential":
			values = g.Sequential(genN, 0)
		default:
			return fmt.Errorf("%w: invalid `kind`; expected: one of uniform, power-law, outliers, sequential; given: %q",
				shared.ErrInvalidConfig, kind)
		}

		out := genOut
		if out == "" {
			out = filepath.Join(cfg.DataDir, kind+".txt")
		}
		if err := os.MkdirAll(filepath.Dir(out), persistence.OwnerReadWriteExec); err != nil && !os.IsExist(err) {
			return fmt.Errorf("dir creation failure: %v", err)
		}
		if err := writeValues(out, values); err != nil {
			return err
		}
		sugared.Infof("wrote %d %s values to %s", len(values), kind, out)
		return nil
	},
}

func init() {
	flags := genCmd.Flags()
	flags.IntVar(&genN, "n", 10000, "number of values")
	flags.Uint32Var(&genMax, "max", 4095, "value range upper bound")
	flags.Uint32Var(&genOutlierMax, "outlier-max", 1<<20, "outlier range upper bound (outliers kind)")
	flags.Float64Var(&genAlpha, "alpha", 4, "skew exponent (power-law kind)")
	flags.Float64Var(&genShare, "share", 0.05, "outlier share (outliers kind)")
	flags.Int64Var(&genSeed, "seed", 1, "generator seed")
	flags.StringVar(&genOut, "out", "", "output path")
	rootCmd.AddCommand(genCmd)
}
