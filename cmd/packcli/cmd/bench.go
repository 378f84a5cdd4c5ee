package cmd

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/packio/bitpack/bench"
)

var (
	benchSeed int64
	benchSize int
)

var benchCmd = &cobra.Command{
	Use:   "bench [file]",
	Short: "benchmark the packing variants",
	Long: "Bench measures compress, decompress and random access for every " +
		"variant over the standard generated datasets, or over the single " +
		"integer file given as argument, and prints break-even thresholds " +
		"for the configured link speeds.",
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var datasets []bench.Dataset
		if len(args) == 1 {
			values, err := readValues(args[0])
			if err != nil {
				return err
			}
			datasets = []bench.Dataset{{Name: filepath.Base(args[0]), Values: values}}
		} else {
			datasets = bench.DefaultDatasets(benchSeed, benchSize)
		}

		suite, err := bench.NewSuite(cfg.Iterations, codecLogger())
		if err != nil {
			return err
		}
		results, err := suite.Run(datasets)
		if err != nil {
			return err
		}

		bench.Report(cmd.OutOrStdout(), results, cfg.LinkMBps)
		return nil
	},
}

func init() {
	benchCmd.Flags().Int64Var(&benchSeed, "seed", 1, "dataset generator seed")
	benchCmd.Flags().IntVar(&benchSize, "size", 10000, "generated dataset size, in values")
	rootCmd.AddCommand(benchCmd)
}
