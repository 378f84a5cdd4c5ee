package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/packio/bitpack"
	"github.com/packio/bitpack/persistence"
)

const (
	blockExt  = ".bpk"
	signedExt = ".sbpk"
)

var compressCmd = &cobra.Command{
	Use:   "compress <file>...",
	Short: "compress integer files into block files",
	Long: "Compress reads one integer per line from each input file and " +
		"writes a block file next to it. With --strategy set the input may " +
		"contain negative integers and the output is a signed block file.",
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		variant, err := cfg.Variant()
		if err != nil {
			return err
		}

		var eg errgroup.Group
		for _, path := range args {
			path := path
			eg.Go(func() error {
				if err := compressFile(variant, path); err != nil {
					return fmt.Errorf("%s: %w", path, err)
				}
				return nil
			})
		}
		return eg.Wait()
	},
}

func init() {
	rootCmd.AddCommand(compressCmd)
}

func compressFile(variant bitpack.Variant, path string) error {
	if cfg.Signed() {
		strategy, err := cfg.TransformStrategy()
		if err != nil {
			return err
		}
		values, err := readSignedValues(path)
		if err != nil {
			return err
		}
		sb, err := bitpack.CompressSigned(variant, strategy, values, codecOptions()...)
		if err != nil {
			return err
		}
		out := replaceExt(path, signedExt)
		if err := persistence.SaveSigned(out, sb); err != nil {
			return err
		}
		sugared.Infof("compressed %s into %s (%d values, ratio %.2f)",
			path, out, len(values), sb.Data.Ratio())
		return nil
	}

	values, err := readValues(path)
	if err != nil {
		return err
	}
	b, err := bitpack.Compress(variant, values, codecOptions()...)
	if err != nil {
		return err
	}
	out := replaceExt(path, blockExt)
	if err := persistence.Save(out, b); err != nil {
		return err
	}
	sugared.Infof("compressed %s into %s (%d values, ratio %.2f)",
		path, out, len(values), b.Ratio())
	return nil
}

func replaceExt(path, ext string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + ext
}
