package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/packio/bitpack"
	"github.com/packio/bitpack/persistence"
)

var decompressCmd = &cobra.Command{
	Use:   "decompress <file>...",
	Short: "restore integer files from block files",
	Long: "Decompress restores the full integer sequence of each block file " +
		"and writes it, one integer per line, to a file next to it. Signed " +
		"block files are recognized by their extension.",
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var eg errgroup.Group
		for _, path := range args {
			path := path
			eg.Go(func() error {
				if err := decompressFile(path); err != nil {
					return fmt.Errorf("%s: %w", path, err)
				}
				return nil
			})
		}
		return eg.Wait()
	},
}

func init() {
	rootCmd.AddCommand(decompressCmd)
}

func decompressFile(path string) error {
	out := replaceExt(path, ".out")

	if filepath.Ext(path) == signedExt {
		sb, err := persistence.LoadSigned(path)
		if err != nil {
			return err
		}
		values, err := bitpack.DecompressSigned(sb)
		if err != nil {
			return err
		}
		if err := writeSignedValues(out, values); err != nil {
			return err
		}
		sugared.Infof("decompressed %s into %s (%d values)", path, out, len(values))
		return nil
	}

	b, err := persistence.Load(path)
	if err != nil {
		return err
	}
	values, err := bitpack.Decompress(b)
	if err != nil {
		return err
	}
	if err := writeValues(out, values); err != nil {
		return err
	}
	sugared.Infof("decompressed %s into %s (%d values)", path, out, len(values))
	return nil
}
