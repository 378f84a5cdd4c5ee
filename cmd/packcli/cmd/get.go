package cmd

import (
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/packio/bitpack"
	"github.com/packio/bitpack/persistence"
	"github.com/packio/bitpack/shared"
)

var getCmd = &cobra.Command{
	Use:   "get <file> <index>",
	Short: "read one element of a block file without decompressing it",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		index, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("%w: invalid `index`; expected: an integer, given: %q",
				shared.ErrInvalidConfig, args[1])
		}

		if filepath.Ext(path) == signedExt {
			sb, err := persistence.LoadSigned(path)
			if err != nil {
				return err
			}
			v, err := bitpack.GetSigned(sb, index)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), v)
			return nil
		}

		b, err := persistence.Load(path)
		if err != nil {
			return err
		}
		v, err := bitpack.Get(b, index)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), v)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(getCmd)
}
