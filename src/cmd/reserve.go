package cmd

import (
	"github.com/spf13/cobra"
)

var (
	reserveQuantity    uint64
	reserveUriSuffixes []string
)

func init() {
	reserveCmd.Flags().Uint64Var(&reserveQuantity, "quantity", 1, "number of tokens")
	reserveCmd.Flags().StringSliceVar(&reserveUriSuffixes, "uri", nil, "uri suffix of every token")
	RootCmd.AddCommand(reserveCmd)
}

var reserveCmd = &cobra.Command{
	Use:   "reserve",
	Short: "Mint tokens to the owner for free, owner only",
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		ids, err := newClient().Reserve(ctx, reserveQuantity, reserveUriSuffixes)
		if err != nil {
			return
		}

		return output(cmd, map[string]interface{}{"ids": ids})
	},
}
