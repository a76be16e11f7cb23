package cmd

import (
	"fmt"
	"strconv"

	"github.com/warp-contracts/minter/src/ledger"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"
)

func init() {
	RootCmd.AddCommand(tokenURICmd)
	RootCmd.AddCommand(balanceCmd)
	RootCmd.AddCommand(supplyCmd)
}

var tokenURICmd = &cobra.Command{
	Use:   "token-uri <id>",
	Short: "Print the token's URI",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		id, err := strconv.ParseUint(args[0], 10, 64)
		if err != nil {
			return
		}

		token, err := newClient().Token(ctx, id)
		if err != nil {
			return
		}

		return output(cmd, token)
	},
}

var balanceCmd = &cobra.Command{
	Use:   "balance [address]",
	Short: "Print the number of tokens owned by the address, caller by default",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		address := conf.Client.Caller
		if len(args) == 1 {
			address = args[0]
		}
		if !common.IsHexAddress(address) {
			return fmt.Errorf("%w: %q is not an address", ledger.ErrInvalidInput, address)
		}

		balance, err := newClient().BalanceOf(ctx, common.HexToAddress(address))
		if err != nil {
			return
		}

		return output(cmd, map[string]interface{}{
			"address": common.HexToAddress(address).Hex(),
			"balance": balance,
		})
	},
}

var supplyCmd = &cobra.Command{
	Use:   "supply",
	Short: "Print the ledger's state",
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		state, err := newClient().Ledger(ctx)
		if err != nil {
			return
		}

		return output(cmd, state)
	},
}
