package cmd

import (
	"fmt"
	"math/big"

	"github.com/warp-contracts/minter/src/ledger"

	"github.com/ethereum/go-ethereum/params"
	"github.com/spf13/cobra"
)

var (
	mintQuantity    uint64
	mintUriSuffixes []string
	mintPayment     string
	mintEther       string
)

func init() {
	mintCmd.Flags().Uint64Var(&mintQuantity, "quantity", 1, "number of tokens")
	mintCmd.Flags().StringSliceVar(&mintUriSuffixes, "uri", nil, "uri suffix of every token, e.g. IPFS hashes")
	mintCmd.Flags().StringVar(&mintPayment, "payment", "", "payment in wei")
	mintCmd.Flags().StringVar(&mintEther, "ether", "", "payment in ether, alternative to --payment")
	mintCmd.MarkFlagsMutuallyExclusive("payment", "ether")
	RootCmd.AddCommand(mintCmd)
}

// Converts a decimal ether amount to wei, exactly. Fractions below 1 wei are rejected.
func parseEther(s string) (string, error) {
	value, ok := new(big.Rat).SetString(s)
	if !ok || value.Sign() < 0 {
		return "", fmt.Errorf("%w: %q is not an ether amount", ledger.ErrInvalidInput, s)
	}
	value.Mul(value, new(big.Rat).SetInt(big.NewInt(params.Ether)))
	if !value.IsInt() {
		return "", fmt.Errorf("%w: %q has more than 18 decimals", ledger.ErrInvalidInput, s)
	}
	return value.Num().String(), nil
}

var mintCmd = &cobra.Command{
	Use:   "mint",
	Short: "Mint tokens to the caller",
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		if mintEther != "" {
			mintPayment, err = parseEther(mintEther)
			if err != nil {
				return
			}
		}

		payment, err := ledger.ParseAmount(mintPayment)
		if err != nil {
			return
		}

		ids, err := newClient().Mint(ctx, mintQuantity, mintUriSuffixes, payment)
		if err != nil {
			return
		}

		return output(cmd, map[string]interface{}{"ids": ids})
	},
}
