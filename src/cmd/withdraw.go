package cmd

import (
	"github.com/spf13/cobra"
)

func init() {
	RootCmd.AddCommand(withdrawCmd)
}

var withdrawCmd = &cobra.Command{
	Use:   "withdraw",
	Short: "Move the whole treasury to the owner, owner only",
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		amount, err := newClient().Withdraw(ctx)
		if err != nil {
			return
		}

		return output(cmd, map[string]interface{}{"amount": amount.String()})
	},
}
