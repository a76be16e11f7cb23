package cmd

import (
	"strconv"

	"github.com/spf13/cobra"
)

func init() {
	RootCmd.AddCommand(switchMintingCmd)
}

var switchMintingCmd = &cobra.Command{
	Use:   "switch-minting [true|false]",
	Short: "Open or close public minting, owner only. Toggles when no value is given",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		client := newClient()

		var active bool
		if len(args) == 1 {
			active, err = strconv.ParseBool(args[0])
			if err != nil {
				return
			}
		} else {
			active, err = client.IsMintingActive(ctx)
			if err != nil {
				return
			}
			active = !active
		}

		err = client.SetMintingActive(ctx, active)
		if err != nil {
			return
		}

		return output(cmd, map[string]interface{}{"active": active})
	},
}
