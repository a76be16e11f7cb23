package cmd

import (
	"github.com/spf13/cobra"
)

func init() {
	RootCmd.AddCommand(setBaseURICmd)
}

var setBaseURICmd = &cobra.Command{
	Use:   "set-base-uri <uri>",
	Short: "Change the prefix of every token's URI, owner only",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		err = newClient().SetBaseURI(ctx, args[0])
		if err != nil {
			return
		}

		return output(cmd, map[string]interface{}{"base_uri": args[0]})
	},
}
