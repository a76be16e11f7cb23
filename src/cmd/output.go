package cmd

import (
	"encoding/json"

	"github.com/warp-contracts/minter/src/client"

	"github.com/spf13/cobra"
)

// Commands print their results as indented JSON
func output(cmd *cobra.Command, v interface{}) error {
	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

func newClient() *client.Client {
	return client.NewClient(conf)
}
