package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/warp-contracts/minter/src/utils/pinata"

	"github.com/spf13/cobra"
)

func init() {
	RootCmd.AddCommand(pinJSONCmd)
	RootCmd.AddCommand(pinFileCmd)
}

var pinJSONCmd = &cobra.Command{
	Use:   "pin-json <file>",
	Short: "Upload token metadata to IPFS, prints the hash to use as uri suffix",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		/* #nosec */
		content, err := os.ReadFile(args[0])
		if err != nil {
			return
		}

		var body json.RawMessage
		err = json.Unmarshal(content, &body)
		if err != nil {
			return fmt.Errorf("%s isn't a JSON file: %w", args[0], err)
		}

		out, err := pinata.NewClient(conf).PinJSON(ctx, body)
		if err != nil {
			return
		}

		return output(cmd, out)
	},
}

var pinFileCmd = &cobra.Command{
	Use:   "pin-file <file>",
	Short: "Upload a file, e.g. token's image, to IPFS",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		/* #nosec */
		content, err := os.ReadFile(args[0])
		if err != nil {
			return
		}

		out, err := pinata.NewClient(conf).PinFile(ctx, filepath.Base(args[0]), content)
		if err != nil {
			return
		}

		return output(cmd, out)
	},
}
