package cmd

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/warp-contracts/minter/src/ledger"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
)

func TestParseEther(t *testing.T) {
	wei, err := parseEther("1")
	require.Nil(t, err)
	require.Equal(t, "1000000000000000000", wei)

	wei, err = parseEther("0.5")
	require.Nil(t, err)
	require.Equal(t, "500000000000000000", wei)

	// Not representable in binary floating point
	wei, err = parseEther("0.000000000000007919")
	require.Nil(t, err)
	require.Equal(t, "7919", wei)

	wei, err = parseEther("0.000000000000015838")
	require.Nil(t, err)
	require.Equal(t, "15838", wei)

	wei, err = parseEther("0.1")
	require.Nil(t, err)
	require.Equal(t, "100000000000000000", wei)

	wei, err = parseEther("1234.567890123456789012")
	require.NotNil(t, err)
	require.Empty(t, wei)

	_, err = parseEther("-1")
	require.ErrorIs(t, err, ledger.ErrInvalidInput)

	_, err = parseEther("lots")
	require.ErrorIs(t, err, ledger.ErrInvalidInput)
}

func TestParseEtherExact(t *testing.T) {
	for i := int64(1); i < 20000; i += 7 {
		in := fmt.Sprintf("0.%018d", i)
		wei, err := parseEther(in)
		require.Nil(t, err, in)
		require.Equal(t, fmt.Sprint(i), wei, in)
	}
}

func TestOutput(t *testing.T) {
	var buf bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&buf)

	require.Nil(t, output(cmd, map[string]interface{}{"ids": []uint64{1, 2}}))
	require.JSONEq(t, `{"ids":[1,2]}`, buf.String())
}

func TestCommandsRegistered(t *testing.T) {
	for _, name := range []string{"serve", "mint", "reserve", "withdraw", "switch-minting", "set-base-uri", "token-uri", "balance", "supply", "pin-json", "pin-file"} {
		cmd, _, err := RootCmd.Find([]string{name})
		require.Nil(t, err, name)
		require.Equal(t, name, cmd.Name())
	}
}
