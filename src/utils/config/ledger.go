package config

import (
	"github.com/spf13/viper"
)

type Ledger struct {
	// Collection name and symbol, informational
	Name   string
	Symbol string

	// Prefix of every token's URI, may be changed later by the owner
	BaseURI string

	// Hard cap on the number of tokens ever minted
	MaxSupply uint64

	// Max number of tokens in one public mint
	MaxBatchSize uint64

	// Id of the first minted token
	FirstTokenId uint64

	// Address with admin rights
	Owner string

	// Price of one token in wei, decimal. Zero disables the payment check
	MintPrice string
}

func setLedgerDefaults() {
	viper.SetDefault("Ledger.Name", "Baby Spirit")
	viper.SetDefault("Ledger.Symbol", "BabySpirit")
	viper.SetDefault("Ledger.BaseURI", "ipfs.io/ipfs/")
	viper.SetDefault("Ledger.MaxSupply", "1000")
	viper.SetDefault("Ledger.MaxBatchSize", "10")
	viper.SetDefault("Ledger.FirstTokenId", "0")
	viper.SetDefault("Ledger.Owner", "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266")
	viper.SetDefault("Ledger.MintPrice", "0")
}
