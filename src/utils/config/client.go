package config

import (
	"time"

	"github.com/spf13/viper"
)

type Client struct {
	// Minter's REST API
	Url string

	// Address the CLI acts as
	Caller string

	// Time limit for requests
	RequestTimeout time.Duration
}

func setClientDefaults() {
	viper.SetDefault("Client.Url", "http://127.0.0.1:4000")
	viper.SetDefault("Client.Caller", "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266")
	viper.SetDefault("Client.RequestTimeout", "30s")
}
