package config

import (
	"time"

	"github.com/spf13/viper"
)

type Pinata struct {
	// Pinning API
	ApiUrl string

	// Public gateway used to build links to pinned content
	GatewayUrl string

	// Credentials
	ApiKey       string
	SecretApiKey string

	// Time limit for requests. The timeout includes connection time, any
	// redirects, and reading the response body
	RequestTimeout time.Duration

	// Retrying failed pins, 0 is no limit
	MaxElapsedTime time.Duration
	MaxInterval    time.Duration

	// How long already pinned content is remembered
	CacheTTL time.Duration
}

func setPinataDefaults() {
	viper.SetDefault("Pinata.ApiUrl", "https://api.pinata.cloud")
	viper.SetDefault("Pinata.GatewayUrl", "https://gateway.pinata.cloud/ipfs/")
	viper.SetDefault("Pinata.ApiKey", "")
	viper.SetDefault("Pinata.SecretApiKey", "")
	viper.SetDefault("Pinata.RequestTimeout", "60s")
	viper.SetDefault("Pinata.MaxElapsedTime", "2m")
	viper.SetDefault("Pinata.MaxInterval", "10s")
	viper.SetDefault("Pinata.CacheTTL", "1h")
}
