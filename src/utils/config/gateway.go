package config

import (
	"time"

	"github.com/spf13/viper"
)

type Gateway struct {
	// REST API address
	RESTListenAddress string

	// Max time for handling one request
	ServerRequestTimeout time.Duration

	// Public mint requests allowed per second, 0 turns the limit off
	MintRateLimit float64

	// Burst of public mint requests
	MintBurstSize int
}

func setGatewayDefaults() {
	viper.SetDefault("Gateway.RESTListenAddress", "0.0.0.0:4000")
	viper.SetDefault("Gateway.ServerRequestTimeout", "30s")
	viper.SetDefault("Gateway.MintRateLimit", "50")
	viper.SetDefault("Gateway.MintBurstSize", "100")
}
