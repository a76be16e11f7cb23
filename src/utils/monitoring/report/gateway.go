package report

import (
	"go.uber.org/atomic"
)

type GatewayErrors struct {
	NotAuthorized        atomic.Uint64 `json:"not_authorized"`
	MintingInactive      atomic.Uint64 `json:"minting_inactive"`
	BatchLimitExceeded   atomic.Uint64 `json:"batch_limit_exceeded"`
	SupplyExhausted      atomic.Uint64 `json:"supply_exhausted"`
	ZeroAddressRecipient atomic.Uint64 `json:"zero_address_recipient"`
	InvalidInput         atomic.Uint64 `json:"invalid_input"`
	UnknownToken         atomic.Uint64 `json:"unknown_token"`
	InsufficientPayment  atomic.Uint64 `json:"insufficient_payment"`
	BadRequest           atomic.Uint64 `json:"bad_request"`
	RateLimited          atomic.Uint64 `json:"rate_limited"`
	Internal             atomic.Uint64 `json:"internal"`
}

type GatewayState struct {
	Requests atomic.Uint64 `json:"requests"`
}

type GatewayReport struct {
	State  GatewayState  `json:"state"`
	Errors GatewayErrors `json:"errors"`
}
