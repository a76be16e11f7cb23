package report

import (
	"go.uber.org/atomic"
)

type LedgerState struct {
	TotalSupply                  atomic.Uint64  `json:"total_supply"`
	TokensMinted                 atomic.Uint64  `json:"tokens_minted"`
	TokensReserved               atomic.Uint64  `json:"tokens_reserved"`
	MintCalls                    atomic.Uint64  `json:"mint_calls"`
	Withdrawals                  atomic.Uint64  `json:"withdrawals"`
	LastEventSequence            atomic.Uint64  `json:"last_event_sequence"`
	LastEventTimestamp           atomic.Int64   `json:"last_event_timestamp"`
	MintingActive                atomic.Bool    `json:"minting_active"`
	AverageTokensMintedPerMinute atomic.Float64 `json:"average_tokens_minted_per_minute"`

	// Wei amounts don't fit in 64 bits, kept as decimal strings
	WeiCollected atomic.String `json:"wei_collected"`
	WeiWithdrawn atomic.String `json:"wei_withdrawn"`
}

type LedgerReport struct {
	State LedgerState `json:"state"`
}
