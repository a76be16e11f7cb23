package ledger

import (
	"encoding/json"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

type EventType string

const (
	// One per minted token, mirrors ERC-721 Transfer(0x0, to, id)
	EventTransfer EventType = "transfer"

	// One per successful mint or reserve call
	EventMint EventType = "mint"

	EventWithdrawal      EventType = "withdrawal"
	EventMintingSwitched EventType = "minting_switched"
	EventBaseURIChanged  EventType = "base_uri_changed"
)

// Event describes a committed state change
type Event struct {
	Type EventType `json:"type"`

	// Monotonic, starts from 1, no gaps
	Sequence uint64 `json:"sequence"`

	// Unix milliseconds
	Timestamp int64 `json:"timestamp"`

	Caller common.Address  `json:"caller"`
	From   *common.Address `json:"from,omitempty"`
	To     *common.Address `json:"to,omitempty"`

	TokenId   *uint64  `json:"token_id,omitempty"`
	TokenIds  []uint64 `json:"token_ids,omitempty"`
	UriSuffix string   `json:"uri_suffix,omitempty"`

	// Payment (mint) or withdrawn amount, in wei
	Amount   *big.Int `json:"amount,omitempty"`
	Reserved bool     `json:"reserved,omitempty"`

	Active  *bool  `json:"active,omitempty"`
	BaseURI string `json:"base_uri,omitempty"`
}

func (self *Event) MarshalBinary() ([]byte, error) {
	return json.Marshal(self)
}

func (self *Event) UnmarshalBinary(data []byte) error {
	return json.Unmarshal(data, self)
}

// Listener receives events of every committed operation, in commit order.
// It's called while the ledger is locked, so it must not call the ledger back and should return quickly.
type Listener interface {
	OnEvents(events []*Event)
}

// ListenerFunc adapts a function to the Listener interface
type ListenerFunc func(events []*Event)

func (f ListenerFunc) OnEvents(events []*Event) {
	f(events)
}
