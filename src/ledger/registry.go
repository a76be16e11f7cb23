package ledger

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
)

type Token struct {
	Id        uint64         `json:"id"`
	Owner     common.Address `json:"owner"`
	UriSuffix string         `json:"uri_suffix"`
}

// Keeps minted tokens and per-owner balances
type registry struct {
	baseURI  string
	tokens   map[uint64]*Token
	balances map[common.Address]uint64
}

func newRegistry(baseURI string) *registry {
	return &registry{
		baseURI:  baseURI,
		tokens:   make(map[uint64]*Token),
		balances: make(map[common.Address]uint64),
	}
}

func isZeroAddress(address common.Address) bool {
	return address == (common.Address{})
}

// Validates a mint batch without touching the registry
func (self *registry) check(numIds int, owner common.Address, uriSuffixes []string) error {
	if numIds != len(uriSuffixes) {
		return fmt.Errorf("%w: got %d ids and %d uri suffixes", ErrInvalidInput, numIds, len(uriSuffixes))
	}

	if isZeroAddress(owner) {
		return ErrZeroAddressRecipient
	}

	return nil
}

func (self *registry) recordMint(ids []uint64, owner common.Address, uriSuffixes []string) (err error) {
	err = self.check(len(ids), owner, uriSuffixes)
	if err != nil {
		return
	}

	for i, id := range ids {
		self.tokens[id] = &Token{
			Id:        id,
			Owner:     owner,
			UriSuffix: uriSuffixes[i],
		}
	}
	self.balances[owner] += uint64(len(ids))

	return
}

func (self *registry) get(id uint64) (token *Token, err error) {
	token, ok := self.tokens[id]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownToken, id)
	}
	return
}

func (self *registry) tokenURI(id uint64) (out string, err error) {
	token, err := self.get(id)
	if err != nil {
		return
	}
	return self.baseURI + token.UriSuffix, nil
}

func (self *registry) balanceOf(owner common.Address) uint64 {
	return self.balances[owner]
}
