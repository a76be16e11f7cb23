package ledger

import (
	"fmt"
	"math/big"
	"sync"
	"time"

	"github.com/warp-contracts/minter/src/utils/config"
	"github.com/warp-contracts/minter/src/utils/logger"

	"github.com/ethereum/go-ethereum/common"
	"github.com/sirupsen/logrus"
)

// Ledger is a fixed supply token minting state machine.
// Every mutating operation runs under a single write lock and is all-or-nothing:
// all checks are done before anything gets modified.
type Ledger struct {
	log *logrus.Entry

	mtx sync.RWMutex

	name   string
	symbol string
	owner  common.Address

	// Price of one token in wei, zero disables the check
	mintPrice *big.Int

	gate     *gate
	supply   *supply
	registry *registry
	treasury *treasury

	// Event numbering
	sequence  uint64
	listeners []Listener

	now func() time.Time
}

// State is a consistent copy of the ledger's counters
type State struct {
	Name          string         `json:"name"`
	Symbol        string         `json:"symbol"`
	Owner         common.Address `json:"owner"`
	BaseURI       string         `json:"base_uri"`
	TotalSupply   uint64         `json:"total_supply"`
	MaxSupply     uint64         `json:"max_supply"`
	MaxBatchSize  uint64         `json:"max_batch_size"`
	FirstTokenId  uint64         `json:"first_token_id"`
	MintingActive bool           `json:"minting_active"`
	Treasury      *big.Int       `json:"treasury"`
	MintPrice     *big.Int       `json:"mint_price"`
}

func New(config *config.Config) (self *Ledger, err error) {
	if !common.IsHexAddress(config.Ledger.Owner) {
		return nil, fmt.Errorf("%w: owner %q is not an address", ErrInvalidInput, config.Ledger.Owner)
	}
	owner := common.HexToAddress(config.Ledger.Owner)
	if isZeroAddress(owner) {
		return nil, fmt.Errorf("%w: owner can't be the zero address", ErrInvalidInput)
	}

	if config.Ledger.MaxBatchSize == 0 {
		return nil, fmt.Errorf("%w: max batch size must be positive", ErrInvalidInput)
	}

	mintPrice, err := ParseAmount(config.Ledger.MintPrice)
	if err != nil {
		return
	}

	// Ids have to fit in uint64
	if config.Ledger.MaxSupply > 0 && config.Ledger.FirstTokenId > ^uint64(0)-config.Ledger.MaxSupply+1 {
		return nil, fmt.Errorf("%w: token ids would overflow", ErrInvalidInput)
	}

	self = new(Ledger)
	self.log = logger.NewSublogger("ledger")
	self.name = config.Ledger.Name
	self.symbol = config.Ledger.Symbol
	self.owner = owner
	self.mintPrice = mintPrice
	self.gate = new(gate)
	self.supply = newSupply(config.Ledger.FirstTokenId, config.Ledger.MaxSupply, config.Ledger.MaxBatchSize)
	self.registry = newRegistry(config.Ledger.BaseURI)
	self.treasury = newTreasury()
	self.now = time.Now

	self.log.WithField("name", self.name).
		WithField("symbol", self.symbol).
		WithField("owner", self.owner.Hex()).
		WithField("max_supply", self.supply.max).
		Info("Ledger created")

	return
}

// Registers a listener of committed events. Not safe to call after the ledger is in use.
func (self *Ledger) WithListener(listener Listener) *Ledger {
	self.listeners = append(self.listeners, listener)
	return self
}

// ParseAmount parses a decimal wei amount. Empty string means zero.
func ParseAmount(s string) (out *big.Int, err error) {
	out = new(big.Int)
	if s == "" {
		return
	}
	_, ok := out.SetString(s, 10)
	if !ok || out.Sign() < 0 {
		return nil, fmt.Errorf("%w: %q is not a valid amount", ErrInvalidInput, s)
	}
	return
}

func (self *Ledger) isOwner(caller common.Address) bool {
	return caller == self.owner
}

// Stamps events and passes them to listeners. Needs the write lock.
func (self *Ledger) emit(events ...*Event) {
	timestamp := self.now().UnixMilli()
	for _, event := range events {
		self.sequence++
		event.Sequence = self.sequence
		event.Timestamp = timestamp
	}

	for _, listener := range self.listeners {
		listener.OnEvents(events)
	}
}

func (self *Ledger) mintEvents(caller, to common.Address, ids []uint64, uriSuffixes []string, payment *big.Int, reserved bool) (events []*Event) {
	zero := common.Address{}
	events = make([]*Event, 0, len(ids)+1)
	for i := range ids {
		id := ids[i]
		events = append(events, &Event{
			Type:      EventTransfer,
			Caller:    caller,
			From:      &zero,
			To:        &to,
			TokenId:   &id,
			UriSuffix: uriSuffixes[i],
		})
	}
	events = append(events, &Event{
		Type:     EventMint,
		Caller:   caller,
		To:       &to,
		TokenIds: ids,
		Amount:   new(big.Int).Set(payment),
		Reserved: reserved,
	})
	return
}

// IsMintingActive tells if the public mint path is open
func (self *Ledger) IsMintingActive() bool {
	self.mtx.RLock()
	defer self.mtx.RUnlock()
	return self.gate.isOpen()
}

// SetMintingActive opens or closes public minting. Owner only, idempotent.
func (self *Ledger) SetMintingActive(caller common.Address, desired bool) (err error) {
	self.mtx.Lock()
	defer self.mtx.Unlock()

	if !self.isOwner(caller) {
		return fmt.Errorf("%w: can't switch minting", ErrNotAuthorized)
	}

	if self.gate.set(desired) {
		self.log.WithField("active", desired).Info("Minting switched")
	}

	self.emit(&Event{
		Type:   EventMintingSwitched,
		Caller: caller,
		Active: &desired,
	})
	return
}

// SetBaseURI changes the prefix of every token's URI. Owner only.
func (self *Ledger) SetBaseURI(caller common.Address, baseURI string) (err error) {
	self.mtx.Lock()
	defer self.mtx.Unlock()

	if !self.isOwner(caller) {
		return fmt.Errorf("%w: can't set base uri", ErrNotAuthorized)
	}

	self.registry.baseURI = baseURI

	self.emit(&Event{
		Type:    EventBaseURIChanged,
		Caller:  caller,
		BaseURI: baseURI,
	})
	return
}

// Mint allocates quantity tokens to the caller in exchange for payment (wei).
// Returns the ids of the new tokens.
func (self *Ledger) Mint(caller common.Address, quantity uint64, uriSuffixes []string, payment *big.Int) (ids []uint64, err error) {
	if payment == nil {
		payment = new(big.Int)
	}

	self.mtx.Lock()
	defer self.mtx.Unlock()

	if !self.gate.isOpen() {
		return nil, ErrMintingInactive
	}

	if payment.Sign() < 0 {
		return nil, fmt.Errorf("%w: negative payment", ErrInvalidInput)
	}

	if uint64(len(uriSuffixes)) != quantity {
		return nil, fmt.Errorf("%w: got %d uri suffixes for %d tokens", ErrInvalidInput, len(uriSuffixes), quantity)
	}

	err = self.supply.check(quantity, true)
	if err != nil {
		return
	}

	err = self.registry.check(int(quantity), caller, uriSuffixes)
	if err != nil {
		return
	}

	if self.mintPrice.Sign() > 0 {
		expected := new(big.Int).Mul(self.mintPrice, new(big.Int).SetUint64(quantity))
		if payment.Cmp(expected) < 0 {
			return nil, fmt.Errorf("%w: paid %s, expected %s", ErrInsufficientPayment, payment, expected)
		}
	}

	// Checks passed, nothing below may fail
	ids = self.supply.advance(quantity)
	err = self.registry.recordMint(ids, caller, uriSuffixes)
	if err != nil {
		// Unreachable, registry was checked above
		panic(err)
	}
	self.treasury.credit(payment)

	self.log.WithField("to", caller.Hex()).
		WithField("ids", ids).
		WithField("payment", payment.String()).
		Debug("Minted")

	self.emit(self.mintEvents(caller, caller, ids, uriSuffixes, payment, false)...)
	return
}

// Reserve allocates tokens to the owner without payment, regardless of the gate and batch limit.
func (self *Ledger) Reserve(caller common.Address, quantity uint64, uriSuffixes []string) (ids []uint64, err error) {
	self.mtx.Lock()
	defer self.mtx.Unlock()

	if !self.isOwner(caller) {
		return nil, fmt.Errorf("%w: can't reserve", ErrNotAuthorized)
	}

	if uint64(len(uriSuffixes)) != quantity {
		return nil, fmt.Errorf("%w: got %d uri suffixes for %d tokens", ErrInvalidInput, len(uriSuffixes), quantity)
	}

	err = self.supply.check(quantity, false)
	if err != nil {
		return
	}

	err = self.registry.check(int(quantity), caller, uriSuffixes)
	if err != nil {
		return
	}

	ids = self.supply.advance(quantity)
	err = self.registry.recordMint(ids, caller, uriSuffixes)
	if err != nil {
		panic(err)
	}

	self.log.WithField("ids", ids).Info("Reserved")

	self.emit(self.mintEvents(caller, caller, ids, uriSuffixes, new(big.Int), true)...)
	return
}

// Withdraw moves the whole treasury to the owner and returns the amount.
// Empty treasury isn't an error, zero is returned.
func (self *Ledger) Withdraw(caller common.Address) (amount *big.Int, err error) {
	self.mtx.Lock()
	defer self.mtx.Unlock()

	if !self.isOwner(caller) {
		return nil, fmt.Errorf("%w: can't withdraw", ErrNotAuthorized)
	}

	amount = self.treasury.drain()

	self.log.WithField("amount", amount.String()).Info("Withdrawn")

	to := self.owner
	self.emit(&Event{
		Type:   EventWithdrawal,
		Caller: caller,
		To:     &to,
		Amount: new(big.Int).Set(amount),
	})
	return
}

// TokenURI returns base URI concatenated with the token's suffix
func (self *Ledger) TokenURI(id uint64) (string, error) {
	self.mtx.RLock()
	defer self.mtx.RUnlock()
	return self.registry.tokenURI(id)
}

func (self *Ledger) OwnerOf(id uint64) (owner common.Address, err error) {
	self.mtx.RLock()
	defer self.mtx.RUnlock()

	token, err := self.registry.get(id)
	if err != nil {
		return
	}
	return token.Owner, nil
}

// GetToken returns a copy of the token record
func (self *Ledger) GetToken(id uint64) (out Token, err error) {
	self.mtx.RLock()
	defer self.mtx.RUnlock()

	token, err := self.registry.get(id)
	if err != nil {
		return
	}
	return *token, nil
}

// GetTokenWithURI returns the token record with its URI, both read from the same state
func (self *Ledger) GetTokenWithURI(id uint64) (out Token, uri string, err error) {
	self.mtx.RLock()
	defer self.mtx.RUnlock()

	token, err := self.registry.get(id)
	if err != nil {
		return
	}
	return *token, self.registry.baseURI + token.UriSuffix, nil
}

// BalanceOf never fails, unknown addresses have zero tokens
func (self *Ledger) BalanceOf(owner common.Address) uint64 {
	self.mtx.RLock()
	defer self.mtx.RUnlock()
	return self.registry.balanceOf(owner)
}

func (self *Ledger) TotalSupply() uint64 {
	self.mtx.RLock()
	defer self.mtx.RUnlock()
	return self.supply.total
}

func (self *Ledger) MaxSupply() uint64 {
	return self.supply.max
}

func (self *Ledger) Owner() common.Address {
	return self.owner
}

func (self *Ledger) TreasuryBalance() *big.Int {
	self.mtx.RLock()
	defer self.mtx.RUnlock()
	return self.treasury.get()
}

func (self *Ledger) Snapshot() (out State) {
	self.mtx.RLock()
	defer self.mtx.RUnlock()

	return State{
		Name:          self.name,
		Symbol:        self.symbol,
		Owner:         self.owner,
		BaseURI:       self.registry.baseURI,
		TotalSupply:   self.supply.total,
		MaxSupply:     self.supply.max,
		MaxBatchSize:  self.supply.maxBatch,
		FirstTokenId:  self.supply.origin,
		MintingActive: self.gate.isOpen(),
		Treasury:      self.treasury.get(),
		MintPrice:     new(big.Int).Set(self.mintPrice),
	}
}

// IsRejection tells if the error is one of the ledger's rejections, as opposed to an internal failure
func IsRejection(err error) bool {
	return err != nil && Kind(err) != KindInternal
}
