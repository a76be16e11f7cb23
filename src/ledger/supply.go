package ledger

import "fmt"

// Tracks how many tokens were allocated and hands out sequential ids
type supply struct {
	// Id of the first token ever minted
	origin uint64

	// Number of tokens allocated so far
	total uint64

	// Hard cap, never changes
	max uint64

	// Max tokens in one public mint
	maxBatch uint64
}

func newSupply(origin, max, maxBatch uint64) *supply {
	return &supply{
		origin:   origin,
		max:      max,
		maxBatch: maxBatch,
	}
}

// Checks if count tokens may be allocated. Doesn't change anything.
func (self *supply) check(count uint64, enforceBatchLimit bool) error {
	if count == 0 {
		return fmt.Errorf("%w: quantity must be positive", ErrInvalidInput)
	}

	if enforceBatchLimit && count > self.maxBatch {
		return fmt.Errorf("%w: requested %d, limit is %d", ErrBatchLimitExceeded, count, self.maxBatch)
	}

	// Written this way to avoid overflow
	if count > self.max-self.total {
		return fmt.Errorf("%w: requested %d, only %d of %d available", ErrSupplyExhausted, count, self.max-self.total, self.max)
	}

	return nil
}

// Allocates count ids. Caller needs to check() first.
func (self *supply) advance(count uint64) (ids []uint64) {
	ids = make([]uint64, count)
	for i := range ids {
		ids[i] = self.origin + self.total + uint64(i)
	}
	self.total += count
	return
}

func (self *supply) reserveNext(count uint64, enforceBatchLimit bool) (ids []uint64, err error) {
	err = self.check(count, enforceBatchLimit)
	if err != nil {
		return
	}
	return self.advance(count), nil
}

// Is the id within the allocated range
func (self *supply) isAllocated(id uint64) bool {
	return id >= self.origin && id-self.origin < self.total
}
