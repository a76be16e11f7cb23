package ledger

import "math/big"

// Accumulated, not yet withdrawn payments in wei
type treasury struct {
	balance *big.Int
}

func newTreasury() *treasury {
	return &treasury{balance: new(big.Int)}
}

func (self *treasury) credit(amount *big.Int) {
	if amount == nil {
		return
	}
	self.balance.Add(self.balance, amount)
}

// Empties the treasury and returns what was there
func (self *treasury) drain() (out *big.Int) {
	out = new(big.Int).Set(self.balance)
	self.balance.SetUint64(0)
	return
}

func (self *treasury) get() *big.Int {
	return new(big.Int).Set(self.balance)
}
