package ledger

// Decides whether the public mint path is open
type gate struct {
	active bool
}

func (self *gate) isOpen() bool {
	return self.active
}

func (self *gate) set(desired bool) (changed bool) {
	changed = self.active != desired
	self.active = desired
	return
}
