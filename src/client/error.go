package client

import (
	"errors"
	"fmt"
)

var (
	ErrRateLimited      = errors.New("rate limited")
	ErrUnexpectedStatus = errors.New("unexpected status")
)

// Error returned by the minter's REST API.
// Unwraps to the ledger's sentinel error, so errors.Is works across the wire.
type RemoteError struct {
	Status  int
	Kind    string
	Message string

	err error
}

func (self *RemoteError) Error() string {
	if self.Message == "" {
		return fmt.Sprintf("%s (status %d)", self.Kind, self.Status)
	}
	return self.Message
}

func (self *RemoteError) Unwrap() error {
	return self.err
}
