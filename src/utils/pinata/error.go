package pinata

import (
	"errors"
	"fmt"
)

var (
	ErrMissingCredentials = errors.New("pinata credentials not set")
	ErrEmptyHash          = errors.New("pinata returned empty hash")
)

// Non-2xx response from the pinning API
type StatusError struct {
	Status int
	Body   string
}

func (self *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d: %s", self.Status, self.Body)
}

// Client errors won't get better after retrying, except for rate limiting
func (self *StatusError) isPermanent() bool {
	return self.Status >= 400 && self.Status < 500 && self.Status != 429
}
