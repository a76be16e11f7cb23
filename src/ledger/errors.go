package ledger

import "errors"

var (
	ErrNotAuthorized        = errors.New("caller is not the owner")
	ErrMintingInactive      = errors.New("minting is not active")
	ErrBatchLimitExceeded   = errors.New("cannot mint this number of tokens in one go")
	ErrSupplyExhausted      = errors.New("not enough tokens left")
	ErrZeroAddressRecipient = errors.New("mint to the zero address")
	ErrInvalidInput         = errors.New("invalid input")
	ErrUnknownToken         = errors.New("unknown token")
	ErrInsufficientPayment  = errors.New("insufficient payment")
)

// Stable names of the rejections, used on the wire
const (
	KindNotAuthorized        = "NotAuthorized"
	KindMintingInactive      = "MintingInactive"
	KindBatchLimitExceeded   = "BatchLimitExceeded"
	KindSupplyExhausted      = "SupplyExhausted"
	KindZeroAddressRecipient = "ZeroAddressRecipient"
	KindInvalidInput         = "InvalidInput"
	KindUnknownToken         = "UnknownToken"
	KindInsufficientPayment  = "InsufficientPayment"
	KindInternal             = "Internal"
)

var kinds = []struct {
	err  error
	kind string
}{
	{ErrNotAuthorized, KindNotAuthorized},
	{ErrMintingInactive, KindMintingInactive},
	{ErrBatchLimitExceeded, KindBatchLimitExceeded},
	{ErrSupplyExhausted, KindSupplyExhausted},
	{ErrZeroAddressRecipient, KindZeroAddressRecipient},
	{ErrInvalidInput, KindInvalidInput},
	{ErrUnknownToken, KindUnknownToken},
	{ErrInsufficientPayment, KindInsufficientPayment},
}

// Kind returns the name of the rejection wrapped in err.
// Errors that don't come from the ledger are reported as KindInternal.
func Kind(err error) string {
	for _, k := range kinds {
		if errors.Is(err, k.err) {
			return k.kind
		}
	}
	return KindInternal
}

// ErrorFromKind is the inverse of Kind. Returns nil for unknown kinds.
func ErrorFromKind(kind string) error {
	for _, k := range kinds {
		if k.kind == kind {
			return k.err
		}
	}
	return nil
}
