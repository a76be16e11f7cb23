package request

// Every mutating request names the address it acts as
type Mint struct {
	Caller      string   `json:"caller" binding:"required"`
	Quantity    uint64   `json:"quantity"`
	UriSuffixes []string `json:"uri_suffixes"`

	// Wei, decimal string
	Payment string `json:"payment"`
}

type Reserve struct {
	Caller      string   `json:"caller" binding:"required"`
	Quantity    uint64   `json:"quantity"`
	UriSuffixes []string `json:"uri_suffixes"`
}

type Withdraw struct {
	Caller string `json:"caller" binding:"required"`
}

type SetMinting struct {
	Caller string `json:"caller" binding:"required"`
	Active *bool  `json:"active" binding:"required"`
}

type SetBaseURI struct {
	Caller  string `json:"caller" binding:"required"`
	BaseURI string `json:"base_uri"`
}
