package response

import (
	"github.com/warp-contracts/minter/src/ledger"
)

type Error struct {
	// Stable error kind, e.g. SupplyExhausted
	Error   string `json:"error"`
	Message string `json:"message"`
}

type Ids struct {
	Ids []uint64 `json:"ids"`
}

type Amount struct {
	// Wei, decimal string
	Amount string `json:"amount"`
}

type Minting struct {
	Active bool `json:"active"`
}

type BaseURI struct {
	BaseURI string `json:"base_uri"`
}

type Supply struct {
	TotalSupply  uint64 `json:"total_supply"`
	MaxSupply    uint64 `json:"max_supply"`
	MaxBatchSize uint64 `json:"max_batch_size"`
	FirstTokenId uint64 `json:"first_token_id"`
}

type Token struct {
	Id        uint64 `json:"id"`
	Owner     string `json:"owner"`
	UriSuffix string `json:"uri_suffix"`
	TokenURI  string `json:"token_uri"`
}

type Balance struct {
	Address string `json:"address"`
	Balance uint64 `json:"balance"`
}

type Ledger struct {
	Name          string `json:"name"`
	Symbol        string `json:"symbol"`
	Owner         string `json:"owner"`
	BaseURI       string `json:"base_uri"`
	TotalSupply   uint64 `json:"total_supply"`
	MaxSupply     uint64 `json:"max_supply"`
	MaxBatchSize  uint64 `json:"max_batch_size"`
	FirstTokenId  uint64 `json:"first_token_id"`
	MintingActive bool   `json:"minting_active"`
	Treasury      string `json:"treasury"`
	MintPrice     string `json:"mint_price"`
}

func TokenToResponse(token ledger.Token, tokenURI string) *Token {
	return &Token{
		Id:        token.Id,
		Owner:     token.Owner.Hex(),
		UriSuffix: token.UriSuffix,
		TokenURI:  tokenURI,
	}
}

func StateToResponse(state ledger.State) *Ledger {
	return &Ledger{
		Name:          state.Name,
		Symbol:        state.Symbol,
		Owner:         state.Owner.Hex(),
		BaseURI:       state.BaseURI,
		TotalSupply:   state.TotalSupply,
		MaxSupply:     state.MaxSupply,
		MaxBatchSize:  state.MaxBatchSize,
		FirstTokenId:  state.FirstTokenId,
		MintingActive: state.MintingActive,
		Treasury:      state.Treasury.String(),
		MintPrice:     state.MintPrice.String(),
	}
}
