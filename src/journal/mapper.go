package journal

import (
	"errors"
	"math/big"

	"github.com/warp-contracts/minter/src/ledger"
	"github.com/warp-contracts/minter/src/utils/model"

	"github.com/ethereum/go-ethereum/common"
	"github.com/jackc/pgtype"
	"github.com/lib/pq"
)

var ErrTokenIdTooBig = errors.New("token id doesn't fit into bigint")

func varchar(address *common.Address) (out pgtype.Varchar) {
	if address == nil {
		out.Status = pgtype.Null
		return
	}
	out.String = address.Hex()
	out.Status = pgtype.Present
	return
}

// Converts a ledger event to rows. Token is set only for transfer events.
func toModel(event *ledger.Event) (out *model.LedgerEvent, token *model.Token, err error) {
	payload, err := event.MarshalBinary()
	if err != nil {
		return
	}

	out = &model.LedgerEvent{
		Sequence:    event.Sequence,
		Type:        string(event.Type),
		Timestamp:   event.Timestamp,
		Caller:      event.Caller.Hex(),
		FromAddress: varchar(event.From),
		ToAddress:   varchar(event.To),
		Reserved:    event.Reserved,
		Payload:     pgtype.JSONB{Bytes: payload, Status: pgtype.Present},
		Amount:      pgtype.Numeric{Status: pgtype.Null},
	}

	if event.Amount != nil {
		out.Amount = pgtype.Numeric{Int: new(big.Int).Set(event.Amount), Status: pgtype.Present}
	}

	ids := event.TokenIds
	if event.TokenId != nil {
		ids = []uint64{*event.TokenId}
	}
	if len(ids) > 0 {
		out.TokenIds = make(pq.Int64Array, 0, len(ids))
		for _, id := range ids {
			if id > 1<<63-1 {
				err = ErrTokenIdTooBig
				return
			}
			out.TokenIds = append(out.TokenIds, int64(id))
		}
	}

	if event.Type == ledger.EventTransfer && event.TokenId != nil && event.To != nil {
		token = &model.Token{
			Id:           *event.TokenId,
			Owner:        event.To.Hex(),
			UriSuffix:    event.UriSuffix,
			MintSequence: event.Sequence,
			MintedAt:     event.Timestamp,
		}
	}

	return
}
