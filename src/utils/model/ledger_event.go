package model

import (
	"github.com/jackc/pgtype"
	"github.com/lib/pq"
)

const (
	TableLedgerEvent = "ledger_events"
)

// Journal entry of a committed ledger operation
type LedgerEvent struct {
	Sequence    uint64 `gorm:"primaryKey;autoIncrement:false"`
	Type        string
	Timestamp   int64
	Caller      string
	FromAddress pgtype.Varchar
	ToAddress   pgtype.Varchar
	TokenIds    pq.Int64Array `gorm:"type:bigint[]"`
	Amount      pgtype.Numeric
	Reserved    bool

	// Whole event, as published
	Payload pgtype.JSONB
}

func (LedgerEvent) TableName() string {
	return TableLedgerEvent
}
