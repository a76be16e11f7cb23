package model

const (
	TableToken = "tokens"
)

type Token struct {
	Id        uint64 `gorm:"primaryKey;autoIncrement:false"`
	Owner     string
	UriSuffix string

	// Sequence of the transfer event that created the token
	MintSequence uint64

	// Unix milliseconds
	MintedAt int64
}

func (Token) TableName() string {
	return TableToken
}
