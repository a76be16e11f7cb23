package report

type Report struct {
	Run            *RunReport            `json:"run,omitempty"`
	Ledger         *LedgerReport         `json:"ledger,omitempty"`
	Gateway        *GatewayReport        `json:"gateway,omitempty"`
	Journal        *JournalReport        `json:"journal,omitempty"`
	RedisPublisher *RedisPublisherReport `json:"redis_publisher,omitempty"`
}
