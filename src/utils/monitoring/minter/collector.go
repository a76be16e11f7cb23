package monitor_minter

import (
	"math/big"

	"github.com/prometheus/client_golang/prometheus"
)

type Collector struct {
	monitor *Monitor

	// Run
	UpForSeconds *prometheus.Desc

	// Ledger
	TotalSupply                  *prometheus.Desc
	TokensMinted                 *prometheus.Desc
	TokensReserved               *prometheus.Desc
	MintCalls                    *prometheus.Desc
	Withdrawals                  *prometheus.Desc
	MintingActive                *prometheus.Desc
	AverageTokensMintedPerMinute *prometheus.Desc
	EtherCollected               *prometheus.Desc
	EtherWithdrawn               *prometheus.Desc

	// Gateway
	Requests *prometheus.Desc
	Rejected *prometheus.Desc

	// Journal
	EventsSaved      *prometheus.Desc
	JournalDbInsert  *prometheus.Desc
	JournalDropped   *prometheus.Desc
	JournalPermanent *prometheus.Desc

	// Redis
	MessagesPublished *prometheus.Desc
	PublishErrors     *prometheus.Desc
	PublishDropped    *prometheus.Desc
}

func NewCollector() *Collector {
	labels := prometheus.Labels{
		"app": "minter",
	}

	return &Collector{
		UpForSeconds: prometheus.NewDesc("up_for_seconds", "", nil, labels),

		TotalSupply:                  prometheus.NewDesc("total_supply", "", nil, labels),
		TokensMinted:                 prometheus.NewDesc("tokens_minted", "", nil, labels),
		TokensReserved:               prometheus.NewDesc("tokens_reserved", "", nil, labels),
		MintCalls:                    prometheus.NewDesc("mint_calls", "", nil, labels),
		Withdrawals:                  prometheus.NewDesc("withdrawals", "", nil, labels),
		MintingActive:                prometheus.NewDesc("minting_active", "", nil, labels),
		AverageTokensMintedPerMinute: prometheus.NewDesc("average_tokens_minted_per_minute", "", nil, labels),
		EtherCollected:               prometheus.NewDesc("ether_collected", "", nil, labels),
		EtherWithdrawn:               prometheus.NewDesc("ether_withdrawn", "", nil, labels),

		Requests: prometheus.NewDesc("gateway_requests", "", nil, labels),
		Rejected: prometheus.NewDesc("gateway_rejected", "", []string{"kind"}, labels),

		EventsSaved:      prometheus.NewDesc("journal_events_saved", "", nil, labels),
		JournalDbInsert:  prometheus.NewDesc("journal_db_insert_error", "", nil, labels),
		JournalDropped:   prometheus.NewDesc("journal_dropped", "", nil, labels),
		JournalPermanent: prometheus.NewDesc("journal_permanent_error", "", nil, labels),

		MessagesPublished: prometheus.NewDesc("redis_messages_published", "", nil, labels),
		PublishErrors:     prometheus.NewDesc("redis_publish_error", "", nil, labels),
		PublishDropped:    prometheus.NewDesc("redis_publish_dropped", "", nil, labels),
	}
}

func (self *Collector) WithMonitor(m *Monitor) *Collector {
	self.monitor = m
	return self
}

func (self *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- self.UpForSeconds

	ch <- self.TotalSupply
	ch <- self.TokensMinted
	ch <- self.TokensReserved
	ch <- self.MintCalls
	ch <- self.Withdrawals
	ch <- self.MintingActive
	ch <- self.AverageTokensMintedPerMinute
	ch <- self.EtherCollected
	ch <- self.EtherWithdrawn

	ch <- self.Requests
	ch <- self.Rejected

	ch <- self.EventsSaved
	ch <- self.JournalDbInsert
	ch <- self.JournalDropped
	ch <- self.JournalPermanent

	ch <- self.MessagesPublished
	ch <- self.PublishErrors
	ch <- self.PublishDropped
}

// Wei as float ether, precision loss is fine for metrics
func toEther(wei string) float64 {
	v, ok := new(big.Float).SetString(wei)
	if !ok {
		return 0
	}
	out, _ := new(big.Float).Quo(v, big.NewFloat(1e18)).Float64()
	return out
}

func boolToFloat(v bool) float64 {
	if v {
		return 1
	}
	return 0
}

// Collect implements required collect function for all promehteus collectors
func (self *Collector) Collect(ch chan<- prometheus.Metric) {
	r := self.monitor.GetReport()
	r.Run.Fill()

	ch <- prometheus.MustNewConstMetric(self.UpForSeconds, prometheus.GaugeValue, float64(r.Run.State.UpForSeconds.Load()))

	ch <- prometheus.MustNewConstMetric(self.TotalSupply, prometheus.GaugeValue, float64(r.Ledger.State.TotalSupply.Load()))
	ch <- prometheus.MustNewConstMetric(self.TokensMinted, prometheus.CounterValue, float64(r.Ledger.State.TokensMinted.Load()))
	ch <- prometheus.MustNewConstMetric(self.TokensReserved, prometheus.CounterValue, float64(r.Ledger.State.TokensReserved.Load()))
	ch <- prometheus.MustNewConstMetric(self.MintCalls, prometheus.CounterValue, float64(r.Ledger.State.MintCalls.Load()))
	ch <- prometheus.MustNewConstMetric(self.Withdrawals, prometheus.CounterValue, float64(r.Ledger.State.Withdrawals.Load()))
	ch <- prometheus.MustNewConstMetric(self.MintingActive, prometheus.GaugeValue, boolToFloat(r.Ledger.State.MintingActive.Load()))
	ch <- prometheus.MustNewConstMetric(self.AverageTokensMintedPerMinute, prometheus.GaugeValue, r.Ledger.State.AverageTokensMintedPerMinute.Load())
	ch <- prometheus.MustNewConstMetric(self.EtherCollected, prometheus.CounterValue, toEther(r.Ledger.State.WeiCollected.Load()))
	ch <- prometheus.MustNewConstMetric(self.EtherWithdrawn, prometheus.CounterValue, toEther(r.Ledger.State.WeiWithdrawn.Load()))

	ch <- prometheus.MustNewConstMetric(self.Requests, prometheus.CounterValue, float64(r.Gateway.State.Requests.Load()))
	errors := &r.Gateway.Errors
	for kind, value := range map[string]uint64{
		"not_authorized":         errors.NotAuthorized.Load(),
		"minting_inactive":       errors.MintingInactive.Load(),
		"batch_limit_exceeded":   errors.BatchLimitExceeded.Load(),
		"supply_exhausted":       errors.SupplyExhausted.Load(),
		"zero_address_recipient": errors.ZeroAddressRecipient.Load(),
		"invalid_input":          errors.InvalidInput.Load(),
		"unknown_token":          errors.UnknownToken.Load(),
		"insufficient_payment":   errors.InsufficientPayment.Load(),
		"bad_request":            errors.BadRequest.Load(),
		"rate_limited":           errors.RateLimited.Load(),
		"internal":               errors.Internal.Load(),
	} {
		ch <- prometheus.MustNewConstMetric(self.Rejected, prometheus.CounterValue, float64(value), kind)
	}

	ch <- prometheus.MustNewConstMetric(self.EventsSaved, prometheus.CounterValue, float64(r.Journal.State.EventsSaved.Load()))
	ch <- prometheus.MustNewConstMetric(self.JournalDbInsert, prometheus.CounterValue, float64(r.Journal.Errors.DbInsert.Load()))
	ch <- prometheus.MustNewConstMetric(self.JournalDropped, prometheus.CounterValue, float64(r.Journal.Errors.Dropped.Load()))
	ch <- prometheus.MustNewConstMetric(self.JournalPermanent, prometheus.CounterValue, float64(r.Journal.Errors.Permanent.Load()))

	ch <- prometheus.MustNewConstMetric(self.MessagesPublished, prometheus.CounterValue, float64(r.RedisPublisher.State.MessagesPublished.Load()))
	ch <- prometheus.MustNewConstMetric(self.PublishErrors, prometheus.CounterValue, float64(r.RedisPublisher.Errors.Publish.Load()))
	ch <- prometheus.MustNewConstMetric(self.PublishDropped, prometheus.CounterValue, float64(r.RedisPublisher.Errors.Dropped.Load()))
}
