package monitor_minter

import (
	"math"
	"math/big"
	"net/http"
	"sync"
	"time"

	"github.com/warp-contracts/minter/src/ledger"
	"github.com/warp-contracts/minter/src/utils/monitoring/report"
	"github.com/warp-contracts/minter/src/utils/task"

	"github.com/gammazero/deque"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

// Stores and computes monitor counters.
// Listens to ledger events to keep the ledger counters up to date.
type Monitor struct {
	*task.Task

	Report report.Report

	collector *Collector

	historySize int

	// Minting speed
	mtx          sync.Mutex
	TokensMinted *deque.Deque[uint64]

	// Wei sums
	collected *big.Int
	withdrawn *big.Int
}

func NewMonitor() (self *Monitor) {
	self = new(Monitor)

	self.Report = report.Report{
		Run:            &report.RunReport{},
		Ledger:         &report.LedgerReport{},
		Gateway:        &report.GatewayReport{},
		Journal:        &report.JournalReport{},
		RedisPublisher: &report.RedisPublisherReport{},
	}

	// Initialization
	self.Report.Run.State.StartTimestamp.Store(time.Now().Unix())
	self.Report.Ledger.State.WeiCollected.Store("0")
	self.Report.Ledger.State.WeiWithdrawn.Store("0")
	self.collected = new(big.Int)
	self.withdrawn = new(big.Int)

	self.collector = NewCollector().WithMonitor(self)

	self.Task = task.NewTask(nil, "monitor").
		WithPeriodicSubtaskFunc(time.Minute, self.monitorMints)

	return self.WithMaxHistorySize(30)
}

func (self *Monitor) WithMaxHistorySize(maxHistorySize int) *Monitor {
	self.historySize = maxHistorySize
	self.TokensMinted = deque.New[uint64](self.historySize)
	return self
}

func (self *Monitor) GetReport() *report.Report {
	return &self.Report
}

func (self *Monitor) GetPrometheusCollector() (collector prometheus.Collector) {
	return self.collector
}

func round(f float64) float64 {
	return math.Round(f*100) / 100
}

// Measure minting speed
func (self *Monitor) monitorMints() (err error) {
	self.mtx.Lock()
	defer self.mtx.Unlock()

	loaded := self.Report.Ledger.State.TokensMinted.Load() + self.Report.Ledger.State.TokensReserved.Load()

	self.TokensMinted.PushBack(loaded)
	if self.TokensMinted.Len() > self.historySize {
		self.TokensMinted.PopFront()
	}
	value := float64(self.TokensMinted.Back()-self.TokensMinted.Front()) / float64(self.TokensMinted.Len())
	self.Report.Ledger.State.AverageTokensMintedPerMinute.Store(round(value))
	return
}

// OnEvents implements ledger.Listener
func (self *Monitor) OnEvents(events []*ledger.Event) {
	state := &self.Report.Ledger.State
	for _, event := range events {
		switch event.Type {
		case ledger.EventTransfer:
			state.TotalSupply.Inc()
		case ledger.EventMint:
			state.MintCalls.Inc()
			if event.Reserved {
				state.TokensReserved.Add(uint64(len(event.TokenIds)))
			} else {
				state.TokensMinted.Add(uint64(len(event.TokenIds)))
			}
			if event.Amount != nil {
				self.addWei(self.collected, event.Amount, &state.WeiCollected)
			}
		case ledger.EventWithdrawal:
			state.Withdrawals.Inc()
			if event.Amount != nil {
				self.addWei(self.withdrawn, event.Amount, &state.WeiWithdrawn)
			}
		case ledger.EventMintingSwitched:
			if event.Active != nil {
				state.MintingActive.Store(*event.Active)
			}
		}
		state.LastEventSequence.Store(event.Sequence)
		state.LastEventTimestamp.Store(event.Timestamp)
	}
}

func (self *Monitor) addWei(sum, amount *big.Int, out interface{ Store(string) }) {
	self.mtx.Lock()
	defer self.mtx.Unlock()
	sum.Add(sum, amount)
	out.Store(sum.String())
}

// Counts a rejected request
func (self *Monitor) OnRejection(kind string) {
	errors := &self.Report.Gateway.Errors
	switch kind {
	case ledger.KindNotAuthorized:
		errors.NotAuthorized.Inc()
	case ledger.KindMintingInactive:
		errors.MintingInactive.Inc()
	case ledger.KindBatchLimitExceeded:
		errors.BatchLimitExceeded.Inc()
	case ledger.KindSupplyExhausted:
		errors.SupplyExhausted.Inc()
	case ledger.KindZeroAddressRecipient:
		errors.ZeroAddressRecipient.Inc()
	case ledger.KindInvalidInput:
		errors.InvalidInput.Inc()
	case ledger.KindUnknownToken:
		errors.UnknownToken.Inc()
	case ledger.KindInsufficientPayment:
		errors.InsufficientPayment.Inc()
	default:
		errors.Internal.Inc()
	}
}

// Minter is unhealthy only if events pile up and can't be persisted
func (self *Monitor) IsOK() bool {
	return self.Report.Journal.Errors.Permanent.Load() == 0
}

func (self *Monitor) OnGetState(c *gin.Context) {
	self.Report.Run.Fill()
	c.JSON(http.StatusOK, &self.Report)
}

func (self *Monitor) OnGetHealth(c *gin.Context) {
	if self.IsOK() {
		c.Status(http.StatusOK)
	} else {
		c.Status(http.StatusServiceUnavailable)
	}
}
