package publisher

import (
	"sync"

	"github.com/warp-contracts/minter/src/ledger"
	"github.com/warp-contracts/minter/src/utils/monitoring"

	"github.com/sirupsen/logrus"
)

// EventQueue feeds ledger events into a publisher's input channel.
// It never blocks the ledger: when the channel is full events are dropped and counted.
type EventQueue struct {
	log     *logrus.Entry
	monitor monitoring.Monitor

	mtx      sync.RWMutex
	isClosed bool
	output   chan *ledger.Event
}

func NewEventQueue(log *logrus.Entry, size int) (self *EventQueue) {
	self = new(EventQueue)
	self.log = log
	self.output = make(chan *ledger.Event, size)
	return
}

func (self *EventQueue) WithMonitor(v monitoring.Monitor) *EventQueue {
	self.monitor = v
	return self
}

func (self *EventQueue) Output() chan *ledger.Event {
	return self.output
}

// OnEvents implements ledger.Listener
func (self *EventQueue) OnEvents(events []*ledger.Event) {
	self.mtx.RLock()
	defer self.mtx.RUnlock()

	for _, event := range events {
		if self.isClosed {
			self.drop(event)
			continue
		}

		select {
		case self.output <- event:
		default:
			self.drop(event)
		}
	}
}

func (self *EventQueue) drop(event *ledger.Event) {
	self.log.WithField("sequence", event.Sequence).Warn("Publisher queue is full, event dropped")
	if self.monitor != nil {
		self.monitor.GetReport().RedisPublisher.Errors.Dropped.Inc()
	}
}

// Close stops accepting events, publisher finishes after draining the channel
func (self *EventQueue) Close() {
	self.mtx.Lock()
	defer self.mtx.Unlock()

	if self.isClosed {
		return
	}
	self.isClosed = true
	close(self.output)
}
