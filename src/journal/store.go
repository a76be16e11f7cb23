package journal

import (
	"sync"
	"time"

	"github.com/warp-contracts/minter/src/ledger"
	"github.com/warp-contracts/minter/src/utils/config"
	"github.com/warp-contracts/minter/src/utils/model"
	"github.com/warp-contracts/minter/src/utils/monitoring"
	"github.com/warp-contracts/minter/src/utils/task"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Store saves ledger events to the database.
// - groups incoming events into batches,
// - ensures events aren't stuck even if a batch isn't big enough,
// - retries failed inserts, saving the same batch twice is harmless
type Store struct {
	*task.SinkTask[*ledger.Event]

	DB      *gorm.DB
	monitor monitoring.Monitor

	// Guards closing the input channel
	mtx        sync.RWMutex
	isStopping bool
	input      chan *ledger.Event
}

func NewStore(config *config.Config) (self *Store) {
	self = new(Store)

	self.input = make(chan *ledger.Event, config.Journal.QueueSize)

	self.SinkTask = task.NewSinkTask[*ledger.Event](config, "journal").
		WithBatchSize(config.Journal.BatchSize).
		WithInputChannel(self.input).
		WithOnFlush(config.Journal.MaxTimeInQueue, self.save)

	self.Task = self.Task.WithOnStop(self.closeInput)

	return
}

func (self *Store) WithDB(v *gorm.DB) *Store {
	self.DB = v
	return self
}

func (self *Store) WithMonitor(v monitoring.Monitor) *Store {
	self.monitor = v
	return self
}

// OnEvents implements ledger.Listener.
// Blocks when the queue is full, events get dropped only after Stop.
func (self *Store) OnEvents(events []*ledger.Event) {
	self.mtx.RLock()
	defer self.mtx.RUnlock()

	for i, event := range events {
		if self.isStopping {
			self.drop(len(events) - i)
			return
		}

		select {
		case <-self.Ctx.Done():
			self.drop(len(events) - i)
			return
		case self.input <- event:
		}
	}
}

func (self *Store) drop(num int) {
	self.Log.WithField("num", num).Warn("Journal is stopping, events dropped")
	if self.monitor != nil {
		self.monitor.GetReport().Journal.Errors.Dropped.Add(uint64(num))
	}
}

func (self *Store) closeInput() {
	self.mtx.Lock()
	defer self.mtx.Unlock()

	if self.isStopping {
		return
	}
	self.isStopping = true
	close(self.input)
}

func (self *Store) save(events []*ledger.Event) (err error) {
	if len(events) == 0 {
		return
	}

	rows := make([]*model.LedgerEvent, 0, len(events))
	tokens := make([]*model.Token, 0, len(events))
	for _, event := range events {
		row, token, err := toModel(event)
		if err != nil {
			self.Log.WithError(err).WithField("sequence", event.Sequence).Error("Failed to convert event, skipping")
			if self.monitor != nil {
				self.monitor.GetReport().Journal.Errors.Permanent.Inc()
			}
			continue
		}
		rows = append(rows, row)
		if token != nil {
			tokens = append(tokens, token)
		}
	}

	if len(rows) == 0 {
		return
	}

	self.Log.WithField("num", len(rows)).Debug("-> Saving events")
	defer self.Log.WithField("num", len(rows)).Debug("<- Saving events")

	start := time.Now()

	// Context stays valid until the final flush is done
	ctx := self.CtxRunning

	err = task.NewRetry().
		WithContext(ctx).
		WithMaxElapsedTime(self.Config.Journal.MaxElapsedTime).
		WithMaxInterval(self.Config.Journal.MaxInterval).
		WithOnError(func(err error) {
			self.Log.WithError(err).Warn("Failed to save events, retrying")
			if self.monitor != nil {
				self.monitor.GetReport().Journal.Errors.DbInsert.Inc()
			}
		}).
		Run(func() error {
			return self.DB.WithContext(ctx).
				Transaction(func(tx *gorm.DB) error {
					err := tx.Clauses(clause.OnConflict{
						Columns:   []clause.Column{{Name: "sequence"}},
						DoNothing: true,
					}).
						CreateInBatches(rows, len(rows)).
						Error
					if err != nil {
						return err
					}

					if len(tokens) == 0 {
						return nil
					}

					return tx.Clauses(clause.OnConflict{
						Columns:   []clause.Column{{Name: "id"}},
						DoNothing: true,
					}).
						CreateInBatches(tokens, len(tokens)).
						Error
				})
		})
	if err != nil {
		self.Log.WithError(err).WithField("num", len(rows)).Error("Gave up saving events")
		if self.monitor != nil {
			self.monitor.GetReport().Journal.Errors.Permanent.Inc()
		}
		return
	}

	if self.monitor != nil {
		state := &self.monitor.GetReport().Journal.State
		state.EventsSaved.Add(uint64(len(rows)))
		state.TokensSaved.Add(uint64(len(tokens)))
		state.LastSavedSequence.Store(rows[len(rows)-1].Sequence)
		state.LastInsertDuration.Store(time.Since(start).Milliseconds())
	}

	return
}
