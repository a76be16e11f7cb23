package minter

import (
	"github.com/warp-contracts/minter/src/gateway"
	"github.com/warp-contracts/minter/src/journal"
	"github.com/warp-contracts/minter/src/ledger"
	"github.com/warp-contracts/minter/src/utils/config"
	"github.com/warp-contracts/minter/src/utils/model"
	monitor_minter "github.com/warp-contracts/minter/src/utils/monitoring/minter"
	"github.com/warp-contracts/minter/src/utils/publisher"
	"github.com/warp-contracts/minter/src/utils/task"
)

// Runs the ledger with everything around it:
// REST API, monitoring and optionally the event journal and Redis notifications
type Controller struct {
	*task.Task

	Ledger  *ledger.Ledger
	Monitor *monitor_minter.Monitor
	Server  *gateway.Server
}

func NewController(config *config.Config) (self *Controller, err error) {
	self = new(Controller)
	self.Task = task.NewTask(config, "minter")

	// Monitoring
	self.Monitor = monitor_minter.NewMonitor()

	self.Ledger, err = ledger.New(config)
	if err != nil {
		return
	}
	self.Ledger.WithListener(self.Monitor)

	// REST API, stops first so no operation runs after the listeners are closed
	self.Server = gateway.NewServer(config).
		WithLedger(self.Ledger).
		WithMonitor(self.Monitor)
	self.Task = self.Task.WithSubtask(self.Server.Task)

	if config.Journal.Enabled {
		// SQL database
		db, err := model.NewConnection(self.Ctx, config, "minter")
		if err != nil {
			return nil, err
		}

		store := journal.NewStore(config).
			WithDB(db).
			WithMonitor(self.Monitor)
		self.Ledger.WithListener(store)

		self.Task = self.Task.
			WithSubtask(store.Task).
			WithOnAfterStop(func() {
				sqlDB, err := db.DB()
				if err == nil {
					sqlDB.Close()
				}
			})
	}

	if config.Redis.Enabled {
		queue := publisher.NewEventQueue(self.Log, config.Redis.MaxQueueSize).
			WithMonitor(self.Monitor)
		self.Ledger.WithListener(queue)

		redisPublisher := publisher.NewRedisPublisher[*ledger.Event](config, config.Redis, "redis-publisher").
			WithInputChannel(queue.Output()).
			WithMonitor(self.Monitor)

		// Publisher finishes after it sends everything that's queued
		redisPublisher.Task = redisPublisher.Task.WithOnStop(queue.Close)

		self.Task = self.Task.WithSubtask(redisPublisher.Task)
	}

	self.Task = self.Task.
		WithSubtask(self.Monitor.Task).
		WithOnBeforeStart(func() error {
			state := self.Ledger.Snapshot()
			self.Log.WithField("name", state.Name).
				WithField("symbol", state.Symbol).
				WithField("owner", state.Owner.Hex()).
				WithField("max_supply", state.MaxSupply).
				WithField("mint_price", state.MintPrice.String()).
				WithField("addr", config.Gateway.RESTListenAddress).
				Info("Minter deployed")
			return nil
		})

	return
}
