package config

import (
	"time"

	"github.com/spf13/viper"
)

type Journal struct {
	// Are ledger events saved to the database
	Enabled bool

	// Max number of events inserted in one batch
	BatchSize int

	// Max time an event waits in the queue before it's inserted
	MaxTimeInQueue time.Duration

	// Size of the buffered input channel
	QueueSize int

	// Retrying failed inserts
	MaxElapsedTime time.Duration
	MaxInterval    time.Duration
}

func setJournalDefaults() {
	viper.SetDefault("Journal.Enabled", "false")
	viper.SetDefault("Journal.BatchSize", "100")
	viper.SetDefault("Journal.MaxTimeInQueue", "1s")
	viper.SetDefault("Journal.QueueSize", "1000")
	viper.SetDefault("Journal.MaxElapsedTime", "5m")
	viper.SetDefault("Journal.MaxInterval", "15s")
}
