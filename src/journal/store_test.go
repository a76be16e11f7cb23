package journal

import (
	"testing"
	"time"

	"github.com/warp-contracts/minter/src/ledger"
	"github.com/warp-contracts/minter/src/utils/config"
	monitor_minter "github.com/warp-contracts/minter/src/utils/monitoring/minter"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

func TestStoreTestSuite(t *testing.T) {
	suite.Run(t, new(StoreTestSuite))
}

type StoreTestSuite struct {
	suite.Suite
	config *config.Config
}

func (s *StoreTestSuite) SetupTest() {
	s.config = config.Default()
	s.config.StopTimeout = 5 * time.Second
	s.config.Journal.MaxTimeInQueue = 50 * time.Millisecond
}

func (s *StoreTestSuite) TestLifecycle() {
	store := NewStore(s.config)
	require.NotNil(s.T(), store)

	err := store.Start()
	require.Nil(s.T(), err)

	store.StopWait()

	select {
	case <-store.CtxRunning.Done():
	default:
		s.T().Fatal("store still running")
	}
}

func (s *StoreTestSuite) TestDropsAfterStop() {
	monitor := monitor_minter.NewMonitor()
	store := NewStore(s.config).WithMonitor(monitor)

	require.Nil(s.T(), store.Start())
	store.StopWait()

	store.OnEvents([]*ledger.Event{
		{Type: ledger.EventWithdrawal, Sequence: 1},
		{Type: ledger.EventWithdrawal, Sequence: 2},
	})

	require.Equal(s.T(), uint64(2), monitor.GetReport().Journal.Errors.Dropped.Load())
	require.Equal(s.T(), uint64(0), monitor.GetReport().Journal.State.EventsSaved.Load())
}

func (s *StoreTestSuite) TestDoubleStop() {
	store := NewStore(s.config)
	require.Nil(s.T(), store.Start())
	store.Stop()
	store.StopWait()
}
