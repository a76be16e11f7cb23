package client

import (
	"context"
	"math/big"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/warp-contracts/minter/src/gateway"
	"github.com/warp-contracts/minter/src/ledger"
	"github.com/warp-contracts/minter/src/utils/config"
	monitor_minter "github.com/warp-contracts/minter/src/utils/monitoring/minter"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/params"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const (
	owner = "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266"
	alice = "0x70997970C51812dc3A010C7d01b50e0d17dc79C8"
)

func TestClientTestSuite(t *testing.T) {
	suite.Run(t, new(ClientTestSuite))
}

type ClientTestSuite struct {
	suite.Suite
	ctx    context.Context
	cancel context.CancelFunc
	config *config.Config
	ledger *ledger.Ledger
	server *httptest.Server

	owner *Client
	alice *Client
}

func (s *ClientTestSuite) SetupTest() {
	s.ctx, s.cancel = context.WithTimeout(context.Background(), 10*time.Second)

	s.config = config.Default()
	s.config.Gateway.MintRateLimit = 0
	s.config.Ledger.MintPrice = "1000000000000000000"

	monitor := monitor_minter.NewMonitor()

	var err error
	s.ledger, err = ledger.New(s.config)
	require.Nil(s.T(), err)
	s.ledger.WithListener(monitor)

	handler := gateway.NewServer(s.config).
		WithLedger(s.ledger).
		WithMonitor(monitor).
		Handler()
	s.server = httptest.NewServer(handler)

	s.config.Client.Url = s.server.URL
	s.owner = NewClient(s.config).WithCaller(owner)
	s.alice = NewClient(s.config).WithCaller(alice)
}

func (s *ClientTestSuite) TearDownTest() {
	s.server.Close()
	s.cancel()
}

func (s *ClientTestSuite) TestMintFlow() {
	active, err := s.alice.IsMintingActive(s.ctx)
	require.Nil(s.T(), err)
	require.False(s.T(), active)

	_, err = s.alice.Mint(s.ctx, 1, []string{"QmA"}, big.NewInt(params.Ether))
	require.ErrorIs(s.T(), err, ledger.ErrMintingInactive)

	require.Nil(s.T(), s.owner.SetMintingActive(s.ctx, true))

	ids, err := s.alice.Mint(s.ctx, 2, []string{"QmA", "QmB"}, big.NewInt(2*params.Ether))
	require.Nil(s.T(), err)
	require.Equal(s.T(), []uint64{0, 1}, ids)

	balance, err := s.alice.BalanceOf(s.ctx, common.HexToAddress(alice))
	require.Nil(s.T(), err)
	require.Equal(s.T(), uint64(2), balance)

	uri, err := s.alice.TokenURI(s.ctx, 1)
	require.Nil(s.T(), err)
	require.Equal(s.T(), "ipfs.io/ipfs/QmB", uri)

	supply, err := s.alice.Supply(s.ctx)
	require.Nil(s.T(), err)
	require.Equal(s.T(), uint64(2), supply.TotalSupply)

	amount, err := s.owner.Withdraw(s.ctx)
	require.Nil(s.T(), err)
	require.Equal(s.T(), 0, amount.Cmp(big.NewInt(2*params.Ether)))
}

func (s *ClientTestSuite) TestErrorsKeepTheirKind() {
	_, err := s.alice.Reserve(s.ctx, 1, []string{"a"})
	require.ErrorIs(s.T(), err, ledger.ErrNotAuthorized)

	var remote *RemoteError
	require.ErrorAs(s.T(), err, &remote)
	require.Equal(s.T(), 403, remote.Status)
	require.Equal(s.T(), ledger.KindNotAuthorized, remote.Kind)

	_, err = s.alice.Withdraw(s.ctx)
	require.ErrorIs(s.T(), err, ledger.ErrNotAuthorized)

	_, err = s.alice.TokenURI(s.ctx, 42)
	require.ErrorIs(s.T(), err, ledger.ErrUnknownToken)

	require.Nil(s.T(), s.owner.SetMintingActive(s.ctx, true))

	_, err = s.alice.Mint(s.ctx, 11, make([]string, 11), nil)
	require.ErrorIs(s.T(), err, ledger.ErrBatchLimitExceeded)

	_, err = s.alice.Mint(s.ctx, 1, []string{"a"}, nil)
	require.ErrorIs(s.T(), err, ledger.ErrInsufficientPayment)

	_, err = s.alice.Mint(s.ctx, 2, []string{"a"}, big.NewInt(2*params.Ether))
	require.ErrorIs(s.T(), err, ledger.ErrInvalidInput)
}

func (s *ClientTestSuite) TestReserveAndBaseURI() {
	ids, err := s.owner.Reserve(s.ctx, 10, make([]string, 10))
	require.Nil(s.T(), err)
	require.Len(s.T(), ids, 10)

	require.Nil(s.T(), s.owner.SetBaseURI(s.ctx, "https://gateway.pinata.cloud/ipfs/"))
	require.ErrorIs(s.T(), s.alice.SetBaseURI(s.ctx, "x/"), ledger.ErrNotAuthorized)

	state, err := s.owner.Ledger(s.ctx)
	require.Nil(s.T(), err)
	require.Equal(s.T(), uint64(10), state.TotalSupply)
	require.Equal(s.T(), "0", state.Treasury)
	require.Equal(s.T(), "https://gateway.pinata.cloud/ipfs/", state.BaseURI)
}

func (s *ClientTestSuite) TestMonitorEndpoints() {
	require.Nil(s.T(), s.alice.Health(s.ctx))

	report, err := s.alice.State(s.ctx)
	require.Nil(s.T(), err)
	require.Contains(s.T(), string(report), "gateway")

	metrics, err := s.alice.Metrics(s.ctx)
	require.Nil(s.T(), err)
	require.Contains(s.T(), metrics, "gateway_requests")
}
