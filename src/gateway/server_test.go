package gateway

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/warp-contracts/minter/src/gateway/response"
	"github.com/warp-contracts/minter/src/ledger"
	"github.com/warp-contracts/minter/src/utils/config"
	monitor_minter "github.com/warp-contracts/minter/src/utils/monitoring/minter"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const (
	owner = "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266"
	alice = "0x70997970C51812dc3A010C7d01b50e0d17dc79C8"
	zero  = "0x0000000000000000000000000000000000000000"
)

func TestServerTestSuite(t *testing.T) {
	suite.Run(t, new(ServerTestSuite))
}

type ServerTestSuite struct {
	suite.Suite
	config  *config.Config
	ledger  *ledger.Ledger
	monitor *monitor_minter.Monitor
	server  *Server
	handler http.Handler
}

func (s *ServerTestSuite) SetupTest() {
	s.config = config.Default()
	s.config.Gateway.MintRateLimit = 0
	s.config.Ledger.MintPrice = "1000000000000000000"

	var err error
	s.monitor = monitor_minter.NewMonitor()
	s.ledger, err = ledger.New(s.config)
	require.Nil(s.T(), err)
	s.ledger.WithListener(s.monitor)

	s.server = NewServer(s.config).
		WithLedger(s.ledger).
		WithMonitor(s.monitor)
	s.handler = s.server.Handler()
}

func (s *ServerTestSuite) do(method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		require.Nil(s.T(), json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.handler.ServeHTTP(w, req)
	return w
}

func (s *ServerTestSuite) decode(w *httptest.ResponseRecorder, out interface{}) {
	require.Nil(s.T(), json.Unmarshal(w.Body.Bytes(), out), w.Body.String())
}

func (s *ServerTestSuite) requireError(w *httptest.ResponseRecorder, status int, kind string) {
	require.Equal(s.T(), status, w.Code, w.Body.String())
	var out response.Error
	s.decode(w, &out)
	require.Equal(s.T(), kind, out.Error)
	require.NotEmpty(s.T(), out.Message)
}

func (s *ServerTestSuite) openMinting() {
	w := s.do(http.MethodPost, "/v1/minting", gin.H{"caller": owner, "active": true})
	require.Equal(s.T(), http.StatusOK, w.Code, w.Body.String())
}

func (s *ServerTestSuite) TestMint() {
	s.openMinting()

	w := s.do(http.MethodPost, "/v1/mint", gin.H{
		"caller":       alice,
		"quantity":     2,
		"uri_suffixes": []string{"QmA", "QmB"},
		"payment":      "2000000000000000000",
	})
	require.Equal(s.T(), http.StatusOK, w.Code, w.Body.String())

	var out response.Ids
	s.decode(w, &out)
	require.Equal(s.T(), []uint64{0, 1}, out.Ids)
	require.NotEmpty(s.T(), w.Header().Get("X-Request-Id"))

	w = s.do(http.MethodGet, "/v1/tokens/1", nil)
	require.Equal(s.T(), http.StatusOK, w.Code)
	var token response.Token
	s.decode(w, &token)
	require.Equal(s.T(), "ipfs.io/ipfs/QmB", token.TokenURI)
	require.Equal(s.T(), alice, token.Owner)

	w = s.do(http.MethodGet, "/v1/balances/"+alice, nil)
	var balance response.Balance
	s.decode(w, &balance)
	require.Equal(s.T(), uint64(2), balance.Balance)

	w = s.do(http.MethodGet, "/v1/supply", nil)
	var supply response.Supply
	s.decode(w, &supply)
	require.Equal(s.T(), uint64(2), supply.TotalSupply)
	require.Equal(s.T(), uint64(1000), supply.MaxSupply)
}

func (s *ServerTestSuite) TestMintInactive() {
	w := s.do(http.MethodPost, "/v1/mint", gin.H{
		"caller":       alice,
		"quantity":     1,
		"uri_suffixes": []string{"QmA"},
		"payment":      "1000000000000000000",
	})
	s.requireError(w, http.StatusConflict, ledger.KindMintingInactive)
	require.Equal(s.T(), uint64(1), s.monitor.GetReport().Gateway.Errors.MintingInactive.Load())
}

func (s *ServerTestSuite) TestMintErrors() {
	s.openMinting()

	suffixes := func(n int) []string {
		out := make([]string, n)
		for i := range out {
			out[i] = "Qm"
		}
		return out
	}

	w := s.do(http.MethodPost, "/v1/mint", gin.H{"caller": alice, "quantity": 11, "uri_suffixes": suffixes(11), "payment": "11000000000000000000"})
	s.requireError(w, http.StatusBadRequest, ledger.KindBatchLimitExceeded)

	w = s.do(http.MethodPost, "/v1/mint", gin.H{"caller": zero, "quantity": 1, "uri_suffixes": suffixes(1), "payment": "1000000000000000000"})
	s.requireError(w, http.StatusBadRequest, ledger.KindZeroAddressRecipient)

	w = s.do(http.MethodPost, "/v1/mint", gin.H{"caller": alice, "quantity": 1, "uri_suffixes": suffixes(1), "payment": "1"})
	s.requireError(w, http.StatusPaymentRequired, ledger.KindInsufficientPayment)

	w = s.do(http.MethodPost, "/v1/mint", gin.H{"caller": alice, "quantity": 1, "uri_suffixes": suffixes(1), "payment": "-1"})
	s.requireError(w, http.StatusBadRequest, ledger.KindInvalidInput)

	w = s.do(http.MethodPost, "/v1/mint", gin.H{"caller": "not-an-address", "quantity": 1, "uri_suffixes": suffixes(1)})
	s.requireError(w, http.StatusBadRequest, ledger.KindInvalidInput)

	w = s.do(http.MethodPost, "/v1/mint", gin.H{"quantity": 1})
	s.requireError(w, http.StatusBadRequest, ledger.KindInvalidInput)
	require.Equal(s.T(), uint64(1), s.monitor.GetReport().Gateway.Errors.BadRequest.Load())

	require.Equal(s.T(), uint64(0), s.ledger.TotalSupply())
}

func (s *ServerTestSuite) TestSupplyExhausted() {
	s.config.Ledger.MaxSupply = 3
	s.rebuild()

	w := s.do(http.MethodPost, "/v1/reserve", gin.H{"caller": owner, "quantity": 3, "uri_suffixes": []string{"a", "b", "c"}})
	require.Equal(s.T(), http.StatusOK, w.Code)

	w = s.do(http.MethodPost, "/v1/reserve", gin.H{"caller": owner, "quantity": 1, "uri_suffixes": []string{"d"}})
	s.requireError(w, http.StatusConflict, ledger.KindSupplyExhausted)
}

// Rebuilds the server after the config was changed
func (s *ServerTestSuite) rebuild() {
	var err error
	s.ledger, err = ledger.New(s.config)
	require.Nil(s.T(), err)
	s.server = NewServer(s.config).WithLedger(s.ledger).WithMonitor(s.monitor)
	s.handler = s.server.Handler()
}

func (s *ServerTestSuite) TestOwnerOnly() {
	w := s.do(http.MethodPost, "/v1/reserve", gin.H{"caller": alice, "quantity": 1, "uri_suffixes": []string{"a"}})
	s.requireError(w, http.StatusForbidden, ledger.KindNotAuthorized)

	w = s.do(http.MethodPost, "/v1/withdraw", gin.H{"caller": alice})
	s.requireError(w, http.StatusForbidden, ledger.KindNotAuthorized)

	w = s.do(http.MethodPost, "/v1/minting", gin.H{"caller": alice, "active": true})
	s.requireError(w, http.StatusForbidden, ledger.KindNotAuthorized)

	w = s.do(http.MethodPost, "/v1/base-uri", gin.H{"caller": alice, "base_uri": "x/"})
	s.requireError(w, http.StatusForbidden, ledger.KindNotAuthorized)

	require.Equal(s.T(), uint64(4), s.monitor.GetReport().Gateway.Errors.NotAuthorized.Load())
}

func (s *ServerTestSuite) TestWithdraw() {
	s.openMinting()
	w := s.do(http.MethodPost, "/v1/mint", gin.H{"caller": alice, "quantity": 1, "uri_suffixes": []string{"a"}, "payment": "1500000000000000000"})
	require.Equal(s.T(), http.StatusOK, w.Code)

	w = s.do(http.MethodPost, "/v1/withdraw", gin.H{"caller": owner})
	require.Equal(s.T(), http.StatusOK, w.Code)
	var out response.Amount
	s.decode(w, &out)
	require.Equal(s.T(), "1500000000000000000", out.Amount)

	w = s.do(http.MethodPost, "/v1/withdraw", gin.H{"caller": owner})
	s.decode(w, &out)
	require.Equal(s.T(), "0", out.Amount)
	require.Equal(s.T(), 0, s.ledger.TreasuryBalance().Cmp(big.NewInt(0)))
}

func (s *ServerTestSuite) TestMintingSwitch() {
	w := s.do(http.MethodGet, "/v1/minting", nil)
	var out response.Minting
	s.decode(w, &out)
	require.False(s.T(), out.Active)

	s.openMinting()

	w = s.do(http.MethodGet, "/v1/minting", nil)
	s.decode(w, &out)
	require.True(s.T(), out.Active)

	// Missing flag
	w = s.do(http.MethodPost, "/v1/minting", gin.H{"caller": owner})
	require.Equal(s.T(), http.StatusBadRequest, w.Code)
}

func (s *ServerTestSuite) TestBaseURI() {
	w := s.do(http.MethodPost, "/v1/reserve", gin.H{"caller": owner, "quantity": 1, "uri_suffixes": []string{"QmA"}})
	require.Equal(s.T(), http.StatusOK, w.Code)

	w = s.do(http.MethodPost, "/v1/base-uri", gin.H{"caller": owner, "base_uri": "https://gateway.pinata.cloud/ipfs/"})
	require.Equal(s.T(), http.StatusOK, w.Code)

	w = s.do(http.MethodGet, "/v1/tokens/0", nil)
	var token response.Token
	s.decode(w, &token)
	require.Equal(s.T(), "https://gateway.pinata.cloud/ipfs/QmA", token.TokenURI)

	w = s.do(http.MethodGet, "/v1/ledger", nil)
	var state response.Ledger
	s.decode(w, &state)
	require.Equal(s.T(), "https://gateway.pinata.cloud/ipfs/", state.BaseURI)
	require.Equal(s.T(), "1000000000000000000", state.MintPrice)
}

func (s *ServerTestSuite) TestUnknownToken() {
	w := s.do(http.MethodGet, "/v1/tokens/5", nil)
	s.requireError(w, http.StatusNotFound, ledger.KindUnknownToken)

	w = s.do(http.MethodGet, "/v1/tokens/abc", nil)
	s.requireError(w, http.StatusBadRequest, ledger.KindInvalidInput)

	w = s.do(http.MethodGet, "/v1/balances/nope", nil)
	s.requireError(w, http.StatusBadRequest, ledger.KindInvalidInput)
}

func (s *ServerTestSuite) TestRateLimit() {
	s.config.Gateway.MintRateLimit = 0.001
	s.config.Gateway.MintBurstSize = 1
	s.rebuild()

	w := s.do(http.MethodPost, "/v1/mint", gin.H{"caller": alice, "quantity": 1, "uri_suffixes": []string{"a"}})
	require.Equal(s.T(), http.StatusConflict, w.Code)

	w = s.do(http.MethodPost, "/v1/mint", gin.H{"caller": alice, "quantity": 1, "uri_suffixes": []string{"a"}})
	s.requireError(w, http.StatusTooManyRequests, KindRateLimited)
}

func (s *ServerTestSuite) TestMonitorEndpoints() {
	w := s.do(http.MethodGet, "/v1/health", nil)
	require.Equal(s.T(), http.StatusOK, w.Code)

	w = s.do(http.MethodGet, "/v1/state", nil)
	require.Equal(s.T(), http.StatusOK, w.Code)
	require.Contains(s.T(), w.Body.String(), "ledger")

	w = s.do(http.MethodGet, "/v1/metrics", nil)
	require.Equal(s.T(), http.StatusOK, w.Code)
	require.True(s.T(), strings.Contains(w.Body.String(), "total_supply"))
}

func (s *ServerTestSuite) TestInternalErrorHidesDetails() {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/v1/ledger", nil)

	s.server.abort(c, errors.New("connection to 10.0.0.1 refused"))

	s.requireError(w, http.StatusInternalServerError, ledger.KindInternal)
	require.NotContains(s.T(), w.Body.String(), "10.0.0.1")
	require.Equal(s.T(), uint64(1), s.monitor.GetReport().Gateway.Errors.Internal.Load())
}

func (s *ServerTestSuite) TestRejectionKeepsMessage() {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/v1/ledger", nil)

	s.server.abort(c, fmt.Errorf("%w: token 7", ledger.ErrUnknownToken))

	s.requireError(w, http.StatusNotFound, ledger.KindUnknownToken)
	require.Contains(s.T(), w.Body.String(), "token 7")
}

func (s *ServerTestSuite) TestStatusOf() {
	require.Equal(s.T(), http.StatusForbidden, StatusOf(ledger.KindNotAuthorized))
	require.Equal(s.T(), http.StatusConflict, StatusOf(ledger.KindMintingInactive))
	require.Equal(s.T(), http.StatusBadRequest, StatusOf(ledger.KindBatchLimitExceeded))
	require.Equal(s.T(), http.StatusConflict, StatusOf(ledger.KindSupplyExhausted))
	require.Equal(s.T(), http.StatusBadRequest, StatusOf(ledger.KindZeroAddressRecipient))
	require.Equal(s.T(), http.StatusBadRequest, StatusOf(ledger.KindInvalidInput))
	require.Equal(s.T(), http.StatusNotFound, StatusOf(ledger.KindUnknownToken))
	require.Equal(s.T(), http.StatusPaymentRequired, StatusOf(ledger.KindInsufficientPayment))
	require.Equal(s.T(), http.StatusInternalServerError, StatusOf(ledger.KindInternal))
}
