package client

import (
	"context"
	"encoding/json"
	"math/big"
	"strconv"
	"strings"

	"github.com/warp-contracts/minter/src/gateway"
	"github.com/warp-contracts/minter/src/gateway/request"
	"github.com/warp-contracts/minter/src/gateway/response"
	"github.com/warp-contracts/minter/src/ledger"
	"github.com/warp-contracts/minter/src/utils/config"
	"github.com/warp-contracts/minter/src/utils/logger"

	"github.com/ethereum/go-ethereum/common"
	"github.com/go-resty/resty/v2"
	"github.com/sirupsen/logrus"
)

// Client of the minter's REST API, used by the CLI
type Client struct {
	client *resty.Client
	config *config.Config
	log    *logrus.Entry

	// Address requests are made as
	caller string
}

func NewClient(config *config.Config) (self *Client) {
	self = new(Client)
	self.config = config
	self.log = logger.NewSublogger("client")
	self.caller = config.Client.Caller

	self.client = resty.New().
		SetBaseURL(strings.TrimSuffix(config.Client.Url, "/")).
		SetTimeout(config.Client.RequestTimeout).
		SetHeader("User-Agent", "minter-cli").
		SetHeader("Content-Type", "application/json").
		OnAfterResponse(self.onStatusToError)

	return
}

func (self *Client) WithCaller(v string) *Client {
	self.caller = v
	return self
}

func (self *Client) Caller() string {
	return self.caller
}

func (self *Client) onStatusToError(c *resty.Client, resp *resty.Response) error {
	if resp.IsSuccess() {
		return nil
	}

	out := &RemoteError{Status: resp.StatusCode()}

	var body response.Error
	if json.Unmarshal(resp.Body(), &body) != nil || body.Error == "" {
		out.Kind = ledger.KindInternal
		out.Message = strings.TrimSpace(string(resp.Body()))
		out.err = ErrUnexpectedStatus
		return out
	}

	out.Kind = body.Error
	out.Message = body.Message
	switch {
	case body.Error == gateway.KindRateLimited:
		out.err = ErrRateLimited
	case ledger.ErrorFromKind(body.Error) != nil:
		out.err = ledger.ErrorFromKind(body.Error)
	default:
		out.err = ErrUnexpectedStatus
	}

	self.log.WithField("status", resp.StatusCode()).
		WithField("kind", out.Kind).
		WithField("url", resp.Request.URL).
		Debug("Request rejected")

	return out
}

func (self *Client) post(ctx context.Context, path string, body interface{}, result interface{}) (err error) {
	_, err = self.client.R().
		SetContext(ctx).
		SetBody(body).
		SetResult(result).
		Post(path)
	return
}

func (self *Client) get(ctx context.Context, path string, result interface{}) (err error) {
	_, err = self.client.R().
		SetContext(ctx).
		SetResult(result).
		Get(path)
	return
}

func suffixes(v []string) []string {
	if v == nil {
		return []string{}
	}
	return v
}

// Mint buys quantity tokens for the caller. Payment is in wei, nil means zero.
func (self *Client) Mint(ctx context.Context, quantity uint64, uriSuffixes []string, payment *big.Int) (ids []uint64, err error) {
	in := &request.Mint{
		Caller:      self.caller,
		Quantity:    quantity,
		UriSuffixes: suffixes(uriSuffixes),
	}
	if payment != nil {
		in.Payment = payment.String()
	}

	out := new(response.Ids)
	err = self.post(ctx, "/v1/mint", in, out)
	if err != nil {
		return
	}
	return out.Ids, nil
}

func (self *Client) Reserve(ctx context.Context, quantity uint64, uriSuffixes []string) (ids []uint64, err error) {
	out := new(response.Ids)
	err = self.post(ctx, "/v1/reserve", &request.Reserve{
		Caller:      self.caller,
		Quantity:    quantity,
		UriSuffixes: suffixes(uriSuffixes),
	}, out)
	if err != nil {
		return
	}
	return out.Ids, nil
}

// Withdraw returns the withdrawn amount in wei
func (self *Client) Withdraw(ctx context.Context) (amount *big.Int, err error) {
	out := new(response.Amount)
	err = self.post(ctx, "/v1/withdraw", &request.Withdraw{Caller: self.caller}, out)
	if err != nil {
		return
	}
	return ledger.ParseAmount(out.Amount)
}

func (self *Client) IsMintingActive(ctx context.Context) (active bool, err error) {
	out := new(response.Minting)
	err = self.get(ctx, "/v1/minting", out)
	if err != nil {
		return
	}
	return out.Active, nil
}

func (self *Client) SetMintingActive(ctx context.Context, active bool) (err error) {
	return self.post(ctx, "/v1/minting", &request.SetMinting{Caller: self.caller, Active: &active}, new(response.Minting))
}

func (self *Client) SetBaseURI(ctx context.Context, baseURI string) (err error) {
	return self.post(ctx, "/v1/base-uri", &request.SetBaseURI{Caller: self.caller, BaseURI: baseURI}, new(response.BaseURI))
}

func (self *Client) Supply(ctx context.Context) (out *response.Supply, err error) {
	out = new(response.Supply)
	err = self.get(ctx, "/v1/supply", out)
	if err != nil {
		return nil, err
	}
	return
}

func (self *Client) Ledger(ctx context.Context) (out *response.Ledger, err error) {
	out = new(response.Ledger)
	err = self.get(ctx, "/v1/ledger", out)
	if err != nil {
		return nil, err
	}
	return
}

func (self *Client) Token(ctx context.Context, id uint64) (out *response.Token, err error) {
	out = new(response.Token)
	err = self.get(ctx, "/v1/tokens/"+strconv.FormatUint(id, 10), out)
	if err != nil {
		return nil, err
	}
	return
}

func (self *Client) TokenURI(ctx context.Context, id uint64) (uri string, err error) {
	token, err := self.Token(ctx, id)
	if err != nil {
		return
	}
	return token.TokenURI, nil
}

func (self *Client) BalanceOf(ctx context.Context, address common.Address) (balance uint64, err error) {
	out := new(response.Balance)
	err = self.get(ctx, "/v1/balances/"+address.Hex(), out)
	if err != nil {
		return
	}
	return out.Balance, nil
}

// Nil when the minter is healthy
func (self *Client) Health(ctx context.Context) (err error) {
	_, err = self.client.R().SetContext(ctx).Get("/v1/health")
	return
}

// Monitor report, as returned by the server
func (self *Client) State(ctx context.Context) (out json.RawMessage, err error) {
	resp, err := self.client.R().SetContext(ctx).Get("/v1/state")
	if err != nil {
		return
	}
	return json.RawMessage(resp.Body()), nil
}

// Prometheus text exposition
func (self *Client) Metrics(ctx context.Context) (out string, err error) {
	resp, err := self.client.R().SetContext(ctx).Get("/v1/metrics")
	if err != nil {
		return
	}
	return resp.String(), nil
}
