package pinata

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/warp-contracts/minter/src/utils/config"
	"github.com/warp-contracts/minter/src/utils/logger"
	"github.com/warp-contracts/minter/src/utils/task"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/go-resty/resty/v2"
	"github.com/patrickmn/go-cache"
	"github.com/sirupsen/logrus"
)

const (
	pinJSONEndpoint = "/pinning/pinJSONToIPFS"
	pinFileEndpoint = "/pinning/pinFileToIPFS"
)

// Response of both pinning endpoints
type PinResult struct {
	IpfsHash  string `json:"IpfsHash"`
	PinSize   int64  `json:"PinSize"`
	Timestamp string `json:"Timestamp"`

	// Link to the content in the public gateway
	Url string `json:"url"`
}

// Client uploads token metadata and assets to IPFS through Pinata.
// Content that was already pinned is remembered for a while and not uploaded again.
type Client struct {
	client *resty.Client
	config *config.Config
	log    *logrus.Entry

	// Content hash -> *PinResult
	pinned *cache.Cache
}

func NewClient(config *config.Config) (self *Client) {
	self = new(Client)
	self.config = config
	self.log = logger.NewSublogger("pinata")

	self.pinned = cache.New(config.Pinata.CacheTTL, 2*config.Pinata.CacheTTL)

	self.client = resty.New().
		SetBaseURL(strings.TrimSuffix(config.Pinata.ApiUrl, "/")).
		SetTimeout(config.Pinata.RequestTimeout).
		SetHeader("User-Agent", "minter").
		SetHeader("pinata_api_key", config.Pinata.ApiKey).
		SetHeader("pinata_secret_api_key", config.Pinata.SecretApiKey).
		SetLogger(NewLogger()).
		OnAfterResponse(self.onStatusToError)

	return
}

func (self *Client) onStatusToError(c *resty.Client, resp *resty.Response) error {
	// Non-success status code turns into an error
	if resp.IsSuccess() {
		return nil
	}
	self.log.WithField("status", resp.StatusCode()).
		WithField("resp", string(resp.Body())).
		WithField("url", resp.Request.URL).
		Debug("Bad response")
	return &StatusError{Status: resp.StatusCode(), Body: string(resp.Body())}
}

// Link to the content in the public gateway
func (self *Client) GatewayUrl(hash string) string {
	return self.config.Pinata.GatewayUrl + hash
}

// PinJSON uploads a JSON document, e.g. token metadata
func (self *Client) PinJSON(ctx context.Context, body interface{}) (out *PinResult, err error) {
	data, err := json.Marshal(body)
	if err != nil {
		return
	}

	return self.pin(ctx, data, func(req *resty.Request) *resty.Request {
		return req.SetHeader("Content-Type", "application/json").SetBody(data)
	}, pinJSONEndpoint)
}

// PinFile uploads a file as a multipart form
func (self *Client) PinFile(ctx context.Context, name string, data []byte) (out *PinResult, err error) {
	return self.pin(ctx, data, func(req *resty.Request) *resty.Request {
		return req.SetFileReader("file", name, bytes.NewReader(data))
	}, pinFileEndpoint)
}

func (self *Client) pin(ctx context.Context, data []byte, prepare func(*resty.Request) *resty.Request, endpoint string) (out *PinResult, err error) {
	if self.config.Pinata.ApiKey == "" || self.config.Pinata.SecretApiKey == "" {
		return nil, ErrMissingCredentials
	}

	key := endpoint + crypto.Keccak256Hash(data).Hex()
	if cached, ok := self.pinned.Get(key); ok {
		self.log.WithField("hash", cached.(*PinResult).IpfsHash).Debug("Already pinned")
		return cached.(*PinResult), nil
	}

	err = task.NewRetry().
		WithContext(ctx).
		WithMaxElapsedTime(self.config.Pinata.MaxElapsedTime).
		WithMaxInterval(self.config.Pinata.MaxInterval).
		WithOnError(func(err error) {
			self.log.WithError(err).Warn("Failed to pin, retrying")
		}).
		Run(func() error {
			// Body readers can't be reused between attempts
			result := new(PinResult)
			_, err := prepare(self.client.R().SetContext(ctx)).
				SetResult(result).
				Post(endpoint)
			if err != nil {
				var statusErr *StatusError
				if errors.As(err, &statusErr) && statusErr.isPermanent() {
					return task.Permanent(err)
				}
				return err
			}
			if result.IpfsHash == "" {
				return task.Permanent(ErrEmptyHash)
			}
			out = result
			return nil
		})
	if err != nil {
		return nil, err
	}

	out.Url = self.GatewayUrl(out.IpfsHash)
	self.pinned.SetDefault(key, out)

	self.log.WithField("hash", out.IpfsHash).WithField("size", out.PinSize).Info("Pinned")
	return
}
