package pinata

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/warp-contracts/minter/src/utils/config"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/atomic"
)

func TestClientTestSuite(t *testing.T) {
	suite.Run(t, new(ClientTestSuite))
}

type ClientTestSuite struct {
	suite.Suite
	ctx    context.Context
	cancel context.CancelFunc
	config *config.Config
	server *httptest.Server
	calls  atomic.Int64
	status atomic.Int64
}

func (s *ClientTestSuite) SetupTest() {
	s.ctx, s.cancel = context.WithTimeout(context.Background(), 10*time.Second)
	s.calls.Store(0)
	s.status.Store(http.StatusOK)

	s.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.calls.Inc()

		if r.Header.Get("pinata_api_key") != "key" || r.Header.Get("pinata_secret_api_key") != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		if status := int(s.status.Load()); status != http.StatusOK {
			w.WriteHeader(status)
			return
		}

		var hash string
		switch r.URL.Path {
		case pinJSONEndpoint:
			body, _ := io.ReadAll(r.Body)
			var doc map[string]interface{}
			if json.Unmarshal(body, &doc) != nil {
				w.WriteHeader(http.StatusBadRequest)
				return
			}
			hash = "QmJson"
		case pinFileEndpoint:
			file, header, err := r.FormFile("file")
			if err != nil {
				w.WriteHeader(http.StatusBadRequest)
				return
			}
			defer file.Close()
			hash = "QmFile-" + header.Filename
		default:
			w.WriteHeader(http.StatusNotFound)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"IpfsHash":"` + hash + `","PinSize":42,"Timestamp":"2023-01-01T00:00:00Z"}`))
	}))

	s.config = config.Default()
	s.config.Pinata.ApiUrl = s.server.URL
	s.config.Pinata.ApiKey = "key"
	s.config.Pinata.SecretApiKey = "secret"
	s.config.Pinata.MaxElapsedTime = time.Second
	s.config.Pinata.MaxInterval = 50 * time.Millisecond
}

func (s *ClientTestSuite) TearDownTest() {
	s.server.Close()
	s.cancel()
}

func (s *ClientTestSuite) TestPinJSON() {
	client := NewClient(s.config)

	out, err := client.PinJSON(s.ctx, map[string]string{"name": "Baby Spirit #0"})
	require.Nil(s.T(), err)
	require.Equal(s.T(), "QmJson", out.IpfsHash)
	require.Equal(s.T(), int64(42), out.PinSize)
	require.Equal(s.T(), "https://gateway.pinata.cloud/ipfs/QmJson", out.Url)
}

func (s *ClientTestSuite) TestPinFile() {
	client := NewClient(s.config)

	out, err := client.PinFile(s.ctx, "spirit.png", []byte{0x89, 'P', 'N', 'G'})
	require.Nil(s.T(), err)
	require.Equal(s.T(), "QmFile-spirit.png", out.IpfsHash)
}

func (s *ClientTestSuite) TestCache() {
	client := NewClient(s.config)

	_, err := client.PinJSON(s.ctx, map[string]string{"name": "a"})
	require.Nil(s.T(), err)
	_, err = client.PinJSON(s.ctx, map[string]string{"name": "a"})
	require.Nil(s.T(), err)
	require.Equal(s.T(), int64(1), s.calls.Load())

	_, err = client.PinJSON(s.ctx, map[string]string{"name": "b"})
	require.Nil(s.T(), err)
	require.Equal(s.T(), int64(2), s.calls.Load())
}

func (s *ClientTestSuite) TestClientErrorIsNotRetried() {
	s.config.Pinata.SecretApiKey = "wrong"
	client := NewClient(s.config)

	_, err := client.PinJSON(s.ctx, map[string]string{"name": "a"})
	var statusErr *StatusError
	require.ErrorAs(s.T(), err, &statusErr)
	require.Equal(s.T(), http.StatusUnauthorized, statusErr.Status)
	require.Equal(s.T(), int64(1), s.calls.Load())
}

func (s *ClientTestSuite) TestServerErrorIsRetried() {
	s.status.Store(http.StatusBadGateway)
	client := NewClient(s.config)

	_, err := client.PinJSON(s.ctx, map[string]string{"name": "a"})
	require.NotNil(s.T(), err)
	require.Greater(s.T(), s.calls.Load(), int64(1))
}

func (s *ClientTestSuite) TestMissingCredentials() {
	s.config.Pinata.ApiKey = ""
	client := NewClient(s.config)

	_, err := client.PinJSON(s.ctx, map[string]string{"name": "a"})
	require.ErrorIs(s.T(), err, ErrMissingCredentials)
	require.Equal(s.T(), int64(0), s.calls.Load())
}
