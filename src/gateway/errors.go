package gateway

import (
	"net/http"

	"github.com/warp-contracts/minter/src/gateway/response"
	"github.com/warp-contracts/minter/src/ledger"
	"github.com/warp-contracts/minter/src/utils/logger"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Gateway's own error kinds, next to the ledger's
const KindRateLimited = "RateLimited"

var LOG = logger.LOG

func errorBody(kind, message string) *response.Error {
	return &response.Error{Error: kind, Message: message}
}

// HTTP status for a ledger error kind
func StatusOf(kind string) int {
	switch kind {
	case ledger.KindNotAuthorized:
		return http.StatusForbidden
	case ledger.KindMintingInactive, ledger.KindSupplyExhausted:
		return http.StatusConflict
	case ledger.KindBatchLimitExceeded, ledger.KindZeroAddressRecipient, ledger.KindInvalidInput:
		return http.StatusBadRequest
	case ledger.KindUnknownToken:
		return http.StatusNotFound
	case ledger.KindInsufficientPayment:
		return http.StatusPaymentRequired
	case KindRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// Aborts the request with the error's kind and message.
// Rejections are the caller's fault, anything else is logged as an error here.
func (self *Server) abort(c *gin.Context, err error) *logrus.Entry {
	kind := ledger.Kind(err)
	status := StatusOf(kind)

	self.monitor.OnRejection(kind)

	entry := LOG(c).WithError(err).WithField("status", status).WithField("kind", kind)
	if !ledger.IsRejection(err) {
		entry.Error("Internal error")
		c.AbortWithStatusJSON(status, errorBody(kind, "internal error"))
		return entry
	}

	c.AbortWithStatusJSON(status, errorBody(kind, err.Error()))
	return entry
}

// Malformed request body
func (self *Server) abortBadRequest(c *gin.Context, err error) *logrus.Entry {
	self.monitor.GetReport().Gateway.Errors.BadRequest.Inc()
	c.AbortWithStatusJSON(http.StatusBadRequest, errorBody(ledger.KindInvalidInput, err.Error()))
	return LOG(c).WithError(err).WithField("status", http.StatusBadRequest)
}
