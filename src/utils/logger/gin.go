package logger

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/xid"
	"github.com/sirupsen/logrus"
)

const (
	RequestIdKey    = "request_id"
	RequestIdHeader = "X-Request-Id"
)

// Assigns every request an id, used in logs and returned in a header
func RequestId() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIdHeader)
		if id == "" {
			id = xid.New().String()
		}
		c.Set(RequestIdKey, id)
		c.Header(RequestIdHeader, id)
		c.Next()
	}
}

// Logger for handling a request
func LOG(c *gin.Context) *logrus.Entry {
	return logger.WithFields(logrus.Fields{
		"module":     "minter.gateway",
		"request_id": c.GetString(RequestIdKey),
		"path":       c.FullPath(),
	})
}

// Logs the error, aborts the request with the given status and a JSON body
func LOGE(c *gin.Context, err error, status int) *logrus.Entry {
	entry := LOG(c).WithField("status", status)
	if err != nil {
		entry = entry.WithError(err)
		c.AbortWithStatusJSON(status, gin.H{"error": err.Error()})
	} else {
		c.AbortWithStatus(status)
	}
	return entry
}
