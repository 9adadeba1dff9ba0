package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/monocle-dev/projectdesk/internal/logging"
	"github.com/monocle-dev/projectdesk/internal/types"
	"github.com/sirupsen/logrus"
)

const RequestIDHeader = "X-Request-ID"

// RequestLogger tags every request with an id and logs it once it is done.
func RequestLogger() gin.HandlerFunc {
	log := logging.For("http")

	return func(ctx *gin.Context) {
		start := time.Now()

		requestID := ctx.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}

		ctx.Set(types.ContextRequestKey, requestID)
		ctx.Header(RequestIDHeader, requestID)

		ctx.Next()

		entry := log.WithFields(logrus.Fields{
			"request_id": requestID,
			"method":     ctx.Request.Method,
			"path":       ctx.FullPath(),
			"status":     ctx.Writer.Status(),
			"latency_ms": time.Since(start).Milliseconds(),
		})

		if len(ctx.Errors) > 0 {
			entry.WithField("errors", ctx.Errors.String()).Warn("Request completed with errors")
			return
		}

		entry.Info("Request completed")
	}
}
