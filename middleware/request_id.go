package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	RequestIDHeader = "X-Request-ID"

	// context keys read by handlers
	ContextRequestID = "requestID"
	ContextLogger    = "logger"
)

// RequestLogger tags every request with an ID, stores a request scoped
// logger in the gin context and writes one access log line per request.
func RequestLogger(base *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		logger := base.With(zap.String("request_id", id))

		c.Set(ContextRequestID, id)
		c.Set(ContextLogger, logger)
		c.Header(RequestIDHeader, id)

		start := time.Now()
		c.Next()

		logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("ip", getClientIP(c)),
		)
	}
}
