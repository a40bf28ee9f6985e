package handlers

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"webcraft/middleware"
	"webcraft/utils"
)

// getLogger retrieves the request scoped logger or falls back to the
// process logger.
func getLogger(c *gin.Context) *zap.Logger {
	if l, exists := c.Get(middleware.ContextLogger); exists {
		if logger, ok := l.(*zap.Logger); ok {
			return logger
		}
	}
	return utils.GetLogger()
}
