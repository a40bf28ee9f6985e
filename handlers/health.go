package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"webcraft/utils"
)

// HealthHandler reports the snapshot kept by the health cron job.
func HealthHandler(monitor *utils.HealthMonitor) gin.HandlerFunc {
	return func(c *gin.Context) {
		status := monitor.Status()
		state := "ok"
		if !status.Redis {
			state = "degraded"
		}
		c.JSON(http.StatusOK, gin.H{
			"status":    state,
			"redis":     status.Redis,
			"checkedAt": status.CheckedAt,
		})
	}
}
